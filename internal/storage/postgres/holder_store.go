package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/storage"
)

// TokenHolderStore implements storage.TokenHolderStore using PostgreSQL.
type TokenHolderStore struct {
	pool *Pool
}

// NewTokenHolderStore creates a new TokenHolderStore.
func NewTokenHolderStore(pool *Pool) *TokenHolderStore {
	return &TokenHolderStore{pool: pool}
}

var _ storage.TokenHolderStore = (*TokenHolderStore)(nil)

const holderUpsertQuery = `
	INSERT INTO token_holders (
		token_address, chain, holder_address,
		balance, value_usd, supply_percentage,
		holder_tier, is_contract, is_exchange,
		first_seen, last_active, holding_period_days, transaction_count
	) VALUES (
		$1, $2, $3,
		$4, $5, $6,
		$7, $8, $9,
		$10, $11, $12, $13
	)
	ON CONFLICT (token_address, chain, holder_address) DO UPDATE SET
		balance = EXCLUDED.balance,
		value_usd = EXCLUDED.value_usd,
		supply_percentage = EXCLUDED.supply_percentage,
		holder_tier = EXCLUDED.holder_tier,
		is_contract = EXCLUDED.is_contract,
		is_exchange = EXCLUDED.is_exchange,
		first_seen = EXCLUDED.first_seen,
		last_active = EXCLUDED.last_active,
		holding_period_days = EXCLUDED.holding_period_days,
		transaction_count = EXCLUDED.transaction_count
`

// Upsert inserts or replaces a holder row.
func (s *TokenHolderStore) Upsert(ctx context.Context, h *domain.TokenHolder) error {
	if h == nil || h.TokenAddress == "" || h.HolderAddress == "" {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, holderUpsertQuery, holderArgs(h)...)
	if err != nil {
		s.pool.recordError("upsert_holder")
		return fmt.Errorf("upsert holder: %w", err)
	}
	return nil
}

// UpsertBulk inserts or replaces multiple holder rows in one
// transaction.
func (s *TokenHolderStore) UpsertBulk(ctx context.Context, holders []*domain.TokenHolder) error {
	if len(holders) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		s.pool.recordError("begin_tx")
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, h := range holders {
		if h == nil || h.TokenAddress == "" || h.HolderAddress == "" {
			return storage.ErrInvalidInput
		}
		batch.Queue(holderUpsertQuery, holderArgs(h)...)
	}

	results := tx.SendBatch(ctx, batch)
	for range holders {
		if _, err := results.Exec(); err != nil {
			results.Close()
			s.pool.recordError("bulk_upsert_holders")
			return fmt.Errorf("bulk upsert holders: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		s.pool.recordError("close_batch")
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByToken retrieves all holders of a token on a chain, ordered by
// balance DESC.
func (s *TokenHolderStore) GetByToken(ctx context.Context, token, chain string) ([]*domain.TokenHolder, error) {
	query := `
		SELECT token_address, chain, holder_address,
			balance, value_usd, supply_percentage,
			holder_tier, is_contract, is_exchange,
			first_seen, last_active, holding_period_days, transaction_count
		FROM token_holders
		WHERE token_address = $1 AND chain = $2
		ORDER BY balance DESC, holder_address ASC
	`
	rows, err := s.pool.Query(ctx, query, token, chain)
	if err != nil {
		s.pool.recordError("query_holders")
		return nil, fmt.Errorf("query holders: %w", err)
	}
	defer rows.Close()

	var holders []*domain.TokenHolder
	for rows.Next() {
		h := &domain.TokenHolder{}
		err := rows.Scan(
			&h.TokenAddress, &h.Chain, &h.HolderAddress,
			&h.Balance, &h.ValueUSD, &h.SupplyPercentage,
			&h.HolderTier, &h.IsContract, &h.IsExchange,
			&h.FirstSeen, &h.LastActive, &h.HoldingPeriodDays, &h.TransactionCount,
		)
		if err != nil {
			s.pool.recordError("scan_holder")
			return nil, fmt.Errorf("scan holder: %w", err)
		}
		holders = append(holders, h)
	}
	if err := rows.Err(); err != nil {
		s.pool.recordError("iterate_holders")
		return nil, fmt.Errorf("iterate holders: %w", err)
	}
	return holders, nil
}

func holderArgs(h *domain.TokenHolder) []any {
	return []any{
		h.TokenAddress, h.Chain, h.HolderAddress,
		h.Balance, h.ValueUSD, h.SupplyPercentage,
		h.HolderTier, h.IsContract, h.IsExchange,
		h.FirstSeen, h.LastActive, h.HoldingPeriodDays, h.TransactionCount,
	}
}
