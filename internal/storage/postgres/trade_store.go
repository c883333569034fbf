package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/storage"
)

// TradeStore implements storage.TradeStore using PostgreSQL.
type TradeStore struct {
	pool *Pool
}

// NewTradeStore creates a new TradeStore.
func NewTradeStore(pool *Pool) *TradeStore {
	return &TradeStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TradeStore = (*TradeStore)(nil)

const tradeColumns = `
	trade_id, wallet_address, ts, trade_type,
	token_in_address, token_in_symbol, token_in_amount, token_in_value_usd,
	token_out_address, token_out_symbol, token_out_amount, token_out_value_usd,
	protocol, dex, trade_size_usd, realized_pnl, unrealized_pnl, roi
`

// Insert adds a new trade. Returns ErrDuplicateKey if trade_id exists.
func (s *TradeStore) Insert(ctx context.Context, t *domain.Trade) error {
	if t == nil || t.TradeID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO trades (` + tradeColumns + `) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18
		)
	`

	_, err := s.pool.Exec(ctx, query, tradeArgs(t)...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		s.pool.recordError("insert_trade")
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}

// InsertBulk adds multiple trades atomically. Fails the entire batch on
// any duplicate.
func (s *TradeStore) InsertBulk(ctx context.Context, trades []*domain.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		s.pool.recordError("begin_tx")
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO trades (` + tradeColumns + `) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18
		)
	`
	for _, t := range trades {
		if t == nil || t.TradeID == "" {
			return storage.ErrInvalidInput
		}
		batch.Queue(query, tradeArgs(t)...)
	}

	results := tx.SendBatch(ctx, batch)
	for range trades {
		if _, err := results.Exec(); err != nil {
			results.Close()
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			s.pool.recordError("bulk_insert_trades")
			return fmt.Errorf("bulk insert trades: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		s.pool.recordError("close_batch")
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByWallet retrieves all trades for a wallet, ordered by timestamp ASC.
func (s *TradeStore) GetByWallet(ctx context.Context, wallet string) ([]*domain.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE wallet_address = $1
		ORDER BY ts ASC, trade_id ASC
	`
	rows, err := s.pool.Query(ctx, query, wallet)
	if err != nil {
		s.pool.recordError("query_trades_by_wallet")
		return nil, fmt.Errorf("query trades by wallet: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// GetByWalletAndTimeRange retrieves a wallet's trades within [start, end].
func (s *TradeStore) GetByWalletAndTimeRange(ctx context.Context, wallet string, start, end int64) ([]*domain.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE wallet_address = $1 AND ts >= $2 AND ts <= $3
		ORDER BY ts ASC, trade_id ASC
	`
	rows, err := s.pool.Query(ctx, query, wallet, start, end)
	if err != nil {
		s.pool.recordError("query_trades_by_time_range")
		return nil, fmt.Errorf("query trades by time range: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

func tradeArgs(t *domain.Trade) []any {
	return []any{
		t.TradeID, t.WalletAddress, t.Timestamp, t.Type,
		t.TokenInAddress, t.TokenInSymbol, t.TokenInAmount, t.TokenInValueUSD,
		t.TokenOutAddress, t.TokenOutSymbol, t.TokenOutAmount, t.TokenOutValueUSD,
		t.Protocol, t.DEX, t.TradeSizeUSD, t.RealizedPnl, t.UnrealizedPnl, t.ROI,
	}
}

func scanTrades(rows pgx.Rows) ([]*domain.Trade, error) {
	var trades []*domain.Trade
	for rows.Next() {
		t := &domain.Trade{}
		err := rows.Scan(
			&t.TradeID, &t.WalletAddress, &t.Timestamp, &t.Type,
			&t.TokenInAddress, &t.TokenInSymbol, &t.TokenInAmount, &t.TokenInValueUSD,
			&t.TokenOutAddress, &t.TokenOutSymbol, &t.TokenOutAmount, &t.TokenOutValueUSD,
			&t.Protocol, &t.DEX, &t.TradeSizeUSD, &t.RealizedPnl, &t.UnrealizedPnl, &t.ROI,
		)
		if err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trades: %w", err)
	}
	return trades, nil
}
