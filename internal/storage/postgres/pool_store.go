package postgres

import (
	"context"
	"fmt"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/storage"
)

// PoolStore implements storage.PoolStore using PostgreSQL.
type PoolStore struct {
	pool *Pool
}

// NewPoolStore creates a new PoolStore.
func NewPoolStore(pool *Pool) *PoolStore {
	return &PoolStore{pool: pool}
}

var _ storage.PoolStore = (*PoolStore)(nil)

// Upsert inserts or replaces a pool.
func (s *PoolStore) Upsert(ctx context.Context, p *domain.LiquidityPool) error {
	if p == nil || p.PoolID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO liquidity_pools (
			pool_id, pool_type, protocol, chain,
			token0_address, token0_symbol, token1_address, token1_symbol,
			reserve0, reserve1, token0_price_usd, token1_price_usd,
			fee_pct, liquidity_concentration, amplification, weight0
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15, $16
		)
		ON CONFLICT (pool_id) DO UPDATE SET
			pool_type = EXCLUDED.pool_type,
			protocol = EXCLUDED.protocol,
			chain = EXCLUDED.chain,
			token0_address = EXCLUDED.token0_address,
			token0_symbol = EXCLUDED.token0_symbol,
			token1_address = EXCLUDED.token1_address,
			token1_symbol = EXCLUDED.token1_symbol,
			reserve0 = EXCLUDED.reserve0,
			reserve1 = EXCLUDED.reserve1,
			token0_price_usd = EXCLUDED.token0_price_usd,
			token1_price_usd = EXCLUDED.token1_price_usd,
			fee_pct = EXCLUDED.fee_pct,
			liquidity_concentration = EXCLUDED.liquidity_concentration,
			amplification = EXCLUDED.amplification,
			weight0 = EXCLUDED.weight0
	`

	_, err := s.pool.Exec(ctx, query,
		p.PoolID, p.PoolType, p.Protocol, p.Chain,
		p.Token0Address, p.Token0Symbol, p.Token1Address, p.Token1Symbol,
		p.Reserve0, p.Reserve1, p.Token0PriceUSD, p.Token1PriceUSD,
		p.FeePct, p.LiquidityConcentration, p.Amplification, p.Weight0,
	)
	if err != nil {
		s.pool.recordError("upsert_pool")
		return fmt.Errorf("upsert pool: %w", err)
	}
	return nil
}

// GetByID retrieves a pool. Returns ErrNotFound if absent.
func (s *PoolStore) GetByID(ctx context.Context, poolID string) (*domain.LiquidityPool, error) {
	query := `
		SELECT pool_id, pool_type, protocol, chain,
			token0_address, token0_symbol, token1_address, token1_symbol,
			reserve0, reserve1, token0_price_usd, token1_price_usd,
			fee_pct, liquidity_concentration, amplification, weight0
		FROM liquidity_pools
		WHERE pool_id = $1
	`

	p := &domain.LiquidityPool{}
	err := s.pool.QueryRow(ctx, query, poolID).Scan(
		&p.PoolID, &p.PoolType, &p.Protocol, &p.Chain,
		&p.Token0Address, &p.Token0Symbol, &p.Token1Address, &p.Token1Symbol,
		&p.Reserve0, &p.Reserve1, &p.Token0PriceUSD, &p.Token1PriceUSD,
		&p.FeePct, &p.LiquidityConcentration, &p.Amplification, &p.Weight0,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		s.pool.recordError("get_pool")
		return nil, fmt.Errorf("get pool: %w", err)
	}
	return p, nil
}
