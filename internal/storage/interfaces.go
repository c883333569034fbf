package storage

import (
	"context"

	"smart-money-lab/internal/domain"
)

// TradeStore provides access to the immutable trade log.
type TradeStore interface {
	// Insert adds a new trade. Returns ErrDuplicateKey if trade_id exists.
	Insert(ctx context.Context, t *domain.Trade) error

	// InsertBulk adds multiple trades atomically. Fails the entire
	// batch on any duplicate.
	InsertBulk(ctx context.Context, trades []*domain.Trade) error

	// GetByWallet retrieves all trades for a wallet, ordered by
	// timestamp ASC (the ordering the pattern detectors require).
	GetByWallet(ctx context.Context, wallet string) ([]*domain.Trade, error)

	// GetByWalletAndTimeRange retrieves a wallet's trades within
	// [start, end] (inclusive, ms), ordered by timestamp ASC.
	GetByWalletAndTimeRange(ctx context.Context, wallet string, start, end int64) ([]*domain.Trade, error)
}

// WalletStore provides access to wallet performance snapshots.
type WalletStore interface {
	// Upsert inserts or replaces a wallet snapshot.
	Upsert(ctx context.Context, w *domain.WalletData) error

	// GetByAddress retrieves a snapshot. Returns ErrNotFound if absent.
	GetByAddress(ctx context.Context, address string) (*domain.WalletData, error)

	// ListAddresses pages wallet addresses in lexical order for the
	// refresh job. offset/limit semantics; limit <= 0 means all.
	ListAddresses(ctx context.Context, offset, limit int) ([]string, error)
}

// TokenHolderStore provides access to token holder snapshots.
type TokenHolderStore interface {
	// Upsert inserts or replaces a holder row keyed by
	// (token, chain, holder).
	Upsert(ctx context.Context, h *domain.TokenHolder) error

	// UpsertBulk inserts or replaces multiple holder rows.
	UpsertBulk(ctx context.Context, holders []*domain.TokenHolder) error

	// GetByToken retrieves all holders of a token on a chain, ordered
	// by balance DESC. Returns an empty slice when no rows match.
	GetByToken(ctx context.Context, token, chain string) ([]*domain.TokenHolder, error)
}

// ScoreStore provides access to derived smart-money scores.
type ScoreStore interface {
	// Upsert inserts or replaces the score for a wallet.
	Upsert(ctx context.Context, s *domain.SmartMoneyScore) error

	// GetByWallet retrieves the latest score. Returns ErrNotFound if
	// the wallet has never been scored.
	GetByWallet(ctx context.Context, wallet string) (*domain.SmartMoneyScore, error)
}

// PoolStore provides access to liquidity pool rows.
type PoolStore interface {
	// Upsert inserts or replaces a pool.
	Upsert(ctx context.Context, p *domain.LiquidityPool) error

	// GetByID retrieves a pool. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, poolID string) (*domain.LiquidityPool, error)
}

// ScoreSnapshotStore archives score history (append-only, ClickHouse).
type ScoreSnapshotStore interface {
	// InsertBatch appends a batch of score snapshots.
	InsertBatch(ctx context.Context, scores []*domain.SmartMoneyScore) error

	// GetByWallet retrieves a wallet's score history within
	// [start, end] (inclusive, ms), ordered by computed_at ASC.
	GetByWallet(ctx context.Context, wallet string, start, end int64) ([]*domain.SmartMoneyScore, error)
}

// DistributionSnapshotStore archives holder-distribution history
// (append-only, ClickHouse).
type DistributionSnapshotStore interface {
	// Insert appends one distribution snapshot.
	Insert(ctx context.Context, d *domain.HolderDistribution) error

	// GetByToken retrieves a token's distribution history within
	// [start, end] (inclusive, ms), ordered by computed_at ASC.
	GetByToken(ctx context.Context, token, chain string, start, end int64) ([]*domain.HolderDistribution, error)
}
