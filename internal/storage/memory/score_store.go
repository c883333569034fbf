package memory

import (
	"context"
	"sync"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/storage"
)

// ScoreStore is an in-memory implementation of storage.ScoreStore.
type ScoreStore struct {
	mu   sync.RWMutex
	data map[string]*domain.SmartMoneyScore
}

// NewScoreStore creates a new in-memory score store.
func NewScoreStore() *ScoreStore {
	return &ScoreStore{data: make(map[string]*domain.SmartMoneyScore)}
}

var _ storage.ScoreStore = (*ScoreStore)(nil)

// Upsert inserts or replaces the score for a wallet.
func (s *ScoreStore) Upsert(_ context.Context, score *domain.SmartMoneyScore) error {
	if score == nil || score.WalletAddress == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *score
	s.data[score.WalletAddress] = &cp
	return nil
}

// GetByWallet retrieves the latest score. Returns ErrNotFound if the
// wallet has never been scored.
func (s *ScoreStore) GetByWallet(_ context.Context, wallet string) (*domain.SmartMoneyScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	score, ok := s.data[wallet]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *score
	return &cp, nil
}

// PoolStore is an in-memory implementation of storage.PoolStore.
type PoolStore struct {
	mu   sync.RWMutex
	data map[string]*domain.LiquidityPool
}

// NewPoolStore creates a new in-memory pool store.
func NewPoolStore() *PoolStore {
	return &PoolStore{data: make(map[string]*domain.LiquidityPool)}
}

var _ storage.PoolStore = (*PoolStore)(nil)

// Upsert inserts or replaces a pool.
func (s *PoolStore) Upsert(_ context.Context, p *domain.LiquidityPool) error {
	if p == nil || p.PoolID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	s.data[p.PoolID] = &cp
	return nil
}

// GetByID retrieves a pool. Returns ErrNotFound if absent.
func (s *PoolStore) GetByID(_ context.Context, poolID string) (*domain.LiquidityPool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[poolID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *p
	return &cp, nil
}
