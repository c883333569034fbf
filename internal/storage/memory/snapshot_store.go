package memory

import (
	"context"
	"sort"
	"sync"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/storage"
)

// ScoreSnapshotStore is an in-memory implementation of
// storage.ScoreSnapshotStore.
type ScoreSnapshotStore struct {
	mu   sync.RWMutex
	data []*domain.SmartMoneyScore
}

// NewScoreSnapshotStore creates a new in-memory score history store.
func NewScoreSnapshotStore() *ScoreSnapshotStore {
	return &ScoreSnapshotStore{}
}

var _ storage.ScoreSnapshotStore = (*ScoreSnapshotStore)(nil)

// InsertBatch appends a batch of score snapshots.
func (s *ScoreSnapshotStore) InsertBatch(_ context.Context, scores []*domain.SmartMoneyScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, score := range scores {
		if score == nil || score.WalletAddress == "" {
			return storage.ErrInvalidInput
		}
		cp := *score
		s.data = append(s.data, &cp)
	}
	return nil
}

// GetByWallet retrieves a wallet's score history within [start, end],
// ordered by computed_at ASC.
func (s *ScoreSnapshotStore) GetByWallet(_ context.Context, wallet string, start, end int64) ([]*domain.SmartMoneyScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.SmartMoneyScore
	for _, score := range s.data {
		if score.WalletAddress == wallet && score.ComputedAt >= start && score.ComputedAt <= end {
			cp := *score
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ComputedAt < out[j].ComputedAt
	})
	return out, nil
}

// DistributionSnapshotStore is an in-memory implementation of
// storage.DistributionSnapshotStore.
type DistributionSnapshotStore struct {
	mu   sync.RWMutex
	data []*domain.HolderDistribution
}

// NewDistributionSnapshotStore creates a new in-memory distribution
// history store.
func NewDistributionSnapshotStore() *DistributionSnapshotStore {
	return &DistributionSnapshotStore{}
}

var _ storage.DistributionSnapshotStore = (*DistributionSnapshotStore)(nil)

// Insert appends one distribution snapshot.
func (s *DistributionSnapshotStore) Insert(_ context.Context, d *domain.HolderDistribution) error {
	if d == nil || d.TokenAddress == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *d
	s.data = append(s.data, &cp)
	return nil
}

// GetByToken retrieves a token's distribution history within
// [start, end], ordered by computed_at ASC.
func (s *DistributionSnapshotStore) GetByToken(_ context.Context, token, chain string, start, end int64) ([]*domain.HolderDistribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.HolderDistribution
	for _, d := range s.data {
		if d.TokenAddress == token && d.Chain == chain && d.ComputedAt >= start && d.ComputedAt <= end {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ComputedAt < out[j].ComputedAt
	})
	return out, nil
}
