package memory

import (
	"context"
	"sort"
	"sync"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/storage"
)

// TokenHolderStore is an in-memory implementation of
// storage.TokenHolderStore.
type TokenHolderStore struct {
	mu   sync.RWMutex
	data map[holderKey]*domain.TokenHolder
}

type holderKey struct {
	token  string
	chain  string
	holder string
}

// NewTokenHolderStore creates a new in-memory holder store.
func NewTokenHolderStore() *TokenHolderStore {
	return &TokenHolderStore{data: make(map[holderKey]*domain.TokenHolder)}
}

var _ storage.TokenHolderStore = (*TokenHolderStore)(nil)

// Upsert inserts or replaces a holder row.
func (s *TokenHolderStore) Upsert(_ context.Context, h *domain.TokenHolder) error {
	if h == nil || h.TokenAddress == "" || h.HolderAddress == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.upsertLocked(h)
	return nil
}

// UpsertBulk inserts or replaces multiple holder rows.
func (s *TokenHolderStore) UpsertBulk(_ context.Context, holders []*domain.TokenHolder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range holders {
		if h == nil || h.TokenAddress == "" || h.HolderAddress == "" {
			return storage.ErrInvalidInput
		}
	}
	for _, h := range holders {
		s.upsertLocked(h)
	}
	return nil
}

func (s *TokenHolderStore) upsertLocked(h *domain.TokenHolder) {
	cp := *h
	s.data[holderKey{h.TokenAddress, h.Chain, h.HolderAddress}] = &cp
}

// GetByToken retrieves all holders of a token on a chain, ordered by
// balance DESC.
func (s *TokenHolderStore) GetByToken(_ context.Context, token, chain string) ([]*domain.TokenHolder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.TokenHolder
	for _, h := range s.data {
		if h.TokenAddress == token && h.Chain == chain {
			cp := *h
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Balance != out[j].Balance {
			return out[i].Balance > out[j].Balance
		}
		return out[i].HolderAddress < out[j].HolderAddress
	})
	return out, nil
}
