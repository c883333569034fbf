package memory

import (
	"context"
	"sort"
	"sync"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/storage"
)

// WalletStore is an in-memory implementation of storage.WalletStore.
type WalletStore struct {
	mu   sync.RWMutex
	data map[string]*domain.WalletData
}

// NewWalletStore creates a new in-memory wallet store.
func NewWalletStore() *WalletStore {
	return &WalletStore{data: make(map[string]*domain.WalletData)}
}

var _ storage.WalletStore = (*WalletStore)(nil)

// Upsert inserts or replaces a wallet snapshot.
func (s *WalletStore) Upsert(_ context.Context, w *domain.WalletData) error {
	if w == nil || w.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *w
	s.data[w.Address] = &cp
	return nil
}

// GetByAddress retrieves a snapshot. Returns ErrNotFound if absent.
func (s *WalletStore) GetByAddress(_ context.Context, address string) (*domain.WalletData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.data[address]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

// ListAddresses pages wallet addresses in lexical order.
func (s *WalletStore) ListAddresses(_ context.Context, offset, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	addresses := make([]string, 0, len(s.data))
	for addr := range s.data {
		addresses = append(addresses, addr)
	}
	sort.Strings(addresses)

	if offset >= len(addresses) {
		return nil, nil
	}
	addresses = addresses[offset:]
	if limit > 0 && limit < len(addresses) {
		addresses = addresses[:limit]
	}
	return addresses, nil
}
