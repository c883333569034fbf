package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss indicates the key is not in the cache.
var ErrMiss = errors.New("cache: miss")

// Cache stores serialized JSON blobs with a TTL. Implementations must be
// safe for concurrent use.
type Cache interface {
	// Get returns the cached blob. Returns ErrMiss if absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the blob with the given TTL. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, keys ...string) error
}

// NoOp is a Cache that stores nothing. Used when Redis is not configured;
// every Get is a miss.
type NoOp struct{}

var _ Cache = NoOp{}

func (NoOp) Get(_ context.Context, _ string) ([]byte, error) {
	return nil, ErrMiss
}

func (NoOp) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

func (NoOp) Delete(_ context.Context, _ ...string) error {
	return nil
}
