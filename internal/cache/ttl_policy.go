package cache

import (
	"sync"
	"time"
)

// TTLPolicy recommends per-key TTLs from observed change frequency.
// Keys that change often get short TTLs; keys that have been quiet for
// a full window get a stretched TTL. Change history is kept in memory
// per process, which is accurate enough for expiry hints.
type TTLPolicy struct {
	mu      sync.Mutex
	window  time.Duration
	minTTL  time.Duration
	changes map[string][]time.Time
	now     func() time.Time
}

// NewTTLPolicy creates a policy that counts changes over the given window.
// TTL recommendations never drop below minTTL.
func NewTTLPolicy(window, minTTL time.Duration) *TTLPolicy {
	if window <= 0 {
		window = time.Hour
	}
	if minTTL <= 0 {
		minTTL = 5 * time.Second
	}
	return &TTLPolicy{
		window:  window,
		minTTL:  minTTL,
		changes: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// RecordChange notes that the value behind key changed.
func (p *TTLPolicy) RecordChange(key string) {
	now := p.now()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.changes[key] = append(p.pruneLocked(key, now), now)
}

// RecommendTTL returns the TTL to use for key given a base TTL.
// A key with no recorded changes in the window gets double the base;
// each change within the window halves the headroom down to minTTL.
func (p *TTLPolicy) RecommendTTL(key string, base time.Duration) time.Duration {
	if base <= 0 {
		return base
	}

	now := p.now()

	p.mu.Lock()
	recent := p.pruneLocked(key, now)
	if len(recent) == 0 {
		delete(p.changes, key)
	} else {
		p.changes[key] = recent
	}
	n := len(recent)
	p.mu.Unlock()

	if n == 0 {
		return 2 * base
	}

	ttl := base / time.Duration(n+1)
	if ttl < p.minTTL {
		ttl = p.minTTL
	}
	return ttl
}

// pruneLocked drops change records older than the window. Caller holds mu.
func (p *TTLPolicy) pruneLocked(key string, now time.Time) []time.Time {
	cutoff := now.Add(-p.window)
	recorded := p.changes[key]

	i := 0
	for i < len(recorded) && !recorded[i].After(cutoff) {
		i++
	}
	return recorded[i:]
}
