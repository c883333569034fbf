// Package refresh provides the background score recomputation job.
// It pages wallet snapshots, recomputes smart-money scores, persists
// the results, archives history snapshots, and invalidates cache keys.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smart-money-lab/internal/cache"
	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/logger"
	"smart-money-lab/internal/observability"
	"smart-money-lab/internal/scoring"
	"smart-money-lab/internal/storage"
)

// Runner executes refresh runs over the wallet set.
type Runner struct {
	walletStore   storage.WalletStore
	scoreStore    storage.ScoreStore
	snapshotStore storage.ScoreSnapshotStore // optional

	cache     cache.Cache
	ttlPolicy *cache.TTLPolicy // optional
	metrics   *observability.Metrics

	batchSize int
	now       func() time.Time
}

// Options for creating a Runner.
type Options struct {
	WalletStore   storage.WalletStore
	ScoreStore    storage.ScoreStore
	SnapshotStore storage.ScoreSnapshotStore // optional, nil disables archiving

	Cache     cache.Cache      // optional, nil disables invalidation
	TTLPolicy *cache.TTLPolicy // optional

	Metrics *observability.Metrics // optional

	BatchSize int // wallets per page, default 200
}

// New creates a new Runner.
func New(opts Options) *Runner {
	batchSize := opts.BatchSize
	if batchSize < 1 {
		batchSize = 200
	}

	c := opts.Cache
	if c == nil {
		c = cache.NoOp{}
	}

	return &Runner{
		walletStore:   opts.WalletStore,
		scoreStore:    opts.ScoreStore,
		snapshotStore: opts.SnapshotStore,
		cache:         c,
		ttlPolicy:     opts.TTLPolicy,
		metrics:       opts.Metrics,
		batchSize:     batchSize,
		now:           time.Now,
	}
}

// RunResult contains counts from one refresh run.
type RunResult struct {
	WalletsScored   int
	SnapshotsStored int
	WalletsSkipped  int
	InvalidatedKeys int
}

// Run recomputes scores for every wallet in the store. Wallets that
// fail to load are skipped; storage failures on write abort the run.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	log := logger.GetForComponent("refresh")
	started := r.now()
	result := &RunResult{}

	for offset := 0; ; offset += r.batchSize {
		addresses, err := r.walletStore.ListAddresses(ctx, offset, r.batchSize)
		if err != nil {
			r.recordRun("error", started, result)
			return nil, fmt.Errorf("list wallet addresses: %w", err)
		}
		if len(addresses) == 0 {
			break
		}

		wallets := make([]domain.WalletData, 0, len(addresses))
		for _, address := range addresses {
			w, err := r.walletStore.GetByAddress(ctx, address)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					result.WalletsSkipped++
					continue
				}
				r.recordRun("error", started, result)
				return nil, fmt.Errorf("load wallet %s: %w", address, err)
			}
			wallets = append(wallets, *w)
		}

		if err := r.scoreBatch(ctx, wallets, result); err != nil {
			r.recordRun("error", started, result)
			return nil, err
		}

		if len(addresses) < r.batchSize {
			break
		}
	}

	r.recordRun("success", started, result)
	log.Info().
		Int("scored", result.WalletsScored).
		Int("skipped", result.WalletsSkipped).
		Int("snapshots", result.SnapshotsStored).
		Dur("took", r.now().Sub(started)).
		Msg("refresh run completed")

	return result, nil
}

func (r *Runner) scoreBatch(ctx context.Context, wallets []domain.WalletData, result *RunResult) error {
	if len(wallets) == 0 {
		return nil
	}

	computedAt := r.now().UnixMilli()
	scores := scoring.BatchCalculateScores(wallets)

	snapshots := make([]*domain.SmartMoneyScore, 0, len(scores))
	for i := range scores {
		scores[i].ComputedAt = computedAt

		if err := r.scoreStore.Upsert(ctx, &scores[i]); err != nil {
			return fmt.Errorf("upsert score for %s: %w", scores[i].WalletAddress, err)
		}
		result.WalletsScored++
		if r.metrics != nil {
			r.metrics.RecordScore(scores[i].Confidence)
		}

		snapshots = append(snapshots, &scores[i])

		key := ScoreCacheKey(scores[i].WalletAddress)
		if r.ttlPolicy != nil {
			r.ttlPolicy.RecordChange(key)
		}
		if err := r.cache.Delete(ctx, key); err != nil {
			// Stale reads fix themselves on expiry
			refreshLog := logger.GetForComponent("refresh")
			refreshLog.Warn().Err(err).Str("key", key).Msg("cache invalidation failed")
		} else {
			result.InvalidatedKeys++
		}
	}

	if r.snapshotStore != nil {
		if err := r.snapshotStore.InsertBatch(ctx, snapshots); err != nil {
			return fmt.Errorf("archive score snapshots: %w", err)
		}
		result.SnapshotsStored += len(snapshots)
	}

	return nil
}

func (r *Runner) recordRun(status string, started time.Time, result *RunResult) {
	if r.metrics == nil {
		return
	}
	r.metrics.RecordRefreshRun(status, r.now().Sub(started).Seconds(), result.WalletsScored)
	if status == "success" {
		r.metrics.LastSuccessfulRefresh.Set(float64(r.now().Unix()))
	}
}

// ScoreCacheKey is the cache key for a wallet's current score.
func ScoreCacheKey(wallet string) string {
	return "score:" + wallet
}

// DistributionCacheKey is the cache key for a token's distribution.
func DistributionCacheKey(chain, token string) string {
	return "distribution:" + chain + ":" + token
}
