// Package holders computes concentration metrics over a token's
// holder-balance snapshot.
package holders

import (
	"errors"
	"sort"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/stats"
)

// ErrNoHolders is returned for an empty holder set. A zero-filled
// distribution would silently report zero concentration, so the empty
// case is an error, not a fallback.
var ErrNoHolders = errors.New("no holders")

// histogram bands over supply percentage. Max 0 means unbounded.
var histogramBands = []struct {
	label string
	min   float64
	max   float64
}{
	{"0%-0.001%", 0, 0.001},
	{"0.001%-0.01%", 0.001, 0.01},
	{"0.01%-0.1%", 0.01, 0.1},
	{"0.1%-1%", 0.1, 1},
	{">1%", 1, 0},
}

// Distribution summarizes the holder set: Gini/concentration, top-N
// supply share, per-tier aggregates and the balance-range histogram.
// Holder tiers are assigned upstream; this engine only aggregates them.
func Distribution(holdersSet []domain.TokenHolder) (*domain.HolderDistribution, error) {
	if len(holdersSet) == 0 {
		return nil, ErrNoHolders
	}

	balances := make([]float64, len(holdersSet))
	for i, h := range holdersSet {
		balances[i] = h.Balance
	}
	sort.Float64s(balances)

	gini := stats.Gini(balances)

	dist := &domain.HolderDistribution{
		TokenAddress:       holdersSet[0].TokenAddress,
		Chain:              holdersSet[0].Chain,
		TotalHolders:       len(holdersSet),
		GiniCoefficient:    gini,
		ConcentrationScore: gini * 100,
		Top10Percentage:    topNShare(holdersSet, 10),
		Top50Percentage:    topNShare(holdersSet, 50),
		Top100Percentage:   topNShare(holdersSet, 100),
		Tiers:              tierBreakdown(holdersSet),
		Histogram:          histogram(holdersSet),
	}
	return dist, nil
}

// topNShare sums supply percentage over the n largest balances.
func topNShare(holdersSet []domain.TokenHolder, n int) float64 {
	sorted := make([]domain.TokenHolder, len(holdersSet))
	copy(sorted, holdersSet)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Balance > sorted[j].Balance
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	share := 0.0
	for _, h := range sorted[:n] {
		share += h.SupplyPercentage
	}
	return share
}

func tierBreakdown(holdersSet []domain.TokenHolder) []domain.TierBreakdown {
	byTier := make(map[string]*domain.TierBreakdown)
	for _, tier := range domain.HolderTiers {
		byTier[tier] = &domain.TierBreakdown{Tier: tier}
	}
	for _, h := range holdersSet {
		entry, ok := byTier[h.HolderTier]
		if !ok {
			// Unknown tier from a newer upstream classifier; count it
			// under dust rather than dropping the holder.
			entry = byTier[domain.TierDust]
		}
		entry.Count++
		entry.Percentage += h.SupplyPercentage
	}

	out := make([]domain.TierBreakdown, 0, len(domain.HolderTiers))
	for _, tier := range domain.HolderTiers {
		out = append(out, *byTier[tier])
	}
	return out
}

func histogram(holdersSet []domain.TokenHolder) []domain.BalanceRangeBucket {
	buckets := make([]domain.BalanceRangeBucket, len(histogramBands))
	for i, band := range histogramBands {
		buckets[i] = domain.BalanceRangeBucket{
			Label:         band.label,
			MinPercentage: band.min,
			MaxPercentage: band.max,
		}
	}

	for _, h := range holdersSet {
		idx := bandIndex(h.SupplyPercentage)
		buckets[idx].HolderCount++
		buckets[idx].TotalBalance += h.Balance
		buckets[idx].TotalPct += h.SupplyPercentage
	}
	return buckets
}

func bandIndex(pct float64) int {
	for i, band := range histogramBands {
		if band.max == 0 || pct < band.max {
			return i
		}
	}
	return len(histogramBands) - 1
}
