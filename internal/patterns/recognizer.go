// Package patterns implements the rule-based trade-pattern detectors.
// Each detector is a pure function over a wallet's trade history and
// returns nil when its predicate does not hold.
//
// Precondition: trade slices must be sorted ascending by timestamp.
// Growth calculations read the first and last element of the matched
// subset, while span checks use true min/max timestamps; unsorted input
// makes the two disagree.
package patterns

import "smart-money-lab/internal/domain"

const (
	msPerMinute = 60 * 1000
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// DetectAll runs every detector and returns the non-nil patterns.
func DetectAll(trades []domain.Trade) []*domain.Pattern {
	var found []*domain.Pattern
	for _, detect := range []func([]domain.Trade) *domain.Pattern{
		DetectAccumulation,
		DetectDistribution,
		DetectRotation,
		DetectArbitrage,
	} {
		if p := detect(trades); p != nil {
			found = append(found, p)
		}
	}
	return found
}

// DetectAccumulation detects sustained position building: at least 3
// buys spanning 7+ days with the position grown by 50% or more between
// the first and the last buy.
func DetectAccumulation(trades []domain.Trade) *domain.Pattern {
	buys := filterByType(trades, domain.TradeTypeBuy)
	if len(buys) < 3 {
		return nil
	}

	minTS, maxTS := timestampSpan(buys)
	days := float64(maxTS-minTS) / msPerDay
	if days < 7 {
		return nil
	}

	first := buys[0].TokenOutAmount
	last := buys[len(buys)-1].TokenOutAmount
	if first <= 0 {
		return nil
	}
	growth := (last - first) / first
	if growth < 0.5 {
		return nil
	}

	confidence := 50.0 +
		capAt(float64(len(buys))*5, 20) +
		capAt(days*1, 15) +
		capAt(growth*20, 15)

	return buildPattern(domain.PatternAccumulation, buys, confidence)
}

// DetectDistribution is symmetric to accumulation over sells: at least
// 3 sells spanning 7+ days, position trimmed by 50% or more between the
// first and the last sell.
func DetectDistribution(trades []domain.Trade) *domain.Pattern {
	sells := filterByType(trades, domain.TradeTypeSell)
	if len(sells) < 3 {
		return nil
	}

	minTS, maxTS := timestampSpan(sells)
	days := float64(maxTS-minTS) / msPerDay
	if days < 7 {
		return nil
	}

	first := sells[0].TokenInAmount
	last := sells[len(sells)-1].TokenInAmount
	if first <= 0 {
		return nil
	}
	decrease := (first - last) / first
	if decrease < 0.5 {
		return nil
	}

	confidence := 50.0 +
		capAt(float64(len(sells))*5, 20) +
		capAt(days*1, 15) +
		capAt(decrease*20, 15)

	return buildPattern(domain.PatternDistribution, sells, confidence)
}

// DetectRotation detects capital rotating across tokens: 2+ distinct
// output tokens inside a 24-hour window with trade sizes within 80%
// similarity of the mean.
func DetectRotation(trades []domain.Trade) *domain.Pattern {
	if len(trades) < 2 {
		return nil
	}

	uniqueTokens := make(map[string]struct{})
	for _, t := range trades {
		uniqueTokens[t.TokenOutAddress] = struct{}{}
	}
	if len(uniqueTokens) < 2 {
		return nil
	}

	minTS, maxTS := timestampSpan(trades)
	hours := float64(maxTS-minTS) / msPerHour
	if hours > 24 {
		return nil
	}

	similarity := sizeSimilarity(trades)
	if similarity < 0.8 {
		return nil
	}

	confidence := 50.0 +
		capAt(float64(len(uniqueTokens))*10, 20) +
		capAt(clampNonNegative(24-hours)*1, 15) +
		capAt(similarity*15, 15)

	return buildPattern(domain.PatternRotation, trades, confidence)
}

// DetectArbitrage detects cross-venue arbitrage: 2+ trades across 2+
// distinct DEXes inside a 5-minute window with positive combined
// realized PnL.
func DetectArbitrage(trades []domain.Trade) *domain.Pattern {
	if len(trades) < 2 {
		return nil
	}

	minTS, maxTS := timestampSpan(trades)
	minutes := float64(maxTS-minTS) / msPerMinute
	if minutes > 5 {
		return nil
	}

	uniqueDexes := make(map[string]struct{})
	totalPnl := 0.0
	totalVolume := 0.0
	for _, t := range trades {
		uniqueDexes[t.DEX] = struct{}{}
		totalPnl += t.RealizedPnl
		totalVolume += t.TradeSizeUSD
	}
	if len(uniqueDexes) < 2 {
		return nil
	}
	if totalPnl <= 0 {
		return nil
	}

	profitPct := 0.0
	if totalVolume > 0 {
		profitPct = totalPnl / totalVolume * 100
	}

	confidence := 50.0 +
		capAt(float64(len(uniqueDexes))*10, 20) +
		capAt(clampNonNegative(5-minutes)*3, 15) +
		capAt(profitPct*3, 15)

	p := buildPattern(domain.PatternArbitrage, trades, confidence)
	p.RealizedPnl = totalPnl
	p.ROI = profitPct
	return p
}

// buildPattern assembles the Pattern envelope from the contributing
// subset. Start/end timestamps are taken from the first/last element,
// not recomputed min/max.
func buildPattern(patternType string, subset []domain.Trade, confidence float64) *domain.Pattern {
	totalVolume := 0.0
	for _, t := range subset {
		totalVolume += t.TradeSizeUSD
	}

	start := subset[0].Timestamp
	end := subset[len(subset)-1].Timestamp

	return &domain.Pattern{
		Type:            patternType,
		Confidence:      clampConfidence(confidence),
		Trades:          subset,
		StartTime:       start,
		EndTime:         end,
		DurationHours:   float64(end-start) / msPerHour,
		TotalVolumeUSD:  totalVolume,
		AvgTradeSizeUSD: totalVolume / float64(len(subset)),
	}
}

// sizeSimilarity = 1 - maxAbsDeviationFromMean / mean, floored at 0.
func sizeSimilarity(trades []domain.Trade) float64 {
	mean := 0.0
	for _, t := range trades {
		mean += t.TradeSizeUSD
	}
	mean /= float64(len(trades))
	if mean == 0 {
		return 0
	}

	maxDev := 0.0
	for _, t := range trades {
		dev := t.TradeSizeUSD - mean
		if dev < 0 {
			dev = -dev
		}
		if dev > maxDev {
			maxDev = dev
		}
	}
	return clampNonNegative(1 - maxDev/mean)
}

func filterByType(trades []domain.Trade, tradeType string) []domain.Trade {
	var out []domain.Trade
	for _, t := range trades {
		if t.Type == tradeType {
			out = append(out, t)
		}
	}
	return out
}

// timestampSpan returns the true min/max timestamps regardless of slice
// order.
func timestampSpan(trades []domain.Trade) (int64, int64) {
	minTS := trades[0].Timestamp
	maxTS := trades[0].Timestamp
	for _, t := range trades[1:] {
		if t.Timestamp < minTS {
			minTS = t.Timestamp
		}
		if t.Timestamp > maxTS {
			maxTS = t.Timestamp
		}
	}
	return minTS, maxTS
}

func capAt(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
