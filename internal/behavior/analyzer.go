// Package behavior derives a wallet's trading-style and risk-profile
// classification plus preference, timing and sizing aggregates from its
// trade history. Analysis is pure; the trade slice must be sorted
// ascending by timestamp (store queries guarantee this).
package behavior

import (
	"sort"

	"smart-money-lab/internal/domain"
	"smart-money-lab/internal/stats"
)

const msPerDay = 24 * 60 * 60 * 1000

// Analyze runs the six independent sub-analyses over the trade list.
// Empty input yields the documented defaults (day trading, moderate
// risk) rather than an error.
func Analyze(trades []domain.Trade) domain.BehavioralProfile {
	profile := domain.BehavioralProfile{
		TradingStyle:       tradingStyle(trades),
		RiskProfile:        riskProfile(trades),
		PreferredTokens:    preferredTokens(trades),
		PreferredProtocols: preferredProtocols(trades),
		Timing:             tradeTiming(trades),
		Sizing:             tradeSizing(trades),
	}
	if len(trades) > 0 {
		profile.WalletAddress = trades[0].WalletAddress
	}
	return profile
}

// avgHoldingPeriodDays approximates per-position holding time as
// timestamp span divided by the number of position turnovers. A coarse
// heuristic, not true per-position holding time.
func avgHoldingPeriodDays(trades []domain.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
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
	spanDays := float64(maxTS-minTS) / msPerDay

	turnovers := len(trades) - 1
	if turnovers < 1 {
		turnovers = 1
	}
	return spanDays / float64(turnovers)
}

func tradingStyle(trades []domain.Trade) string {
	if len(trades) == 0 {
		return domain.StyleDay
	}
	days := avgHoldingPeriodDays(trades)
	switch {
	case days < 1:
		return domain.StyleScalp
	case days < 7:
		return domain.StyleDay
	case days < 30:
		return domain.StyleSwing
	default:
		return domain.StylePosition
	}
}

func riskProfile(trades []domain.Trade) string {
	if len(trades) == 0 {
		return domain.RiskModerate
	}
	cv := stats.CoefficientOfVariation(tradeSizes(trades))
	switch {
	case cv < 0.3:
		return domain.RiskConservative
	case cv < 0.7:
		return domain.RiskModerate
	default:
		return domain.RiskAggressive
	}
}

// preferredTokens groups by output token, sorted by trade count
// descending, top 10.
func preferredTokens(trades []domain.Trade) []domain.TokenPreference {
	byToken := make(map[string]*domain.TokenPreference)
	var order []string
	for _, t := range trades {
		pref, ok := byToken[t.TokenOutAddress]
		if !ok {
			pref = &domain.TokenPreference{
				TokenAddress: t.TokenOutAddress,
				TokenSymbol:  t.TokenOutSymbol,
			}
			byToken[t.TokenOutAddress] = pref
			order = append(order, t.TokenOutAddress)
		}
		pref.TradeCount++
		pref.VolumeUSD += t.TradeSizeUSD
	}

	out := make([]domain.TokenPreference, 0, len(order))
	for _, addr := range order {
		out = append(out, *byToken[addr])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TradeCount > out[j].TradeCount
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// preferredProtocols groups by protocol, sorted by volume descending,
// top 5.
func preferredProtocols(trades []domain.Trade) []domain.ProtocolPreference {
	byProtocol := make(map[string]*domain.ProtocolPreference)
	var order []string
	for _, t := range trades {
		pref, ok := byProtocol[t.Protocol]
		if !ok {
			pref = &domain.ProtocolPreference{Protocol: t.Protocol}
			byProtocol[t.Protocol] = pref
			order = append(order, t.Protocol)
		}
		pref.TradeCount++
		pref.VolumeUSD += t.TradeSizeUSD
	}

	out := make([]domain.ProtocolPreference, 0, len(order))
	for _, proto := range order {
		out = append(out, *byProtocol[proto])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VolumeUSD > out[j].VolumeUSD
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// tradeTiming buckets every trade by its own ROI into one of four
// mutually exclusive entry buckets.
func tradeTiming(trades []domain.Trade) domain.TradeTiming {
	timing := domain.TradeTiming{
		AvgHoldingPeriodDays: avgHoldingPeriodDays(trades),
	}
	for _, t := range trades {
		switch {
		case t.ROI > 10:
			timing.ExitTrades++
		case t.ROI > 5:
			timing.LateEntries++
		case t.ROI > 0:
			timing.MidEntries++
		default:
			timing.EarlyEntries++
		}
	}
	return timing
}

func tradeSizing(trades []domain.Trade) domain.TradeSizing {
	if len(trades) == 0 {
		return domain.TradeSizing{}
	}

	sizes := tradeSizes(trades)
	minSize := sizes[0]
	maxSize := sizes[0]
	for _, s := range sizes[1:] {
		if s < minSize {
			minSize = s
		}
		if s > maxSize {
			maxSize = s
		}
	}

	return domain.TradeSizing{
		AvgTradeSizeUSD:        stats.Mean(sizes),
		MinTradeSizeUSD:        minSize,
		MaxTradeSizeUSD:        maxSize,
		CoefficientOfVariation: stats.CoefficientOfVariation(sizes),
	}
}

func tradeSizes(trades []domain.Trade) []float64 {
	sizes := make([]float64, len(trades))
	for i, t := range trades {
		sizes[i] = t.TradeSizeUSD
	}
	return sizes
}
