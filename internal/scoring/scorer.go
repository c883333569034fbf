// Package scoring implements the multi-factor smart-money scorer.
// CalculateScore is a pure function of the wallet snapshot: no I/O, no
// clock, no shared state. Batch scoring fans out across workers.
package scoring

import (
	"math"
	"runtime"
	"sync"

	"smart-money-lab/internal/domain"
)

// Factor weights. Must sum to 1.0.
const (
	weightPerformance  = 0.40
	weightActivity     = 0.30
	weightBehavioral   = 0.20
	weightVerification = 0.10
)

// Confidence tier cutoffs.
const (
	tierHighCutoff   = 90
	tierMediumCutoff = 70
)

// styleScores maps trading styles to behavioral sub-score components.
// Both the analyzer's short forms and the long forms carried by older
// wallet snapshots are accepted.
var styleScores = map[string]float64{
	domain.StylePosition:        85,
	domain.StylePositionTrading: 85,
	domain.StyleSwing:           80,
	domain.StyleSwingTrading:    80,
	domain.StyleDay:             75,
	domain.StyleDayTrading:      75,
	domain.StyleScalp:           65,
	domain.StyleScalping:        65,
}

// riskScores maps risk profiles to behavioral sub-score components.
var riskScores = map[string]float64{
	domain.RiskLow:          85,
	domain.RiskConservative: 85,
	domain.RiskMedium:       75,
	domain.RiskModerate:     75,
	domain.RiskHigh:         65,
	domain.RiskAggressive:   65,
}

const (
	defaultStyleScore = 70
	defaultRiskScore  = 75
)

// CalculateScore computes the 0-100 smart-money score for a wallet
// snapshot, together with the four-factor breakdown and the confidence
// tier. Deterministic for identical input.
func CalculateScore(w domain.WalletData) domain.SmartMoneyScore {
	performance := math.Round(performanceScore(w))
	activity := math.Round(activityScore(w))
	behavioral := math.Round(behavioralScore(w))
	verification := verificationScore(w)

	total := math.Round(performance*weightPerformance +
		activity*weightActivity +
		behavioral*weightBehavioral +
		verification*weightVerification)

	return domain.SmartMoneyScore{
		WalletAddress:   w.Address,
		SmartMoneyScore: total,
		Confidence:      confidenceTier(total),
		Breakdown: domain.ScoreBreakdown{
			PerformanceScore:  performance,
			ActivityScore:     activity,
			BehavioralScore:   behavioral,
			VerificationScore: verification,
		},
	}
}

// BatchCalculateScores scores wallets element-wise. Order of the result
// matches the input. The map is embarrassingly parallel; it fans out
// across GOMAXPROCS workers.
func BatchCalculateScores(wallets []domain.WalletData) []domain.SmartMoneyScore {
	scores := make([]domain.SmartMoneyScore, len(wallets))
	if len(wallets) == 0 {
		return scores
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(wallets) {
		workers = len(wallets)
	}

	var wg sync.WaitGroup
	indexes := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				scores[i] = CalculateScore(wallets[i])
			}
		}()
	}

	for i := range wallets {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return scores
}

// performanceScore = 0.40*ROI + 0.30*winRate + 0.20*sharpe + 0.10*drawdown.
func performanceScore(w domain.WalletData) float64 {
	drawdownScore := clampScore(100 - math.Abs(w.MaxDrawdown*100))
	return 0.40*normalizeROI(w.ROI) +
		0.30*clampScore(w.WinRate) +
		0.20*normalizeSharpe(w.SharpeRatio) +
		0.10*drawdownScore
}

// activityScore = 0.40*tradeCount + 0.30*tradeSize + 0.30*consistency.
func activityScore(w domain.WalletData) float64 {
	return 0.40*normalizeTradeCount(w.TradeCount) +
		0.30*normalizeTradeSize(w.AvgTradeSizeUSD) +
		0.30*consistencyScore(w.AvgHoldingPeriodDays)
}

func behavioralScore(w domain.WalletData) float64 {
	style, ok := styleScores[w.TradingStyle]
	if !ok {
		style = defaultStyleScore
	}
	risk, ok := riskScores[w.RiskProfile]
	if !ok {
		risk = defaultRiskScore
	}
	return 0.50*style + 0.50*risk
}

func verificationScore(w domain.WalletData) float64 {
	if w.Verified {
		return 100
	}
	return 50
}

// normalizeROI maps ROI linearly from [0, 2.0] to [0, 100], clamped.
func normalizeROI(roi float64) float64 {
	return clampScore(roi / 2.0 * 100)
}

// normalizeSharpe maps Sharpe linearly from [0, 3.0] to [0, 100], clamped.
func normalizeSharpe(sharpe float64) float64 {
	return clampScore(sharpe / 3.0 * 100)
}

// normalizeTradeCount maps [50, 1000] trades to [0, 100], clamped.
func normalizeTradeCount(count int) float64 {
	return clampScore(float64(count-50) / 950 * 100)
}

// normalizeTradeSize maps [$1K, $1M] average size to [0, 100], clamped.
func normalizeTradeSize(avgSize float64) float64 {
	return clampScore((avgSize - 1_000) / 999_000 * 100)
}

// consistencyScore is a 3-piece ramp on the average holding period:
// [0,7) days → [0,40), [7,30) days → [40,70), 30+ days → [70,100]
// with the tail reaching 100 over 90 additional days.
func consistencyScore(days float64) float64 {
	switch {
	case days < 0:
		return 0
	case days < 7:
		return days / 7 * 40
	case days < 30:
		return 40 + (days-7)/23*30
	default:
		return math.Min(70+(days-30)/90*30, 100)
	}
}

func confidenceTier(score float64) string {
	switch {
	case score >= tierHighCutoff:
		return domain.ConfidenceHigh
	case score >= tierMediumCutoff:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
