package liquidity

import (
	"fmt"

	"smart-money-lab/internal/domain"
)

// Risk band cutoffs on the 0-100 score.
const (
	riskLowCutoff    = 35.0
	riskMediumCutoff = 70.0
)

// basePoolRisk is the structural risk contribution per pool type.
// Stable pools are bounded so they land in the low band even under
// elevated volatility input.
var basePoolRisk = map[string]float64{
	domain.PoolCurveStable:      5,
	domain.PoolUniswapV2:        35,
	domain.PoolBalancerWeighted: 40,
	domain.PoolUniswapV3:        45,
}

// RiskScore maps pool type and historical annualized volatility (as a
// fraction, e.g. 0.8 = 80%) into a 0-100 score with low/medium/high
// bands.
func RiskScore(pool domain.LiquidityPool, volatility float64) (*domain.PoolRiskResult, error) {
	base, ok := basePoolRisk[pool.PoolType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPoolType, pool.PoolType)
	}
	if volatility < 0 {
		volatility = 0
	}

	// Volatility contributes the remaining headroom, saturating at
	// 200% annualized.
	volScore := volatility / 2.0
	if volScore > 1 {
		volScore = 1
	}

	score := base
	if pool.PoolType == domain.PoolCurveStable {
		// Correlated-asset pools carry negligible divergence risk; the
		// volatility input reflects the broad market, not the peg.
		score += volScore * 10
	} else {
		score += volScore * (100 - base)
	}
	if score > 100 {
		score = 100
	}

	return &domain.PoolRiskResult{
		PoolID:    pool.PoolID,
		PoolType:  pool.PoolType,
		RiskScore: score,
		RiskBand:  riskBand(score),
	}, nil
}

func riskBand(score float64) string {
	switch {
	case score < riskLowCutoff:
		return domain.RiskLow
	case score < riskMediumCutoff:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}
