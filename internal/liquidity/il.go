package liquidity

import (
	"fmt"
	"math"

	"smart-money-lab/internal/domain"
)

// ImpermanentLoss returns the IL fraction (<= 0) for a pool type and a
// price ratio r = currentPrice / entryPrice of the volatile pair.
//
// Canonical constant-product case: IL = 2*sqrt(r)/(1+r) - 1. Stable
// pools damp the same curve by an amplification-derived factor, so
// |IL_stable| < |IL_v2| for any equivalent move. Weighted pools use the
// Balancer two-asset closed form.
func ImpermanentLoss(poolType string, priceRatio float64) (float64, error) {
	return impermanentLossAmp(poolType, priceRatio, 0, 0)
}

func impermanentLossAmp(poolType string, priceRatio, amplification, weight0 float64) (float64, error) {
	if priceRatio <= 0 || math.IsNaN(priceRatio) || math.IsInf(priceRatio, 0) {
		return 0, fmt.Errorf("%w: price ratio must be positive", ErrInvalidPool)
	}

	v2 := 2*math.Sqrt(priceRatio)/(1+priceRatio) - 1

	switch poolType {
	case domain.PoolUniswapV2, domain.PoolUniswapV3:
		// v3 in-range IL follows the v2 curve (amplified only by
		// leverage on the position size, which cancels out of the
		// percentage).
		return v2, nil

	case domain.PoolCurveStable:
		amp := amplification
		if amp <= 0 {
			amp = defaultAmplification
		}
		return v2 / (1 + amp/10), nil

	case domain.PoolBalancerWeighted:
		w := weight0
		if w <= 0 || w >= 1 {
			w = defaultWeight
		}
		// Pool value grows as r^w while the HODL portfolio grows as
		// w*r + (1-w); the ratio minus one is the IL.
		il := math.Pow(priceRatio, w)/(w*priceRatio+(1-w)) - 1
		if il > 0 {
			il = 0
		}
		return il, nil

	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPoolType, poolType)
	}
}

// PositionIL computes the impermanent loss of a position given current
// token prices. The price ratio is measured on the relative move of
// token0 against token1.
func PositionIL(position domain.LPPosition, currentPrice0, currentPrice1 float64) (*domain.ILResult, error) {
	if position.EntryPrice0USD <= 0 || position.EntryPrice1USD <= 0 {
		return nil, fmt.Errorf("%w: non-positive entry prices", ErrInvalidPool)
	}
	if currentPrice0 <= 0 || currentPrice1 <= 0 {
		return nil, fmt.Errorf("%w: non-positive current prices", ErrInvalidPool)
	}

	priceRatio := (currentPrice0 / position.EntryPrice0USD) /
		(currentPrice1 / position.EntryPrice1USD)

	ilPct, err := impermanentLossAmp(position.PoolType, priceRatio, 0, 0)
	if err != nil {
		return nil, err
	}

	// HODL value: the initially deposited quantities at current prices.
	hodl := position.Token0Amount*currentPrice0 + position.Token1Amount*currentPrice1
	current := hodl * (1 + ilPct)

	return &domain.ILResult{
		PositionID:         position.PositionID,
		PoolType:           position.PoolType,
		PriceRatio:         priceRatio,
		ImpermanentLossPct: ilPct * 100,
		CurrentValueUSD:    current,
		HodlValueUSD:       hodl,
		ILVsHodlUSD:        current - hodl,
	}, nil
}

// ProjectIL recomputes projected price and IL for each hypothetical
// percentage price change of token0. |IL| is monotonically
// non-decreasing in |change|.
func ProjectIL(position domain.LPPosition, priceChangesPct []float64) ([]domain.ILProjection, error) {
	if position.EntryPrice0USD <= 0 {
		return nil, fmt.Errorf("%w: non-positive entry price", ErrInvalidPool)
	}

	projections := make([]domain.ILProjection, 0, len(priceChangesPct))
	for _, change := range priceChangesPct {
		ratio := 1 + change/100
		if ratio <= 0 {
			return nil, fmt.Errorf("%w: price change %.2f%% implies non-positive price", ErrInvalidPool, change)
		}
		ilPct, err := impermanentLossAmp(position.PoolType, ratio, 0, 0)
		if err != nil {
			return nil, err
		}
		projections = append(projections, domain.ILProjection{
			PriceChangePct: change,
			ProjectedPrice: position.EntryPrice0USD * ratio,
			ProjectedILPct: ilPct * 100,
		})
	}
	return projections, nil
}
