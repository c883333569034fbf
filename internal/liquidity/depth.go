// Package liquidity implements the AMM depth, slippage, impermanent
// loss and pool risk math, parameterized by pool type.
package liquidity

import (
	"errors"
	"fmt"
	"math"

	"smart-money-lab/internal/domain"
)

var (
	// ErrInvalidPool is returned when pool reserves/prices cannot
	// support the calculation.
	ErrInvalidPool = errors.New("invalid pool data")

	// ErrUnknownPoolType is returned for an unrecognized pool type.
	ErrUnknownPoolType = errors.New("unknown pool type")
)

// Default curve parameters applied when the pool row does not carry
// them.
const (
	defaultAmplification = 100.0
	defaultConcentration = 2.0
	defaultWeight        = 0.5
)

// PriceImpact computes the relative price impact (as a percent) of
// selling tradeSizeUSD worth of token0 into the pool.
func PriceImpact(pool domain.LiquidityPool, tradeSizeUSD float64) (float64, error) {
	if tradeSizeUSD < 0 {
		return 0, fmt.Errorf("%w: negative trade size", ErrInvalidPool)
	}
	if pool.Reserve0 <= 0 || pool.Reserve1 <= 0 || pool.Token0PriceUSD <= 0 {
		return 0, fmt.Errorf("%w: non-positive reserves or price", ErrInvalidPool)
	}

	amountIn := tradeSizeUSD / pool.Token0PriceUSD

	switch pool.PoolType {
	case domain.PoolUniswapV2:
		return constantProductImpact(pool.Reserve0, amountIn), nil

	case domain.PoolUniswapV3:
		// Virtual reserves: in-range liquidity concentration deepens
		// the effective book relative to a full-range position.
		concentration := pool.LiquidityConcentration
		if concentration <= 0 {
			concentration = defaultConcentration
		}
		return constantProductImpact(pool.Reserve0*concentration, amountIn), nil

	case domain.PoolCurveStable:
		// Low-slippage bonded curve: constant-product impact damped by
		// the amplification coefficient.
		amp := pool.Amplification
		if amp <= 0 {
			amp = defaultAmplification
		}
		return constantProductImpact(pool.Reserve0, amountIn) / (1 + amp/10), nil

	case domain.PoolBalancerWeighted:
		w0 := pool.Weight0
		if w0 <= 0 || w0 >= 1 {
			w0 = defaultWeight
		}
		// Weighted constant product: spot price moves with the ratio
		// (b0/(b0+dx))^(w1/w0) applied to the out-token balance.
		ratio := pool.Reserve0 / (pool.Reserve0 + amountIn)
		exp := (1 - w0) / w0
		return (1 - math.Pow(ratio, exp)) * 100, nil

	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPoolType, pool.PoolType)
	}
}

// Slippage is price impact plus the protocol fee; always >= impact.
func Slippage(pool domain.LiquidityPool, tradeSizeUSD float64) (float64, error) {
	impact, err := PriceImpact(pool, tradeSizeUSD)
	if err != nil {
		return 0, err
	}
	return impact + pool.FeePct*100, nil
}

// Depth runs impact and slippage together for the API surface.
func Depth(pool domain.LiquidityPool, tradeSizeUSD float64) (*domain.DepthResult, error) {
	impact, err := PriceImpact(pool, tradeSizeUSD)
	if err != nil {
		return nil, err
	}
	return &domain.DepthResult{
		PoolID:         pool.PoolID,
		PoolType:       pool.PoolType,
		TradeSizeUSD:   tradeSizeUSD,
		PriceImpactPct: impact,
		SlippagePct:    impact + pool.FeePct*100,
	}, nil
}

// constantProductImpact is the x*y=k execution-price impact of swapping
// dx into a pool with reserve x, as a percent.
func constantProductImpact(reserve, amountIn float64) float64 {
	// Execution price degrades by dx/(x+dx) relative to spot.
	return amountIn / (reserve + amountIn) * 100
}
