package domain

// LiquidityPool describes an AMM pool consumed by the liquidity math
// engines. Reserves are expressed in token units; prices in USD.
type LiquidityPool struct {
	PoolID   string
	PoolType string // pool type constant
	Protocol string
	Chain    string

	Token0Address string
	Token0Symbol  string
	Token1Address string
	Token1Symbol  string

	Reserve0 float64
	Reserve1 float64

	Token0PriceUSD float64
	Token1PriceUSD float64

	FeePct float64 // protocol fee as a fraction, e.g. 0.003

	// uniswap_v3: concentration of in-range liquidity relative to a
	// full-range position. 1.0 behaves like v2.
	LiquidityConcentration float64

	// curve_stable: amplification coefficient.
	Amplification float64

	// balancer_weighted: weight of token0, (0,1); token1 weight is the
	// complement.
	Weight0 float64
}

// Pool type constants
const (
	PoolUniswapV2        = "uniswap_v2"
	PoolUniswapV3        = "uniswap_v3"
	PoolCurveStable      = "curve_stable"
	PoolBalancerWeighted = "balancer_weighted"
)

// LPPosition is a liquidity provider's position in a pool.
type LPPosition struct {
	PositionID    string
	PoolID        string
	PoolType      string
	WalletAddress string

	// Quantities deposited at entry.
	Token0Amount float64
	Token1Amount float64

	// Entry prices in USD.
	EntryPrice0USD float64
	EntryPrice1USD float64

	EntryValueUSD float64
	EnteredAt     int64 // ms
}

// ILResult is the impermanent-loss calculation output for a position.
type ILResult struct {
	PositionID string  `json:"positionId"`
	PoolType   string  `json:"poolType"`
	PriceRatio float64 `json:"priceRatio"`

	ImpermanentLossPct float64 `json:"impermanentLossPct"` // <= 0
	CurrentValueUSD    float64 `json:"currentValueUsd"`
	HodlValueUSD       float64 `json:"hodlValueUsd"`
	ILVsHodlUSD        float64 `json:"ilVsHodlUsd"`
}

// ILProjection is one hypothetical price-change scenario.
type ILProjection struct {
	PriceChangePct float64 `json:"priceChangePct"`
	ProjectedPrice float64 `json:"projectedPrice"`
	ProjectedILPct float64 `json:"projectedIlPct"`
}

// PoolRiskResult is the pool risk scoring output.
type PoolRiskResult struct {
	PoolID    string  `json:"poolId"`
	PoolType  string  `json:"poolType"`
	RiskScore float64 `json:"riskScore"` // 0..100
	RiskBand  string  `json:"riskBand"`  // "low" | "medium" | "high"
}

// DepthResult is the price-impact/slippage output for a hypothetical
// trade against a pool.
type DepthResult struct {
	PoolID         string  `json:"poolId"`
	PoolType       string  `json:"poolType"`
	TradeSizeUSD   float64 `json:"tradeSizeUsd"`
	PriceImpactPct float64 `json:"priceImpactPct"`
	SlippagePct    float64 `json:"slippagePct"` // impact + fee
}
