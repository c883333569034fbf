package domain

// TokenHolder is one address's balance of one token on one chain.
// Snapshot semantics: rows represent current state and are refreshed by
// the external indexer.
type TokenHolder struct {
	TokenAddress  string
	Chain         string
	HolderAddress string

	Balance          float64
	ValueUSD         float64
	SupplyPercentage float64 // 0..100

	// HolderTier is assigned by the upstream classifier.
	HolderTier string // "whale" | "large" | "medium" | "small" | "dust"
	IsContract bool
	IsExchange bool

	FirstSeen         int64 // ms
	LastActive        int64 // ms
	HoldingPeriodDays float64
	TransactionCount  int
}

// Holder tier constants
const (
	TierWhale  = "whale"
	TierLarge  = "large"
	TierMedium = "medium"
	TierSmall  = "small"
	TierDust   = "dust"
)

// HolderTiers lists all tiers in descending balance order.
var HolderTiers = []string{TierWhale, TierLarge, TierMedium, TierSmall, TierDust}

// TierBreakdown aggregates one holder tier.
type TierBreakdown struct {
	Tier       string  `json:"tier"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // summed supply percentage
}

// BalanceRangeBucket is one band of the supply-percentage histogram.
type BalanceRangeBucket struct {
	Label         string  `json:"label"` // e.g. "0.001%-0.01%"
	MinPercentage float64 `json:"minPercentage"`
	MaxPercentage float64 `json:"maxPercentage"` // 0 = unbounded
	HolderCount   int     `json:"holderCount"`
	TotalBalance  float64 `json:"totalBalance"`
	TotalPct      float64 `json:"totalPct"`
}

// HolderDistribution summarizes a token's holder set. Recomputed on
// demand from the current TokenHolder snapshot; no persistent identity.
type HolderDistribution struct {
	TokenAddress string `json:"tokenAddress"`
	Chain        string `json:"chain"`

	TotalHolders       int     `json:"totalHolders"`
	GiniCoefficient    float64 `json:"giniCoefficient"`    // 0..1
	ConcentrationScore float64 `json:"concentrationScore"` // gini * 100

	Top10Percentage  float64 `json:"top10Percentage"`
	Top50Percentage  float64 `json:"top50Percentage"`
	Top100Percentage float64 `json:"top100Percentage"`

	Tiers     []TierBreakdown      `json:"tiers"`
	Histogram []BalanceRangeBucket `json:"histogram"`

	ComputedAt int64 `json:"computedAt"` // ms, set by callers that persist
}
