package domain

// TokenPreference aggregates a wallet's activity in one output token.
type TokenPreference struct {
	TokenAddress string  `json:"tokenAddress"`
	TokenSymbol  string  `json:"tokenSymbol"`
	TradeCount   int     `json:"tradeCount"`
	VolumeUSD    float64 `json:"volumeUsd"`
}

// ProtocolPreference aggregates a wallet's activity on one protocol.
type ProtocolPreference struct {
	Protocol   string  `json:"protocol"`
	TradeCount int     `json:"tradeCount"`
	VolumeUSD  float64 `json:"volumeUsd"`
}

// TradeTiming buckets trades by their entry point in a token's move,
// inferred from per-trade ROI.
type TradeTiming struct {
	EarlyEntries         int     `json:"earlyEntries"` // roi <= 0
	MidEntries           int     `json:"midEntries"`   // 0 < roi <= 5
	LateEntries          int     `json:"lateEntries"`  // 5 < roi <= 10
	ExitTrades           int     `json:"exitTrades"`   // roi > 10
	AvgHoldingPeriodDays float64 `json:"avgHoldingPeriodDays"`
}

// TradeSizing summarizes trade size statistics.
type TradeSizing struct {
	AvgTradeSizeUSD        float64 `json:"avgTradeSizeUsd"`
	MinTradeSizeUSD        float64 `json:"minTradeSizeUsd"`
	MaxTradeSizeUSD        float64 `json:"maxTradeSizeUsd"`
	CoefficientOfVariation float64 `json:"coefficientOfVariation"`
}

// BehavioralProfile is the behavioral analyzer output for one wallet.
type BehavioralProfile struct {
	WalletAddress string `json:"walletAddress"`

	TradingStyle string `json:"tradingStyle"` // style constant (short form)
	RiskProfile  string `json:"riskProfile"`  // conservative | moderate | aggressive

	PreferredTokens    []TokenPreference    `json:"preferredTokens"`    // top 10 by count
	PreferredProtocols []ProtocolPreference `json:"preferredProtocols"` // top 5 by volume

	Timing TradeTiming `json:"timing"`
	Sizing TradeSizing `json:"sizing"`
}
