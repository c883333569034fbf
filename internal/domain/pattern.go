package domain

// Pattern is a labeled, time-bounded subsequence of a wallet's trades
// matching one of the four behavioral signatures. Patterns are created
// fresh on every detection call and never mutated.
type Pattern struct {
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"` // 0..100

	// Contributing trade subset, in the order it was matched.
	Trades []Trade `json:"trades"`

	// StartTime/EndTime are the timestamps of the first and last
	// element of Trades, not recomputed min/max.
	StartTime     int64   `json:"startTime"` // ms
	EndTime       int64   `json:"endTime"`   // ms
	DurationHours float64 `json:"durationHours"`

	TotalVolumeUSD  float64 `json:"totalVolumeUsd"`
	AvgTradeSizeUSD float64 `json:"avgTradeSizeUsd"`

	// Set where applicable (arbitrage).
	RealizedPnl float64 `json:"realizedPnl,omitempty"`
	ROI         float64 `json:"roi,omitempty"`
}

// Pattern type constants
const (
	PatternAccumulation = "accumulation"
	PatternDistribution = "distribution"
	PatternRotation     = "rotation"
	PatternArbitrage    = "arbitrage"
)
