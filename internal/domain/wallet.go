package domain

// WalletData is a wallet's aggregate performance/activity snapshot.
// It is recomputed periodically by the refresh job and read by the
// smart-money scorer.
type WalletData struct {
	Address string
	Chain   string

	// Performance
	TotalPnlUSD float64
	ROI         float64 // all-time, 1.0 = +100%
	WinRate     float64 // 0..100
	SharpeRatio float64
	MaxDrawdown float64 // fraction, negative or positive magnitude

	// Activity
	TradeCount           int
	AvgTradeSizeUSD      float64
	AvgHoldingPeriodDays float64

	// Behavior
	TradingStyle string // style constant, may be empty
	RiskProfile  string // risk constant, may be empty

	Verified  bool
	UpdatedAt int64 // ms
}

// ScoreBreakdown holds the four weighted sub-scores, each in [0,100].
type ScoreBreakdown struct {
	PerformanceScore  float64 `json:"performanceScore"`
	ActivityScore     float64 `json:"activityScore"`
	BehavioralScore   float64 `json:"behavioralScore"`
	VerificationScore float64 `json:"verificationScore"`
}

// SmartMoneyScore is the scorer output for a single wallet.
type SmartMoneyScore struct {
	WalletAddress   string         `json:"walletAddress"`
	SmartMoneyScore float64        `json:"smartMoneyScore"` // 0..100
	Confidence      string         `json:"confidence"`      // "high" | "medium" | "low"
	Breakdown       ScoreBreakdown `json:"breakdown"`
	ComputedAt      int64          `json:"computedAt"` // ms, set by callers that persist
}

// Confidence tier constants
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Trading style constants. The behavioral analyzer emits the short
// forms; wallet snapshots produced by older indexers carry the long
// forms, so the scorer accepts both.
const (
	StyleScalp    = "scalp"
	StyleDay      = "day"
	StyleSwing    = "swing"
	StylePosition = "position"

	StyleScalping        = "scalping"
	StyleDayTrading      = "day_trading"
	StyleSwingTrading    = "swing_trading"
	StylePositionTrading = "position_trading"
)

// Risk profile constants
const (
	RiskConservative = "conservative"
	RiskModerate     = "moderate"
	RiskAggressive   = "aggressive"
	RiskLow          = "low"
	RiskMedium       = "medium"
	RiskHigh         = "high"
)
