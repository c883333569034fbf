package domain

// Trade represents one executed swap/buy/sell recorded by the ingestion
// pipeline. Trades are immutable once written; all engines consume them
// read-only. Timestamps are Unix milliseconds.
type Trade struct {
	TradeID       string // deterministic hash
	WalletAddress string
	Timestamp     int64  // execution time (ms)
	Type          string // "buy" | "sell" | "swap"

	// Input leg (token the wallet paid)
	TokenInAddress  string
	TokenInSymbol   string
	TokenInAmount   float64
	TokenInValueUSD float64

	// Output leg (token the wallet received)
	TokenOutAddress  string
	TokenOutSymbol   string
	TokenOutAmount   float64
	TokenOutValueUSD float64

	Protocol string // protocol identifier ("uniswap", "curve", ...)
	DEX      string // venue name ("uniswap_v3", "sushiswap", ...)

	TradeSizeUSD  float64
	RealizedPnl   float64
	UnrealizedPnl float64
	ROI           float64 // percent
}

// Trade type constants
const (
	TradeTypeBuy  = "buy"
	TradeTypeSell = "sell"
	TradeTypeSwap = "swap"
)
