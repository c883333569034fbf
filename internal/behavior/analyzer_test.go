package behavior

import (
	"reflect"
	"testing"

	"smart-money-lab/internal/domain"
)

const dayMS = int64(24 * 60 * 60 * 1000)

func tradeAt(day int64, token, protocol string, sizeUSD, roi float64) domain.Trade {
	return domain.Trade{
		WalletAddress:   "0xwallet",
		Type:            domain.TradeTypeSwap,
		Timestamp:       day * dayMS,
		TokenOutAddress: token,
		TokenOutSymbol:  token,
		Protocol:        protocol,
		TradeSizeUSD:    sizeUSD,
		ROI:             roi,
	}
}

func TestAnalyze_EmptyDefaults(t *testing.T) {
	p := Analyze(nil)
	if p.TradingStyle != domain.StyleDay {
		t.Errorf("expected default style day, got %q", p.TradingStyle)
	}
	if p.RiskProfile != domain.RiskModerate {
		t.Errorf("expected default risk moderate, got %q", p.RiskProfile)
	}
	if len(p.PreferredTokens) != 0 || len(p.PreferredProtocols) != 0 {
		t.Error("expected empty preference lists")
	}
}

func TestTradingStyle_Thresholds(t *testing.T) {
	cases := []struct {
		name string
		// span in days across 11 trades → avg holding = span/10
		spanDays int64
		want     string
	}{
		{"scalp", 5, domain.StyleScalp},         // 0.5d avg
		{"day", 30, domain.StyleDay},            // 3d avg
		{"swing", 100, domain.StyleSwing},       // 10d avg
		{"position", 400, domain.StylePosition}, // 40d avg
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var trades []domain.Trade
			for i := int64(0); i <= 10; i++ {
				trades = append(trades, tradeAt(i*c.spanDays/10, "0xaaa", "uniswap", 1000, 0))
			}
			if got := tradingStyle(trades); got != c.want {
				t.Errorf("span %dd: got %q, want %q", c.spanDays, got, c.want)
			}
		})
	}
}

func TestRiskProfile_FromSizeVariation(t *testing.T) {
	uniform := []domain.Trade{
		tradeAt(0, "a", "p", 1000, 0),
		tradeAt(1, "a", "p", 1050, 0),
		tradeAt(2, "a", "p", 980, 0),
	}
	if got := riskProfile(uniform); got != domain.RiskConservative {
		t.Errorf("expected conservative for uniform sizes, got %q", got)
	}

	wild := []domain.Trade{
		tradeAt(0, "a", "p", 100, 0),
		tradeAt(1, "a", "p", 50000, 0),
		tradeAt(2, "a", "p", 500, 0),
	}
	if got := riskProfile(wild); got != domain.RiskAggressive {
		t.Errorf("expected aggressive for wild sizes, got %q", got)
	}
}

func TestPreferredTokens_TopByCount(t *testing.T) {
	var trades []domain.Trade
	for i := 0; i < 5; i++ {
		trades = append(trades, tradeAt(int64(i), "0xaaa", "uniswap", 100, 0))
	}
	for i := 0; i < 3; i++ {
		trades = append(trades, tradeAt(int64(i), "0xbbb", "uniswap", 100000, 0))
	}

	prefs := preferredTokens(trades)
	if len(prefs) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(prefs))
	}
	if prefs[0].TokenAddress != "0xaaa" || prefs[0].TradeCount != 5 {
		t.Errorf("expected 0xaaa first by count, got %+v", prefs[0])
	}
	if prefs[1].VolumeUSD != 300000 {
		t.Errorf("expected 0xbbb volume 300000, got %f", prefs[1].VolumeUSD)
	}
}

func TestPreferredTokens_CapAtTen(t *testing.T) {
	var trades []domain.Trade
	for i := 0; i < 15; i++ {
		token := string(rune('a' + i))
		trades = append(trades, tradeAt(int64(i), token, "uniswap", 100, 0))
	}
	if prefs := preferredTokens(trades); len(prefs) != 10 {
		t.Errorf("expected 10 tokens, got %d", len(prefs))
	}
}

func TestPreferredProtocols_TopByVolume(t *testing.T) {
	trades := []domain.Trade{
		tradeAt(0, "a", "uniswap", 1000, 0),
		tradeAt(1, "a", "uniswap", 1000, 0),
		tradeAt(2, "a", "curve", 50000, 0),
	}
	prefs := preferredProtocols(trades)
	if len(prefs) != 2 {
		t.Fatalf("expected 2 protocols, got %d", len(prefs))
	}
	if prefs[0].Protocol != "curve" {
		t.Errorf("expected curve first by volume, got %q", prefs[0].Protocol)
	}
	if prefs[1].TradeCount != 2 {
		t.Errorf("expected uniswap count 2, got %d", prefs[1].TradeCount)
	}
}

func TestTradeTiming_Buckets(t *testing.T) {
	trades := []domain.Trade{
		tradeAt(0, "a", "p", 100, -5), // early
		tradeAt(1, "a", "p", 100, 0),  // early (roi <= 0)
		tradeAt(2, "a", "p", 100, 3),  // mid
		tradeAt(3, "a", "p", 100, 7),  // late
		tradeAt(4, "a", "p", 100, 25), // exit
	}
	timing := tradeTiming(trades)
	if timing.EarlyEntries != 2 || timing.MidEntries != 1 ||
		timing.LateEntries != 1 || timing.ExitTrades != 1 {
		t.Errorf("unexpected buckets: %+v", timing)
	}
	// span 4 days / 4 turnovers = 1 day
	if timing.AvgHoldingPeriodDays != 1 {
		t.Errorf("expected avg holding 1d, got %f", timing.AvgHoldingPeriodDays)
	}
}

func TestTradeSizing(t *testing.T) {
	trades := []domain.Trade{
		tradeAt(0, "a", "p", 1000, 0),
		tradeAt(1, "a", "p", 3000, 0),
		tradeAt(2, "a", "p", 2000, 0),
	}
	sizing := tradeSizing(trades)
	if sizing.AvgTradeSizeUSD != 2000 {
		t.Errorf("expected avg 2000, got %f", sizing.AvgTradeSizeUSD)
	}
	if sizing.MinTradeSizeUSD != 1000 || sizing.MaxTradeSizeUSD != 3000 {
		t.Errorf("unexpected min/max: %f/%f", sizing.MinTradeSizeUSD, sizing.MaxTradeSizeUSD)
	}
	if sizing.CoefficientOfVariation <= 0 {
		t.Errorf("expected positive CV, got %f", sizing.CoefficientOfVariation)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	trades := []domain.Trade{
		tradeAt(0, "a", "uniswap", 1000, 2),
		tradeAt(3, "b", "curve", 4000, 12),
		tradeAt(9, "a", "uniswap", 2500, -1),
	}
	a := Analyze(trades)
	b := Analyze(trades)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical input produced different profiles")
	}
}
