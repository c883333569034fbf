package scoring

import (
	"reflect"
	"testing"

	"smart-money-lab/internal/domain"
)

func strongWallet() domain.WalletData {
	return domain.WalletData{
		Address:              "0xabc",
		ROI:                  1.8, // near the 200% cap
		WinRate:              75,
		SharpeRatio:          2.5,
		MaxDrawdown:          -0.10,
		TradeCount:           800,
		AvgTradeSizeUSD:      250_000,
		AvgHoldingPeriodDays: 45,
		TradingStyle:         domain.StylePositionTrading,
		RiskProfile:          domain.RiskLow,
		Verified:             true,
	}
}

func TestCalculateScore_Bounds(t *testing.T) {
	wallets := []domain.WalletData{
		{}, // zero snapshot
		strongWallet(),
		{ROI: -5, WinRate: 0, SharpeRatio: -2, MaxDrawdown: -0.99},
		{ROI: 100, WinRate: 100, SharpeRatio: 50, TradeCount: 1e6,
			AvgTradeSizeUSD: 1e9, AvgHoldingPeriodDays: 1e4, Verified: true},
	}
	for _, w := range wallets {
		s := CalculateScore(w)
		if s.SmartMoneyScore < 0 || s.SmartMoneyScore > 100 {
			t.Errorf("score %f out of [0,100] for %+v", s.SmartMoneyScore, w)
		}
		for _, sub := range []float64{
			s.Breakdown.PerformanceScore,
			s.Breakdown.ActivityScore,
			s.Breakdown.BehavioralScore,
			s.Breakdown.VerificationScore,
		} {
			if sub < 0 || sub > 100 {
				t.Errorf("sub-score %f out of [0,100] for %+v", sub, w)
			}
		}
	}
}

func TestCalculateScore_WeightedSum(t *testing.T) {
	w := strongWallet()
	s := CalculateScore(w)

	want := s.Breakdown.PerformanceScore*0.40 +
		s.Breakdown.ActivityScore*0.30 +
		s.Breakdown.BehavioralScore*0.20 +
		s.Breakdown.VerificationScore*0.10
	// Final score is the rounded weighted sum of the breakdown.
	if diff := s.SmartMoneyScore - want; diff > 0.5 || diff < -0.5 {
		t.Errorf("score %f not the rounded weighted sum %f", s.SmartMoneyScore, want)
	}
}

func TestConfidenceTier_ConsistentWithScore(t *testing.T) {
	wallets := []domain.WalletData{
		{},
		strongWallet(),
		{ROI: 0.5, WinRate: 50, TradeCount: 200, AvgTradeSizeUSD: 50_000,
			AvgHoldingPeriodDays: 10, Verified: true},
		{ROI: 2.5, WinRate: 95, SharpeRatio: 3, MaxDrawdown: -0.02,
			TradeCount: 1000, AvgTradeSizeUSD: 1_000_000,
			AvgHoldingPeriodDays: 120, TradingStyle: domain.StylePosition,
			RiskProfile: domain.RiskLow, Verified: true},
	}
	for _, w := range wallets {
		s := CalculateScore(w)
		var want string
		switch {
		case s.SmartMoneyScore >= 90:
			want = domain.ConfidenceHigh
		case s.SmartMoneyScore >= 70:
			want = domain.ConfidenceMedium
		default:
			want = domain.ConfidenceLow
		}
		if s.Confidence != want {
			t.Errorf("score %f: confidence %q, want %q", s.SmartMoneyScore, s.Confidence, want)
		}
	}
}

func TestVerificationScore(t *testing.T) {
	verified := CalculateScore(domain.WalletData{Verified: true})
	unverified := CalculateScore(domain.WalletData{Verified: false})
	if verified.Breakdown.VerificationScore != 100 {
		t.Errorf("expected 100 for verified, got %f", verified.Breakdown.VerificationScore)
	}
	if unverified.Breakdown.VerificationScore != 50 {
		t.Errorf("expected 50 for unverified, got %f", unverified.Breakdown.VerificationScore)
	}
}

func TestBehavioralScore_Defaults(t *testing.T) {
	// Unknown style/profile fall back to the 70/75 neutral values:
	// 0.5*70 + 0.5*75 = 72.5 → rounded to 73.
	s := CalculateScore(domain.WalletData{TradingStyle: "martingale", RiskProfile: "yolo"})
	if s.Breakdown.BehavioralScore != 73 {
		t.Errorf("expected neutral behavioral score 73, got %f", s.Breakdown.BehavioralScore)
	}
}

func TestNormalizeROI_Clamps(t *testing.T) {
	if v := normalizeROI(-0.5); v != 0 {
		t.Errorf("expected 0 for negative ROI, got %f", v)
	}
	if v := normalizeROI(1.0); v != 50 {
		t.Errorf("expected 50 for 100%% ROI, got %f", v)
	}
	if v := normalizeROI(3.0); v != 100 {
		t.Errorf("expected 100 above cap, got %f", v)
	}
}

func TestConsistencyScore_Ramp(t *testing.T) {
	cases := []struct {
		days float64
		want float64
	}{
		{0, 0},
		{3.5, 20},
		{7, 40},
		{30, 70},
		{120, 100},
		{1000, 100},
	}
	for _, c := range cases {
		if got := consistencyScore(c.days); got != c.want {
			t.Errorf("consistencyScore(%f) = %f, want %f", c.days, got, c.want)
		}
	}
}

func TestCalculateScore_Deterministic(t *testing.T) {
	w := strongWallet()
	a := CalculateScore(w)
	b := CalculateScore(w)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical input produced different output: %+v vs %+v", a, b)
	}
}

func TestBatchCalculateScores_MatchesElementwise(t *testing.T) {
	wallets := []domain.WalletData{
		{},
		strongWallet(),
		{ROI: 0.3, WinRate: 40, TradeCount: 120, Verified: true},
	}
	batch := BatchCalculateScores(wallets)
	if len(batch) != len(wallets) {
		t.Fatalf("expected %d scores, got %d", len(wallets), len(batch))
	}
	for i, w := range wallets {
		if !reflect.DeepEqual(batch[i], CalculateScore(w)) {
			t.Errorf("batch[%d] differs from element-wise score", i)
		}
	}
}

func TestBatchCalculateScores_Empty(t *testing.T) {
	if got := BatchCalculateScores(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}
