package setup

import (
	"math"
	"testing"
)

func TestCalc_DefaultBands(t *testing.T) {
	s, err := Calc("EURUSD", 100, DefaultStopFraction, DefaultTargetFraction)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Entry != 100 {
		t.Errorf("entry: got %v, want 100", s.Entry)
	}
	if s.StopLoss != 98.0 {
		t.Errorf("stop-loss: got %v, want 98.0", s.StopLoss)
	}
	if s.TakeProfit != 103.0 {
		t.Errorf("take-profit: got %v, want 103.0", s.TakeProfit)
	}
	if s.RiskReward != 1.5 {
		t.Errorf("risk/reward: got %v, want 1.5", s.RiskReward)
	}
	if s.Symbol != "EURUSD" {
		t.Errorf("symbol: got %q", s.Symbol)
	}
}

func TestCalc_Rounding(t *testing.T) {
	// 123.456 * 0.98 = 120.98688 → 120.99; * 1.03 = 127.15968 → 127.16
	s, err := Calc("X", 123.456, DefaultStopFraction, DefaultTargetFraction)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.StopLoss != 120.99 {
		t.Errorf("stop-loss: got %v, want 120.99", s.StopLoss)
	}
	if s.TakeProfit != 127.16 {
		t.Errorf("take-profit: got %v, want 127.16", s.TakeProfit)
	}
}

func TestCalc_RejectsBadEntry(t *testing.T) {
	for _, c := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := Calc("X", c, DefaultStopFraction, DefaultTargetFraction); err == nil {
			t.Errorf("expected error for entry %v", c)
		}
	}
}

func TestCalc_RejectsDegenerateStop(t *testing.T) {
	if _, err := Calc("X", 100, 0, DefaultTargetFraction); err == nil {
		t.Error("expected error when stop fraction is zero")
	}
}
