package strategy

import (
	"testing"

	"HirschPicks/internal/model"
)

func TestDraw_DeterministicAndBounded(t *testing.T) {
	a := Draw("AAPL", "2025-06-02", model.WindowOpen, purposeExplore)
	b := Draw("AAPL", "2025-06-02", model.WindowOpen, purposeExplore)
	if a != b {
		t.Fatalf("expected identical draws, got %f and %f", a, b)
	}
	if a < 0 || a >= 1 {
		t.Fatalf("draw out of [0,1): %f", a)
	}
}

func TestDraw_EachInputChangesValue(t *testing.T) {
	base := Draw("AAPL", "2025-06-02", model.WindowOpen, purposeExplore)
	cases := []struct {
		name string
		got  float64
	}{
		{"ticker", Draw("MSFT", "2025-06-02", model.WindowOpen, purposeExplore)},
		{"date", Draw("AAPL", "2025-06-03", model.WindowOpen, purposeExplore)},
		{"window", Draw("AAPL", "2025-06-02", model.WindowEarly, purposeExplore)},
		{"purpose", Draw("AAPL", "2025-06-02", model.WindowOpen, purposeDaily)},
	}
	for _, tc := range cases {
		if tc.got == base {
			t.Errorf("changing %s left the draw at %f", tc.name, base)
		}
		if tc.got < 0 || tc.got >= 1 {
			t.Errorf("draw for changed %s out of [0,1): %f", tc.name, tc.got)
		}
	}
}

func TestExplorationBonus_VariesAcrossWindows(t *testing.T) {
	// Over a spread of tickers the three windows must not all agree.
	windows := []model.TimeWindow{model.WindowEarly, model.WindowPreopen, model.WindowOpen}
	varied := false
	for _, tk := range []string{"AAA", "BBB", "CCC", "DDD", "EEE", "FFF", "GGG", "HHH"} {
		first := ExplorationBonus(tk, "2025-06-02", windows[0], model.TickerStats{})
		for _, w := range windows[1:] {
			if ExplorationBonus(tk, "2025-06-02", w, model.TickerStats{}) != first {
				varied = true
			}
		}
	}
	if !varied {
		t.Error("expected the exploration bonus to differ between windows for some ticker")
	}
}

func TestEagerness(t *testing.T) {
	if Eagerness(model.TickerStats{}) != 0.85 {
		t.Error("unseen ticker should be 0.85")
	}
	if Eagerness(model.TickerStats{Picks: 2, Wins: 2}) != 0.70 {
		t.Error("lightly sampled ticker should be 0.70")
	}
	if got := Eagerness(model.TickerStats{Picks: 4, Wins: 1}); got != 0.375 {
		t.Errorf("expected 0.375, got %f", got)
	}
}

func TestExplorationBonus_Bounded(t *testing.T) {
	tickers := []string{"AAA", "BBB", "CCC", "DDD", "EEE", "FFF", "GGG", "HHH"}
	dates := []string{"2025-06-02", "2025-06-03", "2025-06-04"}
	windows := []model.TimeWindow{model.WindowEarly, model.WindowPreopen, model.WindowOpen}
	for _, tk := range tickers {
		for _, d := range dates {
			for _, w := range windows {
				b := ExplorationBonus(tk, d, w, model.TickerStats{})
				if b < 0 || b > MaxExplorationBonus {
					t.Fatalf("bonus out of range for %s %s %s: %d", tk, d, w, b)
				}
				if b != ExplorationBonus(tk, d, w, model.TickerStats{}) {
					t.Fatalf("bonus not reproducible for %s %s %s", tk, d, w)
				}
			}
		}
	}
}
