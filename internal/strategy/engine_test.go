package strategy

import (
	"fmt"
	"math"
	"testing"
	"time"

	"HirschPicks/internal/model"
)

func TestNormalize_Saturation(t *testing.T) {
	m := &model.Metrics{
		ATRPct:         30,
		RelativeVolume: 10,
		GapPct:         -12,
		Momentum5d:     -40,
		VolumeTrend:    6,
		RSI:            55,
		PriceVsMA:      50,
	}
	s := Normalize(m)
	for i, v := range s {
		if v != 1 {
			t.Errorf("signal %s: expected 1, got %.4f", model.SignalNames[i], v)
		}
	}
}

func TestNormalize_Bounds(t *testing.T) {
	m := &model.Metrics{RSI: 5, PriceVsMA: -50, ATRPct: math.NaN()}
	s := Normalize(m)
	for i, v := range s {
		if v < 0 || v > 1 {
			t.Errorf("signal %s out of [0,1]: %.4f", model.SignalNames[i], v)
		}
	}
	if s[model.SignalOscillator] != 0 {
		t.Errorf("expected oscillator 0 below RSI 10, got %.4f", s[model.SignalOscillator])
	}
	if s[model.SignalTrend] != 0 {
		t.Errorf("expected trend 0 far below MA, got %.4f", s[model.SignalTrend])
	}
}

func TestScoreOscillator_Band(t *testing.T) {
	cases := []struct {
		rsi  float64
		want float64
	}{
		{10, 0}, {25, 0.5}, {40, 1}, {55, 1}, {70, 1}, {85, 0.5}, {100, 0},
	}
	for _, c := range cases {
		got := scoreOscillator(&model.Metrics{RSI: c.rsi})
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("RSI %.0f: expected %.2f, got %.4f", c.rsi, c.want, got)
		}
	}
}

func TestBaseScore_ClampedToRange(t *testing.T) {
	w := BaseWeightsFor("mid")
	low, _ := BaseScore(model.Signals{}, w)
	if low != MinScore {
		t.Errorf("expected floor %d, got %d", MinScore, low)
	}
	high, _ := BaseScore(model.Signals{1, 1, 1, 1, 1, 1, 1}, w)
	if high != MaxScore {
		t.Errorf("expected ceiling %d, got %d", MaxScore, high)
	}
}

func TestBaseScore_WeightedAverage(t *testing.T) {
	// all 0.8 -> 80 regardless of weights
	score, weighted := BaseScore(model.Signals{0.8, 0.8, 0.8, 0.8, 0.8, 0.8, 0.8}, BaseWeightsFor("penny"))
	if score != 80 {
		t.Errorf("expected 80, got %d", score)
	}
	if weighted[model.SignalVolatility] != 17.6 {
		t.Errorf("expected weighted volatility 17.6, got %.2f", weighted[model.SignalVolatility])
	}
}

func TestEvaluate_FinalScoreClamp(t *testing.T) {
	hot := &model.Metrics{ATRPct: 15, RelativeVolume: 5, GapPct: 8, Momentum5d: 20, VolumeTrend: 3, RSI: 60, PriceVsMA: 10}
	sc := Evaluate(model.Candidate{Ticker: "HOT"}, hot, BaseWeightsFor("small"), MaxExplorationBonus)
	if sc.FinalScore != MaxScore {
		t.Errorf("expected %d, got %d", MaxScore, sc.FinalScore)
	}
	if sc.FinalScore < sc.BaseScore && sc.BaseScore < MaxScore {
		t.Error("bonus must never lower the score")
	}

	cold := &model.Metrics{RSI: 100}
	sc = Evaluate(model.Candidate{Ticker: "COLD"}, cold, BaseWeightsFor("small"), 3)
	if sc.BaseScore != MinScore || sc.FinalScore != 63 {
		t.Errorf("expected base 60 final 63, got base %d final %d", sc.BaseScore, sc.FinalScore)
	}
}

func TestPennySpikeOutscoresFlat(t *testing.T) {
	w := BaseWeightsFor("penny")
	flat := &model.Metrics{Price: 1, RelativeVolume: 1, VolumeTrend: 1, RSI: 100}
	spike := &model.Metrics{Price: 1.2, ATRPct: 1.19, RelativeVolume: 5, GapPct: 20, Momentum5d: 20, VolumeTrend: 1.8, RSI: 100, PriceVsMA: 19.52}

	a := Evaluate(model.Candidate{Ticker: "TICK_A"}, flat, w, 0)
	b := Evaluate(model.Candidate{Ticker: "TICK_B"}, spike, w, 0)
	if a.BaseScore != MinScore {
		t.Errorf("expected flat candidate at floor, got %d", a.BaseScore)
	}
	if b.BaseScore <= a.BaseScore {
		t.Errorf("expected spike (%d) to beat flat (%d)", b.BaseScore, a.BaseScore)
	}
}

func ledgerRow(tier, date string, ret float64, signals model.Signals) model.TrackRecordRow {
	return model.TrackRecordRow{
		Date:       date,
		Category:   tier,
		Ticker:     "T" + date,
		ChosenAt:   time.Date(2025, 3, 1, 13, 0, 0, 0, time.UTC),
		ReturnPct:  ret,
		RawSignals: &signals,
	}
}

func TestLearnWeights_NeedsEnoughRows(t *testing.T) {
	rows := []model.TrackRecordRow{
		ledgerRow("mid", "2025-03-03", 2, model.Signals{1}),
		ledgerRow("mid", "2025-03-04", 2, model.Signals{1}),
		ledgerRow("mid", "2025-03-05", -1, model.Signals{}),
		ledgerRow("mid", "2025-03-06", -1, model.Signals{}),
	}
	w, _, learned := LearnWeights("mid", rows)
	if learned {
		t.Fatal("expected no learning with 4 rows")
	}
	if w != BaseWeightsFor("mid") {
		t.Error("expected base weights")
	}

	// five rows but only one loser
	rows = append(rows[:2], ledgerRow("mid", "2025-03-05", 1, model.Signals{}),
		ledgerRow("mid", "2025-03-06", 1, model.Signals{}), ledgerRow("mid", "2025-03-07", 0, model.Signals{}))
	if _, _, learned = LearnWeights("mid", rows); learned {
		t.Fatal("expected no learning with a single loser")
	}
}

func TestLearnWeights_ShiftsTowardWinners(t *testing.T) {
	var rows []model.TrackRecordRow
	for i := 0; i < 3; i++ {
		rows = append(rows, ledgerRow("large", fmt.Sprintf("2025-04-0%d", i+1), 3, model.Signals{1, 0, 0.5, 0, 0, 0, 0}))
	}
	for i := 0; i < 3; i++ {
		rows = append(rows, ledgerRow("large", fmt.Sprintf("2025-04-1%d", i+1), -2, model.Signals{0, 1, 0.5, 0, 0, 0, 0}))
	}
	// other tiers never leak in
	rows = append(rows, ledgerRow("hyper", "2025-04-20", 9, model.Signals{0, 1}))

	w, d, learned := LearnWeights("large", rows)
	if !learned {
		t.Fatal("expected learning")
	}
	base := BaseWeightsFor("large")
	if d[0] != 6 || d[1] != -6 || d[2] != 0 {
		t.Errorf("unexpected deltas %v", d)
	}
	if w[0] != base[0]+6 || w[1] != base[1]-6 {
		t.Errorf("unexpected weights %v", w)
	}
	for i, v := range w {
		if v < minWeight {
			t.Errorf("weight %d below floor: %.1f", i, v)
		}
	}
}

func TestLearnWeights_FloorAndWindow(t *testing.T) {
	var rows []model.TrackRecordRow
	// 70 rows; only the newest 60 count. Old rows would flip the sign.
	for i := 0; i < 10; i++ {
		rows = append(rows, ledgerRow("hyper", fmt.Sprintf("2024-01-%02d", i+1), 5, model.Signals{0, 0, 1}))
	}
	for i := 0; i < 60; i++ {
		ret := 1.0
		sig := model.Signals{0, 0, 0}
		if i%2 == 1 {
			ret = -1
			sig = model.Signals{0, 0, 1}
		}
		rows = append(rows, ledgerRow("hyper", fmt.Sprintf("2025-%02d-%02d", i/28+1, i%28+1), ret, sig))
	}
	w, d, learned := LearnWeights("hyper", rows)
	if !learned {
		t.Fatal("expected learning")
	}
	if d[2] != -6 {
		t.Errorf("expected gap delta -6, got %.0f", d[2])
	}
	if w[2] != minWeight {
		t.Errorf("expected gap weight floored at %.0f, got %.0f", minWeight, w[2])
	}
}

func TestBuildTickerHistory_Dedupes(t *testing.T) {
	rows := []model.TrackRecordRow{
		{Date: "2025-05-01", Category: "mid", Ticker: "AAA", ReturnPct: 2},
		{Date: "2025-05-01", Category: "mid", Ticker: "AAA", ReturnPct: 2},
		{Date: "2025-05-02", Category: "mid", Ticker: "AAA", ReturnPct: -1},
		{Date: "2025-05-02", Category: "mid", Ticker: "BBB", ReturnPct: 4},
	}
	h := BuildTickerHistory(rows)
	aaa := h["AAA"]
	if aaa.Picks != 2 || aaa.Wins != 1 {
		t.Errorf("expected 2 picks 1 win, got %+v", aaa)
	}
	if aaa.AvgReturn != 0.5 {
		t.Errorf("expected avg 0.5, got %.2f", aaa.AvgReturn)
	}
	if h["BBB"].WinRate() != 1 {
		t.Errorf("expected win rate 1, got %.2f", h["BBB"].WinRate())
	}
}

func TestLearn_CoversAllTiers(t *testing.T) {
	st := Learn(nil, []string{"penny", "mid"})
	if st.Weights["penny"] != BaseWeightsFor("penny") || st.Weights["mid"] != BaseWeightsFor("mid") {
		t.Error("expected base weights for an empty ledger")
	}
	if len(st.Tickers) != 0 {
		t.Error("expected no ticker history")
	}
}
