package strategy

import (
	"math"
	"sort"

	"HirschPicks/internal/calculator"
	"HirschPicks/internal/model"
)

const (
	minLedgerRows  = 5
	learningWindow = 60
	minClassSize   = 2
	deltaScale     = 6.0
	maxDelta       = 8.0
	minWeight      = 2.0
)

// Learn rebuilds the learning state from the full ledger. It never reads the
// weights that produced the ledger rows, only the raw signals recorded at pick time.
func Learn(rows []model.TrackRecordRow, tiers []string) *model.LearningState {
	st := &model.LearningState{
		Weights: make(map[string]model.Signals, len(tiers)),
		Deltas:  make(map[string]model.Signals, len(tiers)),
		Tickers: BuildTickerHistory(rows),
	}
	for _, tier := range tiers {
		w, d, _ := LearnWeights(tier, rows)
		st.Weights[tier] = w
		st.Deltas[tier] = d
	}
	return st
}

// LearnWeights adjusts the tier's base weights by the winner/loser gap of each signal.
// It returns the base weights unchanged and learned=false when the ledger is too thin.
func LearnWeights(tier string, rows []model.TrackRecordRow) (weights, deltas model.Signals, learned bool) {
	base := BaseWeightsFor(tier)

	var tierRows []model.TrackRecordRow
	for _, r := range rows {
		if r.Category == tier && r.RawSignals != nil {
			tierRows = append(tierRows, r)
		}
	}
	if len(tierRows) < minLedgerRows {
		return base, deltas, false
	}

	sort.SliceStable(tierRows, func(i, j int) bool {
		if tierRows[i].Date != tierRows[j].Date {
			return tierRows[i].Date > tierRows[j].Date
		}
		return tierRows[i].ChosenAt.After(tierRows[j].ChosenAt)
	})
	if len(tierRows) > learningWindow {
		tierRows = tierRows[:learningWindow]
	}

	var winSum, loseSum model.Signals
	var winners, losers int
	for _, r := range tierRows {
		if r.ReturnPct > 0 {
			winners++
			for i, v := range r.RawSignals {
				winSum[i] += v
			}
		} else {
			losers++
			for i, v := range r.RawSignals {
				loseSum[i] += v
			}
		}
	}
	if winners < minClassSize || losers < minClassSize {
		return base, deltas, false
	}

	for i := range weights {
		gap := winSum[i]/float64(winners) - loseSum[i]/float64(losers)
		deltas[i] = calculator.Clamp(math.Round(gap*deltaScale), -maxDelta, maxDelta)
		weights[i] = math.Max(base[i]+deltas[i], minWeight)
	}
	return weights, deltas, true
}

// BuildTickerHistory aggregates realized outcomes per ticker, counting each (ticker, date) once.
func BuildTickerHistory(rows []model.TrackRecordRow) map[string]model.TickerStats {
	seen := make(map[string]bool, len(rows))
	out := make(map[string]model.TickerStats)
	for _, r := range rows {
		if r.Ticker == "" || r.Ticker == model.PlaceholderTicker {
			continue
		}
		key := r.Ticker + "|" + r.Date
		if seen[key] {
			continue
		}
		seen[key] = true

		s := out[r.Ticker]
		s.Picks++
		if r.ReturnPct > 0 {
			s.Wins++
		}
		s.TotalReturn = calculator.Round(s.TotalReturn+r.ReturnPct, 2)
		s.AvgReturn = calculator.Round(s.TotalReturn/float64(s.Picks), 2)
		out[r.Ticker] = s
	}
	return out
}
