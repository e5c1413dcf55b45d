package model

import "time"

// TrackRecordRow is the realized outcome of one prior pick.
type TrackRecordRow struct {
	Date           string    `json:"date"`
	Category       string    `json:"category"`
	Ticker         string    `json:"ticker"`
	ChosenAt       time.Time `json:"chosen_at"`
	ReferencePrice float64   `json:"reference_price"`
	Close          float64   `json:"close"`
	High           float64   `json:"high"`
	Low            float64   `json:"low"`
	ReturnPct      float64   `json:"return_pct"`
	MaxRunUpPct    float64   `json:"max_run_up_pct"`
	MaxDrawdownPct float64   `json:"max_drawdown_pct"`
	Score          int       `json:"score"`
	RawSignals     *Signals  `json:"raw_signals"`
}

// SameKey reports whether two rows describe the same (date, tier, ticker).
func (r TrackRecordRow) SameKey(o TrackRecordRow) bool {
	return r.Date == o.Date && r.Category == o.Category && r.Ticker == o.Ticker
}

// TickerStats aggregates realized outcomes for one ticker.
type TickerStats struct {
	Picks       int     `json:"picks"`
	Wins        int     `json:"wins"`
	TotalReturn float64 `json:"total_return"`
	AvgReturn   float64 `json:"avg_return"`
}

// WinRate returns wins/picks, or 0 for a ticker never picked.
func (s TickerStats) WinRate() float64 {
	if s.Picks == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Picks)
}

// LearningState is recomputed from the full ledger every generation cycle.
type LearningState struct {
	Weights map[string]Signals
	Deltas  map[string]Signals
	Tickers map[string]TickerStats
}
