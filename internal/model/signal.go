package model

import "time"

// SignalCount is the number of named signals feeding the composite score.
const SignalCount = 7

// Signal indexes into the raw/weighted signal vectors.
const (
	SignalVolatility = iota
	SignalRelativeVolume
	SignalGap
	SignalMomentum
	SignalVolumeAcceleration
	SignalOscillator
	SignalTrend
)

// SignalNames are the stable identifiers of the seven signals, in vector order.
var SignalNames = [SignalCount]string{
	"volatility",
	"relative_volume",
	"gap",
	"momentum",
	"volume_acceleration",
	"oscillator_position",
	"trend_position",
}

// Signals is a per-signal vector.
type Signals [SignalCount]float64

// TimeWindow names a daily window in which cached picks are considered current.
type TimeWindow string

const (
	WindowEarly   TimeWindow = "early"
	WindowPreopen TimeWindow = "preopen"
	WindowOpen    TimeWindow = "open"
	WindowClosed  TimeWindow = "closed"
)

// PlaceholderTicker marks a tier for which no candidate could be scored.
const PlaceholderTicker = "N/A"

// ScoredCandidate is one candidate after metrics, signals and exploration.
type ScoredCandidate struct {
	Candidate        Candidate
	Metrics          *Metrics
	RawSignals       Signals
	WeightedSignals  Signals
	BaseScore        int
	ExplorationBonus int
	FinalScore       int
}

// Pick is the persisted selection for one tier.
type Pick struct {
	Candidate
	Category         string     `json:"category"`
	Date             string     `json:"date"`
	Metrics          *Metrics   `json:"metrics"`
	RawSignals       Signals    `json:"raw_signals"`
	WeightedSignals  Signals    `json:"weighted_signals"`
	BaseScore        int        `json:"base_score"`
	ExplorationBonus int        `json:"exploration_bonus"`
	Score            int        `json:"score"`
	ReferencePrice   *float64   `json:"reference_price"`
	ChosenAt         time.Time  `json:"chosen_at"`
	TimeWindow       TimeWindow `json:"time_window"`
	Placeholder      bool       `json:"placeholder"`
}

// NewPlaceholder builds the non-authoritative pick emitted when a tier has no eligible candidates.
func NewPlaceholder(category, date string, window TimeWindow, at time.Time) *Pick {
	return &Pick{
		Candidate:   Candidate{Ticker: PlaceholderTicker, Company: "data unavailable"},
		Category:    category,
		Date:        date,
		ChosenAt:    at,
		TimeWindow:  window,
		Placeholder: true,
	}
}

// DailyPickSet is the set of per-tier picks for one trading day and window.
type DailyPickSet struct {
	DateKey         string           `json:"date"`
	Picks           map[string]*Pick `json:"picks"`
	CreatedAt       time.Time        `json:"created_at"`
	AlgoVersion     int              `json:"algo_version"`
	TimeWindow      TimeWindow       `json:"time_window"`
	ExcludedTickers []string         `json:"excluded_tickers"`
}

// HasRealData reports whether at least one tier holds a non-placeholder pick.
func (s *DailyPickSet) HasRealData() bool {
	if s == nil {
		return false
	}
	for _, p := range s.Picks {
		if p != nil && !p.Placeholder {
			return true
		}
	}
	return false
}

// Tickers returns the tickers of all real picks in the set.
func (s *DailyPickSet) Tickers() []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, p := range s.Picks {
		if p != nil && !p.Placeholder {
			out = append(out, p.Ticker)
		}
	}
	return out
}
