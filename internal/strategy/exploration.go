package strategy

import (
	"math"

	"github.com/cespare/xxhash/v2"

	"HirschPicks/internal/model"
)

// MaxExplorationBonus caps the bonus added to a base score.
const MaxExplorationBonus = 15

const (
	purposeExplore = "explore"
	purposeDaily   = "daily"
)

// Draw maps (ticker, date, window, purpose) to a deterministic pseudo-random value in [0,1).
// The same inputs always give the same draw, so reruns within a window agree.
func Draw(ticker, dateKey string, window model.TimeWindow, purpose string) float64 {
	h := xxhash.Sum64String(ticker + "|" + dateKey + "|" + string(window) + "|" + purpose)
	return float64(h>>11) / (1 << 53)
}

// Eagerness is how much the explorer favours a ticker: unseen names most, then
// lightly sampled ones, then by realized win rate.
func Eagerness(stats model.TickerStats) float64 {
	switch {
	case stats.Picks == 0:
		return 0.85
	case stats.Picks < 3:
		return 0.70
	default:
		return 0.25 + 0.5*stats.WinRate()
	}
}

// ExplorationBonus returns the bounded score bonus for one candidate in one window.
func ExplorationBonus(ticker, dateKey string, window model.TimeWindow, stats model.TickerStats) int {
	bonus := int(math.Round(
		Eagerness(stats)*Draw(ticker, dateKey, window, purposeExplore)*10 +
			Draw(ticker, dateKey, window, purposeDaily)*5,
	))
	if bonus > MaxExplorationBonus {
		return MaxExplorationBonus
	}
	if bonus < 0 {
		return 0
	}
	return bonus
}
