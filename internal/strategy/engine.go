package strategy

import (
	"math"

	"HirschPicks/internal/calculator"
	"HirschPicks/internal/model"
)

// Score bounds. Only candidates that cleared the tier filters are scored, so the floor is 60, not 0.
const (
	MinScore = 60
	MaxScore = 99
)

// BaseScore returns round(100 * sum(n*w) / sum(w)) clamped to [MinScore, MaxScore],
// along with the per-signal weighted contributions.
func BaseScore(normalized, weights model.Signals) (int, model.Signals) {
	var weighted model.Signals
	var num, den float64
	for i := range normalized {
		weighted[i] = calculator.Round(normalized[i]*weights[i], 2)
		num += normalized[i] * weights[i]
		den += weights[i]
	}
	if den <= 0 {
		return MinScore, weighted
	}
	return ClampScore(int(math.Round(100 * num / den))), weighted
}

// ClampScore bounds a score to [MinScore, MaxScore].
func ClampScore(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// Evaluate scores one candidate with the given weights and exploration bonus.
func Evaluate(c model.Candidate, m *model.Metrics, weights model.Signals, bonus int) model.ScoredCandidate {
	raw := Normalize(m)
	base, weighted := BaseScore(raw, weights)
	return model.ScoredCandidate{
		Candidate:        c,
		Metrics:          m,
		RawSignals:       raw,
		WeightedSignals:  weighted,
		BaseScore:        base,
		ExplorationBonus: bonus,
		FinalScore:       ClampScore(base + bonus),
	}
}
