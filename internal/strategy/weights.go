package strategy

import "HirschPicks/internal/model"

// BaseWeights is the relative importance of each signal per tier, in model.SignalNames order.
// Smaller names lean on volatility and volume; larger names lean on oscillator and trend.
var BaseWeights = map[string]model.Signals{
	"penny": {22, 20, 14, 12, 10, 12, 10},
	"small": {16, 18, 10, 16, 12, 14, 14},
	"mid":   {14, 16, 8, 14, 12, 16, 20},
	"large": {10, 14, 8, 16, 12, 18, 22},
	"hyper": {8, 12, 6, 18, 10, 20, 26},
}

// defaultWeights applies to tiers without a registered vector.
var defaultWeights = model.Signals{10, 10, 10, 10, 10, 10, 10}

// BaseWeightsFor returns the tier's base weight vector.
func BaseWeightsFor(tier string) model.Signals {
	if w, ok := BaseWeights[tier]; ok {
		return w
	}
	return defaultWeights
}
