package strategy

import (
	"HirschPicks/internal/calculator"
	"HirschPicks/internal/model"
)

// Saturation points: a raw reading at or beyond these maps to 1.
const (
	volatilitySaturation   = 15.0 // ATR % of price
	relVolumeSaturation    = 5.0  // x average volume
	gapSaturation          = 8.0  // |gap %|
	momentumSaturation     = 20.0 // |5-session momentum %|
	volumeTrendSaturation  = 3.0  // last 5 vs prior 5 sessions
	trendPositionHalfRange = 20.0 // % above/below MA that reaches 1 or 0
)

// RSI band rewarded fully, and the points where the reward reaches zero.
const (
	rsiBandLow  = 40.0
	rsiBandHigh = 70.0
	rsiFloor    = 10.0
	rsiCeiling  = 100.0
)

func clamp01(v float64) float64 {
	if !calculator.IsFinite(v) {
		return 0
	}
	return calculator.Clamp(v, 0, 1)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// scoreVolatility rewards range expansion.
func scoreVolatility(m *model.Metrics) float64 {
	return clamp01(m.ATRPct / volatilitySaturation)
}

// scoreRelativeVolume rewards unusual participation.
func scoreRelativeVolume(m *model.Metrics) float64 {
	return clamp01(m.RelativeVolume / relVolumeSaturation)
}

// scoreGap rewards an opening gap in either direction.
func scoreGap(m *model.Metrics) float64 {
	return clamp01(abs(m.GapPct) / gapSaturation)
}

// scoreMomentum rewards a strong 5-session move in either direction.
func scoreMomentum(m *model.Metrics) float64 {
	return clamp01(abs(m.Momentum5d) / momentumSaturation)
}

// scoreVolumeAcceleration rewards rising volume over the last week.
func scoreVolumeAcceleration(m *model.Metrics) float64 {
	return clamp01(m.VolumeTrend / volumeTrendSaturation)
}

// scoreOscillator is 1 inside the 40-70 RSI band and falls linearly to 0 at 10 and at 100.
func scoreOscillator(m *model.Metrics) float64 {
	rsi := m.RSI
	switch {
	case rsi >= rsiBandLow && rsi <= rsiBandHigh:
		return 1
	case rsi < rsiBandLow:
		return clamp01((rsi - rsiFloor) / (rsiBandLow - rsiFloor))
	default:
		return clamp01((rsiCeiling - rsi) / (rsiCeiling - rsiBandHigh))
	}
}

// scoreTrendPosition is 0.5 at the moving average and saturates 20% above or below it.
func scoreTrendPosition(m *model.Metrics) float64 {
	return clamp01(0.5 + m.PriceVsMA/trendPositionHalfRange)
}

// Normalize maps metrics onto the seven [0,1] signals, in model.SignalNames order.
func Normalize(m *model.Metrics) model.Signals {
	if m == nil {
		return model.Signals{}
	}
	var s model.Signals
	s[model.SignalVolatility] = scoreVolatility(m)
	s[model.SignalRelativeVolume] = scoreRelativeVolume(m)
	s[model.SignalGap] = scoreGap(m)
	s[model.SignalMomentum] = scoreMomentum(m)
	s[model.SignalVolumeAcceleration] = scoreVolumeAcceleration(m)
	s[model.SignalOscillator] = scoreOscillator(m)
	s[model.SignalTrend] = scoreTrendPosition(m)
	for i := range s {
		s[i] = calculator.Round(s[i], 4)
	}
	return s
}
