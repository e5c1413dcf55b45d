package calculator

import "HirschPicks/internal/model"

// CalculateMomentum returns the percent change from the close `sessions` bars back
// (or the earliest bar when history is shorter) to price.
func CalculateMomentum(bars []model.OHLCV, sessions int, price float64) float64 {
	if len(bars) == 0 {
		return 0
	}
	idx := len(bars) - 1 - sessions
	if idx < 0 {
		idx = 0
	}
	return PercentFrom(bars[idx].Close, price)
}

// CalculateGap returns (open - prevClose) / prevClose * 100.
func CalculateGap(open, prevClose float64) float64 {
	return PercentFrom(prevClose, open)
}
