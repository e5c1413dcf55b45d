package calculator

import "HirschPicks/internal/model"

// CalculateATR averages the last min(period, available) true ranges.
// Returns 0 when fewer than two bars exist.
func CalculateATR(bars []model.OHLCV, period int) float64 {
	if len(bars) < 2 || period <= 0 {
		return 0
	}
	trs := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		trs = append(trs, trueRange(bars[i], bars[i-1].Close))
	}
	if len(trs) > period {
		trs = trs[len(trs)-period:]
	}
	return mean(trs)
}

func trueRange(bar model.OHLCV, prevClose float64) float64 {
	tr := bar.High - bar.Low
	if v := abs(bar.High - prevClose); v > tr {
		tr = v
	}
	if v := abs(bar.Low - prevClose); v > tr {
		tr = v
	}
	return tr
}
