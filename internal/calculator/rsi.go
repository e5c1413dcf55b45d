package calculator

import (
	"errors"

	"HirschPicks/internal/model"
)

// NeutralRSI is reported when a candidate has too little history to measure momentum.
const NeutralRSI = 50.0

// CalculateRSI returns the oscillator position of a candidate's daily closes,
// oldest bar first. Gains and losses are seeded with a simple mean over the
// first period changes and then Wilder-smoothed through the newest bar.
// Fewer than period+1 bars yields NeutralRSI; a flawless run without losses yields 100.
func CalculateRSI(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return NeutralRSI, nil
	}

	gain, loss := wilderAverages(ExtractCloses(bars), period)
	if loss == 0 {
		return 100, nil
	}
	return 100 - 100/(1+gain/loss), nil
}

// wilderAverages returns the smoothed average gain and loss of close-to-close moves.
func wilderAverages(closes []float64, period int) (gain, loss float64) {
	n := float64(period)
	for i := 1; i < len(closes); i++ {
		up, down := splitMove(closes[i] - closes[i-1])
		if i <= period {
			gain += up / n
			loss += down / n
			continue
		}
		gain = (gain*(n-1) + up) / n
		loss = (loss*(n-1) + down) / n
	}
	return gain, loss
}

func splitMove(change float64) (up, down float64) {
	if change > 0 {
		return change, 0
	}
	return 0, -change
}
