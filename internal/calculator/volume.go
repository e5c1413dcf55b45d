package calculator

import "HirschPicks/internal/model"

// ExtractVolumes returns the volume of every bar, oldest first.
func ExtractVolumes(bars []model.OHLCV) []float64 {
	vols := make([]float64, len(bars))
	for i, b := range bars {
		vols[i] = b.Volume
	}
	return vols
}

// HistoricalAvgVolume is the mean of all volumes except the latest session.
func HistoricalAvgVolume(bars []model.OHLCV) float64 {
	if len(bars) < 2 {
		return 0
	}
	return mean(ExtractVolumes(bars[:len(bars)-1]))
}

// CalculateRelativeVolume divides today's volume by the average, treating a non-positive average as 1.
func CalculateRelativeVolume(today, avg float64) float64 {
	if avg <= 0 {
		avg = 1
	}
	return today / avg
}

// CalculateVolumeTrend compares the mean of the last 5 volumes with the mean of the 5 before them.
// The denominator is floored at 1.
func CalculateVolumeTrend(bars []model.OHLCV) float64 {
	vols := ExtractVolumes(bars)
	n := len(vols)
	recentStart := n - 5
	if recentStart < 0 {
		recentStart = 0
	}
	olderStart := recentStart - 5
	if olderStart < 0 {
		olderStart = 0
	}
	recent := mean(vols[recentStart:])
	older := mean(vols[olderStart:recentStart])
	if older < 1 {
		older = 1
	}
	return recent / older
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
