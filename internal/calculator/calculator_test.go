package calculator

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HirschPicks/internal/model"
)

func barsFromCloses(closes ...float64) []model.OHLCV {
	start := time.Date(2026, 1, 5, 16, 0, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestCalculateSMA(t *testing.T) {
	ma, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, ma, 1e-9)

	_, err = CalculateSMA([]float64{1, 2}, 3)
	assert.Error(t, err)
	_, err = CalculateSMA([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestTrendAverage_Fallbacks(t *testing.T) {
	short := barsFromCloses(1, 2, 3)
	assert.Equal(t, 7.0, TrendAverage(short, 7), "fewer than 20 closes uses price")

	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	// last 20 closes are 11..30
	assert.InDelta(t, 20.5, TrendAverage(barsFromCloses(closes...), 0), 1e-9)

	closes = make([]float64, 60)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	// last 50 closes are 11..60
	assert.InDelta(t, 35.5, TrendAverage(barsFromCloses(closes...), 0), 1e-9)
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	rsi, err := CalculateRSI(barsFromCloses(1, 2, 3), 14)
	require.NoError(t, err)
	assert.Equal(t, NeutralRSI, rsi)
}

func TestCalculateRSI_BalancedMovesAreNeutral(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 100 + float64(i%2)
	}
	rsi, err := CalculateRSI(barsFromCloses(closes...), 14)
	require.NoError(t, err)
	assert.InDelta(t, NeutralRSI, rsi, 1e-9)
}

func TestCalculateRSI_SmoothsPastSeedWindow(t *testing.T) {
	// 14 unit gains seed the averages, then one loss of 14.
	closes := make([]float64, 16)
	for i := 0; i < 15; i++ {
		closes[i] = float64(100 + i)
	}
	closes[15] = closes[14] - 14
	rsi, err := CalculateRSI(barsFromCloses(closes...), 14)
	require.NoError(t, err)
	// gain = 13/14, loss = 1 -> RSI = 100 - 100/(1+13/14)
	assert.InDelta(t, 100-100/(1+13.0/14.0), rsi, 1e-9)
}

func TestCalculateRSI_RejectsNonPositivePeriod(t *testing.T) {
	_, err := CalculateRSI(barsFromCloses(1, 2, 3), 0)
	assert.Error(t, err)
}

func TestCalculateRSI_AllGains(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(100 + i)
	}
	rsi, err := CalculateRSI(barsFromCloses(closes...), 14)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rsi)
}

func TestCalculateRSI_AllLosses(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = float64(100 - i)
	}
	rsi, err := CalculateRSI(barsFromCloses(closes...), 14)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, rsi, 1e-9)
}

func TestCalculateRSI_BoundedForRandomWalks(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		n := 15 + rng.Intn(60)
		closes := make([]float64, n)
		p := 50.0
		for i := range closes {
			p = math.Max(0.01, p+rng.NormFloat64())
			closes[i] = p
		}
		rsi, err := CalculateRSI(barsFromCloses(closes...), 14)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rsi, 0.0)
		assert.LessOrEqual(t, rsi, 100.0)
	}
}

func TestCalculateATR(t *testing.T) {
	bars := []model.OHLCV{
		{Close: 10, High: 10, Low: 10},
		{Close: 11, High: 12, Low: 10},   // TR = 2
		{Close: 9, High: 11, Low: 8.5},   // TR = max(2.5, 0, 2.5) = 2.5
		{Close: 12, High: 12.5, Low: 10}, // TR = max(2.5, 3.5, 1) = 3.5
	}
	assert.InDelta(t, (2+2.5+3.5)/3, CalculateATR(bars, 14), 1e-9)
	assert.InDelta(t, (2.5+3.5)/2, CalculateATR(bars, 2), 1e-9)
	assert.Equal(t, 0.0, CalculateATR(bars[:1], 14))
}

func TestCalculateMomentum(t *testing.T) {
	bars := barsFromCloses(10, 11, 12, 13, 14, 15, 16)
	// 5 sessions back from index 6 is index 1 (close 11)
	assert.InDelta(t, (20.0-11)/11*100, CalculateMomentum(bars, 5, 20), 1e-9)
	// shorter history falls back to the earliest bar
	assert.InDelta(t, 100.0, CalculateMomentum(bars, 20, 20), 1e-9)
}

func TestCalculateGap(t *testing.T) {
	assert.InDelta(t, 5.0, CalculateGap(105, 100), 1e-9)
	assert.Equal(t, 0.0, CalculateGap(105, 0))
}

func TestCalculateRelativeVolume(t *testing.T) {
	assert.Equal(t, 2.5, CalculateRelativeVolume(5000, 2000))
	assert.Equal(t, 5000.0, CalculateRelativeVolume(5000, 0), "non-positive average treated as 1")
}

func TestCalculateVolumeTrend(t *testing.T) {
	bars := barsFromCloses(1, 1, 1, 1, 1, 1, 1, 1, 1, 1)
	for i := range bars {
		if i >= 5 {
			bars[i].Volume = 3000
		}
	}
	assert.InDelta(t, 3.0, CalculateVolumeTrend(bars), 1e-9)

	// no prior window: denominator floors at 1
	assert.InDelta(t, 1000.0, CalculateVolumeTrend(bars[:3]), 1e-9)
}

func TestHistoricalAvgVolume_ExcludesLatest(t *testing.T) {
	bars := barsFromCloses(1, 1, 1)
	bars[2].Volume = 9000
	assert.Equal(t, 1000.0, HistoricalAvgVolume(bars))
}

func TestCalculateRecentRange(t *testing.T) {
	bars := []model.OHLCV{{High: 5, Low: 1}, {High: 9, Low: 4}, {High: 7, Low: 3}}
	h, l, err := CalculateRecentRange(bars, 2)
	require.NoError(t, err)
	assert.Equal(t, 9.0, h)
	assert.Equal(t, 3.0, l)

	_, _, err = CalculateRecentRange(nil, 2)
	assert.Error(t, err)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 5.88, Round(6.0/102*100, 2))
	assert.Equal(t, 1.3, Round(1.25, 1))
	assert.Equal(t, 0.0, Round(math.NaN(), 2))
	assert.Equal(t, 0.0, Round(math.Inf(1), 2))
}
