package calculator

import (
	"errors"

	"HirschPicks/internal/model"
)

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// TrendAverage returns the 50-bar SMA, the 20-bar SMA when fewer than 50 closes
// exist, or price itself when fewer than 20 closes exist.
func TrendAverage(bars []model.OHLCV, price float64) float64 {
	closes := ExtractCloses(bars)
	if ma, err := CalculateSMA(closes, 50); err == nil {
		return ma
	}
	if ma, err := CalculateSMA(closes, 20); err == nil {
		return ma
	}
	return price
}

// PercentFrom returns (value - base) / base * 100, or 0 when base is not positive.
func PercentFrom(base, value float64) float64 {
	if base <= 0 {
		return 0
	}
	return (value - base) / base * 100
}

// ExtractCloses returns the close of every bar, oldest first.
func ExtractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
