package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds v half away from zero to the given number of decimal places.
// Non-finite input yields 0 so it never leaks into persisted numeric fields.
func Round(v float64, places int32) float64 {
	if !IsFinite(v) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
