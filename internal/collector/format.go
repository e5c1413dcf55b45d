package collector

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// NotAvailable is shown in place of any display value that fails validation.
const NotAvailable = "N/A"

const maxDisplayLen = 20

var displayPattern = regexp.MustCompile(`(?i)^\$?[\d,.]+\s*[BKMTX%]?[BKMTX%]?$`)

// ValidDisplay reports whether s is a short numeric-with-unit display value such as "1.3B" or "14.8%".
func ValidDisplay(s string) bool {
	if s == NotAvailable {
		return true
	}
	if s == "" || len(s) > maxDisplayLen {
		return false
	}
	return displayPattern.MatchString(s)
}

// Display returns s if it passes ValidDisplay, otherwise N/A.
func Display(s string) string {
	s = strings.TrimSpace(s)
	if !ValidDisplay(s) {
		return NotAvailable
	}
	return s
}

// FormatVolume renders share volume as 32.4M / 850K / 412.
func FormatVolume(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return NotAvailable
	}
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.0fK", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// FormatShares renders a share count with a B/M/K suffix.
func FormatShares(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return NotAvailable
	}
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	default:
		return fmt.Sprintf("%.0fK", v/1e3)
	}
}

// FormatCap renders market capitalization as 2.91T / 1.3B / 412M.
func FormatCap(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return NotAvailable
	}
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	default:
		return fmt.Sprintf("%.0fM", math.Round(v/1e6))
	}
}

// FormatFraction renders a 0..1 fraction as a percentage, e.g. 0.148 -> 14.8%.
func FormatFraction(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%%", v*100)
}
