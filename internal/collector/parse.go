package collector

import (
	"math"
	"strconv"
	"strings"
)

// numberField validates a loosely typed JSON value into an optional number.
// Numbers and numeric strings are accepted; anything else, NaN and Inf are absent.
func numberField(v interface{}) *float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(n, ",", ""))
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		f = parsed
	case map[string]interface{}:
		// Yahoo sometimes wraps values as {"raw": 1.23, "fmt": "1.23"}.
		return numberField(n["raw"])
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func stringField(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s := stringField(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func valueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}
