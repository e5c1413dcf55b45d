package collector

import (
	"context"
	"errors"

	"HirschPicks/internal/model"
)

// ErrUnavailable means a provider call failed or returned no usable data.
// Callers treat it as absence, never as a failure of the whole batch.
var ErrUnavailable = errors.New("market data unavailable")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchHistory returns bars oldest first for a Yahoo-style range ("5d", "1mo") and interval ("1d").
	FetchHistory(ctx context.Context, symbol, rng, interval string) ([]model.OHLCV, error)
	// FetchQuotes returns whatever quotes the provider has for symbols; missing symbols are simply absent.
	FetchQuotes(ctx context.Context, symbols []string) ([]model.Quote, error)
	Name() string
}
