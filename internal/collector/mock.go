package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"HirschPicks/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Symbols with no configured bars get a flat generated series around Price.
type MockFetcher struct {
	Price  float64
	Bars   map[string][]model.OHLCV
	Quotes map[string]model.Quote
	// Fail makes every call for the listed symbols return ErrUnavailable.
	Fail map[string]bool
	// QuotesDown makes FetchQuotes fail for the whole batch.
	QuotesDown bool

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) record(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[key]++
}

// Calls returns how many times the given endpoint/symbol pair was requested, e.g. "history:AAPL".
func (m *MockFetcher) Calls(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[key]
}

func (m *MockFetcher) FetchHistory(ctx context.Context, symbol, rng, _ string) ([]model.OHLCV, error) {
	m.record("history:" + symbol)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Fail[symbol] {
		return nil, fmt.Errorf("%w: mock %s", ErrUnavailable, symbol)
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	if m.Price <= 0 {
		return nil, fmt.Errorf("%w: mock has no data for %s", ErrUnavailable, symbol)
	}
	return GenerateMockBars(m.Price, rangeDays(rng), time.Now()), nil
}

func (m *MockFetcher) FetchQuotes(ctx context.Context, symbols []string) ([]model.Quote, error) {
	m.record("quotes")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.QuotesDown {
		return nil, fmt.Errorf("%w: mock quotes down", ErrUnavailable)
	}
	var out []model.Quote
	for _, s := range symbols {
		if m.Fail[s] {
			continue
		}
		if q, ok := m.Quotes[s]; ok {
			q.Symbol = s
			out = append(out, q)
		}
	}
	return out, nil
}

// GenerateMockBars builds count daily bars ending the session before end.
func GenerateMockBars(basePrice float64, count int, end time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   end.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

func rangeDays(rng string) int {
	switch rng {
	case "5d":
		return 5
	case "1mo":
		return 22
	case "3mo":
		return 64
	case "6mo":
		return 127
	case "1y":
		return 252
	case "2y":
		return 504
	default:
		return 22
	}
}
