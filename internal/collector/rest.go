package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"HirschPicks/internal/model"
)

// RESTFetcher implements Fetcher against a self-hosted bars/quotes REST API.
// BaseURLs are tried in order; the first that answers wins.
type RESTFetcher struct {
	BaseURLs []string
	pool     *hostPool
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURLs []string, apiKey, proxyURL string) *RESTFetcher {
	client := resty.New().
		SetTimeout(30*time.Second).
		SetRetryCount(1).
		SetRetryWaitTime(500*time.Millisecond).
		AddRetryCondition(transient).
		SetHeader("Accept", "application/json")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	pool := newHostPool("rest", client, baseURLs, nil)
	return &RESTFetcher{BaseURLs: pool.hosts, pool: pool}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars endpoint.
type restBar struct {
	Timestamp int64    `json:"timestamp"`
	Open      *float64 `json:"open"`
	High      *float64 `json:"high"`
	Low       *float64 `json:"low"`
	Close     *float64 `json:"close"`
	Volume    *float64 `json:"volume"`
}

func (f *RESTFetcher) FetchHistory(ctx context.Context, symbol, rng, interval string) ([]model.OHLCV, error) {
	body, err := f.pool.get(ctx, "bars", "/api/v1/bars", map[string]string{
		"symbol":   symbol,
		"range":    rng,
		"interval": interval,
	})
	if err != nil {
		return nil, err
	}
	var raw []restBar
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode bars: %v", ErrUnavailable, err)
	}
	bars := make([]model.OHLCV, 0, len(raw))
	for _, rb := range raw {
		c := finite(rb.Close)
		if c == nil {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(rb.Timestamp, 0),
			Open:   valueOr(finite(rb.Open), *c),
			High:   valueOr(finite(rb.High), *c),
			Low:    valueOr(finite(rb.Low), *c),
			Close:  *c,
			Volume: valueOr(finite(rb.Volume), 0),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func (f *RESTFetcher) FetchQuotes(ctx context.Context, symbols []string) ([]model.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	body, err := f.pool.get(ctx, "quotes", "/api/v1/quotes", map[string]string{
		"symbols": strings.Join(symbols, ","),
	})
	if err != nil {
		return nil, err
	}
	var raw []map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode quotes: %v", ErrUnavailable, err)
	}
	quotes := make([]model.Quote, 0, len(raw))
	for _, m := range raw {
		q := model.Quote{
			Symbol:              strings.ToUpper(stringField(m["symbol"])),
			Price:               numberField(m["price"]),
			ChangePct:           numberField(m["change_pct"]),
			Volume:              numberField(m["volume"]),
			PreviousClose:       numberField(m["previous_close"]),
			Open:                numberField(m["open"]),
			MarketCap:           numberField(m["market_cap"]),
			SharesOutstanding:   numberField(m["shares_outstanding"]),
			AvgVolume3Month:     numberField(m["avg_volume_3m"]),
			AvgVolume10Day:      numberField(m["avg_volume_10d"]),
			FloatShares:         numberField(m["float_shares"]),
			ShortPercentOfFloat: numberField(m["short_percent_of_float"]),
			SharesShort:         numberField(m["shares_short"]),
			PreMarketVolume:     numberField(m["premarket_volume"]),
			CompanyName:         firstString(m, "name"),
			Exchange:            firstString(m, "exchange"),
		}
		if q.Symbol == "" {
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func finite(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return numberField(*p)
}
