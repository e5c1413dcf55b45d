package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"HirschPicks/internal/model"
)

// DefaultYahooHosts are tried in order; the first host that answers wins.
var DefaultYahooHosts = []string{
	"https://query1.finance.yahoo.com",
	"https://query2.finance.yahoo.com",
}

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var quoteFields = []string{
	"symbol", "regularMarketPrice", "regularMarketChangePercent", "regularMarketVolume",
	"regularMarketPreviousClose", "regularMarketOpen", "marketCap", "sharesOutstanding",
	"averageDailyVolume3Month", "averageDailyVolume10Day", "floatShares",
	"shortPercentOfFloat", "sharesShort", "preMarketVolume",
	"longName", "shortName", "fullExchangeName", "exchangeName",
}

// YahooConfig tunes the Yahoo Finance fetcher.
type YahooConfig struct {
	Hosts             []string
	Timeout           time.Duration
	RetryWait         time.Duration
	RequestsPerSecond float64
	Burst             int
	Proxy             string
}

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	pool *hostPool
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(cfg YahooConfig) *YahooFetcher {
	if len(cfg.Hosts) == 0 {
		cfg.Hosts = DefaultYahooHosts
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = 500 * time.Millisecond
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(1).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(2*cfg.RetryWait).
		AddRetryCondition(transient).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	return &YahooFetcher{pool: newHostPool("yahoo", client, cfg.Hosts, limiter)}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func at(values []interface{}, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return numberField(values[i])
}

// FetchHistory fetches daily or intraday bars from the v8 chart endpoint.
func (f *YahooFetcher) FetchHistory(ctx context.Context, symbol, rng, interval string) ([]model.OHLCV, error) {
	body, err := f.pool.get(ctx, "chart", "/v8/finance/chart/"+url.PathEscape(symbol), map[string]string{
		"range":          rng,
		"interval":       interval,
		"includePrePost": "true",
		"events":         "div,splits",
	})
	if err != nil {
		return nil, err
	}
	return parseChart(body)
}

func parseChart(body []byte) ([]model.OHLCV, error) {
	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("%w: yahoo decode: %v", ErrUnavailable, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: yahoo api error: %s", ErrUnavailable, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: yahoo: no data returned", ErrUnavailable)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := at(quote.Close, i)
		if c == nil {
			continue // skip null bars (holidays, halted sessions)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   valueOr(at(quote.Open, i), *c),
			High:   valueOr(at(quote.High, i), *c),
			Low:    valueOr(at(quote.Low, i), *c),
			Close:  *c,
			Volume: valueOr(at(quote.Volume, i), 0),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// FetchQuotes fetches a batch of live quotes from the v7 quote endpoint.
func (f *YahooFetcher) FetchQuotes(ctx context.Context, symbols []string) ([]model.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	body, err := f.pool.get(ctx, "quote", "/v7/finance/quote", map[string]string{
		"symbols": strings.Join(symbols, ","),
		"fields":  strings.Join(quoteFields, ","),
	})
	if err != nil {
		return nil, err
	}
	return parseQuotes(body)
}

func parseQuotes(body []byte) ([]model.Quote, error) {
	var raw struct {
		QuoteResponse struct {
			Result []map[string]interface{} `json:"result"`
		} `json:"quoteResponse"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: yahoo quote decode: %v", ErrUnavailable, err)
	}
	quotes := make([]model.Quote, 0, len(raw.QuoteResponse.Result))
	for _, m := range raw.QuoteResponse.Result {
		q := quoteFromMap(m)
		if q.Symbol == "" {
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func quoteFromMap(m map[string]interface{}) model.Quote {
	return model.Quote{
		Symbol:              strings.ToUpper(stringField(m["symbol"])),
		Price:               numberField(m["regularMarketPrice"]),
		ChangePct:           numberField(m["regularMarketChangePercent"]),
		Volume:              numberField(m["regularMarketVolume"]),
		PreviousClose:       numberField(m["regularMarketPreviousClose"]),
		Open:                numberField(m["regularMarketOpen"]),
		MarketCap:           numberField(m["marketCap"]),
		SharesOutstanding:   numberField(m["sharesOutstanding"]),
		AvgVolume3Month:     numberField(m["averageDailyVolume3Month"]),
		AvgVolume10Day:      numberField(m["averageDailyVolume10Day"]),
		FloatShares:         numberField(m["floatShares"]),
		ShortPercentOfFloat: numberField(m["shortPercentOfFloat"]),
		SharesShort:         numberField(m["sharesShort"]),
		PreMarketVolume:     numberField(m["preMarketVolume"]),
		CompanyName:         firstString(m, "longName", "shortName"),
		Exchange:            firstString(m, "fullExchangeName", "exchangeName", "exchange"),
	}
}
