package main

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"HirschPicks/internal/calendar"
	"HirschPicks/internal/collector"
	"HirschPicks/internal/config"
	"HirschPicks/internal/model"
	"HirschPicks/internal/picker"
	"HirschPicks/internal/recorder"
	"HirschPicks/internal/store"
	"HirschPicks/internal/universe"
)

// app holds the wired pipeline shared by every subcommand.
type app struct {
	Calendar  *calendar.Calendar
	Store     store.Store
	Recorder  recorder.Recorder
	Generator *picker.Generator
}

func newApp(c *config.Config) (*app, error) {
	cal, err := calendar.New(c.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("init calendar: %w", err)
	}

	fetcher := newFetcher(c)
	log.WithField("provider", fetcher.Name()).Info("market data source ready")
	coll := collector.NewCollector(fetcher, c.DataSource.Concurrency)
	coll.HistoryRange = c.DataSource.HistoryRange

	st, err := store.Open(store.Options{
		Backend:       c.Store.Backend,
		Path:          c.Store.Path,
		RedisAddr:     c.Store.RedisAddr,
		RedisPassword: c.Store.RedisPassword,
		RedisDB:       c.Store.RedisDB,
		Key:           c.Store.Key,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.WithField("backend", c.Store.Backend).Info("pick store ready")

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if c.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(c.Database.SQLitePath)
		if err != nil {
			log.WithError(err).Warn("init sqlite recorder failed, using noop")
		} else {
			rec = sr
		}
	}

	gen := picker.NewGenerator(st, coll, cal, rec)
	gen.Exploration = !c.Picker.DisableExploration
	return &app{Calendar: cal, Store: st, Recorder: rec, Generator: gen}, nil
}

func (a *app) Close() {
	if err := a.Recorder.Close(); err != nil {
		log.WithError(err).Warn("close recorder")
	}
	if err := a.Store.Close(); err != nil {
		log.WithError(err).Warn("close store")
	}
}

func newFetcher(c *config.Config) collector.Fetcher {
	switch strings.ToLower(c.DataSource.Provider) {
	case "rest":
		return collector.NewRESTFetcher(c.DataSource.BaseURLs, c.DataSource.APIKey, c.Proxy)
	case "mock":
		return newMockFetcher(time.Now())
	default:
		return collector.NewYahooFetcher(collector.YahooConfig{
			Hosts:             c.DataSource.Hosts,
			Timeout:           c.Timeout(),
			RequestsPerSecond: c.DataSource.RequestsPerSecond,
			Burst:             c.DataSource.Burst,
			Proxy:             c.Proxy,
		})
	}
}

// newMockFetcher seeds every registered candidate with a quote that fits its tier,
// so the whole pipeline can run offline.
func newMockFetcher(now time.Time) *collector.MockFetcher {
	m := &collector.MockFetcher{
		Bars:   make(map[string][]model.OHLCV),
		Quotes: make(map[string]model.Quote),
	}
	for _, cat := range universe.Categories {
		for i, cand := range universe.Candidates[cat.ID] {
			price, mcap := mockBand(cat, i)
			shares := mcap / price
			m.Bars[cand.Ticker] = collector.GenerateMockBars(price*(1-0.004*float64(i)), 30, now)
			m.Quotes[cand.Ticker] = model.Quote{
				Price:             model.Float(price),
				SharesOutstanding: model.Float(shares),
				MarketCap:         model.Float(mcap),
				Volume:            model.Float(1_000_000 * float64(i+1)),
				CompanyName:       cand.Company,
				Exchange:          cand.Exchange,
			}
		}
	}
	return m
}

func mockBand(cat model.Category, i int) (price, mcap float64) {
	price = 50 + 10*float64(i)
	if cat.MaxPrice > 0 {
		price = cat.MinPrice + (cat.MaxPrice-cat.MinPrice)*float64(i+1)/20
	}
	switch {
	case cat.MinCap > 0 && cat.MaxCap > 0:
		mcap = cat.MinCap + (cat.MaxCap-cat.MinCap)*float64(i+1)/20
	case cat.MinCap > 0:
		mcap = cat.MinCap * (1.5 + float64(i))
	default:
		mcap = price * 50_000_000
	}
	return price, mcap
}
