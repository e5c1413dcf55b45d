package collector

import (
	"context"
	"errors"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"HirschPicks/internal/model"
)

const (
	// DefaultHistoryRange is the daily history requested per candidate during selection.
	DefaultHistoryRange = "1mo"
	// DefaultConcurrency bounds in-flight history requests per tier.
	DefaultConcurrency = 8
)

// Snapshot is the raw provider data gathered for one candidate in one cycle.
// Bars is nil and Quote is nil when the provider had nothing for the symbol.
type Snapshot struct {
	Candidate model.Candidate
	Bars      []model.OHLCV
	Quote     *model.Quote
}

// Collector fans provider calls out across a tier's candidates.
type Collector struct {
	Fetcher      Fetcher
	Concurrency  int
	HistoryRange string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, concurrency int) *Collector {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Collector{Fetcher: fetcher, Concurrency: concurrency, HistoryRange: DefaultHistoryRange}
}

// CollectTier fetches one quote batch and a daily history per candidate, concurrently.
// Provider failures never abort the batch; the affected snapshot is simply missing data.
func (c *Collector) CollectTier(ctx context.Context, tier string, candidates []model.Candidate) []Snapshot {
	snaps := make([]Snapshot, len(candidates))
	symbols := make([]string, len(candidates))
	for i, cand := range candidates {
		snaps[i].Candidate = cand
		symbols[i] = cand.Ticker
	}

	var (
		wg     sync.WaitGroup
		quotes map[string]*model.Quote
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		quotes = c.quoteBatch(ctx, tier, symbols)
	}()

	rng := c.HistoryRange
	if rng == "" {
		rng = DefaultHistoryRange
	}
	var g errgroup.Group
	g.SetLimit(c.Concurrency)
	for i := range snaps {
		i := i
		g.Go(func() error {
			sym := snaps[i].Candidate.Ticker
			bars, err := c.Fetcher.FetchHistory(ctx, sym, rng, "1d")
			if err != nil {
				logFetchError(tier, sym, err)
				return nil
			}
			snaps[i].Bars = bars
			return nil
		})
	}
	_ = g.Wait()
	wg.Wait()

	for i := range snaps {
		snaps[i].Quote = quotes[strings.ToUpper(snaps[i].Candidate.Ticker)]
	}
	return snaps
}

func (c *Collector) quoteBatch(ctx context.Context, tier string, symbols []string) map[string]*model.Quote {
	out := make(map[string]*model.Quote, len(symbols))
	quotes, err := c.Fetcher.FetchQuotes(ctx, symbols)
	if err != nil {
		log.WithField("tier", tier).Warnf("quote batch unavailable from %s: %v", c.Fetcher.Name(), err)
		return out
	}
	for i := range quotes {
		q := quotes[i]
		out[strings.ToUpper(q.Symbol)] = &q
	}
	return out
}

func logFetchError(tier, symbol string, err error) {
	entry := log.WithField("tier", tier).WithField("ticker", symbol)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		entry.Debugf("history fetch abandoned: %v", err)
		return
	}
	entry.Warnf("history unavailable: %v", err)
}
