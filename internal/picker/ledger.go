package picker

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"HirschPicks/internal/calculator"
	"HirschPicks/internal/calendar"
	"HirschPicks/internal/model"
	"HirschPicks/internal/store"
)

// catchUpLedger replays the previous trading day's picks against their realized
// session and upserts the rows into doc. Tiers are replayed concurrently and
// independently; a tier whose history cannot be fetched is retried next cycle.
func (g *Generator) catchUpLedger(ctx context.Context, doc *store.Document, dateKey string, force bool) []model.TrackRecordRow {
	prevKey := calendar.PreviousTradingDay(dateKey)
	prev := doc.DailyPicks[prevKey]
	if prev == nil {
		return nil
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		rows = make(map[string]model.TrackRecordRow)
	)
	for _, tier := range sortedTiers(prev.Picks) {
		p := prev.Picks[tier]
		if p == nil || p.Placeholder {
			continue
		}
		if !force && doc.HasTrackRow(prevKey, tier, p.Ticker) {
			continue
		}
		wg.Add(1)
		go func(tier string, p *model.Pick) {
			defer wg.Done()
			row, err := g.buildTrackRow(ctx, prevKey, tier, p)
			if err != nil {
				log.WithField("tier", tier).WithField("ticker", p.Ticker).
					Warnf("ledger catch-up for %s skipped: %v", prevKey, err)
				return
			}
			mu.Lock()
			rows[tier] = row
			mu.Unlock()
		}(tier, p)
	}
	wg.Wait()

	out := make([]model.TrackRecordRow, 0, len(rows))
	for _, tier := range sortedTiers(prev.Picks) {
		row, ok := rows[tier]
		if !ok {
			continue
		}
		doc.UpsertTrackRow(row)
		out = append(out, row)
	}
	return out
}

// buildTrackRow measures one pick against the session bar of its pick date.
// Entry is the realized open when the session is found, otherwise the reference price.
func (g *Generator) buildTrackRow(ctx context.Context, dateKey, tier string, p *model.Pick) (model.TrackRecordRow, error) {
	rng := g.LedgerRange
	if rng == "" {
		rng = "5d"
	}
	bars, err := g.Collector.Fetcher.FetchHistory(ctx, p.Ticker, rng, "1d")
	if err != nil {
		return model.TrackRecordRow{}, err
	}
	if len(bars) == 0 {
		return model.TrackRecordRow{}, errors.Errorf("no bars for %s", p.Ticker)
	}

	live := livePrice(p)
	entry := live
	if p.ReferencePrice != nil && *p.ReferencePrice > 0 {
		entry = *p.ReferencePrice
	}
	closePx, high, low := live, live, live

	for _, b := range bars {
		if g.Calendar.DateKey(b.Time) != dateKey {
			continue
		}
		if b.Open > 0 {
			entry = b.Open
		}
		closePx, high, low = b.Close, b.High, b.Low
		break
	}

	return model.TrackRecordRow{
		Date:           dateKey,
		Category:       tier,
		Ticker:         p.Ticker,
		ChosenAt:       p.ChosenAt,
		ReferencePrice: calculator.Round(entry, 2),
		Close:          calculator.Round(closePx, 2),
		High:           calculator.Round(high, 2),
		Low:            calculator.Round(low, 2),
		ReturnPct:      calculator.Round(calculator.PercentFrom(entry, closePx), 2),
		MaxRunUpPct:    calculator.Round(calculator.PercentFrom(entry, high), 2),
		MaxDrawdownPct: calculator.Round(calculator.PercentFrom(entry, low), 2),
		Score:          p.Score,
		RawSignals:     signalsCopy(p.RawSignals),
	}, nil
}

// livePrice is the price the pick was made at.
func livePrice(p *model.Pick) float64 {
	if p.Metrics != nil && p.Metrics.Price > 0 {
		return p.Metrics.Price
	}
	if p.ReferencePrice != nil {
		return *p.ReferencePrice
	}
	return 0
}

func signalsCopy(s model.Signals) *model.Signals {
	return &s
}
