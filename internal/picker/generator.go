// Package picker runs one generation cycle: ledger catch-up, freshness gating,
// learning, rotation and per-tier selection, then persists the result.
package picker

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"HirschPicks/internal/calendar"
	"HirschPicks/internal/collector"
	"HirschPicks/internal/model"
	"HirschPicks/internal/recorder"
	"HirschPicks/internal/store"
	"HirschPicks/internal/strategy"
	"HirschPicks/internal/telemetry"
	"HirschPicks/internal/universe"
)

// Options controls one Generate call.
type Options struct {
	// Force regenerates even when the cached set is fresh, and replays the previous day's ledger.
	Force bool
	// Rotate regenerates while also excluding the tickers currently picked today.
	Rotate bool
	// Window overrides the window derived from the clock.
	Window model.TimeWindow
	// Trigger is recorded with the run ("scheduled", "manual", "command").
	Trigger string
}

// Generator owns the dependencies of a generation cycle.
type Generator struct {
	Store       store.Store
	Collector   *collector.Collector
	Calendar    *calendar.Calendar
	Recorder    recorder.Recorder
	Categories  []model.Category
	Universe    map[string][]model.Candidate
	AlgoVersion int
	// Exploration adds the deterministic exploration bonus to base scores.
	Exploration bool
	// LedgerRange is the history range fetched to find a pick's realized session.
	LedgerRange string
	Now         func() time.Time

	mu sync.Mutex
}

// NewGenerator creates a Generator over the registered universe.
func NewGenerator(st store.Store, coll *collector.Collector, cal *calendar.Calendar, rec recorder.Recorder) *Generator {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Generator{
		Store:       st,
		Collector:   coll,
		Calendar:    cal,
		Recorder:    rec,
		Categories:  universe.Categories,
		Universe:    universe.Candidates,
		AlgoVersion: universe.AlgoVersion,
		Exploration: true,
		LedgerRange: "5d",
		Now:         time.Now,
	}
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

func (g *Generator) tierIDs() []string {
	ids := make([]string, len(g.Categories))
	for i, c := range g.Categories {
		ids[i] = c.ID
	}
	return ids
}

// Today returns the current date key in the operating timezone.
func (g *Generator) Today() string {
	return g.Calendar.DateKey(g.now())
}

// Generate returns the pick set for dateKey, reusing the cached one when it is still fresh.
// Only a store failure is returned as an error; provider trouble degrades to placeholders.
func (g *Generator) Generate(ctx context.Context, dateKey string, opts Options) (*model.DailyPickSet, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	started := g.now()
	run := &recorder.GenerationRun{
		ID:        recorder.NewRunID(),
		DateKey:   dateKey,
		Trigger:   opts.Trigger,
		StartedAt: started,
	}
	defer func() {
		telemetry.GenerationDuration.Observe(time.Since(started).Seconds())
	}()

	window := opts.Window
	if window == "" {
		window = g.Calendar.WindowAt(started)
	}
	run.Window = window
	logger := log.WithField("date", dateKey).WithField("window", window)

	doc, err := g.Store.Get(ctx)
	if err != nil {
		return nil, g.fail(run, errors.Wrap(err, "load store"))
	}

	ledgerRows := g.catchUpLedger(ctx, doc, dateKey, opts.Force)
	run.LedgerRows = len(ledgerRows)

	cached := doc.DailyPicks[dateKey]
	freshness := g.Calendar.CheckWindow(cached, dateKey, window)
	reuse := cached.HasRealData() &&
		cached.AlgoVersion == g.AlgoVersion &&
		!opts.Force && !opts.Rotate &&
		freshness.Fresh()
	if reuse {
		if len(ledgerRows) > 0 {
			if err := g.Store.Set(ctx, doc); err != nil {
				return nil, g.fail(run, errors.Wrap(err, "persist ledger"))
			}
			g.recordLedger(ledgerRows)
		}
		run.Outcome = recorder.OutcomeCached
		g.finish(run, cached)
		logger.Debug("serving cached picks")
		return cached, nil
	}
	run.Reason = regenerationReason(cached, freshness, opts, g.AlgoVersion)
	logger.Infof("generating picks (%s)", run.Reason)

	// Learning must be complete before any tier is scored.
	learning := strategy.Learn(doc.TrackRecord, g.tierIDs())
	rot := g.rotationSet(doc, dateKey, cached, opts.Rotate)

	picks := g.selectAll(ctx, dateKey, window, started, learning, rot)
	if cached != nil && cached.DateKey == dateKey {
		for tier, p := range picks {
			if prev := cached.Picks[tier]; p.Placeholder && prev != nil && !prev.Placeholder {
				picks[tier] = prev
			}
		}
	}

	set := &model.DailyPickSet{
		DateKey:         dateKey,
		Picks:           picks,
		CreatedAt:       started,
		AlgoVersion:     g.AlgoVersion,
		TimeWindow:      window,
		ExcludedTickers: rot.sorted(),
	}
	for _, p := range picks {
		if p.Placeholder {
			run.Placeholders++
		} else {
			run.Picks++
		}
	}

	if !set.HasRealData() {
		logger.Warn("no tier produced a real pick; not persisting")
		if len(ledgerRows) > 0 {
			if err := g.Store.Set(ctx, doc); err != nil {
				return nil, g.fail(run, errors.Wrap(err, "persist ledger"))
			}
			g.recordLedger(ledgerRows)
		}
		run.Outcome = recorder.OutcomePlaceholder
		g.finish(run, nil)
		return set, nil
	}

	doc.DailyPicks[dateKey] = set
	if err := g.Store.Set(ctx, doc); err != nil {
		return nil, g.fail(run, errors.Wrap(err, "persist picks"))
	}
	g.recordLedger(ledgerRows)
	run.Outcome = recorder.OutcomeGenerated
	g.finish(run, set)
	return set, nil
}

func regenerationReason(cached *model.DailyPickSet, f calendar.Freshness, opts Options, version int) string {
	switch {
	case opts.Rotate:
		return "rotate"
	case opts.Force:
		return "force"
	case cached == nil:
		return string(calendar.StateAbsent)
	case cached.AlgoVersion != version:
		return "version_mismatch"
	case !cached.HasRealData():
		return "placeholder_only"
	default:
		return f.Reason
	}
}

func (g *Generator) fail(run *recorder.GenerationRun, err error) error {
	run.Outcome = recorder.OutcomeFailed
	run.Error = err.Error()
	g.finish(run, nil)
	log.WithField("date", run.DateKey).Errorf("generation failed: %v", err)
	return err
}

// finish updates counters and writes the run to the recorder. Recorder errors are only logged.
func (g *Generator) finish(run *recorder.GenerationRun, set *model.DailyPickSet) {
	run.FinishedAt = g.now()
	telemetry.Generations.WithLabelValues(run.Outcome).Inc()
	if err := g.Recorder.RecordRun(run); err != nil {
		log.Warnf("record run: %v", err)
	}
	if set != nil && run.Outcome == recorder.OutcomeGenerated {
		if err := g.Recorder.RecordPicks(run.ID, set); err != nil {
			log.Warnf("record picks: %v", err)
		}
	}
}

func (g *Generator) recordLedger(rows []model.TrackRecordRow) {
	if len(rows) == 0 {
		return
	}
	for _, r := range rows {
		telemetry.LedgerRows.WithLabelValues(r.Category).Inc()
	}
	if err := g.Recorder.RecordTrackRows(rows); err != nil {
		log.Warnf("record ledger rows: %v", err)
	}
}

// selectAll runs every tier concurrently. Each tier always yields a pick, possibly a placeholder.
func (g *Generator) selectAll(ctx context.Context, dateKey string, window model.TimeWindow, at time.Time,
	learning *model.LearningState, rot *rotation) map[string]*model.Pick {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		picks = make(map[string]*model.Pick, len(g.Categories))
	)
	for _, cat := range g.Categories {
		wg.Add(1)
		go func(cat model.Category) {
			defer wg.Done()
			p := g.selectTier(ctx, cat, dateKey, window, at, learning, rot)
			mu.Lock()
			picks[cat.ID] = p
			mu.Unlock()
		}(cat)
	}
	wg.Wait()
	return picks
}

// sortedTiers returns the map keys in a stable order.
func sortedTiers(m map[string]*model.Pick) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
