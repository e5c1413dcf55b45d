package picker

import (
	"context"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"HirschPicks/internal/collector"
	"HirschPicks/internal/model"
	"HirschPicks/internal/strategy"
	"HirschPicks/internal/telemetry"
)

// scoreTier fetches, filters and scores every candidate of one tier, best first.
func (g *Generator) scoreTier(ctx context.Context, cat model.Category, dateKey string, window model.TimeWindow,
	learning *model.LearningState) []model.ScoredCandidate {
	weights, ok := learning.Weights[cat.ID]
	if !ok {
		weights = strategy.BaseWeightsFor(cat.ID)
	}

	snaps := g.Collector.CollectTier(ctx, cat.ID, g.Universe[cat.ID])
	scored := make([]model.ScoredCandidate, 0, len(snaps))
	for _, snap := range snaps {
		if len(snap.Bars) < 2 {
			continue
		}
		metrics, ok := collector.ComputeMetrics(snap.Bars, snap.Quote)
		if !ok {
			continue
		}
		if !cat.Fits(metrics.Price, metrics.MarketCap) {
			log.WithField("tier", cat.ID).WithField("ticker", snap.Candidate.Ticker).
				Debugf("outside tier range: price %.2f", metrics.Price)
			continue
		}

		cand := snap.Candidate
		if snap.Quote != nil {
			if cand.Company == "" {
				cand.Company = snap.Quote.CompanyName
			}
			if cand.Exchange == "" {
				cand.Exchange = snap.Quote.Exchange
			}
		}

		bonus := 0
		if g.Exploration {
			bonus = strategy.ExplorationBonus(cand.Ticker, dateKey, window, learning.Tickers[cand.Ticker])
		}
		scored = append(scored, strategy.Evaluate(cand, metrics, weights, bonus))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		if a.BaseScore != b.BaseScore {
			return a.BaseScore > b.BaseScore
		}
		return a.Candidate.Ticker < b.Candidate.Ticker
	})
	telemetry.EligibleCandidates.WithLabelValues(cat.ID).Set(float64(len(scored)))
	return scored
}

// selectTier picks the best candidate not excluded by rotation, loosening the
// exclusions only when they leave nothing to pick.
func (g *Generator) selectTier(ctx context.Context, cat model.Category, dateKey string, window model.TimeWindow,
	at time.Time, learning *model.LearningState, rot *rotation) *model.Pick {
	logger := log.WithField("tier", cat.ID)
	scored := g.scoreTier(ctx, cat, dateKey, window, learning)
	if len(scored) == 0 {
		logger.Warn("no eligible candidates; emitting placeholder")
		return model.NewPlaceholder(cat.ID, dateKey, window, at)
	}

	for layer, excluded := range rot.layers() {
		for _, sc := range scored {
			if excluded[sc.Candidate.Ticker] {
				continue
			}
			if layer > 0 {
				logger.Infof("rotation exhausted the tier; relaxed to layer %d", layer)
			}
			logger.Infof("picked %s score %d (base %d, bonus %d)",
				sc.Candidate.Ticker, sc.FinalScore, sc.BaseScore, sc.ExplorationBonus)
			return newPick(cat.ID, dateKey, window, at, sc)
		}
	}
	return model.NewPlaceholder(cat.ID, dateKey, window, at)
}

func newPick(tier, dateKey string, window model.TimeWindow, at time.Time, sc model.ScoredCandidate) *model.Pick {
	ref := sc.Metrics.Price
	return &model.Pick{
		Candidate:        sc.Candidate,
		Category:         tier,
		Date:             dateKey,
		Metrics:          sc.Metrics,
		RawSignals:       sc.RawSignals,
		WeightedSignals:  sc.WeightedSignals,
		BaseScore:        sc.BaseScore,
		ExplorationBonus: sc.ExplorationBonus,
		Score:            sc.FinalScore,
		ReferencePrice:   &ref,
		ChosenAt:         at,
		TimeWindow:       window,
	}
}
