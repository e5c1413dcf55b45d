package picker

import (
	"sort"

	"HirschPicks/internal/calendar"
	"HirschPicks/internal/model"
	"HirschPicks/internal/store"
)

// rotation holds the tickers a cycle should avoid, from strictest to loosest.
type rotation struct {
	full    map[string]bool // previous two trading days, rotated-away picks, sticky exclusions
	prevDay map[string]bool // previous trading day only
}

// layers returns the exclusion sets tried in order. The last layer excludes nothing,
// so a scored candidate is always found when one exists.
func (r *rotation) layers() []map[string]bool {
	return []map[string]bool{r.full, r.prevDay, nil}
}

func (r *rotation) sorted() []string {
	out := make([]string, 0, len(r.full))
	for t := range r.full {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// rotationSet gathers tickers picked on the previous two trading days, today's
// picks when rotating, and any exclusions persisted earlier today.
func (g *Generator) rotationSet(doc *store.Document, dateKey string, cached *model.DailyPickSet, rotate bool) *rotation {
	r := &rotation{full: make(map[string]bool), prevDay: make(map[string]bool)}

	d1 := calendar.PreviousTradingDay(dateKey)
	d2 := calendar.PreviousTradingDay(d1)
	for _, t := range doc.DailyPicks[d1].Tickers() {
		r.full[t] = true
		r.prevDay[t] = true
	}
	for _, t := range doc.DailyPicks[d2].Tickers() {
		r.full[t] = true
	}

	if cached != nil && cached.DateKey == dateKey {
		if rotate {
			for _, t := range cached.Tickers() {
				r.full[t] = true
			}
		}
		for _, t := range cached.ExcludedTickers {
			r.full[t] = true
		}
	}
	return r
}
