package picker

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"HirschPicks/internal/model"
)

// DefaultTrackRecordLimit caps TrackRecord results when no limit is given.
const DefaultTrackRecordLimit = 100

// TrackRecord returns ledger rows newest first, optionally for one tier.
// Rows dated today are hidden until the next day's catch-up has measured them.
func (g *Generator) TrackRecord(ctx context.Context, tier string, limit int) ([]model.TrackRecordRow, error) {
	doc, err := g.Store.Get(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load store")
	}
	return FilterTrackRecord(doc.TrackRecord, tier, limit, g.Today()), nil
}

// FilterTrackRecord applies the tier filter, today exclusion, ordering and limit.
func FilterTrackRecord(rows []model.TrackRecordRow, tier string, limit int, today string) []model.TrackRecordRow {
	if limit <= 0 {
		limit = DefaultTrackRecordLimit
	}
	out := make([]model.TrackRecordRow, 0, len(rows))
	for _, r := range rows {
		if tier != "" && r.Category != tier {
			continue
		}
		if r.Date >= today {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
