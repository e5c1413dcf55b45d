package calendar

import (
	"time"

	"HirschPicks/internal/model"
)

// State is the freshness of a cached pick set relative to "now".
type State string

const (
	StateAbsent State = "absent"
	StateFresh  State = "fresh"
	StateStale  State = "stale"
)

// Reasons a cached set went stale.
const (
	ReasonDateChanged     = "date_changed"
	ReasonCreatedOtherDay = "created_other_day"
	ReasonCrossedPreopen  = "crossed_preopen"
	ReasonCrossedOpen     = "crossed_open"
	ReasonWindowMismatch  = "window_mismatch"
)

// Freshness is the outcome of a staleness check.
type Freshness struct {
	State  State
	Reason string
}

// Fresh reports whether the cached set can be served as-is.
func (f Freshness) Fresh() bool { return f.State == StateFresh }

// Check decides whether set is fresh for today at now.
func (c *Calendar) Check(set *model.DailyPickSet, today string, now time.Time) Freshness {
	return c.CheckWindow(set, today, c.WindowAt(now))
}

// CheckWindow is Check with an explicit current window, used when the caller overrides it.
func (c *Calendar) CheckWindow(set *model.DailyPickSet, today string, window model.TimeWindow) Freshness {
	if set == nil {
		return Freshness{State: StateAbsent}
	}
	if set.DateKey != today {
		return Freshness{State: StateStale, Reason: ReasonDateChanged}
	}
	if c.DateKey(set.CreatedAt) != today {
		return Freshness{State: StateStale, Reason: ReasonCreatedOtherDay}
	}
	// window is derived from now's minute of day, so comparing ranks is the
	// same as checking whether now crossed 08:30 or 09:30.
	if rank(window) >= rank(model.WindowPreopen) && set.TimeWindow == model.WindowEarly {
		return Freshness{State: StateStale, Reason: ReasonCrossedPreopen}
	}
	if rank(window) >= rank(model.WindowOpen) && set.TimeWindow != model.WindowOpen {
		return Freshness{State: StateStale, Reason: ReasonCrossedOpen}
	}
	if set.TimeWindow != window {
		return Freshness{State: StateStale, Reason: ReasonWindowMismatch}
	}
	return Freshness{State: StateFresh}
}

func rank(w model.TimeWindow) int {
	switch w {
	case model.WindowEarly:
		return 1
	case model.WindowPreopen:
		return 2
	case model.WindowOpen:
		return 3
	default:
		return 0
	}
}
