// Package calendar maps wall-clock moments onto trading days and the three daily pick windows.
package calendar

import (
	"fmt"
	"time"

	"HirschPicks/internal/model"
)

// DefaultTimezone is the operating timezone of the US equity session.
const DefaultTimezone = "America/New_York"

const dateLayout = "2006-01-02"

// Window boundaries, as minutes since local midnight.
const (
	PreopenMinute = 8*60 + 30
	OpenMinute    = 9*60 + 30
)

// usMarketHolidays are full-day NYSE closures.
var usMarketHolidays = map[string]bool{
	"2025-01-01": true, "2025-01-20": true, "2025-02-17": true, "2025-04-18": true, "2025-05-26": true,
	"2025-06-19": true, "2025-07-04": true, "2025-09-01": true, "2025-11-27": true, "2025-12-25": true,
	"2026-01-01": true, "2026-01-19": true, "2026-02-16": true, "2026-04-03": true, "2026-05-25": true,
	"2026-06-19": true, "2026-07-03": true, "2026-09-07": true, "2026-11-26": true, "2026-12-25": true,
	"2027-01-01": true, "2027-01-18": true, "2027-02-15": true, "2027-03-26": true, "2027-05-31": true,
	"2027-06-18": true, "2027-07-05": true, "2027-09-06": true, "2027-11-25": true, "2027-12-24": true,
}

// Calendar answers trading-day and window questions in one timezone.
type Calendar struct {
	loc *time.Location
}

// New loads the named timezone. An empty name uses DefaultTimezone.
func New(tz string) (*Calendar, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return &Calendar{loc: loc}, nil
}

// Location returns the operating timezone.
func (c *Calendar) Location() *time.Location { return c.loc }

// DateKey formats t as YYYY-MM-DD in the operating timezone.
func (c *Calendar) DateKey(t time.Time) string {
	return t.In(c.loc).Format(dateLayout)
}

// MinuteOfDay returns minutes since local midnight.
func (c *Calendar) MinuteOfDay(t time.Time) int {
	lt := t.In(c.loc)
	return lt.Hour()*60 + lt.Minute()
}

// IsTradingDay reports whether dateKey is a weekday that is not a market holiday.
func IsTradingDay(dateKey string) bool {
	d, err := time.Parse(dateLayout, dateKey)
	if err != nil {
		return false
	}
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !usMarketHolidays[dateKey]
}

// PreviousTradingDay walks back from dateKey to the closest earlier trading day.
func PreviousTradingDay(dateKey string) string {
	d, err := time.Parse(dateLayout, dateKey)
	if err != nil {
		return ""
	}
	for guard := 0; guard < 10; guard++ {
		d = d.AddDate(0, 0, -1)
		key := d.Format(dateLayout)
		if IsTradingDay(key) {
			return key
		}
	}
	return d.Format(dateLayout)
}

// WindowAt returns the pick window active at t. Non-trading days have no window.
func (c *Calendar) WindowAt(t time.Time) model.TimeWindow {
	if !IsTradingDay(c.DateKey(t)) {
		return model.WindowClosed
	}
	return windowForMinute(c.MinuteOfDay(t))
}

func windowForMinute(m int) model.TimeWindow {
	switch {
	case m < PreopenMinute:
		return model.WindowEarly
	case m < OpenMinute:
		return model.WindowPreopen
	default:
		return model.WindowOpen
	}
}
