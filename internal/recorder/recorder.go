package recorder

import (
	"time"

	"github.com/google/uuid"

	"HirschPicks/internal/model"
)

// Run outcomes.
const (
	OutcomeGenerated   = "generated"
	OutcomeCached      = "cached"
	OutcomeFailed      = "failed"
	OutcomePlaceholder = "placeholder" // no real pick in any tier; nothing persisted
)

// GenerationRun describes one Generate call.
type GenerationRun struct {
	ID           string
	DateKey      string
	Window       model.TimeWindow
	Trigger      string // "scheduled", "manual", "rotate", "command"
	Outcome      string
	Reason       string // staleness reason that caused regeneration
	StartedAt    time.Time
	FinishedAt   time.Time
	Picks        int
	Placeholders int
	LedgerRows   int
	Error        string
}

// NewRunID returns a fresh identifier for a generation run.
func NewRunID() string {
	return uuid.NewString()
}

// Recorder persists historical data for analysis. Failures are never fatal to a generation.
type Recorder interface {
	RecordRun(run *GenerationRun) error
	RecordPicks(runID string, set *model.DailyPickSet) error
	RecordTrackRows(rows []model.TrackRecordRow) error
	Close() error
}
