package recorder

import "HirschPicks/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *GenerationRun) error                  { return nil }
func (n *NoopRecorder) RecordPicks(_ string, _ *model.DailyPickSet) error { return nil }
func (n *NoopRecorder) RecordTrackRows(_ []model.TrackRecordRow) error    { return nil }
func (n *NoopRecorder) Close() error                                      { return nil }
