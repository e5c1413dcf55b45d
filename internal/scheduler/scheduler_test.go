package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"HirschPicks/internal/model"
	"HirschPicks/internal/picker"
)

type fakePicker struct {
	today    string
	calls    []picker.Options
	tiers    []string
	err      error
	rows     []model.TrackRecordRow
	trackErr error
}

func (f *fakePicker) Generate(_ context.Context, dateKey string, opts picker.Options) (*model.DailyPickSet, error) {
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return nil, f.err
	}
	return &model.DailyPickSet{
		DateKey:    dateKey,
		TimeWindow: opts.Window,
		Picks: map[string]*model.Pick{
			"penny": {Candidate: model.Candidate{Ticker: "AAA"}, Category: "penny", Score: 77},
		},
	}, nil
}

func (f *fakePicker) TrackRecord(_ context.Context, tier string, _ int) ([]model.TrackRecordRow, error) {
	f.tiers = append(f.tiers, tier)
	return f.rows, f.trackErr
}

func (f *fakePicker) Today() string { return f.today }

type recordingNotifier struct{ sent []string }

func (r *recordingNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	r.sent = append(r.sent, text)
	return nil
}

func newTestScheduler(p *fakePicker) (*Scheduler, *recordingNotifier) {
	n := &recordingNotifier{}
	return NewScheduler(context.Background(), p, n, time.UTC), n
}

func TestWindowTask_TradingDay(t *testing.T) {
	p := &fakePicker{today: "2025-06-03"}
	s, n := newTestScheduler(p)

	s.windowTask(model.WindowPreopen)

	require.Len(t, p.calls, 1)
	assert.Equal(t, model.WindowPreopen, p.calls[0].Window)
	assert.Equal(t, "scheduled", p.calls[0].Trigger)
	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "<b>AAA</b>")
}

func TestWindowTask_SkipsWeekend(t *testing.T) {
	p := &fakePicker{today: "2025-06-07"}
	s, n := newTestScheduler(p)

	s.windowTask(model.WindowEarly)

	assert.Empty(t, p.calls)
	assert.Empty(t, n.sent)
}

func TestWindowTask_ReportsFailure(t *testing.T) {
	p := &fakePicker{today: "2025-06-03", err: errors.New("store down")}
	s, n := newTestScheduler(p)

	s.windowTask(model.WindowOpen)

	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "store down")
}

func TestRegisterAll(t *testing.T) {
	s, _ := newTestScheduler(&fakePicker{})
	require.NoError(t, s.RegisterAll("0 5 0 * * 1-5", "0 30 8 * * 1-5", "0 30 9 * * 1-5"))
	assert.Len(t, s.Cron.Entries(), 3)

	assert.Error(t, s.RegisterAll("every other tuesday", "0 30 8 * * 1-5", "0 30 9 * * 1-5"))
}

func TestHandleCommand(t *testing.T) {
	p := &fakePicker{today: "2025-06-03", rows: []model.TrackRecordRow{{Date: "2025-06-02", Category: "penny", Ticker: "BBB", ReturnPct: 1}}}
	s, _ := newTestScheduler(p)
	ctx := context.Background()

	assert.Contains(t, s.HandleCommand(ctx, "/today"), "AAA")
	assert.Contains(t, s.HandleCommand(ctx, "/rotate@HirschBot"), "AAA")
	assert.Contains(t, s.HandleCommand(ctx, "/refresh"), "AAA")
	require.Len(t, p.calls, 3)
	assert.False(t, p.calls[0].Rotate || p.calls[0].Force)
	assert.True(t, p.calls[1].Rotate)
	assert.True(t, p.calls[2].Force)

	assert.Contains(t, s.HandleCommand(ctx, "/track PENNY"), "<b>BBB</b>")
	assert.Contains(t, s.HandleCommand(ctx, "/track"), "all tiers")
	assert.Equal(t, []string{"penny", ""}, p.tiers)

	assert.Contains(t, s.HandleCommand(ctx, "/track nano"), `Unknown tier "nano"`)
	assert.Contains(t, s.HandleCommand(ctx, "hello"), "Available commands")

	p.trackErr = errors.New("boom")
	assert.Contains(t, s.HandleCommand(ctx, "/track"), "Track record unavailable")
}
