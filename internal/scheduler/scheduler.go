// Package scheduler triggers pick generation at window boundaries and answers bot commands.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"HirschPicks/internal/calendar"
	"HirschPicks/internal/model"
	"HirschPicks/internal/notifier"
	"HirschPicks/internal/picker"
	"HirschPicks/internal/universe"
)

// sendRetries is the retry budget for every outbound notification.
const sendRetries = 3

// Picker is the subset of picker.Generator the scheduler drives.
type Picker interface {
	Generate(ctx context.Context, dateKey string, opts picker.Options) (*model.DailyPickSet, error)
	TrackRecord(ctx context.Context, tier string, limit int) ([]model.TrackRecordRow, error)
	Today() string
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron       *cron.Cron
	Picker     Picker
	Notifier   notifier.Notifier
	Categories []model.Category
	Ctx        context.Context
}

// NewScheduler creates a Scheduler whose cron specs are evaluated in loc.
func NewScheduler(ctx context.Context, p Picker, n notifier.Notifier, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	cronLogger := cron.PrintfLogger(log.StandardLogger())
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		Picker:     p,
		Notifier:   n,
		Categories: universe.Categories,
		Ctx:        ctx,
	}
}

// RegisterAll registers one generation task per window boundary.
func (s *Scheduler) RegisterAll(earlyCron, preopenCron, openCron string) error {
	specs := []struct {
		spec   string
		window model.TimeWindow
	}{
		{earlyCron, model.WindowEarly},
		{preopenCron, model.WindowPreopen},
		{openCron, model.WindowOpen},
	}
	for _, sp := range specs {
		window := sp.window
		if _, err := s.Cron.AddFunc(sp.spec, func() { s.windowTask(window) }); err != nil {
			return fmt.Errorf("register %s task: %w", window, err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info("scheduler stopped")
}

// RunNow generates for the current window immediately and publishes the result.
func (s *Scheduler) RunNow() {
	s.publish(s.Ctx, picker.Options{Trigger: "startup"})
}

func (s *Scheduler) windowTask(window model.TimeWindow) {
	today := s.Picker.Today()
	if !calendar.IsTradingDay(today) {
		log.WithField("date", today).Debug("not a trading day, skipping scheduled generation")
		return
	}
	s.publish(s.Ctx, picker.Options{Window: window, Trigger: "scheduled"})
}

func (s *Scheduler) publish(ctx context.Context, opts picker.Options) {
	set, err := s.generate(ctx, opts)
	if err != nil {
		s.trySend(ctx, fmt.Sprintf("❌ Pick generation failed: %v", err))
		return
	}
	s.trySend(ctx, notifier.FormatPickSet(set, s.Categories))
}

func (s *Scheduler) generate(ctx context.Context, opts picker.Options) (*model.DailyPickSet, error) {
	today := s.Picker.Today()
	set, err := s.Picker.Generate(ctx, today, opts)
	if err != nil {
		log.WithError(err).WithField("date", today).Error("generate picks")
		return nil, err
	}
	return set, nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	name := strings.ToLower(fields[0])
	if i := strings.IndexByte(name, '@'); i > 0 {
		name = name[:i]
	}

	switch name {
	case "/today":
		return s.reply(ctx, picker.Options{Trigger: "command"})
	case "/rotate":
		return s.reply(ctx, picker.Options{Rotate: true, Trigger: "command"})
	case "/refresh":
		return s.reply(ctx, picker.Options{Force: true, Trigger: "command"})
	case "/track":
		tier := ""
		if len(fields) > 1 {
			tier = strings.ToLower(fields[1])
			if _, ok := universe.Category(tier); !ok {
				return fmt.Sprintf("Unknown tier %q.\n\n%s", tier, notifier.FormatHelp())
			}
		}
		rows, err := s.Picker.TrackRecord(ctx, tier, picker.DefaultTrackRecordLimit)
		if err != nil {
			log.WithError(err).Error("load track record")
			return fmt.Sprintf("❌ Track record unavailable: %v", err)
		}
		return notifier.FormatTrackRecord(tier, rows)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) reply(ctx context.Context, opts picker.Options) string {
	set, err := s.generate(ctx, opts)
	if err != nil {
		return fmt.Sprintf("❌ Pick generation failed: %v", err)
	}
	return notifier.FormatPickSet(set, s.Categories)
}

func (s *Scheduler) trySend(ctx context.Context, text string) {
	if err := s.Notifier.SendWithRetry(ctx, text, sendRetries); err != nil {
		log.WithError(err).Error("send notification")
	}
}
