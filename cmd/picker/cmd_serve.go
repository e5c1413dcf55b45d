package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"HirschPicks/internal/notifier"
	"HirschPicks/internal/scheduler"
	"HirschPicks/internal/telemetry"
)

var serveRunOnStart bool

// serveCmd runs the scheduler, the Telegram bot and the metrics endpoint.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run scheduled generation, bot commands and the metrics endpoint",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveRunOnStart, "run-on-start", os.Getenv("RUN_ON_START") == "true", "Generate and publish once at startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Info("hirsch-picks starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var n notifier.Notifier = notifier.LogNotifier{}
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn, err = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		if err != nil {
			return err
		}
		n = tn
	} else {
		log.Warn("telegram not configured, notifications go to the log")
	}

	sched := scheduler.NewScheduler(ctx, a.Generator, n, a.Calendar.Location())
	if err := sched.RegisterAll(cfg.Schedule.EarlyCron, cfg.Schedule.PreopenCron, cfg.Schedule.OpenCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	go func() {
		if err := telemetry.Serve(ctx, cfg.Metrics.Addr); err != nil {
			log.WithError(err).Error("metrics server")
		}
	}()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info("telegram polling started")
	}

	if serveRunOnStart {
		log.Info("run-on-start enabled, generating now")
		go sched.RunNow()
	}

	log.Info("hirsch-picks is running, press Ctrl+C to stop")
	<-ctx.Done()
	log.Info("shutdown signal received, stopping")
	return nil
}
