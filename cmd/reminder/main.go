// Command reminder runs the watering reminder worker.
//
// Usage:
//
//	reminder
//
// The worker periodically scans every owner's garden and emails a digest of
// plants that are overdue or due today. It only makes sense against the
// shared datastore, so DATABASE_DSN is required.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/leaflink/leaflink-backend/internal/adapter/notifier/email"
	"github.com/leaflink/leaflink-backend/internal/app"
	"github.com/leaflink/leaflink-backend/internal/config"
	"github.com/leaflink/leaflink-backend/internal/reminder"
	"github.com/leaflink/leaflink-backend/internal/store/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("reminder: %v", err)
	}
	if !cfg.RemoteConfigured() {
		log.Fatal("reminder: DATABASE_DSN is required, the worker has no local mode")
	}

	logger := app.NewLogger(cfg.Log)
	logger.Info("starting reminder worker",
		slog.String("version", app.BuildVersion()),
		slog.Duration("recheck_period", cfg.Reminder.RecheckPeriod),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("reminder: connect to database: %v", err)
	}
	defer pool.Close()

	plants := postgres.NewPlantStore(pool, logger)
	sender := email.NewNotifier(cfg.Email, logger)

	poller := reminder.New(plants, sender, cfg.Reminder.RecheckPeriod, logger)
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("reminder: %v", err)
	}
}
