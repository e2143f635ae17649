package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"ourcash/internal/amqp"
	"ourcash/internal/backend"
	"ourcash/internal/config"
	"ourcash/internal/log"
	"ourcash/internal/services"
	"ourcash/internal/storage"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	log.SetDefault(logger)

	logger.Info("Starting forecast-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, cacheMgr, err := backend.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err)
		os.Exit(1)
	}
	defer cacheMgr.Stop()

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open mirror database", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var publisher services.AlertPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, continuing without alert publishing", log.FieldError, err)
		} else {
			defer client.Close()
			publisher = client
		}
	}

	svc := services.NewForecastService(store, repo, publisher, services.ForecastOptions{
		PrimaryAccount:    cfg.PrimaryAccount,
		DaysBack:          cfg.DaysBack,
		DaysForward:       cfg.DaysForward,
		RecencyWindowDays: cfg.RecencyWindowDays,
		AlertWindowDays:   cfg.AlertWindowDays,
		ReportWindowDays:  cfg.ReportWindowDays,
		AlertThreshold:    decimal.NewFromFloat(cfg.AlertThreshold),
	}, logger.WithComponent(log.ComponentForecast))

	runOnce := func() {
		summary, err := svc.Run(ctx, time.Now())
		if err != nil {
			logger.Error("Scheduled forecast failed", log.FieldError, err)
			return
		}
		logger.Info("Scheduled forecast finished",
			log.FieldRunID, summary.RunID,
			log.FieldRows, summary.Rows,
			"alerts", summary.Alerts)
	}

	// One run on startup, then on the configured schedule.
	logger.Info("Running initial forecast")
	runOnce()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.CronSpec, runOnce); err != nil {
		logger.Error("Invalid cron spec", log.FieldError, err, "spec", cfg.CronSpec)
		os.Exit(1)
	}
	scheduler.Start()
	logger.Info("Forecast schedule active", "spec", cfg.CronSpec)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Shutdown signal received", "signal", sig.String())

	cancel()
	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(30 * time.Second):
		logger.Warn("Timed out waiting for running job to finish")
	}
	logger.Info("forecast-worker stopped")
}
