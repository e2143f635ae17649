package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"ourcash/internal/amqp"
	"ourcash/internal/core"
	"ourcash/internal/forecast"
	"ourcash/internal/log"
	"ourcash/internal/sheets"
)

// RunRecorder persists the outcome of a forecast run.
type RunRecorder interface {
	RecordRun(ctx context.Context, run core.ForecastRun) error
}

// AlertPublisher fans run results out over the message broker.
type AlertPublisher interface {
	PublishLowBalanceAlert(ctx context.Context, msg *amqp.LowBalanceAlertMessage) error
	PublishRunCompleted(ctx context.Context, msg *amqp.RunCompletedMessage) error
}

// ForecastOptions carries the projection knobs. Zero values fall back
// to the historical defaults.
type ForecastOptions struct {
	PrimaryAccount    string
	DaysBack          int
	DaysForward       int
	RecencyWindowDays int
	AlertWindowDays   int
	ReportWindowDays  int
	AlertThreshold    decimal.Decimal
}

// RunSummary is what one forecast run produced.
type RunSummary struct {
	RunID          string
	OpeningBalance decimal.Decimal
	Rows           int
	Alerts         int
}

// ForecastService runs the projection pipeline end to end: load the
// ledger, project the rules over the calendar, accumulate the running
// balance, shape the report views, and write everything back. The
// recorder and publisher are optional; a nil publisher or a broker
// failure degrades to ledger-and-log only.
type ForecastService struct {
	store     sheets.Store
	recorder  RunRecorder
	publisher AlertPublisher
	opts      ForecastOptions
	logger    *log.Logger
}

func NewForecastService(store sheets.Store, recorder RunRecorder, publisher AlertPublisher, opts ForecastOptions, logger *log.Logger) *ForecastService {
	if opts.PrimaryAccount == "" {
		opts.PrimaryAccount = "Chase Checking"
	}
	if opts.DaysBack == 0 {
		opts.DaysBack = 5
	}
	if opts.DaysForward == 0 {
		opts.DaysForward = 730
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentForecast)
	}
	return &ForecastService{
		store:     store,
		recorder:  recorder,
		publisher: publisher,
		opts:      opts,
		logger:    logger,
	}
}

// Run executes one projection as of today. "today" is explicit so the
// whole pipeline is reproducible from a date.
func (s *ForecastService) Run(ctx context.Context, today time.Time) (RunSummary, error) {
	today = core.Midnight(today)
	runID := uuid.NewString()
	logger := s.logger.With(log.FieldRunID, runID)

	logger.InfoContext(ctx, "Forecast run starting",
		log.FieldDate, today.Format(core.DateLayout),
		log.FieldAccount, s.opts.PrimaryAccount)

	var (
		rules    []core.RecurrenceRule
		balances []core.AccountBalance
		history  []core.TransactionReport
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rules, err = s.store.Rules(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		balances, err = s.store.Balances(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		history, err = s.store.TransactionsReport(gctx, true)
		return err
	})
	if err := g.Wait(); err != nil {
		return RunSummary{}, fmt.Errorf("load ledger: %w", err)
	}

	opening, err := forecast.CurrentBalance(balances, s.opts.PrimaryAccount)
	if err != nil {
		return RunSummary{}, err
	}

	projector, err := forecast.NewProjector(rules)
	if err != nil {
		return RunSummary{}, err
	}
	projected := projector.ProjectAround(today, s.opts.DaysBack, s.opts.DaysForward)

	accumulator := forecast.Accumulator{RecencyWindowDays: s.opts.RecencyWindowDays}
	rows := accumulator.Build(history, projected, opening, today)

	shaper := forecast.Shaper{
		AlertThreshold:   s.opts.AlertThreshold,
		AlertWindowDays:  s.opts.AlertWindowDays,
		ReportWindowDays: s.opts.ReportWindowDays,
	}
	emergencyFund := forecast.EmergencyFund(rules)
	dailyReport := shaper.DailyBalanceReport(rows, today, emergencyFund)
	alerts := shaper.AlertDates(rows, today)
	labels := shaper.EventLabels(rows)

	budgets, err := BuildBudgetTables(rules)
	if err != nil {
		return RunSummary{}, fmt.Errorf("build budget tables: %w", err)
	}

	// The tabs are independent; a failed write leaves the others as
	// whatever this run already wrote.
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error { return s.store.WriteTransactionsReport(gctx, rows) })
	g.Go(func() error { return s.store.WriteDailyBalanceReport(gctx, dailyReport) })
	g.Go(func() error { return s.store.WriteAlertDates(gctx, alerts) })
	g.Go(func() error { return s.store.WriteEventLabels(gctx, labels) })
	g.Go(func() error { return s.store.WriteBudgetTables(gctx, budgets) })
	if err := g.Wait(); err != nil {
		return RunSummary{}, fmt.Errorf("write reports: %w", err)
	}

	summary := RunSummary{
		RunID:          runID,
		OpeningBalance: opening,
		Rows:           len(rows),
		Alerts:         len(alerts),
	}

	if s.recorder != nil {
		run := core.ForecastRun{
			ID:             runID,
			RunDate:        today,
			PrimaryAccount: s.opts.PrimaryAccount,
			OpeningBalance: opening,
			RowCount:       len(rows),
			AlertCount:     len(alerts),
		}
		if err := s.recorder.RecordRun(ctx, run); err != nil {
			return summary, fmt.Errorf("record run: %w", err)
		}
	}

	s.publish(ctx, logger, summary, alerts, today)

	logger.InfoContext(ctx, "Forecast run finished",
		log.FieldRows, summary.Rows,
		"alerts", summary.Alerts,
		log.FieldBalance, opening.StringFixed(2))

	return summary, nil
}

// publish is best-effort: broker trouble is logged, never fatal.
func (s *ForecastService) publish(ctx context.Context, logger *log.Logger, summary RunSummary, alerts []core.AlertDate, today time.Time) {
	if s.publisher == nil {
		return
	}

	threshold := s.opts.AlertThreshold
	if threshold.IsZero() {
		threshold = decimal.NewFromInt(forecast.DefaultAlertThreshold)
	}
	for _, a := range alerts {
		msg := amqp.NewLowBalanceAlertMessage(
			summary.RunID,
			s.opts.PrimaryAccount,
			a.Date.Format(core.DateLayout),
			a.RunningBalance.StringFixed(2),
			threshold.StringFixed(2),
		)
		if err := s.publisher.PublishLowBalanceAlert(ctx, msg); err != nil {
			logger.WarnContext(ctx, "Alert publish failed",
				log.FieldError, err,
				log.FieldDate, msg.Date)
		}
	}

	done := amqp.NewRunCompletedMessage(summary.RunID, today.Format(core.DateLayout), summary.Rows, summary.Alerts)
	if err := s.publisher.PublishRunCompleted(ctx, done); err != nil {
		logger.WarnContext(ctx, "Run-completed publish failed", log.FieldError, err)
	}
}
