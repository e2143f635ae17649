package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"ourcash/internal/amqp"
	"ourcash/internal/backend"
	"ourcash/internal/config"
	"ourcash/internal/core"
	"ourcash/internal/log"
	"ourcash/internal/services"
	"ourcash/internal/storage"
)

func main() {
	// Load .env for local development; absent in production is fine.
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	command := "run"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx := context.Background()
	var err error
	switch command {
	case "run":
		err = runForecast(ctx, cfg, logger)
	case "import":
		err = runImport(ctx, cfg, logger)
	case "runs":
		err = listRuns(ctx, cfg)
	case "balances":
		err = showBalances(ctx, cfg)
	case "ledger":
		err = listLedger(ctx, cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (expected run, import, runs, balances, or ledger)\n", command)
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Command failed", "command", command, log.FieldError, err)
		os.Exit(1)
	}
}

func runForecast(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	store, cacheMgr, err := backend.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer cacheMgr.Stop()

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return fmt.Errorf("open mirror database: %w", err)
	}
	defer repo.Close()

	var publisher services.AlertPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, alerts will only reach the workbook", log.FieldError, err)
		} else {
			defer client.Close()
			publisher = client
		}
	}

	svc := services.NewForecastService(store, repo, publisher, forecastOptions(cfg),
		logger.WithComponent(log.ComponentForecast))

	summary, err := svc.Run(ctx, time.Now())
	if err != nil {
		return err
	}

	logger.Info("Forecast complete",
		log.FieldRunID, summary.RunID,
		log.FieldRows, summary.Rows,
		"alerts", summary.Alerts,
		log.FieldBalance, summary.OpeningBalance.StringFixed(2))
	return nil
}

func runImport(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	store, cacheMgr, err := backend.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer cacheMgr.Stop()

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return fmt.Errorf("open mirror database: %w", err)
	}
	defer repo.Close()

	svc := services.NewImportService(cfg.ImportDir, cfg.ImportDoneDir, store, repo,
		logger.WithComponent(log.ComponentImporter))

	result, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("Import complete",
		"files", result.FilesRead,
		log.FieldRows, len(result.Transactions),
		"accountant_rows", len(result.Accountant),
		"summary_rows", len(result.Summary),
		"mirrored", result.Mirrored)
	return nil
}

func listRuns(ctx context.Context, cfg *config.Config) error {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return fmt.Errorf("open mirror database: %w", err)
	}
	defer repo.Close()

	runs, err := repo.ListRuns(ctx, 20)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  rows=%d alerts=%d opening=%s (%s)\n",
			r.RunDate.Format(core.DateLayout), r.ID, r.RowCount, r.AlertCount,
			r.OpeningBalance.StringFixed(2), r.PrimaryAccount)
	}
	return nil
}

func listLedger(ctx context.Context, cfg *config.Config) error {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return fmt.Errorf("open mirror database: %w", err)
	}
	defer repo.Close()

	// Last 90 days of mirrored transactions, every account.
	to := time.Now()
	from := to.AddDate(0, 0, -90)
	txns, err := repo.ListBankTransactions(ctx, "", from, to)
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		fmt.Println("no mirrored transactions")
		return nil
	}
	for _, t := range txns {
		fmt.Printf("%s  %-14s %10s  %-12s %s\n",
			t.PostDate.Format(core.DateLayout), t.AccountName,
			t.Amount.StringFixed(2), t.Category, t.Description)
	}
	return nil
}

func showBalances(ctx context.Context, cfg *config.Config) error {
	store, cacheMgr, err := backend.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer cacheMgr.Stop()

	snapshots, err := store.Balances(ctx, true)
	if err != nil {
		return err
	}
	details, err := store.AccountDetails(ctx, true)
	if err != nil {
		return err
	}

	filled := services.FilledBalances(snapshots, details)
	if len(filled) == 0 {
		fmt.Println("no balance snapshots")
		return nil
	}
	for _, b := range filled {
		fmt.Printf("%s  %-24s %12s  %s\n",
			b.Date.Format(core.DateLayout), b.AccountName, b.Balance.StringFixed(2), b.SubCategory)
	}

	fmt.Println()
	for _, g := range services.BalancesBySubCategory(filled) {
		fmt.Printf("%s  %-24s %12s\n",
			g.Date.Format(core.DateLayout), g.SubCategory, g.Balance.StringFixed(2))
	}
	return nil
}

func forecastOptions(cfg *config.Config) services.ForecastOptions {
	return services.ForecastOptions{
		PrimaryAccount:    cfg.PrimaryAccount,
		DaysBack:          cfg.DaysBack,
		DaysForward:       cfg.DaysForward,
		RecencyWindowDays: cfg.RecencyWindowDays,
		AlertWindowDays:   cfg.AlertWindowDays,
		ReportWindowDays:  cfg.ReportWindowDays,
		AlertThreshold:    decimal.NewFromFloat(cfg.AlertThreshold),
	}
}
