package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"ourcash/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository mirrors forecast runs and imported bank transactions
// into a local SQLite database. The workbook stays the source of truth;
// the mirror exists for offline querying and import dedup.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// RecordRun persists the outcome of one forecast run.
func (r *SQLiteRepository) RecordRun(ctx context.Context, run core.ForecastRun) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO forecast_runs (id, run_date, primary_account, opening_balance, row_count, alert_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.RunDate.Format(core.DateLayout),
		run.PrimaryAccount,
		run.OpeningBalance.String(),
		run.RowCount,
		run.AlertCount,
	)
	if err != nil {
		return fmt.Errorf("insert forecast run: %w", err)
	}

	slog.InfoContext(ctx, "Forecast run recorded",
		"id", run.ID,
		"run_date", run.RunDate.Format(core.DateLayout),
		"rows", run.RowCount,
		"alerts", run.AlertCount)

	return nil
}

// ListRuns returns the most recent forecast runs, newest first.
func (r *SQLiteRepository) ListRuns(ctx context.Context, limit int) ([]core.ForecastRun, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, run_date, primary_account, opening_balance, row_count, alert_count, created_at
		FROM forecast_runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query forecast runs: %w", err)
	}
	defer rows.Close()

	var runs []core.ForecastRun
	for rows.Next() {
		var (
			run     core.ForecastRun
			runDate string
			opening string
		)
		if err := rows.Scan(&run.ID, &runDate, &run.PrimaryAccount, &opening, &run.RowCount, &run.AlertCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan forecast run: %w", err)
		}
		if run.RunDate, err = time.Parse(core.DateLayout, runDate); err != nil {
			return nil, fmt.Errorf("parse run date %q: %w", runDate, err)
		}
		if run.OpeningBalance, err = decimal.NewFromString(opening); err != nil {
			return nil, fmt.Errorf("parse opening balance %q: %w", opening, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// InsertBankTransactions inserts imported transactions, silently
// skipping rows already present. Returns the number of new rows.
func (r *SQLiteRepository) InsertBankTransactions(ctx context.Context, txns []core.BankTransaction) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO bank_transactions (post_date, description, amount, account_name, category, source_file)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, t := range txns {
		res, err := stmt.ExecContext(ctx,
			t.PostDate.Format(core.DateLayout),
			t.Description,
			t.Amount.String(),
			t.AccountName,
			t.Category,
			t.SourceFile,
		)
		if err != nil {
			return 0, fmt.Errorf("insert bank transaction: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Bank transactions mirrored",
		"total", len(txns),
		"inserted", inserted,
		"skipped", len(txns)-inserted)

	return inserted, nil
}

// ListBankTransactions returns mirrored transactions for one account
// within [from, to], oldest first. An empty account matches all.
func (r *SQLiteRepository) ListBankTransactions(ctx context.Context, account string, from, to time.Time) ([]core.BankTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT post_date, description, amount, account_name, category, source_file
		FROM bank_transactions
		WHERE (? = '' OR account_name = ?)
		  AND post_date >= ? AND post_date <= ?
		ORDER BY post_date, id`,
		account, account,
		from.Format(core.DateLayout), to.Format(core.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("query bank transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.BankTransaction
	for rows.Next() {
		var (
			t        core.BankTransaction
			postDate string
			amount   string
		)
		if err := rows.Scan(&postDate, &t.Description, &amount, &t.AccountName, &t.Category, &t.SourceFile); err != nil {
			return nil, fmt.Errorf("scan bank transaction: %w", err)
		}
		if t.PostDate, err = time.Parse(core.DateLayout, postDate); err != nil {
			return nil, fmt.Errorf("parse post date %q: %w", postDate, err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
