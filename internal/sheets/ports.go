package sheets

import (
	"context"

	"ourcash/internal/core"
	"ourcash/internal/importer"
)

// Logical table names, used as cache keys and log fields.
const (
	TableIncomeExpense      = "income_expense"
	TableAccountBalances    = "account_balances"
	TableAccountDetails     = "account_details"
	TableTransactionsReport = "transactions_report"
	TableTransactions       = "transactions"
)

// Ports for the ledger store. Type coercion (string to amount, date,
// rate) is the adapter's job; the core only ever sees typed rows.
type (
	// Source reads the four typed ledger tables. forceRefresh bypasses
	// any read-through cache in front of the backing store.
	Source interface {
		Rules(ctx context.Context, forceRefresh bool) ([]core.RecurrenceRule, error)
		Balances(ctx context.Context, forceRefresh bool) ([]core.AccountBalance, error)
		AccountDetails(ctx context.Context, forceRefresh bool) ([]core.AccountDetail, error)
		TransactionsReport(ctx context.Context, forceRefresh bool) ([]core.TransactionReport, error)
		Transactions(ctx context.Context, forceRefresh bool) ([]importer.Transaction, error)
	}

	// Sink persists the recomputed report tables. Writes replace the
	// whole tab; there is no transactionality across tabs, a failed
	// write leaves whatever the previous successful write left.
	Sink interface {
		WriteTransactionsReport(ctx context.Context, rows []core.TransactionReport) error
		WriteDailyBalanceReport(ctx context.Context, rows []core.DailyBalanceRow) error
		WriteAlertDates(ctx context.Context, rows []core.AlertDate) error
		WriteEventLabels(ctx context.Context, rows []core.EventLabel) error
		WriteBudgetTables(ctx context.Context, tables core.BudgetTables) error
		WriteTransactions(ctx context.Context, rows []importer.Transaction) error
		WriteAccountantExport(ctx context.Context, rows []importer.AccountantRow) error
		WriteMonthlySummary(ctx context.Context, rows []importer.SummaryRow) error
		WriteMonthlyPivot(ctx context.Context, table importer.PivotTable) error
	}

	// Store is a full read/write ledger backend.
	Store interface {
		Source
		Sink
	}
)
