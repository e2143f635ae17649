// Package memory provides an in-memory ledger store used by tests and
// the memory backend. It implements both the Source and Sink ports.
package memory

import (
	"context"
	"sync"

	"ourcash/internal/core"
	"ourcash/internal/importer"
	"ourcash/internal/sheets"
)

type Store struct {
	mu       sync.Mutex
	rules    []core.RecurrenceRule
	balances []core.AccountBalance
	details  []core.AccountDetail
	report   []core.TransactionReport
	ledger   []importer.Transaction

	// Written views are retained so tests can assert on them.
	DailyReport []core.DailyBalanceRow
	Alerts      []core.AlertDate
	Labels      []core.EventLabel
	Budgets     core.BudgetTables
	Accountant  []importer.AccountantRow
	Summary     []importer.SummaryRow
	Pivot       importer.PivotTable
}

var _ sheets.Store = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Seed replaces the input tables wholesale.
func (s *Store) Seed(rules []core.RecurrenceRule, balances []core.AccountBalance, details []core.AccountDetail, report []core.TransactionReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append([]core.RecurrenceRule(nil), rules...)
	s.balances = append([]core.AccountBalance(nil), balances...)
	s.details = append([]core.AccountDetail(nil), details...)
	s.report = append([]core.TransactionReport(nil), report...)
}

// SeedLedger replaces the transactions ledger wholesale.
func (s *Store) SeedLedger(txns []importer.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = append([]importer.Transaction(nil), txns...)
}

func (s *Store) Rules(_ context.Context, _ bool) ([]core.RecurrenceRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.RecurrenceRule(nil), s.rules...), nil
}

func (s *Store) Balances(_ context.Context, _ bool) ([]core.AccountBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.AccountBalance(nil), s.balances...), nil
}

func (s *Store) AccountDetails(_ context.Context, _ bool) ([]core.AccountDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.AccountDetail(nil), s.details...), nil
}

func (s *Store) TransactionsReport(_ context.Context, _ bool) ([]core.TransactionReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.TransactionReport(nil), s.report...), nil
}

func (s *Store) WriteTransactionsReport(_ context.Context, rows []core.TransactionReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = append([]core.TransactionReport(nil), rows...)
	return nil
}

func (s *Store) WriteDailyBalanceReport(_ context.Context, rows []core.DailyBalanceRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DailyReport = append([]core.DailyBalanceRow(nil), rows...)
	return nil
}

func (s *Store) WriteAlertDates(_ context.Context, rows []core.AlertDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Alerts = append([]core.AlertDate(nil), rows...)
	return nil
}

func (s *Store) WriteEventLabels(_ context.Context, rows []core.EventLabel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Labels = append([]core.EventLabel(nil), rows...)
	return nil
}

func (s *Store) WriteBudgetTables(_ context.Context, tables core.BudgetTables) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Budgets = tables
	return nil
}

func (s *Store) Transactions(_ context.Context, _ bool) ([]importer.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]importer.Transaction(nil), s.ledger...), nil
}

func (s *Store) WriteTransactions(_ context.Context, rows []importer.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger = append([]importer.Transaction(nil), rows...)
	return nil
}

func (s *Store) WriteAccountantExport(_ context.Context, rows []importer.AccountantRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Accountant = append([]importer.AccountantRow(nil), rows...)
	return nil
}

func (s *Store) WriteMonthlySummary(_ context.Context, rows []importer.SummaryRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Summary = append([]importer.SummaryRow(nil), rows...)
	return nil
}

func (s *Store) WriteMonthlyPivot(_ context.Context, table importer.PivotTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pivot = table
	return nil
}
