package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ourcash/internal/core"
	"ourcash/internal/importer"
)

// countingSource records how many times each fetch hit the backend.
type countingSource struct {
	rulesCalls   int
	balanceCalls int
	detailCalls  int
	reportCalls  int
	ledgerCalls  int

	rules []core.RecurrenceRule
	err   error
}

func (s *countingSource) Rules(ctx context.Context, forceRefresh bool) ([]core.RecurrenceRule, error) {
	s.rulesCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.rules, nil
}

func (s *countingSource) Balances(ctx context.Context, forceRefresh bool) ([]core.AccountBalance, error) {
	s.balanceCalls++
	return []core.AccountBalance{{AccountName: "Chase Checking", Balance: decimal.NewFromInt(100)}}, nil
}

func (s *countingSource) AccountDetails(ctx context.Context, forceRefresh bool) ([]core.AccountDetail, error) {
	s.detailCalls++
	return nil, nil
}

func (s *countingSource) TransactionsReport(ctx context.Context, forceRefresh bool) ([]core.TransactionReport, error) {
	s.reportCalls++
	return nil, nil
}

func (s *countingSource) Transactions(ctx context.Context, forceRefresh bool) ([]importer.Transaction, error) {
	s.ledgerCalls++
	return nil, nil
}

func TestCachedSourceReadThrough(t *testing.T) {
	src := &countingSource{rules: []core.RecurrenceRule{{AccountName: "Rent"}}}
	cached := NewCachedSource(src, time.Minute, nil)
	ctx := context.Background()

	rows, err := cached.Rules(ctx, false)
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if len(rows) != 1 || rows[0].AccountName != "Rent" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if _, err := cached.Rules(ctx, false); err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if src.rulesCalls != 1 {
		t.Errorf("rulesCalls = %d, want 1 (second read should be cached)", src.rulesCalls)
	}
}

func TestCachedSourceForceRefresh(t *testing.T) {
	src := &countingSource{rules: []core.RecurrenceRule{{AccountName: "Rent"}}}
	cached := NewCachedSource(src, time.Minute, nil)
	ctx := context.Background()

	if _, err := cached.Rules(ctx, false); err != nil {
		t.Fatalf("Rules: %v", err)
	}
	src.rules = []core.RecurrenceRule{{AccountName: "Rent"}, {AccountName: "Gym"}}
	rows, err := cached.Rules(ctx, true)
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows after refresh, want 2", len(rows))
	}
	if src.rulesCalls != 2 {
		t.Errorf("rulesCalls = %d, want 2", src.rulesCalls)
	}

	// The refreshed value replaces the cached one.
	rows, err = cached.Rules(ctx, false)
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if len(rows) != 2 || src.rulesCalls != 2 {
		t.Errorf("got %d rows, %d calls; refresh should overwrite the cache", len(rows), src.rulesCalls)
	}
}

func TestCachedSourceTTLExpiry(t *testing.T) {
	src := &countingSource{rules: []core.RecurrenceRule{{AccountName: "Rent"}}}
	cached := NewCachedSource(src, 10*time.Millisecond, nil)
	ctx := context.Background()

	if _, err := cached.Rules(ctx, false); err != nil {
		t.Fatalf("Rules: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := cached.Rules(ctx, false); err != nil {
		t.Fatalf("Rules: %v", err)
	}
	if src.rulesCalls != 2 {
		t.Errorf("rulesCalls = %d, want 2 after TTL expiry", src.rulesCalls)
	}
}

func TestCachedSourceErrorNotCached(t *testing.T) {
	src := &countingSource{err: errors.New("quota exceeded")}
	cached := NewCachedSource(src, time.Minute, nil)
	ctx := context.Background()

	if _, err := cached.Rules(ctx, false); err == nil {
		t.Fatal("expected error")
	}
	src.err = nil
	src.rules = []core.RecurrenceRule{{AccountName: "Rent"}}
	rows, err := cached.Rules(ctx, false)
	if err != nil {
		t.Fatalf("Rules after recovery: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if src.rulesCalls != 2 {
		t.Errorf("rulesCalls = %d, want 2 (error must not poison the cache)", src.rulesCalls)
	}
}

func TestCachedSourceTablesIndependent(t *testing.T) {
	src := &countingSource{}
	cached := NewCachedSource(src, time.Minute, nil)
	ctx := context.Background()

	if _, err := cached.Balances(ctx, false); err != nil {
		t.Fatalf("Balances: %v", err)
	}
	if _, err := cached.Balances(ctx, false); err != nil {
		t.Fatalf("Balances: %v", err)
	}
	if _, err := cached.TransactionsReport(ctx, false); err != nil {
		t.Fatalf("TransactionsReport: %v", err)
	}
	if _, err := cached.Transactions(ctx, false); err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if _, err := cached.Transactions(ctx, false); err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if src.balanceCalls != 1 || src.reportCalls != 1 || src.ledgerCalls != 1 || src.rulesCalls != 0 {
		t.Errorf("calls = rules %d, balances %d, report %d, ledger %d",
			src.rulesCalls, src.balanceCalls, src.reportCalls, src.ledgerCalls)
	}
}
