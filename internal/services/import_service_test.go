package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ourcash/internal/core"
	"ourcash/internal/importer"
	"ourcash/internal/sheets/memory"
)

type fakeMirror struct {
	rows []core.BankTransaction
}

func (m *fakeMirror) InsertBankTransactions(_ context.Context, txns []core.BankTransaction) (int, error) {
	m.rows = append(m.rows, txns...)
	return len(txns), nil
}

func TestImportServiceRun(t *testing.T) {
	dir := t.TempDir()
	doneDir := filepath.Join(dir, "done")
	csv := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n" +
		"CREDIT,03/11/2025,ZELLE PAYMENT FROM JANE DOE 98765432,250.00,ACH_CREDIT,2650.10,\n"
	if err := os.WriteFile(filepath.Join(dir, "export.csv"), []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	store := memory.New()
	store.SeedLedger([]importer.Transaction{
		{
			PostDate:              core.Date(2025, 3, 1),
			PostMonth:             "2025-03",
			Description:           "GROCERY MART",
			Amount:                amt("-54.20"),
			IncomeExpense:         "Expense",
			IncomeExpenseCategory: "Food",
			AccountName:           "Chase Debit",
		},
	})

	mirror := &fakeMirror{}
	svc := NewImportService(dir, doneDir, store, mirror, nil)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.FilesRead != 1 {
		t.Errorf("FilesRead = %d, want 1", result.FilesRead)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("merged ledger has %d rows, want 2", len(result.Transactions))
	}
	// Newest first; the Zelle row was categorized on the way in.
	if result.Transactions[0].IncomeExpenseCategory != "Zelle" {
		t.Errorf("imported row category = %q, want Zelle", result.Transactions[0].IncomeExpenseCategory)
	}
	if result.Transactions[0].ClientName != "Jane Doe" {
		t.Errorf("imported row client = %q, want Jane Doe", result.Transactions[0].ClientName)
	}

	// Both rows are categorized, so both reach the accountant export.
	if len(result.Accountant) != 2 {
		t.Errorf("accountant export has %d rows, want 2", len(result.Accountant))
	}
	if len(result.Summary) != 2 {
		t.Errorf("summary has %d groups, want 2", len(result.Summary))
	}

	// The merged ledger and all three derived views landed in the store.
	ledger, err := store.Transactions(context.Background(), true)
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(ledger) != 2 {
		t.Fatalf("stored ledger has %d rows, want 2", len(ledger))
	}
	if ledger[1].IncomeExpenseCategory != "Food" {
		t.Errorf("hand-entered category = %q, want Food", ledger[1].IncomeExpenseCategory)
	}
	if len(store.Accountant) != 2 {
		t.Errorf("stored accountant export has %d rows, want 2", len(store.Accountant))
	}
	if len(store.Summary) != 2 {
		t.Errorf("stored summary has %d groups, want 2", len(store.Summary))
	}
	if len(store.Pivot.Months) != 1 || store.Pivot.Months[0] != "2025-03" {
		t.Errorf("stored pivot months = %v, want [2025-03]", store.Pivot.Months)
	}
	if len(store.Pivot.Rows) != 2 {
		t.Errorf("stored pivot has %d rows, want 2", len(store.Pivot.Rows))
	}

	if result.Mirrored != 1 {
		t.Errorf("Mirrored = %d, want 1", result.Mirrored)
	}
	if len(mirror.rows) != 1 || mirror.rows[0].Description != "ZELLE PAYMENT FROM JANE DOE 98765432" {
		t.Errorf("mirror rows = %+v, want single Zelle row", mirror.rows)
	}

	// The file moved to done/ and the stored ledger feeds the next
	// sweep, so running again changes nothing.
	again, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if again.FilesRead != 0 {
		t.Errorf("second sweep read %d files, want 0", again.FilesRead)
	}
	if len(again.Transactions) != 2 {
		t.Errorf("second sweep ledger has %d rows, want unchanged 2", len(again.Transactions))
	}
}

func TestImportServiceNoLedger(t *testing.T) {
	dir := t.TempDir()
	svc := NewImportService(dir, filepath.Join(dir, "done"), nil, nil, nil)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.FilesRead != 0 || len(result.Transactions) != 0 {
		t.Errorf("empty sweep = %+v", result)
	}
}
