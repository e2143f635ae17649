// Package importer turns raw bank CSV exports into ledger
// transactions. Banks ship overlapping date ranges, so every import is
// merged against the existing ledger and deduplicated before anything
// is written back.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ourcash/internal/core"
)

// Bank exports disagree on header names; the ledger uses one schema.
var columnRenames = map[string]string{
	"Posting Date": "Post Date",
	"Date":         "Transaction Date",
	"Details":      "Transactions",
	"Name":         "Description",
}

// Transaction is one row of the transaction ledger: the bank's fields
// plus the bookkeeping columns filled in by categorization.
type Transaction struct {
	IncomeExpense         string
	IncomeExpenseCategory string
	ClientName            string
	Exclude               string
	PostMonth             string
	PostDate              time.Time
	Description           string
	Amount                decimal.Decimal
	Type                  string
	CheckNumber           string
	AccountName           string
	Category              string
	TransactionDate       string
	Memo                  string
	Details               string
	SourceFile            string
}

// Key is the dedup identity of a ledger transaction.
func (t Transaction) Key() string {
	return t.PostDate.Format(core.DateLayout) + "|" + t.Description + "|" + t.Amount.String()
}

// BankTransaction converts the ledger row to its mirror representation.
func (t Transaction) BankTransaction() core.BankTransaction {
	return core.BankTransaction{
		PostDate:    t.PostDate,
		Description: t.Description,
		Amount:      t.Amount,
		AccountName: t.AccountName,
		Category:    t.IncomeExpenseCategory,
		SourceFile:  t.SourceFile,
	}
}

// ReadFile parses one bank CSV export. The debit export carries a
// Balance column and the rewards export does not; that is the only
// reliable way to tell the two apart.
func ReadFile(path string) ([]Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	headerRow, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(headerRow))
	hasBalance := false
	for i, name := range headerRow {
		name = strings.TrimSpace(name)
		if renamed, ok := columnRenames[name]; ok {
			name = renamed
		}
		cols[name] = i
		if name == "Balance" {
			hasBalance = true
		}
	}

	accountName := "Chase Rewards"
	if hasBalance {
		accountName = "Chase Debit"
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	sourceFile := filepath.Base(path)
	var txns []Transaction
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		line++

		postDate, err := core.ParseDate(field(record, "Post Date"))
		if err != nil {
			return nil, fmt.Errorf("row %d: post date: %w", line, err)
		}
		amount, err := core.ParseAmount(field(record, "Amount"))
		if err != nil {
			return nil, fmt.Errorf("row %d: amount: %w", line, err)
		}

		txns = append(txns, Transaction{
			PostDate:        postDate,
			PostMonth:       postDate.Format("2006-01"),
			Description:     field(record, "Description"),
			Amount:          amount,
			Type:            field(record, "Type"),
			CheckNumber:     field(record, "Check or Slip #"),
			AccountName:     accountName,
			Category:        field(record, "Category"),
			TransactionDate: field(record, "Transaction Date"),
			Memo:            field(record, "Memo"),
			Details:         field(record, "Transactions"),
			SourceFile:      sourceFile,
		})
	}

	slog.Info("Parsed bank export",
		"file", sourceFile,
		"account", accountName,
		"rows", len(txns))

	return txns, nil
}

// ReadIncomingDir parses every CSV under dir and moves each parsed
// file into doneDir so repeated sweeps never re-read it. Files that
// fail to parse stay in place.
func ReadIncomingDir(dir, doneDir string) ([]Transaction, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("glob incoming dir: %w", err)
	}

	if err := os.MkdirAll(doneDir, 0755); err != nil {
		return nil, fmt.Errorf("create done dir: %w", err)
	}

	var all []Transaction
	for _, path := range paths {
		txns, err := ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		all = append(all, txns...)

		if err := os.Rename(path, filepath.Join(doneDir, filepath.Base(path))); err != nil {
			return nil, fmt.Errorf("move %s to done: %w", filepath.Base(path), err)
		}
	}

	return all, nil
}
