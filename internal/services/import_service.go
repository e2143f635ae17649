package services

import (
	"context"
	"fmt"

	"ourcash/internal/core"
	"ourcash/internal/importer"
	"ourcash/internal/log"
)

// TransactionMirror persists imported bank transactions locally.
type TransactionMirror interface {
	InsertBankTransactions(ctx context.Context, txns []core.BankTransaction) (int, error)
}

// TransactionLedger is the workbook side of the import flow: the
// hand-maintained transactions tab plus the derived accountant tabs
// rewritten from it.
type TransactionLedger interface {
	Transactions(ctx context.Context, forceRefresh bool) ([]importer.Transaction, error)
	WriteTransactions(ctx context.Context, rows []importer.Transaction) error
	WriteAccountantExport(ctx context.Context, rows []importer.AccountantRow) error
	WriteMonthlySummary(ctx context.Context, rows []importer.SummaryRow) error
	WriteMonthlyPivot(ctx context.Context, table importer.PivotTable) error
}

// ImportResult is everything one import sweep produced.
type ImportResult struct {
	Transactions []importer.Transaction
	Accountant   []importer.AccountantRow
	Summary      []importer.SummaryRow
	Pivot        importer.PivotTable
	FilesRead    int
	Mirrored     int
}

// ImportService sweeps the incoming directory for bank CSV exports,
// merges them into the workbook's transaction ledger, rewrites the
// accountant views, and mirrors the new rows into SQLite.
type ImportService struct {
	incomingDir string
	doneDir     string
	ledger      TransactionLedger
	mirror      TransactionMirror
	logger      *log.Logger
}

func NewImportService(incomingDir, doneDir string, ledger TransactionLedger, mirror TransactionMirror, logger *log.Logger) *ImportService {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentImporter)
	}
	return &ImportService{
		incomingDir: incomingDir,
		doneDir:     doneDir,
		ledger:      ledger,
		mirror:      mirror,
		logger:      logger,
	}
}

// Run performs one import sweep. The current ledger is loaded first
// and its rows win the dedup, so hand-entered categorization is never
// lost to a re-downloaded export; the merged table and its three
// derived views are then written back.
func (s *ImportService) Run(ctx context.Context) (ImportResult, error) {
	var existing []importer.Transaction
	if s.ledger != nil {
		var err error
		if existing, err = s.ledger.Transactions(ctx, true); err != nil {
			return ImportResult{}, fmt.Errorf("load transaction ledger: %w", err)
		}
	}

	incoming, err := importer.ReadIncomingDir(s.incomingDir, s.doneDir)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read incoming files: %w", err)
	}

	files := make(map[string]struct{})
	for _, t := range incoming {
		files[t.SourceFile] = struct{}{}
	}

	merged := importer.Merge(existing, incoming)
	accountant := importer.AccountantExport(merged)
	summary := importer.MonthlySummary(accountant)
	pivot := importer.MonthlyPivot(summary)

	result := ImportResult{
		Transactions: merged,
		Accountant:   accountant,
		Summary:      summary,
		Pivot:        pivot,
		FilesRead:    len(files),
	}

	if s.ledger != nil {
		if err := s.ledger.WriteTransactions(ctx, merged); err != nil {
			return result, fmt.Errorf("write transactions: %w", err)
		}
		if err := s.ledger.WriteAccountantExport(ctx, accountant); err != nil {
			return result, fmt.Errorf("write accountant export: %w", err)
		}
		if err := s.ledger.WriteMonthlySummary(ctx, summary); err != nil {
			return result, fmt.Errorf("write monthly summary: %w", err)
		}
		if err := s.ledger.WriteMonthlyPivot(ctx, pivot); err != nil {
			return result, fmt.Errorf("write monthly pivot: %w", err)
		}
	}

	if s.mirror != nil && len(incoming) > 0 {
		mirrorRows := make([]core.BankTransaction, len(incoming))
		for i, t := range incoming {
			mirrorRows[i] = t.BankTransaction()
		}
		inserted, err := s.mirror.InsertBankTransactions(ctx, mirrorRows)
		if err != nil {
			return result, fmt.Errorf("mirror transactions: %w", err)
		}
		result.Mirrored = inserted
	}

	s.logger.InfoContext(ctx, "Import sweep finished",
		"files", result.FilesRead,
		log.FieldRows, len(merged),
		"new", len(incoming),
		"mirrored", result.Mirrored)

	return result, nil
}
