// Package google implements the ledger ports against a Google Sheets
// workbook through the Sheets API v4, authenticating with a service
// account. One tab per logical table; output tabs are cleared and
// rewritten wholesale each run.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"ourcash/internal/core"
	"ourcash/internal/importer"
	"ourcash/internal/sheets"
)

// Tabs holds the workbook tab names, one per logical table.
type Tabs struct {
	IncomeExpense      string
	AccountBalances    string
	AccountDetails     string
	TransactionsReport string
	DailyBalanceReport string
	AlertDates         string
	EventLabels        string
	MonthlyBudgets     string
	YearlyBudgets      string
	OneTimeBudgets     string
	BiWeeklyBudgets    string
	Transactions       string
	AccountantExport   string
	Summary            string
	Pivot              string
}

// DefaultTabs matches the historical workbook layout.
func DefaultTabs() Tabs {
	return Tabs{
		IncomeExpense:      "Income_Expense",
		AccountBalances:    "Account_Date_Balances",
		AccountDetails:     "Account_Details",
		TransactionsReport: "Transactions_Report",
		DailyBalanceReport: "Daily_Balance_Report",
		AlertDates:         "Alert_Dates",
		EventLabels:        "One_Time_Labels",
		MonthlyBudgets:     "Monthly_Budgets",
		YearlyBudgets:      "Yearly_Budgets",
		OneTimeBudgets:     "One_Time_Budgets",
		BiWeeklyBudgets:    "Bi_Weekly_Budgets",
		Transactions:       "Transactions",
		AccountantExport:   "Accountant_Export",
		Summary:            "Summary",
		Pivot:              "Pivot",
	}
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	tabs          Tabs
}

var _ sheets.Store = (*Client)(nil)

// New creates a workbook client for the given spreadsheet.
func New(ctx context.Context, spreadsheetID string, tabs Tabs) (*Client, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, tabs: tabs}, nil
}

// NewFromEnv creates a client using OURCASH_SPREADSHEET_ID and the
// service-account credentials resolved by newSheetsService.
func NewFromEnv(ctx context.Context) (*Client, error) {
	return New(ctx, strings.TrimSpace(os.Getenv("OURCASH_SPREADSHEET_ID")), DefaultTabs())
}

// newSheetsService initializes a Sheets Service using service-account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// readTab returns the tab's cells as trimmed strings, header row first.
func (c *Client) readTab(ctx context.Context, tab string) ([][]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A1:Z", tab)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	out := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		out = append(out, toStrings(row))
	}
	return out, nil
}

// writeTab clears the tab and writes header plus rows in one update.
func (c *Client) writeTab(ctx context.Context, tab string, header []string, rows [][]any) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	clearRng := fmt.Sprintf("%s!A1:Z", tab)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRng, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", clearRng, err)
	}

	values := make([][]any, 0, len(rows)+1)
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	values = append(values, headerRow)
	values = append(values, rows...)

	vr := &gsheet.ValueRange{Values: values}
	rng := fmt.Sprintf("%s!A1", tab)
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write %s: %w", tab, err)
	}

	slog.InfoContext(ctx, "Tab rewritten", "tab", tab, "rows", len(rows))
	return nil
}

func (c *Client) Rules(ctx context.Context, _ bool) ([]core.RecurrenceRule, error) {
	values, err := c.readTab(ctx, c.tabs.IncomeExpense)
	if err != nil {
		return nil, err
	}
	return parseRules(values)
}

func (c *Client) Balances(ctx context.Context, _ bool) ([]core.AccountBalance, error) {
	values, err := c.readTab(ctx, c.tabs.AccountBalances)
	if err != nil {
		return nil, err
	}
	return parseBalances(values)
}

func (c *Client) AccountDetails(ctx context.Context, _ bool) ([]core.AccountDetail, error) {
	values, err := c.readTab(ctx, c.tabs.AccountDetails)
	if err != nil {
		return nil, err
	}
	return parseAccountDetails(values)
}

func (c *Client) TransactionsReport(ctx context.Context, _ bool) ([]core.TransactionReport, error) {
	values, err := c.readTab(ctx, c.tabs.TransactionsReport)
	if err != nil {
		return nil, err
	}
	return parseTransactionsReport(values)
}

func (c *Client) WriteTransactionsReport(ctx context.Context, rows []core.TransactionReport) error {
	header, values := renderTransactionsReport(rows)
	return c.writeTab(ctx, c.tabs.TransactionsReport, header, values)
}

func (c *Client) WriteDailyBalanceReport(ctx context.Context, rows []core.DailyBalanceRow) error {
	header, values := renderDailyBalanceReport(rows)
	return c.writeTab(ctx, c.tabs.DailyBalanceReport, header, values)
}

func (c *Client) WriteAlertDates(ctx context.Context, rows []core.AlertDate) error {
	header, values := renderAlertDates(rows)
	return c.writeTab(ctx, c.tabs.AlertDates, header, values)
}

func (c *Client) WriteEventLabels(ctx context.Context, rows []core.EventLabel) error {
	header, values := renderEventLabels(rows)
	return c.writeTab(ctx, c.tabs.EventLabels, header, values)
}

// WriteBudgetTables rewrites the four per-type budget tabs.
func (c *Client) WriteBudgetTables(ctx context.Context, tables core.BudgetTables) error {
	header, values := renderMonthlyBudgets(tables.Monthly)
	if err := c.writeTab(ctx, c.tabs.MonthlyBudgets, header, values); err != nil {
		return err
	}
	header, values = renderYearlyBudgets(tables.Yearly)
	if err := c.writeTab(ctx, c.tabs.YearlyBudgets, header, values); err != nil {
		return err
	}
	header, values = renderOneTimeBudgets(tables.OneTime)
	if err := c.writeTab(ctx, c.tabs.OneTimeBudgets, header, values); err != nil {
		return err
	}
	header, values = renderBiWeeklyBudgets(tables.BiWeekly)
	return c.writeTab(ctx, c.tabs.BiWeeklyBudgets, header, values)
}

func (c *Client) Transactions(ctx context.Context, _ bool) ([]importer.Transaction, error) {
	values, err := c.readTab(ctx, c.tabs.Transactions)
	if err != nil {
		return nil, err
	}
	return parseTransactions(values)
}

func (c *Client) WriteTransactions(ctx context.Context, rows []importer.Transaction) error {
	header, values := renderTransactions(rows)
	return c.writeTab(ctx, c.tabs.Transactions, header, values)
}

func (c *Client) WriteAccountantExport(ctx context.Context, rows []importer.AccountantRow) error {
	header, values := renderAccountantExport(rows)
	return c.writeTab(ctx, c.tabs.AccountantExport, header, values)
}

func (c *Client) WriteMonthlySummary(ctx context.Context, rows []importer.SummaryRow) error {
	header, values := renderMonthlySummary(rows)
	return c.writeTab(ctx, c.tabs.Summary, header, values)
}

func (c *Client) WriteMonthlyPivot(ctx context.Context, table importer.PivotTable) error {
	header, values := renderMonthlyPivot(table)
	return c.writeTab(ctx, c.tabs.Pivot, header, values)
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
