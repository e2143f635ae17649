package google

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ourcash/internal/core"
	"ourcash/internal/importer"
)

func TestParseRules(t *testing.T) {
	values := [][]string{
		{"Category", "Sub_Category", "Type", "When", "Account Name", "Amount", "Auto_Pay_Account", "AfterDays", "Priority", "AverageMonthlyCost", "Start_Date", "Maturity_Date"},
		{"Bills", "Housing", "monthly", "15", "Rent", "($2,000.00)", "Chase Checking", "", "1", "($2,000.00)", "", "2026-12-31"},
		{"", "", "", "", "", "", "", "", "", "", "", ""},
		{"Income", "Salary", "biweekly", "2025-01-03", "Paycheck", "$1,500.00", "", "2", "", "", "2025-01-01", ""},
	}

	rules, err := parseRules(values)
	if err != nil {
		t.Fatalf("parseRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2 (blank row skipped)", len(rules))
	}

	rent := rules[0]
	if rent.Type != core.Monthly || rent.When != "15" {
		t.Errorf("rent = %s/%s", rent.Type, rent.When)
	}
	if !rent.Amount.Equal(decimal.NewFromInt(-2000)) {
		t.Errorf("rent amount = %s", rent.Amount)
	}
	if rent.Priority != 1 || !rent.AverageMonthlyCost.Equal(decimal.NewFromInt(-2000)) {
		t.Errorf("rent priority/avg = %d/%s", rent.Priority, rent.AverageMonthlyCost)
	}
	if !rent.StartDate.IsZero() {
		t.Errorf("rent start date should be unset, got %v", rent.StartDate)
	}
	if rent.MaturityDate != time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC) {
		t.Errorf("rent maturity = %v", rent.MaturityDate)
	}

	pay := rules[1]
	if pay.AccountName != "Paycheck" || pay.AfterDays != 2 {
		t.Errorf("paycheck = %+v", pay)
	}
	if !pay.Amount.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("paycheck amount = %s", pay.Amount)
	}
}

func TestParseRulesBadAmount(t *testing.T) {
	values := [][]string{
		{"Type", "When", "Account_Name", "Amount"},
		{"monthly", "15", "Rent", "-2000"},
		{"monthly", "1", "Gym", "forty"},
	}
	_, err := parseRules(values)
	if err == nil {
		t.Fatal("expected error for unparseable amount")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error should name the sheet row: %v", err)
	}
}

func TestParseRulesEmpty(t *testing.T) {
	rules, err := parseRules(nil)
	if err != nil || rules != nil {
		t.Fatalf("got %v, %v for empty tab", rules, err)
	}
}

func TestParseBalances(t *testing.T) {
	values := [][]string{
		{"Account_Name", "Date", "Balance"},
		{"Chase Checking", "2025-03-01", "1,234.56"},
		{"Savings", "03/01/2025", "$10,000.00"},
	}
	balances, err := parseBalances(values)
	if err != nil {
		t.Fatalf("parseBalances: %v", err)
	}
	if len(balances) != 2 {
		t.Fatalf("got %d balances", len(balances))
	}
	if !balances[0].Balance.Equal(decimal.RequireFromString("1234.56")) {
		t.Errorf("balance = %s", balances[0].Balance)
	}
	if balances[0].Date != balances[1].Date {
		t.Errorf("both date layouts should land on the same day: %v vs %v", balances[0].Date, balances[1].Date)
	}
}

func TestParseBalancesBadDate(t *testing.T) {
	values := [][]string{
		{"Account_Name", "Date", "Balance"},
		{"Chase Checking", "soon", "100"},
	}
	if _, err := parseBalances(values); err == nil {
		t.Fatal("expected error for unparseable balance date")
	}
}

func TestParseAccountDetails(t *testing.T) {
	values := [][]string{
		{"Category", "Sub_Category", "Account_Name", "Limit", "Interest_Rate", "Link", "Maturity_Date"},
		{"Liquid", "Checking", "Chase Checking", "", "0.01%", "https://chase.com", ""},
		{"Debt", "Credit Card", "Chase Rewards", "$5,000.00", "24.99%", "", "2027-06-01"},
	}
	details, err := parseAccountDetails(values)
	if err != nil {
		t.Fatalf("parseAccountDetails: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("got %d details", len(details))
	}
	if !details[1].Limit.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("limit = %s", details[1].Limit)
	}
	if !details[1].InterestRate.Equal(decimal.RequireFromString("0.2499")) {
		t.Errorf("rate = %s", details[1].InterestRate)
	}
	if details[1].MaturityDate.IsZero() {
		t.Error("maturity date should be set")
	}
}

func TestParseTransactionsReport(t *testing.T) {
	values := [][]string{
		{"Date", "Category", "Type", "Account_Name", "Auto_Pay_Account", "Amount", "Amount_Paid", "Date_Paid", "Running_Balance"},
		{"2025-03-15", "Bills", "monthly", "Rent", "Chase Checking", "-2000", "-2000", "2025-03-14", "3000"},
		{"2025-03-20", "Income", "biweekly", "Paycheck", "", "1500", "", "not yet", "4500"},
	}
	report, err := parseTransactionsReport(values)
	if err != nil {
		t.Fatalf("parseTransactionsReport: %v", err)
	}
	if len(report) != 2 {
		t.Fatalf("got %d rows", len(report))
	}
	if !report[0].Paid() {
		t.Error("reconciled row should report paid")
	}
	if report[1].Paid() {
		t.Error("row with blank paid fields should not report paid")
	}
	if !report[1].DatePaid.IsZero() {
		t.Errorf("garbage paid date should stay unset, got %v", report[1].DatePaid)
	}
}

func TestRenderTransactionsReportRoundTrip(t *testing.T) {
	in := []core.TransactionReport{
		{
			Date:           time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			Category:       "Bills",
			Type:           core.Monthly,
			AccountName:    "Rent",
			Amount:         decimal.NewFromInt(-2000),
			AmountPaid:     decimal.NewFromInt(-2000),
			DatePaid:       time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			RunningBalance: decimal.NewFromInt(3000),
		},
		{
			Date:           time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
			Category:       "Income",
			Type:           core.Biweekly,
			AccountName:    "Paycheck",
			Amount:         decimal.NewFromInt(1500),
			RunningBalance: decimal.NewFromInt(4500),
		},
	}

	header, rows := renderTransactionsReport(in)
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	// Unpaid cells render blank rather than "0.00" so the sheet stays
	// readable.
	if rows[1][6] != "" || rows[1][7] != "" {
		t.Errorf("unpaid cells = %q, %q, want blanks", rows[1][6], rows[1][7])
	}

	values := [][]string{header}
	for _, r := range rows {
		row := make([]string, len(r))
		for i, cell := range r {
			row[i] = cell.(string)
		}
		values = append(values, row)
	}
	back, err := parseTransactionsReport(values)
	if err != nil {
		t.Fatalf("parse of rendered rows: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("round trip lost rows: %d", len(back))
	}
	if !back[0].Paid() || back[1].Paid() {
		t.Error("paid state should survive the round trip")
	}
	if !back[0].RunningBalance.Equal(in[0].RunningBalance) {
		t.Errorf("running balance = %s", back[0].RunningBalance)
	}
}

func TestRenderDailyBalanceReport(t *testing.T) {
	rows := []core.DailyBalanceRow{
		{
			Date:           time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			RunningBalance: decimal.NewFromInt(800),
			LabelItem:      "Tax Refund",
			LabelAmount:    decimal.NewFromInt(500),
			EmergencyFund:  decimal.NewFromInt(-12000),
			AlertThreshold: decimal.NewFromInt(1000),
		},
		{
			Date:           time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
			RunningBalance: decimal.NewFromInt(800),
			AlertThreshold: decimal.NewFromInt(1000),
		},
	}
	header, out := renderDailyBalanceReport(rows)
	if header[0] != "Date" || len(out) != 2 {
		t.Fatalf("header %v, %d rows", header, len(out))
	}
	if out[0][3] != "500.00" {
		t.Errorf("labelled row amount = %q", out[0][3])
	}
	if out[1][3] != "" {
		t.Errorf("unlabelled row amount = %q, want blank", out[1][3])
	}
	if out[0][4] != "-12000.00" {
		t.Errorf("emergency fund cell = %q", out[0][4])
	}
}

func TestTransactionsLedgerRoundTrip(t *testing.T) {
	in := []importer.Transaction{
		{
			IncomeExpense:         "Income",
			IncomeExpenseCategory: "Zelle",
			ClientName:            "Jane Doe",
			PostMonth:             "2025-03",
			PostDate:              time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
			Description:           "ZELLE PAYMENT FROM JANE DOE 98765432",
			Amount:                decimal.NewFromInt(250),
			Type:                  "ACH_CREDIT",
			AccountName:           "Chase Debit",
			SourceFile:            "export.csv",
		},
		{
			Exclude:     "TRUE",
			PostMonth:   "2025-03",
			PostDate:    time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			Description: "TRANSFER TO SAVINGS",
			Amount:      decimal.NewFromInt(-500),
			AccountName: "Chase Debit",
		},
	}

	header, rows := renderTransactions(in)
	values := [][]string{header}
	for _, r := range rows {
		row := make([]string, len(r))
		for i, cell := range r {
			row[i] = cell.(string)
		}
		values = append(values, row)
	}

	back, err := parseTransactions(values)
	if err != nil {
		t.Fatalf("parse of rendered ledger: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("round trip lost rows: %d", len(back))
	}
	if back[0].ClientName != "Jane Doe" || back[0].IncomeExpenseCategory != "Zelle" {
		t.Errorf("bookkeeping columns lost: %+v", back[0])
	}
	if back[1].Exclude != "TRUE" {
		t.Errorf("exclude flag lost: %q", back[1].Exclude)
	}
	if !back[0].Amount.Equal(in[0].Amount) || back[0].PostDate != in[0].PostDate {
		t.Errorf("amount/date drifted: %s %v", back[0].Amount, back[0].PostDate)
	}
}

func TestParseTransactionsBadRow(t *testing.T) {
	values := [][]string{
		{"Post_Date", "Description", "Amount"},
		{"2025-03-11", "COFFEE", "-4.50"},
		{"someday", "GAS", "-40.00"},
	}
	_, err := parseTransactions(values)
	if err == nil {
		t.Fatal("expected error for unparseable post date")
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error should name the sheet row: %v", err)
	}
}

func TestRenderMonthlyPivotHeader(t *testing.T) {
	table := importer.PivotTable{
		Months: []string{"2025-02", "2025-03"},
		Rows: []importer.PivotRow{
			{IncomeExpense: "Income", IncomeExpenseCategory: "Zelle", Amounts: []decimal.Decimal{decimal.Zero, decimal.NewFromInt(250)}},
		},
	}
	header, rows := renderMonthlyPivot(table)
	if len(header) != 4 || header[2] != "2025-02" || header[3] != "2025-03" {
		t.Fatalf("pivot header = %v", header)
	}
	if rows[0][2] != "0.00" || rows[0][3] != "250.00" {
		t.Errorf("pivot cells = %v", rows[0])
	}
}

func TestRenderBudgetTabs(t *testing.T) {
	monthlyHeader, monthly := renderMonthlyBudgets([]core.MonthlyBudgetRow{
		{Type: core.Monthly, AccountName: "Rent", DayOfMonth: 15, Amount: decimal.NewFromInt(-2000)},
	})
	if monthlyHeader[2] != "Day_of_Month" {
		t.Errorf("monthly header = %v", monthlyHeader)
	}
	if monthly[0][2] != 15 || monthly[0][3] != "" {
		t.Errorf("monthly row = %v", monthly[0])
	}

	_, yearly := renderYearlyBudgets([]core.YearlyBudgetRow{
		{Type: core.Yearly, AccountName: "Insurance", MonthOfYear: time.July, DayOfMonth: 4, Amount: decimal.NewFromInt(-600)},
	})
	if yearly[0][2] != 7 {
		t.Errorf("yearly month cell = %v", yearly[0][2])
	}

	_, oneTime := renderOneTimeBudgets([]core.OneTimeBudgetRow{
		{Type: core.Oncely, AccountName: "Tax Refund", Date: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(500)},
	})
	if oneTime[0][2] != "2025-03-20" {
		t.Errorf("one-time date cell = %v", oneTime[0][2])
	}

	_, biWeekly := renderBiWeeklyBudgets([]core.BiWeeklyBudgetRow{
		{Type: core.Biweekly, AccountName: "Paycheck", OccurDate: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(1500)},
	})
	if biWeekly[0][2] != "2025-01-03" {
		t.Errorf("bi-weekly occur cell = %v", biWeekly[0][2])
	}
}
