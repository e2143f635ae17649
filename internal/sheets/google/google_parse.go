package google

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ourcash/internal/core"
)

// header maps column names to their index, case-insensitively. The
// workbook has drifted between snake_case and spaced headers over the
// years, so both spellings of each column are accepted.
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		h[normalizeCol(name)] = i
	}
	return h
}

func normalizeCol(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

// get returns the cell under the named column, empty when the column or
// cell is absent.
func (h header) get(row []string, name string) string {
	i, ok := h[normalizeCol(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseRules coerces the Income_Expense tab. Amount problems fail the
// row (a rule without a usable amount is meaningless); date cells are
// optional and unparseable ones are treated as unset, matching the
// forgiving history of the sheet.
func parseRules(values [][]string) ([]core.RecurrenceRule, error) {
	if len(values) == 0 {
		return nil, nil
	}
	h := newHeader(values[0])
	var out []core.RecurrenceRule
	for i, row := range values[1:] {
		if isBlank(row) {
			continue
		}
		amount, err := core.ParseAmount(h.get(row, "Amount"))
		if err != nil {
			return nil, fmt.Errorf("income_expense row %d: amount: %w", i+2, err)
		}
		avgCost, err := core.ParseAmount(h.get(row, "AverageMonthlyCost"))
		if err != nil {
			return nil, fmt.Errorf("income_expense row %d: average monthly cost: %w", i+2, err)
		}
		rule := core.RecurrenceRule{
			Category:           h.get(row, "Category"),
			SubCategory:        h.get(row, "Sub_Category"),
			Type:               core.RuleType(h.get(row, "Type")),
			When:               h.get(row, "When"),
			AccountName:        h.get(row, "Account_Name"),
			Amount:             amount,
			AutoPayAccount:     h.get(row, "Auto_Pay_Account"),
			AfterDays:          parseIntDefault(h.get(row, "AfterDays"), 0),
			Priority:           parseIntDefault(h.get(row, "Priority"), 0),
			AverageMonthlyCost: avgCost,
		}
		if d, err := core.ParseDate(h.get(row, "Start_Date")); err == nil {
			rule.StartDate = d
		}
		if d, err := core.ParseDate(h.get(row, "Maturity_Date")); err == nil {
			rule.MaturityDate = d
		}
		out = append(out, rule)
	}
	return out, nil
}

func parseBalances(values [][]string) ([]core.AccountBalance, error) {
	if len(values) == 0 {
		return nil, nil
	}
	h := newHeader(values[0])
	var out []core.AccountBalance
	for i, row := range values[1:] {
		if isBlank(row) {
			continue
		}
		date, err := core.ParseDate(h.get(row, "Date"))
		if err != nil {
			return nil, fmt.Errorf("account_balances row %d: date: %w", i+2, err)
		}
		balance, err := core.ParseAmount(h.get(row, "Balance"))
		if err != nil {
			return nil, fmt.Errorf("account_balances row %d: balance: %w", i+2, err)
		}
		out = append(out, core.AccountBalance{
			AccountName: h.get(row, "Account_Name"),
			Date:        date,
			Balance:     balance,
		})
	}
	return out, nil
}

func parseAccountDetails(values [][]string) ([]core.AccountDetail, error) {
	if len(values) == 0 {
		return nil, nil
	}
	h := newHeader(values[0])
	var out []core.AccountDetail
	for i, row := range values[1:] {
		if isBlank(row) {
			continue
		}
		limit, err := core.ParseAmount(h.get(row, "Limit"))
		if err != nil {
			return nil, fmt.Errorf("account_details row %d: limit: %w", i+2, err)
		}
		rate, err := core.ParseRate(h.get(row, "Interest_Rate"))
		if err != nil {
			return nil, fmt.Errorf("account_details row %d: interest rate: %w", i+2, err)
		}
		detail := core.AccountDetail{
			Category:     h.get(row, "Category"),
			SubCategory:  h.get(row, "Sub_Category"),
			AccountName:  h.get(row, "Account_Name"),
			Limit:        limit,
			InterestRate: rate,
			Link:         h.get(row, "Link"),
		}
		if d, err := core.ParseDate(h.get(row, "Maturity_Date")); err == nil {
			detail.MaturityDate = d
		}
		out = append(out, detail)
	}
	return out, nil
}

// parseTransactionsReport coerces the historical ledger. Blank paid
// amounts are zero and bad paid dates are treated as unset.
func parseTransactionsReport(values [][]string) ([]core.TransactionReport, error) {
	if len(values) == 0 {
		return nil, nil
	}
	h := newHeader(values[0])
	var out []core.TransactionReport
	for i, row := range values[1:] {
		if isBlank(row) {
			continue
		}
		date, err := core.ParseDate(h.get(row, "Date"))
		if err != nil {
			return nil, fmt.Errorf("transactions_report row %d: date: %w", i+2, err)
		}
		amount, err := core.ParseAmount(h.get(row, "Amount"))
		if err != nil {
			return nil, fmt.Errorf("transactions_report row %d: amount: %w", i+2, err)
		}
		amountPaid, _ := core.ParseAmount(h.get(row, "Amount_Paid"))
		runningBalance, _ := core.ParseAmount(h.get(row, "Running_Balance"))
		tr := core.TransactionReport{
			Date:           date,
			Category:       h.get(row, "Category"),
			Type:           core.RuleType(h.get(row, "Type")),
			AccountName:    h.get(row, "Account_Name"),
			AutoPayAccount: h.get(row, "Auto_Pay_Account"),
			Amount:         amount,
			AmountPaid:     amountPaid,
			RunningBalance: runningBalance,
		}
		if d, err := core.ParseDate(h.get(row, "Date_Paid")); err == nil {
			tr.DatePaid = d
		}
		out = append(out, tr)
	}
	return out, nil
}

func renderTransactionsReport(rows []core.TransactionReport) ([]string, [][]any) {
	header := []string{"Date", "Category", "Type", "Account_Name", "Auto_Pay_Account", "Amount", "Amount_Paid", "Date_Paid", "Running_Balance"}
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{
			r.Date.Format(core.DateLayout),
			r.Category,
			string(r.Type),
			r.AccountName,
			r.AutoPayAccount,
			core.FormatAmount(r.Amount),
			blankIfZeroAmount(r.AmountPaid),
			blankIfZeroDate(r.DatePaid),
			core.FormatAmount(r.RunningBalance),
		})
	}
	return header, values
}

func renderDailyBalanceReport(rows []core.DailyBalanceRow) ([]string, [][]any) {
	header := []string{"Date", "Running_Balance", "Label_Item", "Label_Amount", "Emergency_Fund_Amount", "Alert_Threshold", "Zero"}
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		labelAmount := ""
		if r.LabelItem != "" {
			labelAmount = core.FormatAmount(r.LabelAmount)
		}
		values = append(values, []any{
			r.Date.Format(core.DateLayout),
			core.FormatAmount(r.RunningBalance),
			r.LabelItem,
			labelAmount,
			core.FormatAmount(r.EmergencyFund),
			core.FormatAmount(r.AlertThreshold),
			core.FormatAmount(r.Zero),
		})
	}
	return header, values
}

func renderAlertDates(rows []core.AlertDate) ([]string, [][]any) {
	header := []string{"Date", "Running_Balance"}
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{r.Date.Format(core.DateLayout), core.FormatAmount(r.RunningBalance)})
	}
	return header, values
}

func renderEventLabels(rows []core.EventLabel) ([]string, [][]any) {
	header := []string{"Date", "Label_Item", "Label_Amount"}
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{r.Date.Format(core.DateLayout), r.Item, core.FormatAmount(r.Amount)})
	}
	return header, values
}

func renderMonthlyBudgets(rows []core.MonthlyBudgetRow) ([]string, [][]any) {
	header := []string{"Type", "Account_Name", "Day_of_Month", "Start_Date", "Maturity_Date", "Amount"}
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{
			string(r.Type),
			r.AccountName,
			r.DayOfMonth,
			blankIfZeroDate(r.StartDate),
			blankIfZeroDate(r.MaturityDate),
			core.FormatAmount(r.Amount),
		})
	}
	return header, values
}

func renderYearlyBudgets(rows []core.YearlyBudgetRow) ([]string, [][]any) {
	header := []string{"Type", "Account_Name", "Month_of_Year", "Day_of_Month", "Start_Date", "Maturity_Date", "Amount"}
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{
			string(r.Type),
			r.AccountName,
			int(r.MonthOfYear),
			r.DayOfMonth,
			blankIfZeroDate(r.StartDate),
			blankIfZeroDate(r.MaturityDate),
			core.FormatAmount(r.Amount),
		})
	}
	return header, values
}

func renderOneTimeBudgets(rows []core.OneTimeBudgetRow) ([]string, [][]any) {
	header := []string{"Type", "Account_Name", "Date", "Start_Date", "Maturity_Date", "Amount"}
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{
			string(r.Type),
			r.AccountName,
			r.Date.Format(core.DateLayout),
			blankIfZeroDate(r.StartDate),
			blankIfZeroDate(r.MaturityDate),
			core.FormatAmount(r.Amount),
		})
	}
	return header, values
}

func renderBiWeeklyBudgets(rows []core.BiWeeklyBudgetRow) ([]string, [][]any) {
	header := []string{"Type", "Account_Name", "Occur_Date", "Start_Date", "Maturity_Date", "Amount"}
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{
			string(r.Type),
			r.AccountName,
			r.OccurDate.Format(core.DateLayout),
			blankIfZeroDate(r.StartDate),
			blankIfZeroDate(r.MaturityDate),
			core.FormatAmount(r.Amount),
		})
	}
	return header, values
}

func blankIfZeroAmount(d decimal.Decimal) any {
	if d.IsZero() {
		return ""
	}
	return core.FormatAmount(d)
}

func blankIfZeroDate(t time.Time) any {
	if t.IsZero() {
		return ""
	}
	return t.Format(core.DateLayout)
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
