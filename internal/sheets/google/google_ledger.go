package google

import (
	"fmt"

	"ourcash/internal/core"
	"ourcash/internal/importer"
)

// parseTransactions coerces the Transactions tab, the hand-maintained
// ledger the import flow merges new bank rows into. Post dates and
// amounts must parse; everything else is carried as-is so hand-entered
// bookkeeping columns survive a round trip untouched.
func parseTransactions(values [][]string) ([]importer.Transaction, error) {
	if len(values) == 0 {
		return nil, nil
	}
	h := newHeader(values[0])
	var out []importer.Transaction
	for i, row := range values[1:] {
		if isBlank(row) {
			continue
		}
		date, err := core.ParseDate(h.get(row, "Post_Date"))
		if err != nil {
			return nil, fmt.Errorf("transactions row %d: post date: %w", i+2, err)
		}
		amount, err := core.ParseAmount(h.get(row, "Amount"))
		if err != nil {
			return nil, fmt.Errorf("transactions row %d: amount: %w", i+2, err)
		}
		out = append(out, importer.Transaction{
			IncomeExpense:         h.get(row, "Income_Expense"),
			IncomeExpenseCategory: h.get(row, "Income_Expense_Category"),
			ClientName:            h.get(row, "Client_Name"),
			Exclude:               h.get(row, "Exclude"),
			PostMonth:             h.get(row, "Post_Month"),
			PostDate:              date,
			Description:           h.get(row, "Description"),
			Amount:                amount,
			Type:                  h.get(row, "Type"),
			CheckNumber:           h.get(row, "Check_Number"),
			AccountName:           h.get(row, "Account_Name"),
			Category:              h.get(row, "Category"),
			TransactionDate:       h.get(row, "Transaction_Date"),
			Memo:                  h.get(row, "Memo"),
			Details:               h.get(row, "Details"),
			SourceFile:            h.get(row, "Source_File"),
		})
	}
	return out, nil
}

func renderTransactions(rows []importer.Transaction) ([]string, [][]any) {
	header := []string{
		"Income_Expense", "Income_Expense_Category", "Client_Name", "Exclude",
		"Post_Month", "Post_Date", "Description", "Amount", "Type",
		"Check_Number", "Account_Name", "Category", "Transaction_Date",
		"Memo", "Details", "Source_File",
	}
	values := make([][]any, 0, len(rows))
	for _, t := range rows {
		values = append(values, []any{
			t.IncomeExpense,
			t.IncomeExpenseCategory,
			t.ClientName,
			t.Exclude,
			t.PostMonth,
			t.PostDate.Format(core.DateLayout),
			t.Description,
			core.FormatAmount(t.Amount),
			t.Type,
			t.CheckNumber,
			t.AccountName,
			t.Category,
			t.TransactionDate,
			t.Memo,
			t.Details,
			t.SourceFile,
		})
	}
	return header, values
}

func renderAccountantExport(rows []importer.AccountantRow) ([]string, [][]any) {
	header := []string{
		"Income_Expense", "Income_Expense_Category", "Client_Name",
		"Post_Month", "Post_Date", "Description", "Amount",
	}
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{
			r.IncomeExpense,
			r.IncomeExpenseCategory,
			r.ClientName,
			r.PostMonth,
			r.PostDate.Format(core.DateLayout),
			r.Description,
			core.FormatAmount(r.Amount),
		})
	}
	return header, values
}

func renderMonthlySummary(rows []importer.SummaryRow) ([]string, [][]any) {
	header := []string{"Post_Month", "Income_Expense", "Income_Expense_Category", "Client_Name", "Amount"}
	values := make([][]any, 0, len(rows))
	for _, r := range rows {
		values = append(values, []any{
			r.PostMonth,
			r.IncomeExpense,
			r.IncomeExpenseCategory,
			r.ClientName,
			core.FormatAmount(r.Amount),
		})
	}
	return header, values
}

// renderMonthlyPivot has a dynamic header: the fixed category columns
// followed by one column per month present in the table.
func renderMonthlyPivot(table importer.PivotTable) ([]string, [][]any) {
	header := append([]string{"Income_Expense", "Income_Expense_Category"}, table.Months...)
	values := make([][]any, 0, len(table.Rows))
	for _, r := range table.Rows {
		row := make([]any, 0, len(header))
		row = append(row, r.IncomeExpense, r.IncomeExpenseCategory)
		for _, a := range r.Amounts {
			row = append(row, core.FormatAmount(a))
		}
		values = append(values, row)
	}
	return header, values
}
