package importer

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// AccountantRow is the narrow view of a ledger transaction handed to
// the accountant each quarter.
type AccountantRow struct {
	IncomeExpense         string
	IncomeExpenseCategory string
	ClientName            string
	PostMonth             string
	PostDate              time.Time
	Description           string
	Amount                decimal.Decimal
}

// SummaryRow is one group of the monthly summary.
type SummaryRow struct {
	PostMonth             string
	IncomeExpense         string
	IncomeExpenseCategory string
	ClientName            string
	Amount                decimal.Decimal
}

// PivotTable is the month-by-category matrix view of the summary.
// Amounts in each row align with Months; missing cells are zero.
type PivotTable struct {
	Months []string
	Rows   []PivotRow
}

type PivotRow struct {
	IncomeExpense         string
	IncomeExpenseCategory string
	Amounts               []decimal.Decimal
}

// AccountantExport keeps only categorized, non-excluded transactions:
// a row qualifies when any of the three bookkeeping fields is set.
func AccountantExport(txns []Transaction) []AccountantRow {
	var rows []AccountantRow
	for _, t := range txns {
		if t.Exclude == "TRUE" {
			continue
		}
		if t.IncomeExpense == "" && t.IncomeExpenseCategory == "" && t.ClientName == "" {
			continue
		}
		rows = append(rows, AccountantRow{
			IncomeExpense:         t.IncomeExpense,
			IncomeExpenseCategory: t.IncomeExpenseCategory,
			ClientName:            t.ClientName,
			PostMonth:             t.PostMonth,
			PostDate:              t.PostDate,
			Description:           t.Description,
			Amount:                t.Amount,
		})
	}
	return rows
}

// MonthlySummary sums the accountant export by month, direction,
// category and client.
func MonthlySummary(rows []AccountantRow) []SummaryRow {
	type groupKey struct {
		postMonth, incomeExpense, category, client string
	}

	sums := make(map[groupKey]decimal.Decimal)
	var order []groupKey
	for _, r := range rows {
		k := groupKey{r.PostMonth, r.IncomeExpense, r.IncomeExpenseCategory, r.ClientName}
		if _, ok := sums[k]; !ok {
			order = append(order, k)
		}
		sums[k] = sums[k].Add(r.Amount)
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.postMonth != b.postMonth {
			return a.postMonth < b.postMonth
		}
		if a.incomeExpense != b.incomeExpense {
			return a.incomeExpense < b.incomeExpense
		}
		if a.category != b.category {
			return a.category < b.category
		}
		return a.client < b.client
	})

	summary := make([]SummaryRow, len(order))
	for i, k := range order {
		summary[i] = SummaryRow{
			PostMonth:             k.postMonth,
			IncomeExpense:         k.incomeExpense,
			IncomeExpenseCategory: k.category,
			ClientName:            k.client,
			Amount:                sums[k],
		}
	}
	return summary
}

// MonthlyPivot collapses the summary across clients and pivots months
// into columns.
func MonthlyPivot(summary []SummaryRow) PivotTable {
	type rowKey struct {
		incomeExpense, category string
	}

	monthSet := make(map[string]struct{})
	cells := make(map[rowKey]map[string]decimal.Decimal)
	var order []rowKey
	for _, s := range summary {
		monthSet[s.PostMonth] = struct{}{}
		k := rowKey{s.IncomeExpense, s.IncomeExpenseCategory}
		if _, ok := cells[k]; !ok {
			cells[k] = make(map[string]decimal.Decimal)
			order = append(order, k)
		}
		cells[k][s.PostMonth] = cells[k][s.PostMonth].Add(s.Amount)
	}

	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)

	sort.Slice(order, func(i, j int) bool {
		if order[i].incomeExpense != order[j].incomeExpense {
			return order[i].incomeExpense < order[j].incomeExpense
		}
		return order[i].category < order[j].category
	})

	table := PivotTable{Months: months, Rows: make([]PivotRow, len(order))}
	for i, k := range order {
		row := PivotRow{
			IncomeExpense:         k.incomeExpense,
			IncomeExpenseCategory: k.category,
			Amounts:               make([]decimal.Decimal, len(months)),
		}
		for j, m := range months {
			row.Amounts[j] = cells[k][m]
		}
		table.Rows[i] = row
	}
	return table
}
