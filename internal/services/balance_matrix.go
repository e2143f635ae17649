package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"ourcash/internal/core"
)

// TotalAccount is the synthetic account holding the per-date sum of
// every real account.
const TotalAccount = "Total"

// FilledBalance is one cell of the forward-filled balance matrix
// melted back to rows, joined with the account's taxonomy.
type FilledBalance struct {
	Date        time.Time
	AccountName string
	Balance     decimal.Decimal
	Category    string
	SubCategory string
}

// SubCategoryBalance is the matrix grouped by sub-category per date.
type SubCategoryBalance struct {
	Date        time.Time
	SubCategory string
	Balance     decimal.Decimal
}

// FilledBalances pivots the balance snapshots into a date-by-account
// matrix, forward-fills each account's gaps from its last known
// snapshot, appends a Total row per date, and melts the matrix back
// sorted by date then account. Accounts contribute nothing before
// their first snapshot.
func FilledBalances(snapshots []core.AccountBalance, details []core.AccountDetail) []FilledBalance {
	dateSet := make(map[time.Time]struct{})
	accountSet := make(map[string]struct{})
	cells := make(map[time.Time]map[string]decimal.Decimal)
	for _, s := range snapshots {
		d := core.Midnight(s.Date)
		dateSet[d] = struct{}{}
		accountSet[s.AccountName] = struct{}{}
		if cells[d] == nil {
			cells[d] = make(map[string]decimal.Decimal)
		}
		cells[d][s.AccountName] = s.Balance
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	accounts := make([]string, 0, len(accountSet))
	for a := range accountSet {
		accounts = append(accounts, a)
	}
	sort.Strings(accounts)

	taxonomy := make(map[string]core.AccountDetail, len(details))
	for _, d := range details {
		taxonomy[d.AccountName] = d
	}

	last := make(map[string]decimal.Decimal, len(accounts))
	seen := make(map[string]bool, len(accounts))
	var out []FilledBalance
	for _, date := range dates {
		total := decimal.Zero
		for _, account := range accounts {
			if b, ok := cells[date][account]; ok {
				last[account] = b
				seen[account] = true
			}
			if !seen[account] {
				continue
			}
			b := last[account]
			total = total.Add(b)
			detail := taxonomy[account]
			out = append(out, FilledBalance{
				Date:        date,
				AccountName: account,
				Balance:     b,
				Category:    detail.Category,
				SubCategory: detail.SubCategory,
			})
		}
		out = append(out, FilledBalance{
			Date:        date,
			AccountName: TotalAccount,
			Balance:     total,
			Category:    TotalAccount,
			SubCategory: TotalAccount,
		})
	}
	return out
}

// BalancesBySubCategory collapses the filled matrix to one row per
// (date, sub-category), the view the allocation chart plots.
func BalancesBySubCategory(filled []FilledBalance) []SubCategoryBalance {
	type groupKey struct {
		date        time.Time
		subCategory string
	}

	sums := make(map[groupKey]decimal.Decimal)
	var order []groupKey
	for _, f := range filled {
		k := groupKey{f.Date, f.SubCategory}
		if _, ok := sums[k]; !ok {
			order = append(order, k)
		}
		sums[k] = sums[k].Add(f.Balance)
	}

	sort.Slice(order, func(i, j int) bool {
		if !order[i].date.Equal(order[j].date) {
			return order[i].date.Before(order[j].date)
		}
		return order[i].subCategory < order[j].subCategory
	})

	out := make([]SubCategoryBalance, len(order))
	for i, k := range order {
		out[i] = SubCategoryBalance{Date: k.date, SubCategory: k.subCategory, Balance: sums[k]}
	}
	return out
}
