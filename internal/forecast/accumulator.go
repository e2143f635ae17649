package forecast

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"ourcash/internal/core"
)

// DefaultRecencyWindowDays bounds how far into the past an unpaid row
// may sit and still advance the running balance. Rows older than the
// window keep the carried-forward total: stale projected data whose
// amount may later be corrected must not compound into the balance.
const DefaultRecencyWindowDays = 10

// Accumulator merges historical ledger rows with a fresh projection and
// computes running balances.
type Accumulator struct {
	// RecencyWindowDays defaults to DefaultRecencyWindowDays when zero.
	RecencyWindowDays int
}

// Build produces the full refreshed report table.
//
// History rows survive only when paid or dated strictly before today;
// unpaid future history is dropped and re-derived from the live rule
// set. After concatenation (history first) rows are de-duplicated on
// (date, account) keeping the first occurrence, so history wins over
// projection, then stable-sorted ascending by (date, amount) so
// same-day expenses land before income. The walk seeds the running
// total with the primary account's opening balance; a row advances the
// total only while unpaid and inside the recency window.
func (a Accumulator) Build(history, projected []core.TransactionReport, opening decimal.Decimal, today time.Time) []core.TransactionReport {
	window := a.RecencyWindowDays
	if window == 0 {
		window = DefaultRecencyWindowDays
	}
	today = core.Midnight(today)

	rows := make([]core.TransactionReport, 0, len(history)+len(projected))
	for _, h := range history {
		if h.Paid() || h.Date.Before(today) {
			h.RunningBalance = decimal.Zero
			rows = append(rows, h)
		}
	}
	rows = append(rows, projected...)

	rows = dedupFirst(rows)

	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.Before(rows[j].Date)
		}
		return rows[i].Amount.LessThan(rows[j].Amount)
	})

	total := opening
	for i := range rows {
		daysAgo := core.DaysBetween(rows[i].Date, today)
		if rows[i].DatePaid.IsZero() && daysAgo <= window {
			total = total.Add(rows[i].Amount)
		}
		rows[i].RunningBalance = total
	}
	return rows
}

// dedupFirst keeps the first row seen for each (date, account) key,
// preserving input order.
func dedupFirst(rows []core.TransactionReport) []core.TransactionReport {
	seen := make(map[string]struct{}, len(rows))
	out := rows[:0]
	for _, r := range rows {
		key := r.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// CurrentBalance returns the balance from the most recent snapshot for
// the account. No snapshot at all is a MissingBalanceError: a running
// total cannot be seeded from a default.
func CurrentBalance(snapshots []core.AccountBalance, accountName string) (decimal.Decimal, error) {
	var (
		found  bool
		latest core.AccountBalance
	)
	for _, s := range snapshots {
		if s.AccountName != accountName {
			continue
		}
		if !found || s.Date.After(latest.Date) {
			latest = s
			found = true
		}
	}
	if !found {
		return decimal.Zero, &core.MissingBalanceError{AccountName: accountName}
	}
	return latest.Balance, nil
}

// EmergencyFund is six months of the average monthly cost of every
// priority-one rule.
func EmergencyFund(rules []core.RecurrenceRule) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rules {
		if r.Priority == 1 {
			total = total.Add(r.AverageMonthlyCost)
		}
	}
	return total.Mul(decimal.NewFromInt(6))
}
