package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"ourcash/internal/core"
)

const (
	// DefaultAlertThreshold is the ending balance below which a day is
	// flagged.
	DefaultAlertThreshold = 1000

	// DefaultAlertWindowDays restricts alerts to days near the run date.
	// Deliberately distinct from the report window; the two cutoffs have
	// never shared a rationale and stay independently configurable.
	DefaultAlertWindowDays = 1

	// DefaultReportWindowDays trims the daily balance report to rows no
	// older than this many days.
	DefaultReportWindowDays = 10
)

// Shaper derives the read-only report views from an accumulated table.
type Shaper struct {
	AlertThreshold   decimal.Decimal // zero value means DefaultAlertThreshold
	AlertWindowDays  int
	ReportWindowDays int
}

func (s Shaper) threshold() decimal.Decimal {
	if s.AlertThreshold.IsZero() {
		return decimal.NewFromInt(DefaultAlertThreshold)
	}
	return s.AlertThreshold
}

func (s Shaper) alertWindow() int {
	if s.AlertWindowDays == 0 {
		return DefaultAlertWindowDays
	}
	return s.AlertWindowDays
}

func (s Shaper) reportWindow() int {
	if s.ReportWindowDays == 0 {
		return DefaultReportWindowDays
	}
	return s.ReportWindowDays
}

// EndingDailyBalances keeps the last row per date in accumulated order,
// which is the balance after that day's final transaction.
func (s Shaper) EndingDailyBalances(rows []core.TransactionReport) []core.DailyBalance {
	idx := make(map[string]int, len(rows))
	var out []core.DailyBalance
	for _, r := range rows {
		key := r.Date.Format(core.DateLayout)
		if i, ok := idx[key]; ok {
			out[i].RunningBalance = r.RunningBalance
			continue
		}
		idx[key] = len(out)
		out = append(out, core.DailyBalance{Date: r.Date, RunningBalance: r.RunningBalance})
	}
	return out
}

// EventLabels isolates one-time transactions as timeline annotations.
func (s Shaper) EventLabels(rows []core.TransactionReport) []core.EventLabel {
	var out []core.EventLabel
	for _, r := range rows {
		if r.Type != core.Oncely {
			continue
		}
		out = append(out, core.EventLabel{Date: r.Date, Item: r.AccountName, Amount: r.Amount})
	}
	return out
}

// AlertDates returns the days whose ending balance breaches the
// threshold, restricted to dates within the alert window of today on
// either side. Far-future breaches are informational only; they re-enter
// the window as time advances.
func (s Shaper) AlertDates(rows []core.TransactionReport, today time.Time) []core.AlertDate {
	today = core.Midnight(today)
	threshold := s.threshold()
	window := s.alertWindow()

	var out []core.AlertDate
	for _, b := range s.EndingDailyBalances(rows) {
		if !b.RunningBalance.LessThan(threshold) {
			continue
		}
		delta := core.DaysBetween(today, b.Date)
		if delta < -window || delta > window {
			continue
		}
		out = append(out, core.AlertDate{Date: b.Date, RunningBalance: b.RunningBalance})
	}
	return out
}

// DailyBalanceReport joins ending balances with event labels and adds
// the constant reference series the chart tab plots, trimmed to rows
// not older than the report window.
func (s Shaper) DailyBalanceReport(rows []core.TransactionReport, today time.Time, emergencyFund decimal.Decimal) []core.DailyBalanceRow {
	today = core.Midnight(today)
	window := s.reportWindow()

	labels := make(map[string]core.EventLabel)
	for _, l := range s.EventLabels(rows) {
		labels[l.Date.Format(core.DateLayout)] = l
	}

	var out []core.DailyBalanceRow
	for _, b := range s.EndingDailyBalances(rows) {
		if core.DaysBetween(b.Date, today) > window {
			continue
		}
		row := core.DailyBalanceRow{
			Date:           b.Date,
			RunningBalance: b.RunningBalance,
			EmergencyFund:  emergencyFund.Neg(),
			AlertThreshold: s.threshold(),
			Zero:           decimal.Zero,
		}
		if l, ok := labels[b.Date.Format(core.DateLayout)]; ok {
			row.LabelItem = l.Item
			row.LabelAmount = l.Amount
		}
		out = append(out, row)
	}
	return out
}
