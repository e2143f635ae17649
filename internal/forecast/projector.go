package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"ourcash/internal/core"
)

// Projector expands a validated rule set over a date range, producing
// one projected transaction per (date, firing rule) pair. The walk is
// O(days x rules); ranges run about two years and rule counts stay in
// the tens, so nothing cleverer is warranted.
type Projector struct {
	rules []Rule
}

// NewProjector compiles the rule set. Any structurally invalid rule
// aborts construction.
func NewProjector(rules []core.RecurrenceRule) (*Projector, error) {
	compiled, err := CompileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Projector{rules: compiled}, nil
}

// FiringsOn returns the projected transactions for a single date. The
// firing date is stamped onto each row; rules only carry an anchor.
func (p *Projector) FiringsOn(day time.Time) []core.TransactionReport {
	day = core.Midnight(day)
	var out []core.TransactionReport
	for _, r := range p.rules {
		if !r.Fires(day) {
			continue
		}
		out = append(out, core.TransactionReport{
			Date:           day,
			Category:       r.Category,
			Type:           r.Type,
			AccountName:    r.AccountName,
			AutoPayAccount: r.AutoPayAccount,
			Amount:         r.Amount,
			AmountPaid:     decimal.Zero,
		})
	}
	return out
}

// Project walks [start, end] inclusive, ascending. Output order is one
// day at a time in rule order; the accumulator owns the final sort.
func (p *Projector) Project(start, end time.Time) []core.TransactionReport {
	var out []core.TransactionReport
	for day := core.Midnight(start); !day.After(core.Midnight(end)); day = day.AddDate(0, 0, 1) {
		out = append(out, p.FiringsOn(day)...)
	}
	return out
}

// ProjectAround projects the window the refresh run uses: a few days of
// recent past (so just-elapsed unpaid transactions are re-derived) plus
// the forward horizon.
func (p *Projector) ProjectAround(today time.Time, daysBack, daysForward int) []core.TransactionReport {
	today = core.Midnight(today)
	return p.Project(today.AddDate(0, 0, -daysBack), today.AddDate(0, 0, daysForward))
}
