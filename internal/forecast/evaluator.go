// Package forecast implements the recurring-transaction projection
// engine: rule evaluation, the calendar walk, the running-balance
// accumulation and the derived report views.
//
// This file implements the Strategy Pattern for rule firing. Each
// recurrence type (monthly, yearly, biweekly, oncely, everyXDays) has
// its own checker that encapsulates the schedule arithmetic.
package forecast

import (
	"fmt"
	"time"

	"ourcash/internal/core"
)

// Rule is a recurrence rule that passed validation, with its When
// anchor parsed into the representation its checker needs.
type Rule struct {
	core.RecurrenceRule

	dayOfMonth  int        // monthly
	anchorDay   int        // yearly
	anchorMonth time.Month // yearly
	anchorDate  time.Time  // biweekly, oncely, everyXDays
}

// FireChecker is the strategy interface deciding whether a rule fires
// on a given calendar date. Implementations are pure: no clock, no
// side effects.
type FireChecker interface {
	Fires(r Rule, day time.Time) bool
}

// MonthlyChecker fires on a fixed day of every month.
type MonthlyChecker struct{}

func (MonthlyChecker) Fires(r Rule, day time.Time) bool {
	return withinBounds(r, day) && day.Day() == r.dayOfMonth
}

// YearlyChecker fires once a year on a fixed month and day.
type YearlyChecker struct{}

func (YearlyChecker) Fires(r Rule, day time.Time) bool {
	return withinBounds(r, day) && day.Month() == r.anchorMonth && day.Day() == r.anchorDay
}

// BiweeklyChecker fires every 14 days counted from the anchor date.
type BiweeklyChecker struct{}

func (BiweeklyChecker) Fires(r Rule, day time.Time) bool {
	return withinBounds(r, day) && core.DaysBetween(r.anchorDate, day)%14 == 0
}

// OncelyChecker fires exactly once, on the anchor date itself. Start
// and maturity bounds do not apply to one-time rules.
type OncelyChecker struct{}

func (OncelyChecker) Fires(r Rule, day time.Time) bool {
	return day.Equal(r.anchorDate)
}

// EveryXDaysChecker fires every AfterDays days counted from the anchor
// date. AfterDays is guaranteed positive by compilation.
type EveryXDaysChecker struct{}

func (EveryXDaysChecker) Fires(r Rule, day time.Time) bool {
	return withinBounds(r, day) && core.DaysBetween(r.anchorDate, day)%r.AfterDays == 0
}

// withinBounds applies the shared start/maturity window. A zero bound
// is open on that side; the maturity day itself still fires.
func withinBounds(r Rule, day time.Time) bool {
	if !r.StartDate.IsZero() && day.Before(r.StartDate) {
		return false
	}
	if !r.MaturityDate.IsZero() && day.After(r.MaturityDate) {
		return false
	}
	return true
}

// fireStrategies maps rule types to their checkers.
var fireStrategies = map[core.RuleType]FireChecker{
	core.Monthly:    MonthlyChecker{},
	core.Yearly:     YearlyChecker{},
	core.Biweekly:   BiweeklyChecker{},
	core.Oncely:     OncelyChecker{},
	core.EveryXDays: EveryXDaysChecker{},
}

// CheckerFor returns the firing checker for a rule type.
func CheckerFor(t core.RuleType) (FireChecker, error) {
	checker, ok := fireStrategies[t]
	if !ok {
		return nil, fmt.Errorf("unknown rule type: %s", t)
	}
	return checker, nil
}

// CompileRule validates one rule and parses its anchor. The returned
// error is always a *core.InvalidRuleError.
func CompileRule(r core.RecurrenceRule) (Rule, error) {
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	out := Rule{RecurrenceRule: r}
	switch r.Type {
	case core.Monthly:
		out.dayOfMonth, _ = core.ParseDayOfMonth(r.When)
	case core.Yearly:
		out.anchorDay, out.anchorMonth, _ = core.ParseDayMonth(r.When)
	case core.Biweekly, core.Oncely, core.EveryXDays:
		out.anchorDate, _ = core.ParseDate(r.When)
	}
	return out, nil
}

// CompileRules validates the whole rule set up front. One malformed
// rule fails the lot: a partial projection is worse than a clear error.
func CompileRules(rules []core.RecurrenceRule) ([]Rule, error) {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		compiled, err := CompileRule(r)
		if err != nil {
			return nil, err
		}
		out = append(out, compiled)
	}
	return out, nil
}

// Fires reports whether the compiled rule fires on the given date.
func (r Rule) Fires(day time.Time) bool {
	checker, ok := fireStrategies[r.Type]
	if !ok {
		return false
	}
	return checker.Fires(r, day)
}
