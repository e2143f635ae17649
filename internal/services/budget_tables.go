package services

import (
	"fmt"

	"ourcash/internal/core"
)

// BuildBudgetTables splits the rule table into its four per-type views
// with the recurrence anchor broken out into typed columns. Rules are
// expected to be validated already; an unparseable anchor here is a
// hard error, not a skip.
func BuildBudgetTables(rules []core.RecurrenceRule) (core.BudgetTables, error) {
	var tables core.BudgetTables
	for _, r := range rules {
		switch r.Type {
		case core.Monthly:
			day, err := core.ParseDayOfMonth(r.When)
			if err != nil {
				return core.BudgetTables{}, fmt.Errorf("monthly rule %q: %w", r.AccountName, err)
			}
			tables.Monthly = append(tables.Monthly, core.MonthlyBudgetRow{
				Type:         r.Type,
				AccountName:  r.AccountName,
				DayOfMonth:   day,
				StartDate:    r.StartDate,
				MaturityDate: r.MaturityDate,
				Amount:       r.Amount,
			})
		case core.Yearly:
			day, month, err := core.ParseDayMonth(r.When)
			if err != nil {
				return core.BudgetTables{}, fmt.Errorf("yearly rule %q: %w", r.AccountName, err)
			}
			tables.Yearly = append(tables.Yearly, core.YearlyBudgetRow{
				Type:         r.Type,
				AccountName:  r.AccountName,
				MonthOfYear:  month,
				DayOfMonth:   day,
				StartDate:    r.StartDate,
				MaturityDate: r.MaturityDate,
				Amount:       r.Amount,
			})
		case core.Oncely:
			date, err := core.ParseDate(r.When)
			if err != nil {
				return core.BudgetTables{}, fmt.Errorf("one-time rule %q: %w", r.AccountName, err)
			}
			tables.OneTime = append(tables.OneTime, core.OneTimeBudgetRow{
				Type:         r.Type,
				AccountName:  r.AccountName,
				Date:         date,
				StartDate:    r.StartDate,
				MaturityDate: r.MaturityDate,
				Amount:       r.Amount,
			})
		case core.Biweekly:
			date, err := core.ParseDate(r.When)
			if err != nil {
				return core.BudgetTables{}, fmt.Errorf("bi-weekly rule %q: %w", r.AccountName, err)
			}
			tables.BiWeekly = append(tables.BiWeekly, core.BiWeeklyBudgetRow{
				Type:         r.Type,
				AccountName:  r.AccountName,
				OccurDate:    date,
				StartDate:    r.StartDate,
				MaturityDate: r.MaturityDate,
				Amount:       r.Amount,
			})
		}
	}
	return tables, nil
}
