package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Per-type budget views of the rule table. Each view carries the
// rule's anchor broken out into typed columns for its own workbook
// tab.
type (
	MonthlyBudgetRow struct {
		Type         RuleType
		AccountName  string
		DayOfMonth   int
		StartDate    time.Time
		MaturityDate time.Time
		Amount       decimal.Decimal
	}

	YearlyBudgetRow struct {
		Type         RuleType
		AccountName  string
		MonthOfYear  time.Month
		DayOfMonth   int
		StartDate    time.Time
		MaturityDate time.Time
		Amount       decimal.Decimal
	}

	OneTimeBudgetRow struct {
		Type         RuleType
		AccountName  string
		Date         time.Time
		StartDate    time.Time
		MaturityDate time.Time
		Amount       decimal.Decimal
	}

	BiWeeklyBudgetRow struct {
		Type         RuleType
		AccountName  string
		OccurDate    time.Time
		StartDate    time.Time
		MaturityDate time.Time
		Amount       decimal.Decimal
	}

	// BudgetTables bundles the four views for a single write.
	BudgetTables struct {
		Monthly  []MonthlyBudgetRow
		Yearly   []YearlyBudgetRow
		OneTime  []OneTimeBudgetRow
		BiWeekly []BiWeeklyBudgetRow
	}
)
