package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Monthly    RuleType = "monthly"
	Yearly     RuleType = "yearly"
	Biweekly   RuleType = "biweekly"
	Oncely     RuleType = "oncely"
	EveryXDays RuleType = "everyXDays"
)

type (
	// RuleType is the recurrence schedule of an income/expense rule.
	RuleType string

	// RecurrenceRule is one row of the Income_Expense table. The
	// interpretation of When depends on Type: an integer day-of-month for
	// monthly rules, a "DD-Mon" anchor for yearly rules, and a full date
	// for biweekly, oncely and everyXDays rules.
	RecurrenceRule struct {
		Category           string
		SubCategory        string
		Type               RuleType
		When               string
		AccountName        string
		Amount             decimal.Decimal
		AutoPayAccount     string
		AfterDays          int
		Priority           int
		AverageMonthlyCost decimal.Decimal
		// StartDate bounds the rule from below; zero means no lower bound.
		StartDate time.Time
		// MaturityDate bounds the rule from above; zero means it never expires.
		MaturityDate time.Time
	}

	// AccountBalance is a dated balance snapshot for one account.
	AccountBalance struct {
		AccountName string
		Date        time.Time
		Balance     decimal.Decimal
	}

	// AccountDetail is metadata for one account.
	AccountDetail struct {
		Category     string
		SubCategory  string
		AccountName  string
		Limit        decimal.Decimal
		InterestRate decimal.Decimal
		MaturityDate time.Time
		Link         string
	}

	// TransactionReport is one row of the Transactions_Report table. The
	// table is both input (paid history) and output (recomputed
	// projection); it is rewritten wholesale each run.
	TransactionReport struct {
		Date           time.Time
		Category       string
		Type           RuleType
		AccountName    string
		AutoPayAccount string
		Amount         decimal.Decimal
		AmountPaid     decimal.Decimal
		// DatePaid is zero while the transaction is unpaid.
		DatePaid       time.Time
		RunningBalance decimal.Decimal
	}

	// DailyBalance is the ending balance for one calendar day.
	DailyBalance struct {
		Date           time.Time
		RunningBalance decimal.Decimal
	}

	// EventLabel annotates a one-time transaction on the timeline.
	EventLabel struct {
		Date   time.Time
		Item   string
		Amount decimal.Decimal
	}

	// AlertDate is a day whose ending balance breached the alert threshold.
	AlertDate struct {
		Date           time.Time
		RunningBalance decimal.Decimal
	}

	// DailyBalanceRow is one row of the Daily_Balance_Report view: the
	// ending balance joined with any event label plus the constant
	// reference series the chart tab plots against.
	DailyBalanceRow struct {
		Date           time.Time
		RunningBalance decimal.Decimal
		LabelItem      string
		LabelAmount    decimal.Decimal
		EmergencyFund  decimal.Decimal
		AlertThreshold decimal.Decimal
		Zero           decimal.Decimal
	}
)

// Paid reports whether the transaction has been reconciled against the
// real account, either by a recorded paid amount or a paid date.
func (t TransactionReport) Paid() bool {
	return !t.AmountPaid.IsZero() || !t.DatePaid.IsZero()
}

// Key is the dedup identity of a report row.
func (t TransactionReport) Key() string {
	return t.Date.Format("2006-01-02") + "|" + t.AccountName
}

// InvalidRuleError reports a rule whose recurrence fields are malformed
// for its declared type. A single invalid rule aborts the projection.
type InvalidRuleError struct {
	AccountName string
	Type        RuleType
	Reason      string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid %s rule for account %q: %s", e.Type, e.AccountName, e.Reason)
}

// MissingBalanceError reports that no balance snapshot exists for an
// account. Fatal when the account seeds the running balance.
type MissingBalanceError struct {
	AccountName string
}

func (e *MissingBalanceError) Error() string {
	return fmt.Sprintf("no balance snapshot for account %q", e.AccountName)
}

// Validate checks the cross-field constraints between Type and the
// recurrence fields. Amounts are typed at the source boundary, so only
// the schedule fields can be structurally wrong here.
func (r RecurrenceRule) Validate() error {
	switch r.Type {
	case Monthly:
		day, err := ParseDayOfMonth(r.When)
		if err != nil {
			return &InvalidRuleError{AccountName: r.AccountName, Type: r.Type, Reason: err.Error()}
		}
		if day < 1 || day > 31 {
			return &InvalidRuleError{AccountName: r.AccountName, Type: r.Type, Reason: fmt.Sprintf("day of month %d out of range", day)}
		}
	case Yearly:
		if _, _, err := ParseDayMonth(r.When); err != nil {
			return &InvalidRuleError{AccountName: r.AccountName, Type: r.Type, Reason: err.Error()}
		}
	case Biweekly, Oncely:
		if _, err := ParseDate(r.When); err != nil {
			return &InvalidRuleError{AccountName: r.AccountName, Type: r.Type, Reason: err.Error()}
		}
	case EveryXDays:
		if _, err := ParseDate(r.When); err != nil {
			return &InvalidRuleError{AccountName: r.AccountName, Type: r.Type, Reason: err.Error()}
		}
		if r.AfterDays <= 0 {
			return &InvalidRuleError{AccountName: r.AccountName, Type: r.Type, Reason: fmt.Sprintf("AfterDays must be positive, got %d", r.AfterDays)}
		}
	default:
		return &InvalidRuleError{AccountName: r.AccountName, Type: r.Type, Reason: "unknown rule type"}
	}
	return nil
}
