package core

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRecurrenceRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    RecurrenceRule
		wantErr bool
	}{
		{"valid monthly", RecurrenceRule{Type: Monthly, When: "15"}, false},
		{"monthly day 1", RecurrenceRule{Type: Monthly, When: "1"}, false},
		{"monthly day 31", RecurrenceRule{Type: Monthly, When: "31"}, false},
		{"monthly day 0", RecurrenceRule{Type: Monthly, When: "0"}, true},
		{"monthly day 32", RecurrenceRule{Type: Monthly, When: "32"}, true},
		{"monthly words", RecurrenceRule{Type: Monthly, When: "mid-month"}, true},
		{"valid yearly", RecurrenceRule{Type: Yearly, When: "31-Dec"}, false},
		{"yearly single digit day", RecurrenceRule{Type: Yearly, When: "4-Jul"}, false},
		{"yearly bad month", RecurrenceRule{Type: Yearly, When: "31-Zed"}, true},
		{"valid biweekly", RecurrenceRule{Type: Biweekly, When: "2025-01-03"}, false},
		{"biweekly slash date", RecurrenceRule{Type: Biweekly, When: "1/3/2025"}, false},
		{"biweekly garbage", RecurrenceRule{Type: Biweekly, When: "every other friday"}, true},
		{"valid oncely", RecurrenceRule{Type: Oncely, When: "2025-06-01"}, false},
		{"oncely empty", RecurrenceRule{Type: Oncely, When: ""}, true},
		{"valid everyXDays", RecurrenceRule{Type: EveryXDays, When: "2025-01-01", AfterDays: 30}, false},
		{"everyXDays zero interval", RecurrenceRule{Type: EveryXDays, When: "2025-01-01", AfterDays: 0}, true},
		{"everyXDays negative interval", RecurrenceRule{Type: EveryXDays, When: "2025-01-01", AfterDays: -1}, true},
		{"unknown type", RecurrenceRule{Type: "fortnightly", When: "1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInvalidRuleErrorMessage(t *testing.T) {
	rule := RecurrenceRule{Type: EveryXDays, When: "2025-01-01", AfterDays: 0, AccountName: "Haircut"}
	err := rule.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, want := range []string{"everyXDays", "Haircut"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should contain %q", err.Error(), want)
		}
	}
}

func TestTransactionReportPaid(t *testing.T) {
	tests := []struct {
		name string
		row  TransactionReport
		want bool
	}{
		{"unpaid", TransactionReport{}, false},
		{"amount paid", TransactionReport{AmountPaid: decimal.NewFromInt(-50)}, true},
		{"date paid", TransactionReport{DatePaid: Date(2025, 3, 12)}, true},
		{"both", TransactionReport{AmountPaid: decimal.NewFromInt(-50), DatePaid: Date(2025, 3, 12)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Paid(); got != tt.want {
				t.Errorf("Paid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransactionReportKey(t *testing.T) {
	a := TransactionReport{Date: Date(2025, 3, 15), AccountName: "Rent"}
	b := TransactionReport{Date: Date(2025, 3, 15), AccountName: "Rent", Amount: decimal.NewFromInt(-999)}
	c := TransactionReport{Date: Date(2025, 3, 16), AccountName: "Rent"}

	if a.Key() != b.Key() {
		t.Error("rows differing only in amount should share a key")
	}
	if a.Key() == c.Key() {
		t.Error("rows on different dates should not share a key")
	}
}
