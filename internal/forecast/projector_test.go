package forecast

import (
	"testing"

	"github.com/shopspring/decimal"

	"ourcash/internal/core"
)

func TestProjectStampsDates(t *testing.T) {
	p, err := NewProjector([]core.RecurrenceRule{
		{Type: core.Monthly, When: "15", AccountName: "Rent", Category: "Housing", Amount: decimal.NewFromInt(-1200)},
	})
	if err != nil {
		t.Fatalf("NewProjector() error = %v", err)
	}

	rows := p.Project(core.Date(2025, 1, 1), core.Date(2025, 3, 31))
	if len(rows) != 3 {
		t.Fatalf("Project() returned %d rows, want 3", len(rows))
	}
	for i, want := range []core.TransactionReport{
		{Date: core.Date(2025, 1, 15)},
		{Date: core.Date(2025, 2, 15)},
		{Date: core.Date(2025, 3, 15)},
	} {
		if !rows[i].Date.Equal(want.Date) {
			t.Errorf("rows[%d].Date = %v, want %v", i, rows[i].Date, want.Date)
		}
		if rows[i].AccountName != "Rent" || rows[i].Category != "Housing" {
			t.Errorf("rows[%d] lost rule identity: %+v", i, rows[i])
		}
		if !rows[i].AmountPaid.IsZero() || !rows[i].DatePaid.IsZero() {
			t.Errorf("rows[%d] should be unpaid when projected", i)
		}
	}
}

func TestProjectInclusiveEnds(t *testing.T) {
	p, err := NewProjector([]core.RecurrenceRule{
		{Type: core.Monthly, When: "1", AccountName: "A", Amount: decimal.NewFromInt(-1)},
	})
	if err != nil {
		t.Fatal(err)
	}

	rows := p.Project(core.Date(2025, 2, 1), core.Date(2025, 3, 1))
	if len(rows) != 2 {
		t.Errorf("Project() returned %d rows, want both inclusive endpoints", len(rows))
	}
}

func TestProjectAroundWindow(t *testing.T) {
	p, err := NewProjector([]core.RecurrenceRule{
		{Type: core.EveryXDays, When: "2025-03-01", AfterDays: 1, AccountName: "Daily", Amount: decimal.NewFromInt(-1)},
	})
	if err != nil {
		t.Fatal(err)
	}

	rows := p.ProjectAround(core.Date(2025, 3, 14), 5, 10)
	// 5 back + today + 10 forward, one firing per day.
	if len(rows) != 16 {
		t.Errorf("ProjectAround() returned %d rows, want 16", len(rows))
	}
	if !rows[0].Date.Equal(core.Date(2025, 3, 9)) {
		t.Errorf("first row = %v, want 2025-03-09", rows[0].Date)
	}
	if !rows[len(rows)-1].Date.Equal(core.Date(2025, 3, 24)) {
		t.Errorf("last row = %v, want 2025-03-24", rows[len(rows)-1].Date)
	}
}

func TestNewProjectorRejectsInvalidRules(t *testing.T) {
	_, err := NewProjector([]core.RecurrenceRule{
		{Type: core.Monthly, When: "nope", AccountName: "Bad"},
	})
	if err == nil {
		t.Error("NewProjector() should reject an invalid rule")
	}
}
