package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is one cleared transaction pulled from a bank CSV
// export. PostDate, Description, Amount and AccountName together
// identify a transaction across repeated imports of overlapping files.
type BankTransaction struct {
	PostDate    time.Time
	Description string
	Amount      decimal.Decimal
	AccountName string
	Category    string
	SourceFile  string
}

// Key is the dedup identity of a bank transaction.
func (t BankTransaction) Key() string {
	return t.PostDate.Format(DateLayout) + "|" + t.Description + "|" + t.Amount.String() + "|" + t.AccountName
}

// ForecastRun records one completed projection run.
type ForecastRun struct {
	ID             string
	RunDate        time.Time
	PrimaryAccount string
	OpeningBalance decimal.Decimal
	RowCount       int
	AlertCount     int
	CreatedAt      time.Time
}
