package importer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Categorize fills the bookkeeping columns from the bank description.
// Hand-entered values survive: a heuristic only overwrites when it
// actually matches, and excluded rows are wiped entirely.
func Categorize(t Transaction) Transaction {
	desc := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(t.Description))), " ")

	if t.Exclude == "TRUE" {
		t.IncomeExpense = ""
		t.IncomeExpenseCategory = ""
		t.ClientName = ""
		return t
	}

	switch {
	case strings.Contains(desc, "zelle") && strings.Contains(desc, "from"):
		t.IncomeExpense = "Income"
		t.IncomeExpenseCategory = "Zelle"
		t.ClientName = zelleClientName(desc)
	case strings.Contains(desc, "venmo") && strings.Contains(desc, "cashout"):
		t.IncomeExpense = "Income"
		t.IncomeExpenseCategory = "Venmo"
	case strings.Contains(desc, "remote online deposit"):
		t.IncomeExpense = "Income"
		t.IncomeExpenseCategory = "Check"
	}

	return t
}

// zelleClientName pulls the sender out of a Zelle description. The
// bank formats these as "Zelle payment from FIRST LAST 12345678"; the
// trailing confirmation number is dropped.
func zelleClientName(desc string) string {
	parts := strings.Split(desc, "from")
	words := strings.Fields(strings.TrimSpace(parts[len(parts)-1]))
	if len(words) < 2 {
		return ""
	}
	// Casers are stateful, so build one per call.
	return cases.Title(language.English).String(strings.Join(words[:len(words)-1], " "))
}
