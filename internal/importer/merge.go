package importer

import (
	"sort"
)

// Merge folds freshly imported transactions into the existing ledger:
// existing rows first so their hand-entered categorization wins the
// dedup, then categorization over every row, then newest-first order
// for the sheet. The result replaces the ledger tab wholesale.
func Merge(current, incoming []Transaction) []Transaction {
	merged := make([]Transaction, 0, len(current)+len(incoming))
	merged = append(merged, current...)
	merged = append(merged, incoming...)

	seen := make(map[string]struct{}, len(merged))
	deduped := merged[:0]
	for _, t := range merged {
		key := t.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if t.PostMonth == "" {
			t.PostMonth = t.PostDate.Format("2006-01")
		}
		deduped = append(deduped, Categorize(t))
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].PostDate.After(deduped[j].PostDate)
	})

	return deduped
}
