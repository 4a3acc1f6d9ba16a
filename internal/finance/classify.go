package finance

import (
	"sort"
	"strings"
)

// ExpenseClass partitions expenses for profitability math.
type ExpenseClass string

const (
	// ClassOperating covers recurring spend (rent, salaries, marketing, ...).
	ClassOperating ExpenseClass = "OPERATING"
	// ClassOneTime covers capital/investment-type spend; it is the ROI base.
	ClassOneTime ExpenseClass = "ONE_TIME"
)

// oneTimeCategories is the closed set of capital-spend labels. Extending it
// is a deliberate code change; nothing is ever inferred from amounts or
// descriptions.
var oneTimeCategories = map[string]struct{}{
	"equipement":     {},
	"renovation":     {},
	"construction":   {},
	"achat vehicule": {},
	"gros materiel":  {},
}

// OneTimeCategories returns the one-time category labels in canonical
// form, sorted so callers see a stable order.
func OneTimeCategories() []string {
	out := make([]string, 0, len(oneTimeCategories))
	for c := range oneTimeCategories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Classify maps an expense to its class. Unknown, free-text and malformed
// categories all land on OPERATING, so the two classes always partition the
// input exactly.
func Classify(e Expense) ExpenseClass {
	if _, ok := oneTimeCategories[canonicalCategory(e.Category)]; ok {
		return ClassOneTime
	}
	return ClassOperating
}

var accentReplacer = strings.NewReplacer(
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"à", "a", "â", "a",
	"î", "i", "ï", "i",
	"ô", "o", "û", "u", "ù", "u", "ç", "c",
)

// canonicalCategory lowercases, trims and strips the accents that appear in
// the French category labels so "Équipement " matches "equipement".
func canonicalCategory(category string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(category)))
}
