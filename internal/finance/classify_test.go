package finance

import (
	"sort"
	"testing"
)

func TestClassifyOneTimeCategories(t *testing.T) {
	for _, category := range []string{
		"Equipement",
		"équipement",
		"  RENOVATION  ",
		"Rénovation",
		"construction",
		"Achat Véhicule",
		"Gros Matériel",
	} {
		e := Expense{Category: category, Amount: 100}
		if got := Classify(e); got != ClassOneTime {
			t.Fatalf("expected %q one-time got %s", category, got)
		}
	}
}

func TestClassifyDefaultsToOperating(t *testing.T) {
	for _, category := range []string{
		"Marketing",
		"Loyer",
		"Salaires",
		"n'importe quoi",
		"",
		"equipement de bureau", // not an exact label match
	} {
		e := Expense{Category: category, Amount: 100}
		if got := Classify(e); got != ClassOperating {
			t.Fatalf("expected %q operating got %s", category, got)
		}
	}
}

func TestOneTimeCategoriesClosedSet(t *testing.T) {
	labels := OneTimeCategories()
	if len(labels) != len(oneTimeCategories) {
		t.Fatalf("expected %d labels got %d", len(oneTimeCategories), len(labels))
	}
	for _, label := range labels {
		if Classify(Expense{Category: label}) != ClassOneTime {
			t.Fatalf("exposed label %q does not classify as one-time", label)
		}
	}
	if !sort.StringsAreSorted(labels) {
		t.Fatalf("expected sorted labels got %v", labels)
	}
}
