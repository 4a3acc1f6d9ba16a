package finance

import (
	"math"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func saleOf(productID string, qty int, unitPrice float64) Sale {
	return Sale{
		Date:      day(2026, time.March, 10),
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: unitPrice,
		Total:     float64(qty) * unitPrice,
		Type:      SaleTypeRetail,
	}
}

func TestComputeWholesaleFallbackScenario(t *testing.T) {
	sales := []Sale{saleOf("A", 2, 1000)}
	products := []Product{{ID: "A", CostPrice: 0, WholesalePrice: 400}}

	m := Compute(sales, nil, products)
	if m.TotalRevenue != 2000 {
		t.Fatalf("expected revenue 2000 got %v", m.TotalRevenue)
	}
	if m.COGS != 800 {
		t.Fatalf("expected cogs 800 got %v", m.COGS)
	}
	if m.GrossProfit != 1200 {
		t.Fatalf("expected gross profit 1200 got %v", m.GrossProfit)
	}
	if m.NetProfit != 1200 {
		t.Fatalf("expected net profit 1200 got %v", m.NetProfit)
	}
	if m.GrossProfitMargin != 60 {
		t.Fatalf("expected gross margin 60 got %v", m.GrossProfitMargin)
	}
}

func TestComputeOperatingExpenseScenario(t *testing.T) {
	sales := []Sale{saleOf("A", 2, 1000)}
	products := []Product{{ID: "A", WholesalePrice: 400}}
	expenses := []Expense{{Category: "Marketing", Amount: 300}}

	m := Compute(sales, expenses, products)
	if m.OperatingExpenses != 300 {
		t.Fatalf("expected operating expenses 300 got %v", m.OperatingExpenses)
	}
	if m.OperatingProfit != 900 {
		t.Fatalf("expected operating profit 900 got %v", m.OperatingProfit)
	}
	if m.NetProfit != 900 {
		t.Fatalf("expected net profit 900 got %v", m.NetProfit)
	}
	if m.EBITDA != 900 {
		t.Fatalf("expected ebitda 900 got %v", m.EBITDA)
	}
}

func TestComputeROIScenario(t *testing.T) {
	sales := []Sale{saleOf("A", 2, 1000)}
	products := []Product{{ID: "A", WholesalePrice: 400}}
	expenses := []Expense{{Category: "Equipement", Amount: 500}}

	m := Compute(sales, expenses, products)
	if m.OneTimeExpenses != 500 {
		t.Fatalf("expected one-time expenses 500 got %v", m.OneTimeExpenses)
	}
	if m.NetProfit != 700 {
		t.Fatalf("expected net profit 700 got %v", m.NetProfit)
	}
	if m.ROI != 140 {
		t.Fatalf("expected roi 140 got %v", m.ROI)
	}
	// EBITDA excludes capital spend.
	if m.EBITDA != 1200 {
		t.Fatalf("expected ebitda 1200 got %v", m.EBITDA)
	}
}

func TestComputeEmptyInputs(t *testing.T) {
	m := Compute(nil, nil, nil)
	if m.TotalRevenue != 0 || m.COGS != 0 || m.GrossProfit != 0 || m.NetProfit != 0 {
		t.Fatalf("expected zero monetary fields got %+v", m)
	}
	if m.GrossProfitMargin != 0 || m.OperatingProfitMargin != 0 || m.NetProfitMargin != 0 {
		t.Fatalf("expected zero margins got %+v", m)
	}
	if m.ROI != 0 {
		t.Fatalf("expected zero roi got %v", m.ROI)
	}
	if m.InventoryValue != 0 {
		t.Fatalf("expected zero inventory value got %v", m.InventoryValue)
	}
	if len(m.ExpenseBreakdown) != 0 {
		t.Fatalf("expected empty breakdown got %v", m.ExpenseBreakdown)
	}
}

func TestComputeZeroRevenueGuards(t *testing.T) {
	expenses := []Expense{
		{Category: "Loyer", Amount: 1000},
		{Category: "Equipement", Amount: 400},
	}
	m := Compute(nil, expenses, nil)
	for name, v := range map[string]float64{
		"grossProfitMargin":     m.GrossProfitMargin,
		"operatingProfitMargin": m.OperatingProfitMargin,
		"netProfitMargin":       m.NetProfitMargin,
	} {
		if v != 0 {
			t.Fatalf("expected %s 0 with zero revenue got %v", name, v)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("%s not finite: %v", name, v)
		}
	}
	// ROI still defined: net profit of -1400 over 400 invested.
	if m.ROI != -350 {
		t.Fatalf("expected roi -350 got %v", m.ROI)
	}
}

func TestComputeMissingProductCostBasisZero(t *testing.T) {
	sales := []Sale{saleOf("ghost", 3, 500)}
	m := Compute(sales, nil, []Product{{ID: "other", CostPrice: 100}})
	if m.COGS != 0 {
		t.Fatalf("expected zero cogs for missing product got %v", m.COGS)
	}
	if m.GrossProfit != 1500 {
		t.Fatalf("expected gross profit 1500 got %v", m.GrossProfit)
	}
}

func TestUnitCostPrefersCostPrice(t *testing.T) {
	if got := UnitCost(Product{CostPrice: 250, WholesalePrice: 400}); got != 250 {
		t.Fatalf("expected 250 got %v", got)
	}
	if got := UnitCost(Product{CostPrice: 0, WholesalePrice: 400}); got != 400 {
		t.Fatalf("expected wholesale fallback 400 got %v", got)
	}
}

func TestInventoryValueUsesWholesalePrice(t *testing.T) {
	products := []Product{
		{ID: "A", Stock: 10, WholesalePrice: 300, RetailPrice: 500, CostPrice: 200},
		{ID: "B", Stock: 2, WholesalePrice: 1500, RetailPrice: 2000},
	}
	if got := InventoryValue(products); got != 6000 {
		t.Fatalf("expected inventory value 6000 got %v", got)
	}
}

func TestExpensePartitionProperty(t *testing.T) {
	expenses := []Expense{
		{Category: "Loyer", Amount: 120000},
		{Category: "Equipement", Amount: 45000},
		{Category: "  Rénovation ", Amount: 30000},
		{Category: "quelque chose de libre", Amount: 777},
		{Category: "", Amount: 50},
	}
	var sum float64
	for _, e := range expenses {
		sum += e.Amount
	}
	operating := OperatingExpenses(expenses)
	oneTime := OneTimeExpenses(expenses)
	if operating+oneTime != sum {
		t.Fatalf("partition broken: %v + %v != %v", operating, oneTime, sum)
	}
	if oneTime != 75000 {
		t.Fatalf("expected one-time 75000 got %v", oneTime)
	}

	var breakdownSum float64
	for _, amount := range ExpenseBreakdown(expenses) {
		breakdownSum += amount
	}
	if breakdownSum != sum {
		t.Fatalf("breakdown loses spend: %v != %v", breakdownSum, sum)
	}
}

func TestProfitIdentities(t *testing.T) {
	sales := []Sale{saleOf("A", 4, 750), saleOf("B", 1, 12000)}
	products := []Product{
		{ID: "A", CostPrice: 500, WholesalePrice: 600},
		{ID: "B", CostPrice: 0, WholesalePrice: 9000},
	}
	expenses := []Expense{
		{Category: "Salaires", Amount: 2000},
		{Category: "Construction", Amount: 1500},
	}

	m := Compute(sales, expenses, products)
	if m.GrossProfit != m.TotalRevenue-m.COGS {
		t.Fatalf("gross profit identity broken: %+v", m)
	}
	if m.NetProfit != m.GrossProfit-m.OperatingExpenses-m.OneTimeExpenses {
		t.Fatalf("net profit identity broken: %+v", m)
	}
	if m.EBITDA != OperatingProfit(sales, expenses, products) {
		t.Fatalf("ebitda must equal operating profit: %+v", m)
	}
	if got := NetProfit(sales, expenses, products); got != m.NetProfit {
		t.Fatalf("standalone net profit diverges: %v vs %v", got, m.NetProfit)
	}
}

func TestSaleLineTotalRecomputedOnlyWhenAbsent(t *testing.T) {
	withTotal := Sale{Quantity: 2, UnitPrice: 1000, Total: 1900}
	if got := withTotal.LineTotal(); got != 1900 {
		t.Fatalf("expected recorded total 1900 got %v", got)
	}
	withoutTotal := Sale{Quantity: 2, UnitPrice: 1000}
	if got := withoutTotal.LineTotal(); got != 2000 {
		t.Fatalf("expected recomputed total 2000 got %v", got)
	}
}
