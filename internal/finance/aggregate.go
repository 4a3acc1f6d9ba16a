package finance

import "time"

// FilterBusiness returns a copy of the business with its dated records
// restricted to the named period around now. Products are not dated and
// pass through untouched.
func FilterBusiness(b Business, period Period, now time.Time) Business {
	return Business{
		ID:       b.ID,
		Name:     b.Name,
		Sales:    FilterByPeriod(b.Sales, period, SaleDate, now),
		Expenses: FilterByPeriod(b.Expenses, period, ExpenseDate, now),
		Products: b.Products,
	}
}

// Aggregate rolls metrics up across businesses. The same reference instant
// is applied to every entity so panels rendered from one call never
// disagree about "now".
//
// The total view sums the additive figures first and re-derives margins and
// ROI from those sums; averaging per-entity percentages would weight a tiny
// shop the same as the largest one.
func Aggregate(businesses []Business, period Period, now time.Time) AggregateResult {
	perBusiness := make([]BusinessMetrics, 0, len(businesses))
	total := Metrics{ExpenseBreakdown: make(map[string]float64)}

	for _, b := range businesses {
		filtered := FilterBusiness(b, period, now)
		m := Compute(filtered.Sales, filtered.Expenses, filtered.Products)
		perBusiness = append(perBusiness, BusinessMetrics{ID: b.ID, Name: b.Name, Metrics: m})

		total.TotalRevenue += m.TotalRevenue
		total.COGS += m.COGS
		total.OperatingExpenses += m.OperatingExpenses
		total.OneTimeExpenses += m.OneTimeExpenses
		total.InventoryValue += m.InventoryValue
		for category, amount := range m.ExpenseBreakdown {
			total.ExpenseBreakdown[category] += amount
		}
	}

	total.deriveRates()
	return AggregateResult{Total: total, PerBusiness: perBusiness}
}
