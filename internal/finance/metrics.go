package finance

// TotalRevenue sums sale line totals.
func TotalRevenue(sales []Sale) float64 {
	var total float64
	for _, s := range sales {
		total += s.LineTotal()
	}
	return total
}

// COGS sums the resolved cost basis of every unit sold.
func COGS(sales []Sale, products []Product) float64 {
	return cogsIndexed(sales, productIndex(products))
}

func cogsIndexed(sales []Sale, idx map[string]Product) float64 {
	var total float64
	for _, s := range sales {
		total += unitCostFor(idx, s.ProductID) * float64(s.Quantity)
	}
	return total
}

// GrossProfit is revenue minus COGS.
func GrossProfit(sales []Sale, products []Product) float64 {
	return TotalRevenue(sales) - COGS(sales, products)
}

// OperatingExpenses sums recurring spend.
func OperatingExpenses(expenses []Expense) float64 {
	var total float64
	for _, e := range expenses {
		if Classify(e) == ClassOperating {
			total += e.Amount
		}
	}
	return total
}

// OneTimeExpenses sums capital/investment spend.
func OneTimeExpenses(expenses []Expense) float64 {
	var total float64
	for _, e := range expenses {
		if Classify(e) == ClassOneTime {
			total += e.Amount
		}
	}
	return total
}

// OperatingProfit is gross profit minus operating expenses.
func OperatingProfit(sales []Sale, expenses []Expense, products []Product) float64 {
	return GrossProfit(sales, products) - OperatingExpenses(expenses)
}

// NetProfit is gross profit minus all expenses, operating and one-time.
func NetProfit(sales []Sale, expenses []Expense, products []Product) float64 {
	return GrossProfit(sales, products) - OperatingExpenses(expenses) - OneTimeExpenses(expenses)
}

// EBITDA equals operating profit here: the domain carries no interest, tax,
// depreciation or amortisation line items, so the two figures coincide by
// definition, not by accident.
func EBITDA(sales []Sale, expenses []Expense, products []Product) float64 {
	return OperatingProfit(sales, expenses, products)
}

// InventoryValue values stock on hand at the wholesale price: an estimate
// of realisable liquidation value rather than retail sell-through.
func InventoryValue(products []Product) float64 {
	var total float64
	for _, p := range products {
		total += float64(p.Stock) * p.WholesalePrice
	}
	return total
}

// ExpenseBreakdown sums amounts per raw category label. Every expense lands
// in exactly one entry, so the map totals to operating plus one-time spend.
func ExpenseBreakdown(expenses []Expense) map[string]float64 {
	breakdown := make(map[string]float64, len(expenses))
	for _, e := range expenses {
		breakdown[e.Category] += e.Amount
	}
	return breakdown
}

// ratio returns numerator/denominator*100 with the zero-denominator guard:
// an undefined rate is 0, never NaN or Inf.
func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator * 100
}

// Compute derives the full metrics set for one entity from already
// period-filtered records.
func Compute(sales []Sale, expenses []Expense, products []Product) Metrics {
	idx := productIndex(products)

	revenue := TotalRevenue(sales)
	cogs := cogsIndexed(sales, idx)
	operating := OperatingExpenses(expenses)
	oneTime := OneTimeExpenses(expenses)

	m := Metrics{
		TotalRevenue:      revenue,
		COGS:              cogs,
		OperatingExpenses: operating,
		OneTimeExpenses:   oneTime,
		InventoryValue:    InventoryValue(products),
		ExpenseBreakdown:  ExpenseBreakdown(expenses),
	}
	m.deriveRates()
	return m
}

// deriveRates fills every figure computable from the additive fields.
// Aggregation reuses it so summed totals and single entities share the
// exact same derivation, guards included.
func (m *Metrics) deriveRates() {
	m.GrossProfit = m.TotalRevenue - m.COGS
	m.OperatingProfit = m.GrossProfit - m.OperatingExpenses
	m.NetProfit = m.GrossProfit - m.OperatingExpenses - m.OneTimeExpenses
	m.EBITDA = m.OperatingProfit

	m.GrossProfitMargin = ratio(m.GrossProfit, m.TotalRevenue)
	m.OperatingProfitMargin = ratio(m.OperatingProfit, m.TotalRevenue)
	m.NetProfitMargin = ratio(m.NetProfit, m.TotalRevenue)

	// ROI treats one-time/capital spend as the invested base and leaves
	// recurring costs out of the denominator. Preserved as the product
	// definition; see DESIGN.md before changing.
	m.ROI = ratio(m.NetProfit, m.OneTimeExpenses)
}
