package finance

// UnitCost resolves the cost basis for one unit of a product. Legacy
// records can lack a recorded purchase cost; the wholesale price then
// stands in as a proxy so profit is not overstated for those rows.
//
// Every cost-dependent figure (COGS, per-line profit, receipts) must go
// through this function.
func UnitCost(p Product) float64 {
	if p.CostPrice > 0 {
		return p.CostPrice
	}
	return p.WholesalePrice
}

// productIndex builds an ID lookup over a product slice. Later duplicates
// do not override earlier ones.
func productIndex(products []Product) map[string]Product {
	idx := make(map[string]Product, len(products))
	for _, p := range products {
		if _, ok := idx[p.ID]; ok {
			continue
		}
		idx[p.ID] = p
	}
	return idx
}

// unitCostFor resolves the cost basis for a sale line against the index.
// A sale that references a missing product carries a cost basis of zero.
func unitCostFor(idx map[string]Product, productID string) float64 {
	p, ok := idx[productID]
	if !ok {
		return 0
	}
	return UnitCost(p)
}
