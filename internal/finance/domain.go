// Package finance derives revenue, cost, margin and profitability figures
// from raw transactional records. Every function is a pure mapping from its
// inputs to its outputs: no I/O, no shared state, no implicit clock.
package finance

import "time"

// SaleType enumerates the supported sale channels.
type SaleType string

const (
	// SaleTypeRetail marks a sale at the retail price.
	SaleTypeRetail SaleType = "RETAIL"
	// SaleTypeWholesale marks a sale at the wholesale price.
	SaleTypeWholesale SaleType = "WHOLESALE"
)

// Sale is a single sales transaction line as produced by the record store.
type Sale struct {
	Date      time.Time
	ProductID string
	Quantity  int
	UnitPrice float64
	Total     float64
	Type      SaleType
}

// LineTotal returns the amount of the sale. Producers keep Total equal to
// Quantity*UnitPrice, so Total is trusted when set; only legacy rows with a
// missing total are recomputed.
func (s Sale) LineTotal() float64 {
	if s.Total != 0 {
		return s.Total
	}
	return float64(s.Quantity) * s.UnitPrice
}

// Expense is a recorded business expense. Category drives the
// operating vs one-time classification.
type Expense struct {
	Date     time.Time
	Category string
	Amount   float64
}

// Product carries the stock and pricing facts needed for cost and
// inventory valuation. Sales reference products by ID.
type Product struct {
	ID             string
	Name           string
	Stock          int
	MinStock       int
	CostPrice      float64
	WholesalePrice float64
	RetailPrice    float64
}

// Business is the unit of aggregation: one entity's records, already
// materialised by the store.
type Business struct {
	ID       string
	Name     string
	Sales    []Sale
	Expenses []Expense
	Products []Product
}

// Metrics is the derived result for one entity (or for a summed total).
// It is recomputed on every call and never stored.
type Metrics struct {
	TotalRevenue          float64            `json:"totalRevenue"`
	COGS                  float64            `json:"cogs"`
	GrossProfit           float64            `json:"grossProfit"`
	OperatingExpenses     float64            `json:"operatingExpenses"`
	OneTimeExpenses       float64            `json:"oneTimeExpenses"`
	OperatingProfit       float64            `json:"operatingProfit"`
	NetProfit             float64            `json:"netProfit"`
	EBITDA                float64            `json:"ebitda"`
	GrossProfitMargin     float64            `json:"grossProfitMargin"`
	OperatingProfitMargin float64            `json:"operatingProfitMargin"`
	NetProfitMargin       float64            `json:"netProfitMargin"`
	ROI                   float64            `json:"roi"`
	InventoryValue        float64            `json:"inventoryValue"`
	ExpenseBreakdown      map[string]float64 `json:"expenseBreakdown"`
}

// BusinessMetrics pairs an entity's identity with its metrics for
// per-business views and ranking.
type BusinessMetrics struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Metrics
}

// AggregateResult is the cross-entity roll-up: summed totals plus the
// per-entity results they were derived from.
type AggregateResult struct {
	Total       Metrics           `json:"total"`
	PerBusiness []BusinessMetrics `json:"perBusiness"`
}
