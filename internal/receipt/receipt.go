// Package receipt builds printable receipt view models from sale lines.
// Rendering to paper or PDF happens elsewhere; this package only derives
// the figures and their display strings.
package receipt

import (
	"time"

	"github.com/gescom-app/gescom/internal/finance"
	"github.com/gescom-app/gescom/internal/finance/format"
)

// Line is one printed row of the receipt.
type Line struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
	Profit      float64 `json:"profit"`

	UnitPriceDisplay string `json:"unitPriceDisplay"`
	TotalDisplay     string `json:"totalDisplay"`
}

// Receipt is the full printable document for one transaction.
type Receipt struct {
	BusinessName string    `json:"businessName"`
	IssuedAt     time.Time `json:"issuedAt"`
	Lines        []Line    `json:"lines"`
	GrandTotal   float64   `json:"grandTotal"`
	TotalProfit  float64   `json:"totalProfit"`

	GrandTotalDisplay string `json:"grandTotalDisplay"`
}

// Build assembles a receipt for the given sale lines. Line totals are
// trusted when recorded; a missing unit price is recovered from the total
// for display. Per-line profit goes through the same cost resolver as the
// aggregate COGS so receipts and reports can never disagree.
func Build(businessName string, issuedAt time.Time, sales []finance.Sale, products []finance.Product) Receipt {
	byID := make(map[string]finance.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	r := Receipt{
		BusinessName: businessName,
		IssuedAt:     issuedAt,
		Lines:        make([]Line, 0, len(sales)),
	}
	for _, s := range sales {
		total := s.LineTotal()
		unitPrice := s.UnitPrice
		if unitPrice == 0 && s.Quantity > 0 {
			unitPrice = total / float64(s.Quantity)
		}

		var unitCost float64
		var name string
		if p, ok := byID[s.ProductID]; ok {
			unitCost = finance.UnitCost(p)
			name = p.Name
		}
		profit := total - unitCost*float64(s.Quantity)

		r.Lines = append(r.Lines, Line{
			ProductID:        s.ProductID,
			ProductName:      name,
			Quantity:         s.Quantity,
			UnitPrice:        unitPrice,
			Total:            total,
			Profit:           profit,
			UnitPriceDisplay: format.Money(unitPrice),
			TotalDisplay:     format.Money(total),
		})
		r.GrandTotal += total
		r.TotalProfit += profit
	}
	r.GrandTotalDisplay = format.Money(r.GrandTotal)
	return r
}
