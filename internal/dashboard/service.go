// Package dashboard composes the record store with the finance engine and
// serves the figures behind the admin overview, ranking and report views.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/gescom-app/gescom/internal/finance"
	"github.com/gescom-app/gescom/internal/finance/format"
	"github.com/gescom-app/gescom/internal/receipt"
)

// DefaultTopN is the ranking size used by the "top performers" panel.
const DefaultTopN = 5

// Store supplies materialised business snapshots.
type Store interface {
	List(ctx context.Context) ([]finance.Business, error)
	Get(ctx context.Context, id string) (finance.Business, error)
}

// Service coordinates snapshot loading, engine evaluation and caching.
type Service struct {
	store Store
	cache *Cache
	now   func() time.Time
}

// NewService wires a Store with a Cache helper.
func NewService(store Store, cache *Cache) *Service {
	return &Service{store: store, cache: cache, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Overview aggregates every business over the named period. All entities
// are evaluated against a single reference instant captured at the start
// of the call, so panels built from one result can never disagree on time.
func (s *Service) Overview(ctx context.Context, period finance.Period) (finance.AggregateResult, error) {
	if !period.Valid() {
		return finance.AggregateResult{}, fmt.Errorf("dashboard: unknown period %q", period)
	}
	now := s.now()

	loader := func(ctx context.Context) (interface{}, error) {
		businesses, err := s.store.List(ctx)
		if err != nil {
			return nil, err
		}
		return finance.Aggregate(businesses, period, now), nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return finance.AggregateResult{}, err
		}
		return value.(finance.AggregateResult), nil
	}

	key, err := s.cache.BuildKey(ctx, keyOverview(period, now)...)
	if err != nil {
		return finance.AggregateResult{}, err
	}
	var result finance.AggregateResult
	if err := s.cache.FetchJSON(ctx, key, &result, loader); err != nil {
		return finance.AggregateResult{}, err
	}
	return result, nil
}

// TopPerformers ranks businesses by net profit over the period. It derives
// from the same cached overview the dashboard cards use, so both panels
// always show figures from the same evaluation.
func (s *Service) TopPerformers(ctx context.Context, period finance.Period, n int) ([]finance.BusinessMetrics, error) {
	result, err := s.Overview(ctx, period)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = DefaultTopN
	}
	return finance.TopPerforming(result.PerBusiness, n), nil
}

// Report is a single business statement over a period or explicit range.
type Report struct {
	BusinessID   string          `json:"businessId"`
	BusinessName string          `json:"businessName"`
	Period       finance.Period  `json:"period,omitempty"`
	From         *time.Time      `json:"from,omitempty"`
	To           *time.Time      `json:"to,omitempty"`
	Metrics      finance.Metrics `json:"metrics"`
	Display      ReportDisplay   `json:"display"`
}

// ReportDisplay carries the presentation strings for the printable report.
type ReportDisplay struct {
	TotalRevenue      string `json:"totalRevenue"`
	COGS              string `json:"cogs"`
	GrossProfit       string `json:"grossProfit"`
	OperatingExpenses string `json:"operatingExpenses"`
	OneTimeExpenses   string `json:"oneTimeExpenses"`
	NetProfit         string `json:"netProfit"`
	InventoryValue    string `json:"inventoryValue"`
	GrossProfitMargin string `json:"grossProfitMargin"`
	NetProfitMargin   string `json:"netProfitMargin"`
	ROI               string `json:"roi"`
}

func displayFor(m finance.Metrics) ReportDisplay {
	return ReportDisplay{
		TotalRevenue:      format.Money(m.TotalRevenue),
		COGS:              format.Money(m.COGS),
		GrossProfit:       format.Money(m.GrossProfit),
		OperatingExpenses: format.Money(m.OperatingExpenses),
		OneTimeExpenses:   format.Money(m.OneTimeExpenses),
		NetProfit:         format.Money(m.NetProfit),
		InventoryValue:    format.Money(m.InventoryValue),
		GrossProfitMargin: format.Percent(m.GrossProfitMargin),
		NetProfitMargin:   format.Percent(m.NetProfitMargin),
		ROI:               format.Percent(m.ROI),
	}
}

// BusinessReport computes one business's metrics over a named period.
func (s *Service) BusinessReport(ctx context.Context, businessID string, period finance.Period) (Report, error) {
	if !period.Valid() {
		return Report{}, fmt.Errorf("dashboard: unknown period %q", period)
	}
	now := s.now()

	loader := func(ctx context.Context) (interface{}, error) {
		b, err := s.store.Get(ctx, businessID)
		if err != nil {
			return nil, err
		}
		filtered := finance.FilterBusiness(b, period, now)
		m := finance.Compute(filtered.Sales, filtered.Expenses, filtered.Products)
		return Report{
			BusinessID:   b.ID,
			BusinessName: b.Name,
			Period:       period,
			Metrics:      m,
			Display:      displayFor(m),
		}, nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Report{}, err
		}
		return value.(Report), nil
	}

	key, err := s.cache.BuildKey(ctx, keyReport(businessID, period, now)...)
	if err != nil {
		return Report{}, err
	}
	var report Report
	if err := s.cache.FetchJSON(ctx, key, &report, loader); err != nil {
		return Report{}, err
	}
	return report, nil
}

// BusinessRangeReport computes one business's metrics over an explicit
// date range. Export ranges are arbitrary, so the result is not cached.
func (s *Service) BusinessRangeReport(ctx context.Context, businessID string, r finance.DateRange) (Report, error) {
	b, err := s.store.Get(ctx, businessID)
	if err != nil {
		return Report{}, err
	}
	sales := finance.FilterByRange(b.Sales, r, finance.SaleDate)
	expenses := finance.FilterByRange(b.Expenses, r, finance.ExpenseDate)
	m := finance.Compute(sales, expenses, b.Products)
	return Report{
		BusinessID:   b.ID,
		BusinessName: b.Name,
		From:         r.Start,
		To:           r.End,
		Metrics:      m,
		Display:      displayFor(m),
	}, nil
}

// ReceiptPreview builds a printable receipt for the given sale lines using
// the business's current product catalogue.
func (s *Service) ReceiptPreview(ctx context.Context, businessID string, issuedAt time.Time, sales []finance.Sale) (receipt.Receipt, error) {
	b, err := s.store.Get(ctx, businessID)
	if err != nil {
		return receipt.Receipt{}, err
	}
	if issuedAt.IsZero() {
		issuedAt = s.now()
	}
	return receipt.Build(b.Name, issuedAt, sales, b.Products), nil
}
