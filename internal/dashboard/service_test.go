package dashboard

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gescom-app/gescom/internal/finance"
)

type mockStore struct {
	businesses []finance.Business
	listCalls  int
	getCalls   int
}

func (m *mockStore) List(ctx context.Context) ([]finance.Business, error) {
	m.listCalls++
	return append([]finance.Business(nil), m.businesses...), nil
}

func (m *mockStore) Get(ctx context.Context, id string) (finance.Business, error) {
	m.getCalls++
	for _, b := range m.businesses {
		if b.ID == id {
			return b, nil
		}
	}
	return finance.Business{}, context.Canceled
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixtureStore() *mockStore {
	return &mockStore{businesses: []finance.Business{
		{
			ID:   "b1",
			Name: "Alpha",
			Sales: []finance.Sale{
				{Date: day(2026, time.March, 5), ProductID: "A", Quantity: 2, UnitPrice: 1000, Total: 2000},
			},
			Products: []finance.Product{{ID: "A", WholesalePrice: 400}},
		},
		{
			ID:   "b2",
			Name: "Beta",
			Sales: []finance.Sale{
				{Date: day(2026, time.March, 9), ProductID: "X", Quantity: 1, UnitPrice: 9000, Total: 9000},
			},
			Products: []finance.Product{{ID: "X", CostPrice: 4000}},
		},
	}}
}

func newTestService(t *testing.T, store Store) (*Service, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewService(store, NewCache(client, time.Minute))
	svc.WithNow(func() time.Time { return day(2026, time.March, 20) })
	return svc, func() {
		_ = client.Close()
		mr.Close()
	}
}

func TestOverviewCaches(t *testing.T) {
	store := fixtureStore()
	svc, cleanup := newTestService(t, store)
	defer cleanup()

	ctx := context.Background()
	result, err := svc.Overview(ctx, finance.PeriodMonth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total.TotalRevenue != 11000 {
		t.Fatalf("expected revenue 11000 got %v", result.Total.TotalRevenue)
	}
	if store.listCalls != 1 {
		t.Fatalf("expected 1 store call, got %d", store.listCalls)
	}

	// Second call should hit cache.
	if _, err := svc.Overview(ctx, finance.PeriodMonth); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.listCalls != 1 {
		t.Fatalf("expected cached result, store called %d times", store.listCalls)
	}

	// Bumping the cache should trigger reload.
	if err := svc.cache.Bump(ctx); err != nil {
		t.Fatalf("bump failed: %v", err)
	}
	if _, err := svc.Overview(ctx, finance.PeriodMonth); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.listCalls != 2 {
		t.Fatalf("expected store to refresh, calls %d", store.listCalls)
	}
}

func TestTopPerformersSharesOverviewEvaluation(t *testing.T) {
	store := fixtureStore()
	svc, cleanup := newTestService(t, store)
	defer cleanup()

	ctx := context.Background()
	if _, err := svc.Overview(ctx, finance.PeriodMonth); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top, err := svc.TopPerformers(ctx, finance.PeriodMonth, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.listCalls != 1 {
		t.Fatalf("ranking must reuse the cached overview, store calls %d", store.listCalls)
	}
	if len(top) != 1 || top[0].ID != "b2" {
		t.Fatalf("expected Beta on top got %+v", top)
	}
	// Beta: 9000 revenue, 4000 cogs -> 5000 net vs Alpha 1200.
	if top[0].NetProfit != 5000 {
		t.Fatalf("expected net profit 5000 got %v", top[0].NetProfit)
	}
}

func TestOverviewRejectsUnknownPeriod(t *testing.T) {
	svc, cleanup := newTestService(t, fixtureStore())
	defer cleanup()
	if _, err := svc.Overview(context.Background(), finance.Period("fortnight")); err == nil {
		t.Fatal("expected error for unknown period")
	}
}

func TestBusinessReportFormatsDisplay(t *testing.T) {
	svc, cleanup := newTestService(t, fixtureStore())
	defer cleanup()

	report, err := svc.BusinessReport(context.Background(), "b1", finance.PeriodMonth)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.BusinessName != "Alpha" {
		t.Fatalf("expected Alpha got %s", report.BusinessName)
	}
	if report.Metrics.NetProfit != 1200 {
		t.Fatalf("expected net profit 1200 got %v", report.Metrics.NetProfit)
	}
	if report.Display.NetProfit == "" || report.Display.GrossProfitMargin == "" {
		t.Fatalf("expected display strings, got %+v", report.Display)
	}
}

func TestBusinessRangeReportUsesBounds(t *testing.T) {
	svc, cleanup := newTestService(t, fixtureStore())
	defer cleanup()

	start := day(2026, time.March, 6)
	report, err := svc.BusinessRangeReport(context.Background(), "b2", finance.DateRange{Start: &start})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Metrics.TotalRevenue != 9000 {
		t.Fatalf("expected revenue 9000 got %v", report.Metrics.TotalRevenue)
	}

	afterAll := day(2026, time.April, 1)
	empty, err := svc.BusinessRangeReport(context.Background(), "b2", finance.DateRange{Start: &afterAll})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.Metrics.TotalRevenue != 0 || empty.Metrics.NetProfitMargin != 0 {
		t.Fatalf("expected empty window zeros got %+v", empty.Metrics)
	}
}

func TestReceiptPreview(t *testing.T) {
	svc, cleanup := newTestService(t, fixtureStore())
	defer cleanup()

	sales := []finance.Sale{{ProductID: "A", Quantity: 2, UnitPrice: 1000, Total: 2000}}
	r, err := svc.ReceiptPreview(context.Background(), "b1", time.Time{}, sales)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.BusinessName != "Alpha" {
		t.Fatalf("expected Alpha got %s", r.BusinessName)
	}
	if r.GrandTotal != 2000 {
		t.Fatalf("expected grand total 2000 got %v", r.GrandTotal)
	}
	if r.IssuedAt != day(2026, time.March, 20) {
		t.Fatalf("expected injected clock, got %v", r.IssuedAt)
	}
}
