// Package dashboardhttp exposes the finance dashboard and report
// endpoints as a JSON API.
package dashboardhttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gescom-app/gescom/internal/business"
	"github.com/gescom-app/gescom/internal/dashboard"
	"github.com/gescom-app/gescom/internal/finance"
	"github.com/gescom-app/gescom/internal/platform/httpx"
	"github.com/gescom-app/gescom/internal/receipt"
)

const dateLayout = "2006-01-02"

// DashboardService defines the data contract used by the handler.
type DashboardService interface {
	Overview(ctx context.Context, period finance.Period) (finance.AggregateResult, error)
	TopPerformers(ctx context.Context, period finance.Period, n int) ([]finance.BusinessMetrics, error)
	BusinessReport(ctx context.Context, businessID string, period finance.Period) (dashboard.Report, error)
	BusinessRangeReport(ctx context.Context, businessID string, r finance.DateRange) (dashboard.Report, error)
	ReceiptPreview(ctx context.Context, businessID string, issuedAt time.Time, sales []finance.Sale) (receipt.Receipt, error)
}

// Registry manages the business catalogue.
type Registry interface {
	Create(ctx context.Context, name string) (finance.Business, error)
	SoftDelete(ctx context.Context, id string) error
}

// Invalidator schedules dashboard cache invalidation after a record
// mutation, so the overview stops serving the pre-mutation snapshot.
type Invalidator interface {
	EnqueueCacheBump(ctx context.Context, reason string) error
}

// Handler coordinates HTTP requests for the finance dashboard.
type Handler struct {
	logger      *slog.Logger
	service     DashboardService
	registry    Registry
	invalidator Invalidator
	validate    *validator.Validate
}

// NewHandler constructs the dashboard HTTP handler.
func NewHandler(logger *slog.Logger, service DashboardService, registry Registry, invalidator Invalidator) *Handler {
	return &Handler{
		logger:      logger,
		service:     service,
		registry:    registry,
		invalidator: invalidator,
		validate:    validator.New(),
	}
}

// bumpCache runs after a successful mutation. The enqueue is best effort:
// the record change already committed, so a failed bump only delays the
// dashboard refresh until the cache TTL.
func (h *Handler) bumpCache(ctx context.Context, reason string) {
	if h.invalidator == nil {
		return
	}
	if err := h.invalidator.EnqueueCacheBump(ctx, reason); err != nil {
		h.logger.Warn("cache bump enqueue", slog.String("reason", reason), slog.Any("error", err))
	}
}

func periodParam(r *http.Request) (finance.Period, bool) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return finance.PeriodAll, true
	}
	p := finance.Period(raw)
	return p, p.Valid()
}

// overviewResponse bundles the aggregate cards and the ranking panel so a
// single dashboard render never mixes two evaluations of "now".
type overviewResponse struct {
	Total         finance.Metrics           `json:"total"`
	PerBusiness   []finance.BusinessMetrics `json:"perBusiness"`
	TopPerformers []finance.BusinessMetrics `json:"topPerformers"`
	Period        finance.Period            `json:"period"`
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	period, ok := periodParam(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "period must be one of all, month, quarter, year")
		return
	}

	result, err := h.service.Overview(r.Context(), period)
	if err != nil {
		h.logger.Error("dashboard overview", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, overviewResponse{
		Total:         result.Total,
		PerBusiness:   result.PerBusiness,
		TopPerformers: finance.TopPerforming(result.PerBusiness, dashboard.DefaultTopN),
		Period:        period,
	})
}

func (h *Handler) handleTopPerformers(w http.ResponseWriter, r *http.Request) {
	period, ok := periodParam(r)
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "period must be one of all, month, quarter, year")
		return
	}
	n := dashboard.DefaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "n must be a positive integer")
			return
		}
		n = parsed
	}

	top, err := h.service.TopPerformers(r.Context(), period, n)
	if err != nil {
		h.logger.Error("dashboard top performers", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, top)
}

func (h *Handler) handleBusinessReport(w http.ResponseWriter, r *http.Request) {
	businessID := chi.URLParam(r, "id")
	q := r.URL.Query()

	var report dashboard.Report
	var err error
	if q.Get("start") != "" || q.Get("end") != "" {
		var dr finance.DateRange
		if dr, err = parseRange(q.Get("start"), q.Get("end")); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}
		report, err = h.service.BusinessRangeReport(r.Context(), businessID, dr)
	} else {
		period, ok := periodParam(r)
		if !ok {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "period must be one of all, month, quarter, year")
			return
		}
		report, err = h.service.BusinessReport(r.Context(), businessID, period)
	}
	if err != nil {
		if !errors.Is(err, business.ErrNotFound) {
			h.logger.Error("business report", slog.String("business", businessID), slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func parseRange(start, end string) (finance.DateRange, error) {
	var dr finance.DateRange
	if start != "" {
		t, err := time.Parse(dateLayout, start)
		if err != nil {
			return dr, errors.New("start must be formatted YYYY-MM-DD")
		}
		dr.Start = &t
	}
	if end != "" {
		t, err := time.Parse(dateLayout, end)
		if err != nil {
			return dr, errors.New("end must be formatted YYYY-MM-DD")
		}
		dr.End = &t
	}
	if dr.Start != nil && dr.End != nil && dr.End.Before(*dr.Start) {
		return dr, errors.New("end must not precede start")
	}
	return dr, nil
}

type receiptLinePayload struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
	Total     float64 `json:"total" validate:"gte=0"`
}

type receiptPreviewPayload struct {
	BusinessID string               `json:"businessId" validate:"required"`
	IssuedAt   *time.Time           `json:"issuedAt"`
	Lines      []receiptLinePayload `json:"lines" validate:"required,min=1,dive"`
}

func (h *Handler) handleReceiptPreview(w http.ResponseWriter, r *http.Request) {
	var payload receiptPreviewPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	sales := make([]finance.Sale, 0, len(payload.Lines))
	for _, line := range payload.Lines {
		sales = append(sales, finance.Sale{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.Total,
		})
	}
	issuedAt := time.Time{}
	if payload.IssuedAt != nil {
		issuedAt = *payload.IssuedAt
	}

	preview, err := h.service.ReceiptPreview(r.Context(), payload.BusinessID, issuedAt, sales)
	if err != nil {
		if !errors.Is(err, business.ErrNotFound) {
			h.logger.Error("receipt preview", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, preview)
}

type createBusinessPayload struct {
	Name string `json:"name" validate:"required,min=2"`
}

func (h *Handler) handleCreateBusiness(w http.ResponseWriter, r *http.Request) {
	var payload createBusinessPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	created, err := h.registry.Create(r.Context(), payload.Name)
	if err != nil {
		if !errors.Is(err, business.ErrDuplicateName) {
			h.logger.Error("create business", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	h.bumpCache(r.Context(), "business created")
	httpx.JSON(w, http.StatusCreated, map[string]string{"id": created.ID, "name": created.Name})
}

func (h *Handler) handleDeleteBusiness(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.registry.SoftDelete(r.Context(), id); err != nil {
		if !errors.Is(err, business.ErrNotFound) {
			h.logger.Error("delete business", slog.String("business", id), slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	h.bumpCache(r.Context(), "business deleted")
	w.WriteHeader(http.StatusNoContent)
}
