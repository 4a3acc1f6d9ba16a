package dashboardhttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers finance dashboard endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	// Report and receipt builds walk full record sets; keep them behind a
	// tighter limit than the cached dashboard panels.
	limiter := httprate.Limit(30, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Get("/api/dashboard", h.handleOverview)
	r.Get("/api/dashboard/top", h.handleTopPerformers)
	r.Post("/api/businesses", h.handleCreateBusiness)
	r.Delete("/api/businesses/{id}", h.handleDeleteBusiness)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/api/businesses/{id}/report", h.handleBusinessReport)
		gr.Post("/api/receipts/preview", h.handleReceiptPreview)
	})
}
