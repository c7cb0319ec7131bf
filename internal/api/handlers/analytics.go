package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hpfs74/family-budget/internal/api/middleware"
	"github.com/hpfs74/family-budget/internal/service"
)

// AnalyticsHandler serves the read-side aggregate report.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	log       zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, log: log}
}

// Get handles GET /analytics?account=X
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.analytics.Report(r.Context(), accountParam(r))
	if err != nil {
		writeServiceError(w, h.log, "Analytics", err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, report)
}
