package http

import (
	"encoding/json"
	"net/http"

	"github.com/nola-analytics/nola/internal/domain"
	"github.com/nola-analytics/nola/pkg/analytics"
	"github.com/nola-analytics/nola/pkg/logger"
)

// AnalyticsHandler handles HTTP requests for the analytics query endpoint.
type AnalyticsHandler struct {
	service domain.AnalyticsService
	logger  logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(service domain.AnalyticsService, logger logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the analytics routes.
func (h *AnalyticsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/analytics", h.handleQuery)
}

// handleQuery decodes, validates and normalizes the query request, then
// delegates to the service.
//
// Shape errors (bad JSON, unknown operator, bad time grain) are the only
// 400s produced here. Unknown metric/dimension/filter-field ids are not
// rejected; they degrade to omission inside the builder.
func (h *AnalyticsHandler) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var query analytics.Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode analytics query request")
		WriteJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := query.Validate(); err != nil {
		h.logger.WithField("error", err.Error()).Error("Analytics query validation failed")
		WriteJSONError(w, domain.NewValidationError(err.Error()).Error(), http.StatusBadRequest)
		return
	}

	// Eager temporal normalization: date-like filter values become
	// timestamps before the query reaches the builder.
	query.Normalize()

	response, err := h.service.Query(r.Context(), query)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Analytics query failed")
		WriteJSONError(w, "Query failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
