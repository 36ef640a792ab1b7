package http

import (
	"net/http"

	"github.com/nola-analytics/nola/internal/domain"
	"github.com/nola-analytics/nola/pkg/logger"
)

// MetadataHandler serves the catalog listing endpoints the frontend uses to
// populate its metric/dimension/filter selectors.
type MetadataHandler struct {
	service domain.MetadataService
	logger  logger.Logger
}

// NewMetadataHandler creates a new metadata handler.
func NewMetadataHandler(service domain.MetadataService, logger logger.Logger) *MetadataHandler {
	return &MetadataHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the metadata routes.
func (h *MetadataHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/metadata/metrics", h.handleMetrics)
	mux.HandleFunc("/api/v1/metadata/dimensions", h.handleDimensions)
	mux.HandleFunc("/api/v1/metadata/states", h.handleStates)
	mux.HandleFunc("/api/v1/metadata/cities", h.handleCities)
}

func (h *MetadataHandler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.service.ListMetrics(r.Context()))
}

func (h *MetadataHandler) handleDimensions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.service.ListDimensions(r.Context()))
}

func (h *MetadataHandler) handleStates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	states, err := h.service.ListStates(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list states")
		WriteJSONError(w, "Failed to list states", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, states)
}

func (h *MetadataHandler) handleCities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state := r.URL.Query().Get("state")
	cities, err := h.service.ListCities(r.Context(), state)
	if err != nil {
		h.logger.WithField("state", state).WithField("error", err.Error()).Error("Failed to list cities")
		WriteJSONError(w, "Failed to list cities", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}
