package http

import (
	"net/http"

	"github.com/nola-analytics/nola/internal/domain"
	"github.com/nola-analytics/nola/pkg/logger"
)

// RootHandler serves the welcome and health endpoints.
type RootHandler struct {
	health domain.HealthChecker
	logger logger.Logger
}

// NewRootHandler creates a new root handler.
func NewRootHandler(health domain.HealthChecker, logger logger.Logger) *RootHandler {
	return &RootHandler{
		health: health,
		logger: logger,
	}
}

// RegisterRoutes registers the root and health routes.
func (h *RootHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleRoot)
	mux.HandleFunc("/api/v1/health", h.handleHealth)
}

func (h *RootHandler) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteJSONError(w, "Not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Nola Analytics API",
	})
}

// handleHealth runs a database round-trip and reports 503 when it fails,
// so load balancers and container orchestrators can gate on it.
func (h *RootHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Check(r.Context()); err != nil {
		h.logger.WithField("error", err.Error()).Error("Health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "error",
			"db":     "unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"db":     "connected",
	})
}
