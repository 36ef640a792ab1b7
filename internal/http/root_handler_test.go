package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nola-analytics/nola/internal/domain/mocks"
	"github.com/nola-analytics/nola/pkg/logger"
)

func setupRootHandler(t *testing.T) (*mocks.MockHealthChecker, *http.ServeMux) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockHealth := mocks.NewMockHealthChecker(ctrl)
	handler := NewRootHandler(mockHealth, logger.NewLogger())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	return mockHealth, mux
}

func TestRootHandler_Welcome(t *testing.T) {
	_, mux := setupRootHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body["message"], "Nola Analytics")
}

func TestRootHandler_UnknownPath(t *testing.T) {
	_, mux := setupRootHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/no/such/path", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRootHandler_Health(t *testing.T) {
	mockHealth, mux := setupRootHandler(t)

	mockHealth.EXPECT().Check(gomock.Any()).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["db"])
}

func TestRootHandler_Health_DatabaseDown(t *testing.T) {
	mockHealth, mux := setupRootHandler(t)

	mockHealth.EXPECT().Check(gomock.Any()).Return(errors.New("database unavailable: connection refused"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "unavailable", body["db"])
}
