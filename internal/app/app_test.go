package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nola-analytics/nola/config"
	"github.com/nola-analytics/nola/internal/domain"
	"github.com/nola-analytics/nola/pkg/analytics"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Database: config.DatabaseConfig{
			Host: "localhost", Port: 5432, User: "postgres",
			Password: "postgres", DBName: "nola_challenge", SSLMode: "disable",
		},
		CORS:        config.CORSConfig{AllowOrigin: "http://localhost:3000"},
		Environment: "test",
		LogLevel:    "error",
		Version:     "test",
	}
}

func setupApp(t *testing.T) (*App, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	a := NewApp(testConfig(), WithMockDB(db))
	require.NoError(t, a.Initialize())

	return a, mock
}

func TestApp_Initialize(t *testing.T) {
	a, _ := setupApp(t)

	assert.NotNil(t, a.GetDB())
	assert.NotNil(t, a.GetMux())
	assert.NotNil(t, a.GetLogger())
	assert.Equal(t, "test", a.GetConfig().Environment)
}

func TestApp_HealthRoute(t *testing.T) {
	a, mock := setupApp(t)

	mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	a.GetMux().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApp_MetadataRoute(t *testing.T) {
	a, _ := setupApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metadata/metrics", nil)
	rec := httptest.NewRecorder()

	a.GetMux().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var entries []domain.CatalogEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&entries))
	assert.Len(t, entries, 3)
}

func TestApp_AnalyticsRoute_EmptySelection(t *testing.T) {
	// Unknown identifiers resolve to nothing, so the request completes
	// without touching the database.
	a, mock := setupApp(t)

	body := `{"metrics": ["bogus"], "dimensions": []}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analytics", strings.NewReader(body))
	rec := httptest.NewRecorder()

	a.GetMux().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())

	var response analytics.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Empty(t, response.Data)
	assert.NotNil(t, response.Data)
}

func TestApp_Shutdown_ClosesDB(t *testing.T) {
	a, mock := setupApp(t)

	mock.ExpectClose()

	require.NoError(t, a.Shutdown(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
