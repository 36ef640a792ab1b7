package domain

import (
	"context"

	"github.com/nola-analytics/nola/pkg/analytics"
)

//go:generate mockgen -destination mocks/mock_analytics_service.go -package mocks github.com/nola-analytics/nola/internal/domain AnalyticsService
//go:generate mockgen -destination mocks/mock_analytics_repository.go -package mocks github.com/nola-analytics/nola/internal/domain AnalyticsRepository

// AnalyticsRepository executes compiled analytics queries against Postgres.
type AnalyticsRepository interface {
	// Query runs the analytics query and returns one ordered label->value
	// record per result row. A query that resolves to nothing returns an
	// empty slice without touching the database.
	Query(ctx context.Context, query analytics.Query) ([]map[string]interface{}, error)
}

// AnalyticsService is the boundary surface consumed by the HTTP layer.
type AnalyticsService interface {
	// Query executes the request and wraps the rows with response metadata
	// (the echoed query and execution time).
	Query(ctx context.Context, query analytics.Query) (*analytics.Response, error)
}
