package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nola-analytics/nola/internal/domain"
	"github.com/nola-analytics/nola/pkg/analytics"
	"github.com/nola-analytics/nola/pkg/logger"
)

// AnalyticsService runs analytics queries and wraps the results with
// response metadata.
type AnalyticsService struct {
	repo   domain.AnalyticsRepository
	logger logger.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(repo domain.AnalyticsRepository, logger logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:   repo,
		logger: logger,
	}
}

// Ensure AnalyticsService implements the interface
var _ domain.AnalyticsService = (*AnalyticsService)(nil)

// Query executes an analytics query and returns the rows together with the
// echoed query and execution time. The query is assumed validated and
// normalized by the boundary layer; execution errors propagate untouched.
func (s *AnalyticsService) Query(ctx context.Context, query analytics.Query) (*analytics.Response, error) {
	start := time.Now()

	data, err := s.repo.Query(ctx, query)
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to execute analytics query")
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	elapsed := time.Since(start)
	s.logger.WithField("rows", len(data)).
		WithField("execution_time_ms", elapsed.Milliseconds()).
		Info("Analytics query executed")

	return &analytics.Response{
		Data: data,
		Metadata: analytics.ResponseMetadata{
			Query:           query,
			ExecutionTimeMS: float64(elapsed.Microseconds()) / 1000.0,
		},
	}, nil
}
