package service

import (
	"context"
	"fmt"

	"github.com/nola-analytics/nola/internal/domain"
	"github.com/nola-analytics/nola/pkg/logger"
)

// MetadataService enumerates the query vocabulary and the distinct filter
// values used by the frontend to populate its selectors.
type MetadataService struct {
	repo   domain.MetadataRepository
	logger logger.Logger
}

// NewMetadataService creates a new metadata service.
func NewMetadataService(repo domain.MetadataRepository, logger logger.Logger) *MetadataService {
	return &MetadataService{
		repo:   repo,
		logger: logger,
	}
}

var _ domain.MetadataService = (*MetadataService)(nil)

// ListMetrics returns the static display metadata for the queryable metrics.
func (s *MetadataService) ListMetrics(ctx context.Context) []domain.CatalogEntry {
	return domain.MetricsCatalogMetadata
}

// ListDimensions returns the static display metadata for the queryable
// dimensions.
func (s *MetadataService) ListDimensions(ctx context.Context) []domain.CatalogEntry {
	return domain.DimensionsCatalogMetadata
}

// ListStates returns the distinct store states.
func (s *MetadataService) ListStates(ctx context.Context) ([]string, error) {
	states, err := s.repo.ListStates(ctx)
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to list store states")
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	return states, nil
}

// ListCities returns the distinct store cities, optionally filtered by state.
func (s *MetadataService) ListCities(ctx context.Context, state string) ([]string, error) {
	cities, err := s.repo.ListCities(ctx, state)
	if err != nil {
		s.logger.WithField("state", state).WithField("error", err.Error()).Error("Failed to list store cities")
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}
