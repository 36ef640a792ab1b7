package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nola-analytics/nola/internal/domain/mocks"
	"github.com/nola-analytics/nola/pkg/analytics"
	"github.com/nola-analytics/nola/pkg/logger"
)

func TestAnalyticsService_Query(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAnalyticsRepository(ctrl)
	svc := NewAnalyticsService(mockRepo, logger.NewLogger())

	query := analytics.Query{
		Metrics:    []string{"total_revenue"},
		Dimensions: []string{"channel_name"},
	}
	rows := []map[string]interface{}{
		{"total_revenue": "1530.50", "channel_name": "iFood"},
	}

	mockRepo.EXPECT().Query(gomock.Any(), query).Return(rows, nil)

	resp, err := svc.Query(context.Background(), query)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, rows, resp.Data)
	// The executed query is echoed back for traceability.
	assert.Equal(t, query, resp.Metadata.Query)
	assert.GreaterOrEqual(t, resp.Metadata.ExecutionTimeMS, 0.0)
}

func TestAnalyticsService_Query_EmptyResolution(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAnalyticsRepository(ctrl)
	svc := NewAnalyticsService(mockRepo, logger.NewLogger())

	query := analytics.Query{Metrics: []string{"no_such_metric"}}
	mockRepo.EXPECT().Query(gomock.Any(), query).Return([]map[string]interface{}{}, nil)

	resp, err := svc.Query(context.Background(), query)

	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.NotNil(t, resp.Data, "empty result must serialize as [], not null")
}

func TestAnalyticsService_Query_RepositoryErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAnalyticsRepository(ctrl)
	svc := NewAnalyticsService(mockRepo, logger.NewLogger())

	repoErr := errors.New("pq: operator does not exist")
	mockRepo.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, repoErr)

	resp, err := svc.Query(context.Background(), analytics.Query{Metrics: []string{"order_count"}})

	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
	assert.Nil(t, resp)
}
