package domain

import "context"

//go:generate mockgen -destination mocks/mock_metadata_service.go -package mocks github.com/nola-analytics/nola/internal/domain MetadataService
//go:generate mockgen -destination mocks/mock_metadata_repository.go -package mocks github.com/nola-analytics/nola/internal/domain MetadataRepository
//go:generate mockgen -destination mocks/mock_health_checker.go -package mocks github.com/nola-analytics/nola/internal/domain HealthChecker

// CatalogEntry is the display metadata for one metric or dimension id,
// used by the frontend to populate its selection menus.
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MetricsCatalogMetadata lists the queryable metrics. The ids must stay in
// sync with the semantic catalog in pkg/analytics.
var MetricsCatalogMetadata = []CatalogEntry{
	{ID: "total_revenue", Name: "Total Revenue", Description: "Sum of the value of all line items sold."},
	{ID: "order_count", Name: "Order Count", Description: "Number of distinct orders."},
	{ID: "avg_order_value", Name: "Average Order Value", Description: "Average ticket per order."},
}

// DimensionsCatalogMetadata lists the queryable dimensions.
var DimensionsCatalogMetadata = []CatalogEntry{
	{ID: "product_name", Name: "Product Name", Description: "Name of the product."},
	{ID: "product_category", Name: "Product Category", Description: "Category of the product."},
	{ID: "channel_name", Name: "Channel Name", Description: "Sales channel (iFood, in-store, etc)."},
	{ID: "store_name", Name: "Store Name", Description: "Name of the store."},
	{ID: "order_day_of_week", Name: "Order Day of Week", Description: "Day of week of the sale."},
	{ID: "order_hour", Name: "Order Hour", Description: "Hour of day of the order."},
	{ID: "region", Name: "Region", Description: "Region/district of the sale."},
}

// MetadataRepository lists distinct filter values from the store tables.
type MetadataRepository interface {
	// ListStates returns the distinct non-null store states, ordered.
	ListStates(ctx context.Context) ([]string, error)
	// ListCities returns the distinct non-null store cities, ordered,
	// optionally restricted to one state. An empty state means all.
	ListCities(ctx context.Context, state string) ([]string, error)
}

// MetadataService enumerates the query vocabulary and filter values.
type MetadataService interface {
	ListMetrics(ctx context.Context) []CatalogEntry
	ListDimensions(ctx context.Context) []CatalogEntry
	ListStates(ctx context.Context) ([]string, error)
	ListCities(ctx context.Context, state string) ([]string, error)
}

// HealthChecker verifies the database is reachable.
type HealthChecker interface {
	Check(ctx context.Context) error
}
