package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nola-analytics/nola/internal/domain"
	"github.com/nola-analytics/nola/pkg/analytics"
	"github.com/nola-analytics/nola/pkg/logger"
)

type analyticsRepository struct {
	db         *sql.DB
	sqlBuilder *analytics.SQLBuilder
	catalog    *analytics.Catalog
	logger     logger.Logger
}

// NewAnalyticsRepository creates a PostgreSQL analytics repository over the
// given connection pool and semantic catalog.
func NewAnalyticsRepository(db *sql.DB, catalog *analytics.Catalog, logger logger.Logger) domain.AnalyticsRepository {
	return &analyticsRepository{
		db:         db,
		sqlBuilder: analytics.NewSQLBuilder(),
		catalog:    catalog,
		logger:     logger,
	}
}

// Query compiles and executes an analytics query, returning one ordered
// label->value record per row.
//
// A query that resolves to no metrics and no dimensions returns an empty
// slice without a database round-trip. Database errors are never retried or
// translated here; they propagate to the boundary layer.
func (r *analyticsRepository) Query(ctx context.Context, query analytics.Query) ([]map[string]interface{}, error) {
	stmt, err := r.sqlBuilder.BuildSQL(query, r.catalog)
	if err != nil {
		r.logger.WithField("error", err.Error()).Error("Failed to build SQL for analytics query")
		return nil, fmt.Errorf("failed to build SQL: %w", err)
	}

	if stmt.Empty() {
		r.logger.Debug("Analytics query resolved to no metrics or dimensions")
		return []map[string]interface{}{}, nil
	}

	rows, err := r.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		r.logger.WithField("sql", stmt.SQL).WithField("error", err.Error()).Error("Failed to execute analytics query")
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		r.logger.WithField("error", err.Error()).Error("Failed to get query columns")
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	data := []map[string]interface{}{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			r.logger.WithField("error", err.Error()).Error("Failed to scan query result row")
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			val := values[i]
			// Convert []byte to string for JSON serialization; numerics come
			// back from lib/pq as []byte.
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		data = append(data, row)
	}

	if err := rows.Err(); err != nil {
		r.logger.WithField("error", err.Error()).Error("Error during query result iteration")
		return nil, fmt.Errorf("error during result iteration: %w", err)
	}

	r.logger.WithField("rows", len(data)).Debug("Analytics query executed")

	return data, nil
}
