package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/nola-analytics/nola/internal/domain"
)

type metadataRepository struct {
	db *sql.DB
}

// NewMetadataRepository creates a PostgreSQL metadata repository. It serves
// the distinct-filter-value listings used to populate frontend selects.
func NewMetadataRepository(db *sql.DB) domain.MetadataRepository {
	return &metadataRepository{db: db}
}

// ListStates returns the distinct non-null store states, ordered.
func (r *metadataRepository) ListStates(ctx context.Context) ([]string, error) {
	query, args, err := sq.Select("DISTINCT state").
		From("stores").
		Where("state IS NOT NULL").
		OrderBy("state").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build states query: %w", err)
	}
	return r.queryStrings(ctx, query, args...)
}

// ListCities returns the distinct non-null store cities, ordered. A
// non-empty state restricts the listing to that state.
func (r *metadataRepository) ListCities(ctx context.Context, state string) ([]string, error) {
	builder := sq.Select("DISTINCT city").
		From("stores").
		Where("city IS NOT NULL").
		OrderBy("city").
		PlaceholderFormat(sq.Dollar)
	if state != "" {
		builder = builder.Where(sq.Eq{"state": state})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build cities query: %w", err)
	}
	return r.queryStrings(ctx, query, args...)
}

func (r *metadataRepository) queryStrings(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during result iteration: %w", err)
	}
	return values, nil
}
