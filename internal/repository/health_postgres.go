package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nola-analytics/nola/internal/domain"
)

type healthChecker struct {
	db *sql.DB
}

// NewHealthChecker creates a database health checker backed by a trivial
// round-trip query.
func NewHealthChecker(db *sql.DB) domain.HealthChecker {
	return &healthChecker{db: db}
}

// Check runs SELECT 1 against the database.
func (h *healthChecker) Check(ctx context.Context) error {
	var one int
	if err := h.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}
	return nil
}
