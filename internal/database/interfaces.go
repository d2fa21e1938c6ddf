package database

import (
	"context"

	"gorm.io/gorm"
)

// HealthChecker reports whether the store answers queries
type HealthChecker interface {
	Check(ctx context.Context) error
}

type storeHealthChecker struct {
	db *gorm.DB
}

// NewHealthChecker returns a checker that issues a no-op query against db
func NewHealthChecker(db *gorm.DB) HealthChecker {
	return &storeHealthChecker{db: db}
}

func (h *storeHealthChecker) Check(ctx context.Context) error {
	return h.db.WithContext(ctx).Exec("SELECT 1").Error
}
