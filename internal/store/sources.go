package store

import (
	"context"

	"talentgigs/internal/models"
)

// PositionSource reads internal position records.
type PositionSource interface {
	GetPage(ctx context.Context, page, pageSize int) ([]models.InternalPosition, error)
	GetByID(ctx context.Context, id string) (*models.InternalPosition, error)
}

// EmployeeSource reads internal employee records.
type EmployeeSource interface {
	GetPage(ctx context.Context, page, pageSize int) ([]models.Employee, error)
	GetByID(ctx context.Context, id string) (*models.Employee, error)
}
