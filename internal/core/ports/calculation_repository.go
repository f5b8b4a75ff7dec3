package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/calcly/calculator-api/internal/core/domain"
)

// ListCalculationsFilter carries all query parameters for listing calculations.
type ListCalculationsFilter struct {
	Operation string     // optional: filter by operation name
	UserID    *uuid.UUID // optional: scope to an owning user
	Page      int        // 1-based
	Limit     int        // max rows per page (capped at 100 by service)
}

// CalculationRepository defines persistence operations for calculations.
type CalculationRepository interface {
	Insert(ctx context.Context, calc *domain.Calculation) error
	// GetByID returns domain.ErrCalculationNotFound when id has no match.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Calculation, error)
	// List returns a page of calculations matching filter and the total count.
	List(ctx context.Context, filter ListCalculationsFilter) ([]*domain.Calculation, int64, error)
	Update(ctx context.Context, calc *domain.Calculation) error
	Delete(ctx context.Context, id uuid.UUID) error
}
