package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/calcly/calculator-api/internal/core/domain"
)

// CreateCalculationInput carries the data for a new calculation. UserID is
// nil for anonymous requests.
type CreateCalculationInput struct {
	Operation string
	A         float64
	B         float64
	UserID    *uuid.UUID
}

// UpdateCalculationInput is a partial update; nil fields are left unchanged.
// The result is recomputed from the effective operation and operands.
type UpdateCalculationInput struct {
	Operation *string
	A         *float64
	B         *float64
}

// ListCalculationsInput carries all parameters for the list endpoint.
type ListCalculationsInput struct {
	Operation string
	Page      int
	Limit     int
}

// ListCalculationsResult is returned by List.
type ListCalculationsResult struct {
	Items      []*domain.Calculation
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CalculationService defines use-case operations for stored calculations and
// direct (non-persisted) computation.
type CalculationService interface {
	Create(ctx context.Context, input CreateCalculationInput) (*domain.Calculation, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Calculation, error)
	List(ctx context.Context, input ListCalculationsInput) (*ListCalculationsResult, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCalculationInput) (*domain.Calculation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Compute evaluates the operation without persisting anything.
	Compute(operation string, a, b float64) (float64, error)
}
