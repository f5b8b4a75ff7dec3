package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/calcly/calculator-api/internal/api/metrics"
	"github.com/calcly/calculator-api/internal/core/domain"
	"github.com/calcly/calculator-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CalculationService implements the stored-calculation use cases and direct
// computation over the operation dispatch table.
type CalculationService struct {
	repo   ports.CalculationRepository
	logger zerolog.Logger
}

func NewCalculationService(repo ports.CalculationRepository, logger zerolog.Logger) *CalculationService {
	return &CalculationService{repo: repo, logger: logger}
}

func (s *CalculationService) Create(ctx context.Context, input ports.CreateCalculationInput) (*domain.Calculation, error) {
	op := domain.Operation(input.Operation)
	result, err := op.Apply(input.A, input.B)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	calc := &domain.Calculation{
		ID:        uuid.New(),
		Operation: op,
		A:         input.A,
		B:         input.B,
		Result:    result,
		UserID:    input.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, calc); err != nil {
		s.logger.Error().Err(err).Msg("failed to insert calculation")
		return nil, err
	}

	metrics.CalculationsCreatedTotal.WithLabelValues(string(op)).Inc()
	return calc, nil
}

func (s *CalculationService) Get(ctx context.Context, id uuid.UUID) (*domain.Calculation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CalculationService) List(ctx context.Context, input ports.ListCalculationsInput) (*ports.ListCalculationsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.ListCalculationsFilter{
		Operation: input.Operation,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListCalculationsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Update applies the provided fields and recomputes the result from the
// effective operation and operands.
func (s *CalculationService) Update(ctx context.Context, id uuid.UUID, input ports.UpdateCalculationInput) (*domain.Calculation, error) {
	calc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Operation != nil {
		op := domain.Operation(*input.Operation)
		if !op.Valid() {
			return nil, domain.ErrUnknownOperation
		}
		calc.Operation = op
	}
	if input.A != nil {
		calc.A = *input.A
	}
	if input.B != nil {
		calc.B = *input.B
	}

	result, err := calc.Operation.Apply(calc.A, calc.B)
	if err != nil {
		return nil, err
	}
	calc.Result = result
	calc.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, calc); err != nil {
		return nil, err
	}
	return calc, nil
}

func (s *CalculationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Compute evaluates the operation without persisting anything.
func (s *CalculationService) Compute(operation string, a, b float64) (float64, error) {
	result, err := domain.Operation(operation).Apply(a, b)
	if err != nil {
		return 0, err
	}
	metrics.ComputeTotal.WithLabelValues(operation).Inc()
	return result, nil
}
