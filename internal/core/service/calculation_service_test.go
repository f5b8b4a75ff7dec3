package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/calcly/calculator-api/internal/core/domain"
	"github.com/calcly/calculator-api/internal/core/ports"
)

type stubCalcRepo struct {
	calcs      []*domain.Calculation
	lastFilter ports.ListCalculationsFilter
}

func cloneCalc(c *domain.Calculation) *domain.Calculation {
	if c == nil {
		return nil
	}
	clone := *c
	if c.UserID != nil {
		id := *c.UserID
		clone.UserID = &id
	}
	return &clone
}

func (r *stubCalcRepo) Insert(_ context.Context, calc *domain.Calculation) error {
	r.calcs = append(r.calcs, cloneCalc(calc))
	return nil
}

func (r *stubCalcRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Calculation, error) {
	for _, c := range r.calcs {
		if c.ID == id {
			return cloneCalc(c), nil
		}
	}
	return nil, domain.ErrCalculationNotFound
}

func (r *stubCalcRepo) List(_ context.Context, filter ports.ListCalculationsFilter) ([]*domain.Calculation, int64, error) {
	r.lastFilter = filter

	var matched []*domain.Calculation
	for _, c := range r.calcs {
		if filter.Operation != "" && string(c.Operation) != filter.Operation {
			continue
		}
		matched = append(matched, cloneCalc(c))
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubCalcRepo) Update(_ context.Context, calc *domain.Calculation) error {
	for i, c := range r.calcs {
		if c.ID == calc.ID {
			r.calcs[i] = cloneCalc(calc)
			return nil
		}
	}
	return domain.ErrCalculationNotFound
}

func (r *stubCalcRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range r.calcs {
		if c.ID == id {
			r.calcs = append(r.calcs[:i], r.calcs[i+1:]...)
			return nil
		}
	}
	return domain.ErrCalculationNotFound
}

func newCalcService(repo ports.CalculationRepository) *CalculationService {
	return NewCalculationService(repo, zerolog.Nop())
}

func TestCalculationService_Create(t *testing.T) {
	repo := &stubCalcRepo{}
	svc := newCalcService(repo)

	calc, err := svc.Create(context.Background(), ports.CreateCalculationInput{
		Operation: "add",
		A:         2,
		B:         3,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if calc.Result != 5 {
		t.Fatalf("expected result 5, got %v", calc.Result)
	}
	if calc.ID == uuid.Nil {
		t.Fatalf("expected an assigned id")
	}
	if calc.UserID != nil {
		t.Fatalf("anonymous calculation should have no owner")
	}
	if len(repo.calcs) != 1 {
		t.Fatalf("calculation not persisted")
	}
}

func TestCalculationService_Create_WithOwner(t *testing.T) {
	repo := &stubCalcRepo{}
	svc := newCalcService(repo)

	owner := uuid.New()
	calc, err := svc.Create(context.Background(), ports.CreateCalculationInput{
		Operation: "power",
		A:         2,
		B:         10,
		UserID:    &owner,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if calc.Result != 1024 {
		t.Fatalf("expected result 1024, got %v", calc.Result)
	}
	if calc.UserID == nil || *calc.UserID != owner {
		t.Fatalf("owner not recorded")
	}
}

func TestCalculationService_Create_DivisionByZero(t *testing.T) {
	repo := &stubCalcRepo{}
	svc := newCalcService(repo)

	_, err := svc.Create(context.Background(), ports.CreateCalculationInput{
		Operation: "divide",
		A:         1,
		B:         0,
	})
	if !errors.Is(err, domain.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if len(repo.calcs) != 0 {
		t.Fatalf("failed calculation must not be persisted")
	}
}

func TestCalculationService_Create_UnknownOperation(t *testing.T) {
	svc := newCalcService(&stubCalcRepo{})

	_, err := svc.Create(context.Background(), ports.CreateCalculationInput{
		Operation: "modulo",
		A:         7,
		B:         3,
	})
	if !errors.Is(err, domain.ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
}

func TestCalculationService_Update_Recomputes(t *testing.T) {
	repo := &stubCalcRepo{}
	svc := newCalcService(repo)

	calc, err := svc.Create(context.Background(), ports.CreateCalculationInput{
		Operation: "add",
		A:         2,
		B:         3,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Change only one operand; the result follows.
	b := 10.0
	updated, err := svc.Update(context.Background(), calc.ID, ports.UpdateCalculationInput{B: &b})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Result != 12 {
		t.Fatalf("expected recomputed result 12, got %v", updated.Result)
	}
	if updated.A != 2 || updated.Operation != domain.OpAdd {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	// Change only the operation.
	op := "multiply"
	updated, err = svc.Update(context.Background(), calc.ID, ports.UpdateCalculationInput{Operation: &op})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Result != 20 {
		t.Fatalf("expected recomputed result 20, got %v", updated.Result)
	}

	stored, err := repo.GetByID(context.Background(), calc.ID)
	if err != nil {
		t.Fatalf("stored calculation gone: %v", err)
	}
	if stored.Result != 20 {
		t.Fatalf("update not persisted, stored result %v", stored.Result)
	}
}

func TestCalculationService_Update_Errors(t *testing.T) {
	repo := &stubCalcRepo{}
	svc := newCalcService(repo)

	calc, err := svc.Create(context.Background(), ports.CreateCalculationInput{
		Operation: "divide",
		A:         10,
		B:         2,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	badOp := "modulo"
	if _, err := svc.Update(context.Background(), calc.ID, ports.UpdateCalculationInput{Operation: &badOp}); !errors.Is(err, domain.ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}

	zero := 0.0
	if _, err := svc.Update(context.Background(), calc.ID, ports.UpdateCalculationInput{B: &zero}); !errors.Is(err, domain.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}

	// The stored row is untouched after both failures.
	stored, err := repo.GetByID(context.Background(), calc.ID)
	if err != nil {
		t.Fatalf("stored calculation gone: %v", err)
	}
	if stored.Result != 5 || stored.B != 2 {
		t.Fatalf("failed update mutated the stored row: %+v", stored)
	}

	if _, err := svc.Update(context.Background(), uuid.New(), ports.UpdateCalculationInput{}); !errors.Is(err, domain.ErrCalculationNotFound) {
		t.Fatalf("expected ErrCalculationNotFound, got %v", err)
	}
}

func TestCalculationService_Delete(t *testing.T) {
	repo := &stubCalcRepo{}
	svc := newCalcService(repo)

	calc, err := svc.Create(context.Background(), ports.CreateCalculationInput{
		Operation: "subtract",
		A:         5,
		B:         3,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(context.Background(), calc.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), calc.ID); !errors.Is(err, domain.ErrCalculationNotFound) {
		t.Fatalf("expected ErrCalculationNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), calc.ID); !errors.Is(err, domain.ErrCalculationNotFound) {
		t.Fatalf("second delete should report ErrCalculationNotFound, got %v", err)
	}
}

func TestCalculationService_List(t *testing.T) {
	repo := &stubCalcRepo{}
	svc := newCalcService(repo)

	for i := 0; i < 5; i++ {
		op := "add"
		if i%2 == 1 {
			op = "multiply"
		}
		if _, err := svc.Create(context.Background(), ports.CreateCalculationInput{
			Operation: op,
			A:         float64(i),
			B:         1,
		}); err != nil {
			t.Fatalf("seed calculation %d: %v", i, err)
		}
	}

	result, err := svc.List(context.Background(), ports.ListCalculationsInput{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 5 || len(result.Items) != 2 {
		t.Fatalf("expected total 5 with 2 items, got total %d, %d items", result.Total, len(result.Items))
	}
	if result.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", result.TotalPages)
	}

	result, err = svc.List(context.Background(), ports.ListCalculationsInput{Operation: "multiply", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected 2 multiply rows, got %d", result.Total)
	}
}

func TestCalculationService_List_ClampsPagination(t *testing.T) {
	repo := &stubCalcRepo{}
	svc := newCalcService(repo)

	if _, err := svc.List(context.Background(), ports.ListCalculationsInput{Page: -3, Limit: 0}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != defaultPageLimit {
		t.Fatalf("expected page 1 limit %d, got %+v", defaultPageLimit, repo.lastFilter)
	}

	if _, err := svc.List(context.Background(), ports.ListCalculationsInput{Page: 1, Limit: 9999}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.lastFilter.Limit != maxPageLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxPageLimit, repo.lastFilter.Limit)
	}
}

func TestCalculationService_Compute(t *testing.T) {
	svc := newCalcService(&stubCalcRepo{})

	cases := []struct {
		operation string
		a, b      float64
		want      float64
	}{
		{"add", 2, 3, 5},
		{"subtract", 2, 3, -1},
		{"multiply", 4, 2.5, 10},
		{"divide", 9, 3, 3},
		{"power", 2, 8, 256},
	}
	for _, tc := range cases {
		got, err := svc.Compute(tc.operation, tc.a, tc.b)
		if err != nil {
			t.Fatalf("%s: Compute returned error: %v", tc.operation, err)
		}
		if got != tc.want {
			t.Fatalf("%s(%v, %v): expected %v, got %v", tc.operation, tc.a, tc.b, tc.want, got)
		}
	}

	if _, err := svc.Compute("divide", 1, 0); !errors.Is(err, domain.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if _, err := svc.Compute("modulo", 1, 1); !errors.Is(err, domain.ErrUnknownOperation) {
		t.Fatalf("expected ErrUnknownOperation, got %v", err)
	}
}
