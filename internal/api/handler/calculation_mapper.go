package handler

import (
	"github.com/calcly/calculator-api/internal/core/domain"
	"github.com/calcly/calculator-api/internal/core/ports"
)

func toCalculationResponse(c *domain.Calculation) calculationResponse {
	return calculationResponse{
		ID:        c.ID,
		Operation: string(c.Operation),
		A:         c.A,
		B:         c.B,
		Result:    c.Result,
		UserID:    c.UserID,
		CreatedAt: c.CreatedAt.UTC(),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func toListResponse(r *ports.ListCalculationsResult) listCalculationsResponse {
	items := make([]calculationResponse, len(r.Items))
	for i, c := range r.Items {
		items[i] = toCalculationResponse(c)
	}
	return listCalculationsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
