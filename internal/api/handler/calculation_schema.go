package handler

import (
	"time"

	"github.com/google/uuid"
)

// --- Request types ---

// Operands are pointers so that an explicit 0 survives the required check.
type createCalculationRequest struct {
	Operation string   `json:"operation" validate:"required,oneof=add subtract multiply divide power"`
	A         *float64 `json:"a"         validate:"required"`
	B         *float64 `json:"b"         validate:"required"`
}

type updateCalculationRequest struct {
	Operation *string  `json:"operation" validate:"omitempty,oneof=add subtract multiply divide power"`
	A         *float64 `json:"a"`
	B         *float64 `json:"b"`
}

type computeRequest struct {
	A *float64 `json:"a" validate:"required"`
	B *float64 `json:"b" validate:"required"`
}

// --- Response types ---
// Response-only types owned by the transport layer; the JSON contract is not
// coupled to internal service changes.

type calculationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Operation string     `json:"operation"`
	A         float64    `json:"a"`
	B         float64    `json:"b"`
	Result    float64    `json:"result"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listCalculationsResponse struct {
	Data       []calculationResponse `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}

type computeResponse struct {
	Result float64 `json:"result"`
}
