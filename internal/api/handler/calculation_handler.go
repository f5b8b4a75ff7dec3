package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/calcly/calculator-api/internal/core/domain"
	"github.com/calcly/calculator-api/internal/core/ports"
)

// CalculationHandler handles HTTP requests for stored calculations and the
// direct compute endpoint.
type CalculationHandler struct {
	service ports.CalculationService
}

func NewCalculationHandler(service ports.CalculationService) *CalculationHandler {
	return &CalculationHandler{service: service}
}

// List handles GET /v1/calculations.
//
// @Summary      List calculations
// @Tags         calculations
// @Produce      json
// @Param        operation  query     string  false  "Filter by operation name"
// @Param        page       query     int     false  "1-based page number"
// @Param        limit      query     int     false  "Rows per page (max 100)"
// @Success      200        {object}  listCalculationsResponse
// @Failure      500        {object}  map[string]string
// @Router       /v1/calculations [get]
func (h *CalculationHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListCalculationsInput{
		Operation: c.QueryParam("operation"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /v1/calculations/:id.
//
// @Summary      Get a calculation by id
// @Tags         calculations
// @Produce      json
// @Param        id   path      string  true  "Calculation id (UUID)"
// @Success      200  {object}  calculationResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/calculations/{id} [get]
func (h *CalculationHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "calculation not found"})
	}

	calc, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCalculationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "calculation not found"})
		}
		return err
	}
	return c.JSON(http.StatusOK, toCalculationResponse(calc))
}

// Create handles POST /v1/calculations. When the request carried a valid
// bearer token the new record is attributed to that user.
//
// @Summary      Create a calculation
// @Tags         calculations
// @Accept       json
// @Produce      json
// @Param        body  body      createCalculationRequest  true  "Calculation details"
// @Success      201   {object}  calculationResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/calculations [post]
func (h *CalculationHandler) Create(c echo.Context) error {
	var req createCalculationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	calc, err := h.service.Create(c.Request().Context(), ports.CreateCalculationInput{
		Operation: req.Operation,
		A:         *req.A,
		B:         *req.B,
		UserID:    ctxUserID(c),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDivisionByZero) || errors.Is(err, domain.ErrUnknownOperation) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return err
	}
	return c.JSON(http.StatusCreated, toCalculationResponse(calc))
}

// Update handles PUT and PATCH /v1/calculations/:id. Omitted fields keep
// their stored values; the result is recomputed either way.
//
// @Summary      Update a calculation
// @Tags         calculations
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Calculation id (UUID)"
// @Param        body  body      updateCalculationRequest  true  "Fields to update"
// @Success      200   {object}  calculationResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/calculations/{id} [put]
func (h *CalculationHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "calculation not found"})
	}

	var req updateCalculationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	calc, err := h.service.Update(c.Request().Context(), id, ports.UpdateCalculationInput{
		Operation: req.Operation,
		A:         req.A,
		B:         req.B,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCalculationNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "calculation not found"})
		case errors.Is(err, domain.ErrDivisionByZero), errors.Is(err, domain.ErrUnknownOperation):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return err
	}
	return c.JSON(http.StatusOK, toCalculationResponse(calc))
}

// Delete handles DELETE /v1/calculations/:id.
//
// @Summary      Delete a calculation
// @Tags         calculations
// @Param        id  path  string  true  "Calculation id (UUID)"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/calculations/{id} [delete]
func (h *CalculationHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "calculation not found"})
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrCalculationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "calculation not found"})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Compute handles POST /v1/compute/:operation — evaluates the operation
// without persisting anything.
//
// @Summary      Compute without persisting
// @Tags         calculations
// @Accept       json
// @Produce      json
// @Param        operation  path      string          true  "Operation name"
// @Param        body       body      computeRequest  true  "Operands"
// @Success      200        {object}  computeResponse
// @Failure      400        {object}  map[string]string
// @Router       /v1/compute/{operation} [post]
func (h *CalculationHandler) Compute(c echo.Context) error {
	var req computeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.service.Compute(c.Param("operation"), *req.A, *req.B)
	if err != nil {
		if errors.Is(err, domain.ErrDivisionByZero) || errors.Is(err, domain.ErrUnknownOperation) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return err
	}
	return c.JSON(http.StatusOK, computeResponse{Result: result})
}
