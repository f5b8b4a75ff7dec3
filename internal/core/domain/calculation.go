package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

// Operation names an arithmetic operation applied to two operands.
type Operation string

const (
	OpAdd      Operation = "add"
	OpSubtract Operation = "subtract"
	OpMultiply Operation = "multiply"
	OpDivide   Operation = "divide"
	OpPower    Operation = "power"
)

var ErrCalculationNotFound = errors.New("calculation not found")
var ErrUnknownOperation = errors.New("unknown operation")
var ErrDivisionByZero = errors.New("cannot divide by zero")

// operations is the dispatch table consumed by the calculation service and
// the direct compute endpoint.
var operations = map[Operation]func(a, b float64) (float64, error){
	OpAdd:      func(a, b float64) (float64, error) { return a + b, nil },
	OpSubtract: func(a, b float64) (float64, error) { return a - b, nil },
	OpMultiply: func(a, b float64) (float64, error) { return a * b, nil },
	OpDivide: func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	},
	OpPower: func(a, b float64) (float64, error) { return math.Pow(a, b), nil },
}

// Valid reports whether op names a known operation.
func (op Operation) Valid() bool {
	_, ok := operations[op]
	return ok
}

// Apply runs the operation on the given operands.
func (op Operation) Apply(a, b float64) (float64, error) {
	fn, ok := operations[op]
	if !ok {
		return 0, ErrUnknownOperation
	}
	return fn(a, b)
}

// Calculation is a persisted arithmetic calculation. UserID is nil when the
// record was created without an authenticated session.
type Calculation struct {
	ID        uuid.UUID  `json:"id"`
	Operation Operation  `json:"operation"`
	A         float64    `json:"a"`
	B         float64    `json:"b"`
	Result    float64    `json:"result"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
