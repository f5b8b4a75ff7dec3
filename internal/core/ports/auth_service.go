package ports

import (
	"context"

	"github.com/calcly/calculator-api/internal/core/domain"
)

// RegisterInput is the untrusted draft for a new account. The raw password
// is hashed and discarded inside Register; it is never stored or logged.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password  string
}

type AuthService interface {
	// Register validates the draft, enforces identity uniqueness, and
	// persists the new user. Returns the issued access token and the user.
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	// Login authenticates by email or username. Unknown identifier and
	// wrong password both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
}
