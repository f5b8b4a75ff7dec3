package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/calcly/calculator-api/internal/core/domain"
)

// UserRepository defines persistence for user identity records.
//
// Insert must return domain.ErrDuplicateIdentity when the email or username
// unique constraint is violated, so callers never see a raw driver error for
// the lost half of a registration race.
type UserRepository interface {
	// FindByEmailOrUsername matches value against both the email and the
	// username field. Returns domain.ErrUserNotFound when nothing matches.
	FindByEmailOrUsername(ctx context.Context, value string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
