package service

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/calcly/calculator-api/internal/api/metrics"
	"github.com/calcly/calculator-api/internal/core/domain"
	"github.com/calcly/calculator-api/internal/core/ports"
	"github.com/calcly/calculator-api/internal/pkg/password"
	"github.com/calcly/calculator-api/internal/pkg/token"
)

const (
	maxNameLen     = 50
	maxUsernameLen = 50
	minPasswordLen = 6
)

// AuthService implements registration and login on top of the user store,
// the password hasher, and the token issuer.
type AuthService struct {
	repo   ports.UserRepository
	tokens *token.Issuer
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *token.Issuer, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	if err := validateRegister(input); err != nil {
		return "", nil, err
	}

	// Pre-check both candidate identities. The unique indexes remain the
	// authoritative guard; a race between this check and the insert is
	// resolved by the store returning ErrDuplicateIdentity.
	for _, value := range []string{input.Email, input.Username} {
		_, err := s.repo.FindByEmailOrUsername(ctx, value)
		if err == nil {
			return "", nil, domain.ErrDuplicateIdentity
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, err
		}
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		IsActive:     true,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		return "", nil, err
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("user_id", user.ID.String()).Str("username", user.Username).Msg("user registered")

	return tok, user, nil
}

// Login authenticates by email or username. It deliberately does not reveal
// whether the identifier or the password was wrong, and it does not check
// IsActive; the active-account gate lives in the access middleware.
func (s *AuthService) Login(ctx context.Context, identifier, rawPassword string) (string, *domain.User, error) {
	user, err := s.repo.FindByEmailOrUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !password.Verify(rawPassword, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	user.UpdatedAt = now
	if err := s.repo.Update(ctx, user); err != nil {
		return "", nil, err
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID.String()).Msg("user logged in")

	return tok, user, nil
}

func validateRegister(input ports.RegisterInput) error {
	if input.FirstName == "" || len(input.FirstName) > maxNameLen {
		return domain.Validationf("first_name must be between 1 and %d characters", maxNameLen)
	}
	if input.LastName == "" || len(input.LastName) > maxNameLen {
		return domain.Validationf("last_name must be between 1 and %d characters", maxNameLen)
	}
	if input.Username == "" || len(input.Username) > maxUsernameLen {
		return domain.Validationf("username must be between 1 and %d characters", maxUsernameLen)
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return domain.Validationf("email must be a valid email address")
	}
	// Hard floor, enforced here regardless of upstream schema checks.
	if len(input.Password) < minPasswordLen {
		return domain.Validationf("password must be at least %d characters long", minPasswordLen)
	}
	return nil
}
