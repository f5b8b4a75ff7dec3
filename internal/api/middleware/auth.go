package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/calcly/calculator-api/internal/core/domain"
)

// UserContextKey is where the middleware stores the authenticated user's
// public view for downstream handlers.
const UserContextKey = "user"

// TokenVerifier resolves a bearer token to its subject id.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, bool)
}

// UserSource resolves a subject id to a user record.
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Authenticate validates the bearer token and injects the public user view
// into context. A failed verification and a token whose subject no longer
// exists produce the same 401; the cause is never surfaced to the client.
func Authenticate(tokens TokenVerifier, users UserSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := resolveUser(c, tokens, users)
			if err != nil {
				return err
			}
			c.Set(UserContextKey, user.Public())
			return next(c)
		}
	}
}

// OptionalAuthenticate injects the public user view when a valid bearer
// token is present, and lets the request through anonymously otherwise.
func OptionalAuthenticate(tokens TokenVerifier, users UserSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user, err := resolveUser(c, tokens, users); err == nil {
				c.Set(UserContextKey, user.Public())
			}
			return next(c)
		}
	}
}

// ActiveOnly rejects authenticated users whose account is disabled. It must
// run after Authenticate.
func ActiveOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(UserContextKey).(*domain.PublicUser)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}
			if !user.IsActive {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "inactive account"})
			}
			return next(c)
		}
	}
}

func resolveUser(c echo.Context, tokens TokenVerifier, users UserSource) (*domain.User, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}

	subject, ok := tokens.Verify(parts[1])
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}

	user, err := users.GetByID(c.Request().Context(), subject)
	if err != nil {
		// A token for a deleted user reads the same as an invalid token.
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}
	return user, nil
}
