package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/calcly/calculator-api/internal/api/middleware"
	"github.com/calcly/calculator-api/internal/core/domain"
)

// ctxUser extracts the authenticated user injected by the access middleware.
// Its presence proves the middleware ran; a missing user on a protected
// route means the route was wired without it.
func ctxUser(c echo.Context) (*domain.PublicUser, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.PublicUser)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return user, nil
}

// ctxUserID returns the authenticated user's id, or nil for anonymous
// requests. Used by routes behind OptionalAuthenticate.
func ctxUserID(c echo.Context) *uuid.UUID {
	user, ok := c.Get(middleware.UserContextKey).(*domain.PublicUser)
	if !ok {
		return nil
	}
	id := user.ID
	return &id
}
