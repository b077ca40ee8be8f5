package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/garmentworks/pattern-tracker/internal/api/middleware"
	"github.com/garmentworks/pattern-tracker/internal/core/domain"
)

// currentUser extracts the authenticated user placed in the request context
// by the auth middleware.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserContextKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return user, nil
}
