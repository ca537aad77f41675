package handlers

import (
	"github.com/anonto42/estate-hub/backend/internal/middleware"
	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated user's id, or 0 when the
// request carries no claims.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get(middleware.UserContextKey).(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// requireUserID is getUserIDFromContext for routes behind auth middleware.
func requireUserID(c echo.Context) (uint, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return 0, models.NewUnauthorizedError("You are not logged in! Please log in to get access.")
	}
	return id, nil
}

// bindAndValidate binds the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return models.NewValidationError("Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}
