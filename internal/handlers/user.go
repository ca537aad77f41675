package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/anonto42/estate-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterUserRoutes registers user routes. Static segments are registered
// alongside /users/:id; echo matches them first.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/users", h.GetUsers)
	g.GET("/users/:id", h.GetUser)
	g.PATCH("/users/updateMe", h.UpdateMe, auth)
	g.PATCH("/users/deleteMe", h.DeleteMe, auth)
	g.GET("/users/get-profile-posts/:userId", h.GetProfilePosts)
}

func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"result": len(users),
		"data":   echo.Map{"users": users},
	})
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseUserID(c.Param("id"))
	if err != nil {
		return err
	}
	user, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"user": user},
	})
}

// UpdateMe updates the authenticated user's profile. A new photo may be sent
// as the multipart "avatar" file.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateMeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	avatar, err := formImage(c, "avatar")
	if err != nil {
		return err
	}

	user, err := h.userService.UpdateMe(c.Request().Context(), userID, req, avatar)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"user": user},
	})
}

// DeleteMe deactivates the authenticated user's account
func (h *UserHandler) DeleteMe(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	if err := h.userService.DeleteMe(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetProfilePosts returns a user's own listings and saved listings
func (h *UserHandler) GetProfilePosts(c echo.Context) error {
	id, err := parseUserID(c.Param("userId"))
	if err != nil {
		return err
	}
	profile, err := h.userService.GetProfilePosts(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":          "success",
		"userPostsCount":  len(profile.UserPosts),
		"savedPostsCount": len(profile.SavedPosts),
		"data":            profile,
	})
}

// parseUserID treats an id that cannot exist as a missing user.
func parseUserID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewNotFoundError("No user found with that ID")
	}
	return uint(id), nil
}
