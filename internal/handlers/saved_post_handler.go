package handlers

import (
	"net/http"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/anonto42/estate-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SavedPostHandler handles saved post HTTP requests
type SavedPostHandler struct {
	savedPostService *services.SavedPostService
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(savedPostService *services.SavedPostService) *SavedPostHandler {
	return &SavedPostHandler{savedPostService: savedPostService}
}

// RegisterSavedPostRoutes registers saved post routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/users/savePost", h.SavePost, auth)
	g.GET("/users/getSavedPosts/:userId", h.GetSavedPosts)
}

// SavePost toggles the caller's bookmark on a post
func (h *SavedPostHandler) SavePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.SavePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.savedPostService.Toggle(c.Request().Context(), userID, req.PostID)
	if err != nil {
		return err
	}
	if result.Saved {
		return c.JSON(http.StatusCreated, echo.Map{
			"status":  "Post Saved",
			"message": "Post saved",
			"data":    result.SavedPost,
			"isSaved": true,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Post unsaved",
		"isSaved": false,
	})
}

// GetSavedPosts lists a user's saved posts. Entries whose post has been
// deleted carry "post": null.
func (h *SavedPostHandler) GetSavedPosts(c echo.Context) error {
	id, err := parseUserID(c.Param("userId"))
	if err != nil {
		return err
	}
	saved, err := h.savedPostService.GetSavedPosts(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"result": len(saved),
		"data":   echo.Map{"savedPosts": saved},
	})
}
