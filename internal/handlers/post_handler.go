package handlers

import (
	"net/http"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/anonto42/estate-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to listings
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes. Reads are public; writes
// go through auth.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:postId", h.GetPost)
	g.POST("/posts", h.CreatePost, auth)
	g.PATCH("/posts/updatePost/:postId", h.UpdatePost, auth)
	g.DELETE("/posts/:postId", h.DeletePost, auth)
}

// CreatePost creates a new listing owned by the caller. Photos may be sent as
// multipart "images" files.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	uploads, err := formImages(c, "images")
	if err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), userID, req, uploads)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"status": "success",
		"data":   echo.Map{"post": post},
	})
}

// GetPost retrieves a listing with its author
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"post": post},
	})
}

// GetPosts lists listings, filtered by city, type, property, bedroom,
// minPrice and maxPrice when given.
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postService.ListPosts(c.Request().Context(), c.QueryParams())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"result": len(posts),
		"data":   echo.Map{"posts": posts},
	})
}

// UpdatePost updates an existing listing
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	uploads, err := formImages(c, "images")
	if err != nil {
		return err
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), userID, c.Param("postId"), req, uploads)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"data":   echo.Map{"post": post},
	})
}

// DeletePost deletes a listing
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := h.postService.DeletePost(c.Request().Context(), userID, c.Param("postId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
