package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/estate-hub/backend/internal/middleware"
	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/anonto42/estate-hub/backend/internal/repositories"
	"github.com/anonto42/estate-hub/backend/internal/services"
	"github.com/anonto42/estate-hub/backend/validators"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testJWTSecret = "handler-test-secret"

// memPostRepo is an in-memory PostRepository.
type memPostRepo struct {
	mu    sync.Mutex
	posts map[string]models.Post
}

func newMemPostRepo(posts ...models.Post) *memPostRepo {
	r := &memPostRepo{posts: map[string]models.Post{}}
	for _, p := range posts {
		r.posts[p.ID.Hex()] = p
	}
	return r
}

func (r *memPostRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	r.posts[post.ID.Hex()] = *post
	return nil
}

func (r *memPostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repositories.ErrPostNotFound
	}
	return &p, nil
}

func (r *memPostRepo) GetPostsByIDs(_ context.Context, ids []string) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Post{}
	for _, id := range ids {
		if p, ok := r.posts[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPostRepo) GetPostsByAuthor(_ context.Context, authorID string) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Post{}
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPostRepo) FindPosts(_ context.Context, f models.PostFilter) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Post{}
	for _, p := range r.posts {
		if f.City != nil && p.City != *f.City {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memPostRepo) UpdatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID.Hex()]; !ok {
		return repositories.ErrPostNotFound
	}
	r.posts[post.ID.Hex()] = *post
	return nil
}

func (r *memPostRepo) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return repositories.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

// memSavedRepo is an in-memory SavedPostRepository.
type memSavedRepo struct {
	mu   sync.Mutex
	next uint
	rows []models.SavedPost
}

func (r *memSavedRepo) Toggle(_ context.Context, userID uint, postID string) (bool, *models.SavedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.UserID == userID && row.PostID == postID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return false, nil, nil
		}
	}
	r.next++
	row := models.SavedPost{ID: r.next, UserID: userID, PostID: postID, CreatedAt: time.Now()}
	r.rows = append(r.rows, row)
	return true, &row, nil
}

func (r *memSavedRepo) GetSavedPostsByUser(_ context.Context, userID uint) ([]models.SavedPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.SavedPost{}
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

type testServer struct {
	e     *echo.Echo
	posts *memPostRepo
	saved *memSavedRepo
}

func newTestServer(t *testing.T, posts ...models.Post) *testServer {
	t.Helper()
	logger := zap.NewNop()
	postRepo := newMemPostRepo(posts...)
	savedRepo := &memSavedRepo{}

	e := echo.New()
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = ErrorHandler(logger, false)

	images := services.NewImageService(nil, logger)
	postService := services.NewPostService(postRepo, nil, images, logger)
	savedService := services.NewSavedPostService(savedRepo, postRepo, logger)

	auth := middleware.JWTAuthMiddleware(testJWTSecret)
	api := e.Group("/api/v1")
	NewPostHandler(postService).RegisterPostRoutes(api, auth)
	NewSavedPostHandler(savedService).RegisterSavedPostRoutes(api, auth)
	e.RouteNotFound("/*", NotFound)

	return &testServer{e: e, posts: postRepo, saved: savedRepo}
}

func (s *testServer) do(t *testing.T, method, path, body string, userID uint) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != 0 {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+testToken(t, userID))
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func testToken(t *testing.T, userID uint) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func testPost(owner string) models.Post {
	return models.Post{
		ID:          primitive.NewObjectID(),
		Title:       "Loft",
		Price:       120000,
		City:        "Austin",
		Description: "Open plan",
		Type:        models.PostTypeBuy,
		Property:    models.PropertyCondo,
		AuthorID:    owner,
	}
}
