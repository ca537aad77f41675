package services

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/anonto42/estate-hub/backend/internal/repositories"
	"go.uber.org/zap"
)

// PostService owns the listing lifecycle: create, read, filtered listing and
// owner-only update and delete.
type PostService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
	images   *ImageService
	logger   *zap.Logger
	now      func() time.Time
}

func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, images *ImageService, logger *zap.Logger) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		images:   images,
		logger:   logger,
		now:      time.Now,
	}
}

// CreatePost stores a listing owned by actingUserID. Uploaded photos, when
// present, replace any image names sent in the body.
func (s *PostService) CreatePost(ctx context.Context, actingUserID uint, req models.CreatePostRequest, uploads []ImageUpload) (*models.Post, error) {
	images := req.Images
	if len(uploads) > 0 {
		names, err := s.images.ProcessPostImages(ctx, "", uploads)
		if err != nil {
			return nil, err
		}
		images = names
	}
	if images == nil {
		images = []string{}
	}

	post := &models.Post{
		Title:         req.Title,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Offer:         req.Offer,
		Images:        images,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		Bedroom:       req.Bedroom,
		Bathroom:      req.Bathroom,
		Kitchen:       req.Kitchen,
		Parking:       req.Parking,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Type:          req.Type,
		Property:      req.Property,
		Description:   req.Description,
		Utilities:     req.Utilities,
		Pet:           req.Pet,
		Income:        req.Income,
		Size:          req.Size,
		School:        req.School,
		Bus:           req.Bus,
		Restaurant:    req.Restaurant,
		Supermarket:   req.Supermarket,
		AuthorID:      formatUserID(actingUserID),
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		s.logger.Error("failed to create post", zap.Uint("user_id", actingUserID), zap.Error(err))
		return nil, models.NewInternalError(err)
	}
	s.logger.Info("post created", zap.String("post_id", post.ID.Hex()), zap.Uint("user_id", actingUserID))
	return post, nil
}

// GetPost loads a listing with its owner. Author is nil when the owning
// account no longer exists.
func (s *PostService) GetPost(ctx context.Context, postID string) (*models.PostWithAuthor, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	result := &models.PostWithAuthor{Post: post}
	ownerID, err := strconv.ParseUint(post.AuthorID, 10, 64)
	if err != nil {
		return result, nil
	}
	author, err := s.userRepo.GetUserByID(ctx, uint(ownerID))
	switch {
	case err == nil:
		compact := author.ToCompact()
		result.Author = &compact
	case errors.Is(err, repositories.ErrUserNotFound):
	default:
		return nil, models.NewInternalError(err)
	}
	return result, nil
}

// ListPosts returns the listings matching the query string.
func (s *PostService) ListPosts(ctx context.Context, query url.Values) ([]models.Post, error) {
	posts, err := s.postRepo.FindPosts(ctx, BuildPostFilter(query))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// UpdatePost overwrites the allow-listed fields of a listing owned by
// actingUserID. Missing post is reported before ownership.
func (s *PostService) UpdatePost(ctx context.Context, actingUserID uint, postID string, req models.UpdatePostRequest, uploads []ImageUpload) (*models.Post, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	actor := formatUserID(actingUserID)
	if !CanMutatePost(actor, post.AuthorID) {
		return nil, models.NewForbiddenError("You are not allowed to update this post")
	}

	images := req.Images
	if len(uploads) > 0 {
		names, err := s.images.ProcessPostImages(ctx, post.ID.Hex(), uploads)
		if err != nil {
			return nil, err
		}
		images = names
	}
	if images == nil {
		images = []string{}
	}

	post.Title = req.Title
	post.Price = req.Price
	post.Images = images
	post.Address = req.Address
	post.City = req.City
	post.Bedroom = req.Bedroom
	post.Bathroom = req.Bathroom
	post.Locations = req.Locations
	post.Type = req.Type
	post.Property = req.Property
	// Always equal to the stored owner once the guard has passed.
	post.AuthorID = actor
	post.UpdatedAt = s.now()

	if err := s.postRepo.UpdatePost(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		s.logger.Error("failed to update post", zap.String("post_id", postID), zap.Error(err))
		return nil, models.NewInternalError(err)
	}
	s.logger.Info("post updated", zap.String("post_id", postID), zap.Uint("user_id", actingUserID))
	return post, nil
}

// DeletePost removes a listing owned by actingUserID. Saved-post rows that
// point at it are kept and read back with a null post.
func (s *PostService) DeletePost(ctx context.Context, actingUserID uint, postID string) error {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return err
	}
	if !CanMutatePost(formatUserID(actingUserID), post.AuthorID) {
		return models.NewForbiddenError("You are not allowed to delete this post")
	}

	if err := s.postRepo.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return models.NewNotFoundError("Post not found")
		}
		s.logger.Error("failed to delete post", zap.String("post_id", postID), zap.Error(err))
		return models.NewInternalError(err)
	}
	s.logger.Info("post deleted", zap.String("post_id", postID), zap.Uint("user_id", actingUserID))
	return nil
}

func (s *PostService) loadPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func formatUserID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
