package services

import (
	"context"
	"errors"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/anonto42/estate-hub/backend/internal/repositories"
	"go.uber.org/zap"
)

// ToggleResult is the outcome of a save toggle. SavedPost is set only when
// Saved is true.
type ToggleResult struct {
	Saved     bool
	SavedPost *models.SavedPost
}

type SavedPostService struct {
	savedRepo repositories.SavedPostRepository
	postRepo  repositories.PostRepository
	logger    *zap.Logger
}

func NewSavedPostService(savedRepo repositories.SavedPostRepository, postRepo repositories.PostRepository, logger *zap.Logger) *SavedPostService {
	return &SavedPostService{savedRepo: savedRepo, postRepo: postRepo, logger: logger}
}

// Toggle saves postID for actingUserID, or unsaves it if already saved.
func (s *SavedPostService) Toggle(ctx context.Context, actingUserID uint, postID string) (*ToggleResult, error) {
	post, err := s.postRepo.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, models.NewNotFoundError("Post not found")
		}
		return nil, models.NewInternalError(err)
	}
	if post.AuthorID == formatUserID(actingUserID) {
		return nil, models.NewForbiddenError("You cannot save your own post")
	}

	// Rows are keyed by the stored id so that any hex casing hits the same row.
	postID = post.ID.Hex()
	saved, record, err := s.savedRepo.Toggle(ctx, actingUserID, postID)
	if err != nil {
		s.logger.Error("failed to toggle saved post", zap.Uint("user_id", actingUserID), zap.String("post_id", postID), zap.Error(err))
		return nil, models.NewInternalError(err)
	}
	s.logger.Info("saved post toggled", zap.Uint("user_id", actingUserID), zap.String("post_id", postID), zap.Bool("saved", saved))
	return &ToggleResult{Saved: saved, SavedPost: record}, nil
}

// GetSavedPosts lists userID's saved posts, newest first, with each post
// populated. Rows whose post was deleted come back with a nil Post.
func (s *SavedPostService) GetSavedPosts(ctx context.Context, userID uint) ([]models.SavedPostWithPost, error) {
	rows, err := s.savedRepo.GetSavedPostsByUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.PostID)
	}
	posts, err := s.postRepo.GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	byID := make(map[string]*models.Post, len(posts))
	for i := range posts {
		byID[posts[i].ID.Hex()] = &posts[i]
	}

	result := make([]models.SavedPostWithPost, 0, len(rows))
	for _, r := range rows {
		result = append(result, models.SavedPostWithPost{SavedPost: r, Post: byID[r.PostID]})
	}
	return result, nil
}
