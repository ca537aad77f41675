package services

import (
	"context"
	"errors"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/anonto42/estate-hub/backend/internal/repositories"
	"go.uber.org/zap"
)

// ProfilePosts is a user's own listings together with their saved ones.
type ProfilePosts struct {
	UserPosts  []models.Post              `json:"userPosts"`
	SavedPosts []models.SavedPostWithPost `json:"savedPosts"`
}

type UserService struct {
	userRepo   repositories.UserRepository
	postRepo   repositories.PostRepository
	savedPosts *SavedPostService
	images     *ImageService
	logger     *zap.Logger
}

func NewUserService(userRepo repositories.UserRepository, postRepo repositories.PostRepository, savedPosts *SavedPostService, images *ImageService, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:   userRepo,
		postRepo:   postRepo,
		savedPosts: savedPosts,
		images:     images,
		logger:     logger,
	}
}

// ListUsers returns every active account.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.GetActiveUsers(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// GetUser returns an active account. Deactivated accounts read as missing.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, models.NewNotFoundError("No user found with that ID")
		}
		return nil, models.NewInternalError(err)
	}
	if !user.Active {
		return nil, models.NewNotFoundError("No user found with that ID")
	}
	return user, nil
}

// UpdateMe changes the acting user's profile fields. Passwords are refused
// here; empty fields are left as they are.
func (s *UserService) UpdateMe(ctx context.Context, userID uint, req models.UpdateMeRequest, avatar *ImageUpload) (*models.User, error) {
	if req.Password != "" {
		return nil, models.NewValidationError("This route is not for password updates. Please use /updateMyPassword.")
	}

	fields := map[string]interface{}{}
	if req.Username != "" {
		fields["username"] = req.Username
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.FirstName != "" {
		fields["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		fields["last_name"] = req.LastName
	}
	if avatar != nil {
		name, err := s.images.ProcessAvatar(ctx, userID, *avatar)
		if err != nil {
			return nil, err
		}
		fields["avatar"] = name
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, fields)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmailTaken):
			return nil, models.NewValidationError("Email is already in use")
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, models.NewNotFoundError("No user found with that ID")
		}
		s.logger.Error("failed to update profile", zap.Uint("user_id", userID), zap.Error(err))
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// DeleteMe deactivates the acting user's account.
func (s *UserService) DeleteMe(ctx context.Context, userID uint) error {
	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return models.NewNotFoundError("No user found with that ID")
		}
		return models.NewInternalError(err)
	}
	s.logger.Info("account deactivated", zap.Uint("user_id", userID))
	return nil
}

// GetProfilePosts returns the listings userID owns and the ones they saved.
func (s *UserService) GetProfilePosts(ctx context.Context, userID uint) (*ProfilePosts, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	posts, err := s.postRepo.GetPostsByAuthor(ctx, formatUserID(userID))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	saved, err := s.savedPosts.GetSavedPosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfilePosts{UserPosts: posts, SavedPosts: saved}, nil
}
