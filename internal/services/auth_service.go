package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/anonto42/estate-hub/backend/internal/repositories"
	"github.com/anonto42/estate-hub/backend/pkg/firebase"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// AuthService resolves credentials to local accounts. Token issuing is left
// to the HTTP layer.
type AuthService struct {
	userRepo repositories.UserRepository
	verifier firebase.TokenVerifier
	logger   *zap.Logger
}

// NewAuthService creates an AuthService. verifier may be nil when Firebase is
// not configured; FirebaseLogin then always fails.
func NewAuthService(userRepo repositories.UserRepository, verifier firebase.TokenVerifier, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, verifier: verifier, logger: logger}
}

// Signup registers a local account with a bcrypt-hashed password.
func (s *AuthService) Signup(ctx context.Context, req models.CreateLocalUserRequest) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	user := &models.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, models.NewValidationError("Email is already in use")
		}
		return nil, models.NewInternalError(err)
	}
	s.logger.Info("user registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// Signin checks an email and password pair against an active account.
func (s *AuthService) Signin(ctx context.Context, req models.SignInRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, models.NewUnauthorizedError("Incorrect email or password")
		}
		return nil, models.NewInternalError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Incorrect email or password")
	}
	if !user.Active {
		return nil, models.NewUnauthorizedError("This account has been deactivated")
	}
	return user, nil
}

// FirebaseLogin verifies a Firebase ID token and returns the matching local
// account. An account with the same email is linked; otherwise one is created.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (*models.User, error) {
	if s.verifier == nil {
		return nil, models.NewUnauthorizedError("Firebase login is not enabled")
	}
	token, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid Firebase ID token")
	}

	user, err := s.userRepo.GetUserByFirebaseUID(ctx, token.UID)
	if err == nil {
		return activeOnly(user)
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, models.NewInternalError(err)
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return nil, models.NewUnauthorizedError("Firebase account has no email")
	}

	user, err = s.userRepo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.userRepo.LinkFirebaseUID(ctx, user.ID, token.UID); err != nil {
			return nil, models.NewInternalError(err)
		}
		s.logger.Info("firebase account linked", zap.Uint("user_id", user.ID))
		return activeOnly(user)
	case !errors.Is(err, repositories.ErrUserNotFound):
		return nil, models.NewInternalError(err)
	}

	name, _ := token.Claims["name"].(string)
	first, last := splitName(name)
	// Federated accounts never sign in with a password; store an unguessable one.
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	uid := token.UID
	user = &models.User{
		Email:       email,
		Username:    strings.SplitN(email, "@", 2)[0],
		FirstName:   first,
		LastName:    last,
		Password:    string(hashed),
		FirebaseUID: &uid,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, models.NewInternalError(err)
	}
	s.logger.Info("user registered via firebase", zap.Uint("user_id", user.ID))
	return user, nil
}

func activeOnly(user *models.User) (*models.User, error) {
	if !user.Active {
		return nil, models.NewUnauthorizedError("This account has been deactivated")
	}
	return user, nil
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
