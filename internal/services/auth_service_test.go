package services

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/anonto42/estate-hub/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeVerifier struct {
	token *auth.Token
	err   error
}

func (f fakeVerifier) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return f.token, f.err
}

func TestAuthService_Signup_HashesPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users, nil, zap.NewNop())
	ctx := context.Background()
	users.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Signup(ctx, models.CreateLocalUserRequest{
		Email: "a@example.com", Username: "ann", FirstName: "Ann", LastName: "Lee", Password: "correct horse",
	})

	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("correct horse")))
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewAuthService(users, nil, zap.NewNop())
	ctx := context.Background()
	users.On("CreateUser", ctx, mock.Anything).Return(repositories.ErrEmailTaken)

	_, err := svc.Signup(ctx, models.CreateLocalUserRequest{Email: "a@example.com", Password: "correct horse"})

	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
}

func TestAuthService_Signin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByEmail", ctx, "a@example.com").Return(&models.User{ID: 1, Password: string(hash), Active: true}, nil)

		user, err := NewAuthService(users, nil, zap.NewNop()).Signin(ctx, models.SignInRequest{Email: "a@example.com", Password: "secret-pass"})

		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByEmail", ctx, "a@example.com").Return(&models.User{ID: 1, Password: string(hash), Active: true}, nil)

		_, err := NewAuthService(users, nil, zap.NewNop()).Signin(ctx, models.SignInRequest{Email: "a@example.com", Password: "nope"})

		assert.Equal(t, models.CodeUnauthorized, models.ErrorCode(err))
	})

	t.Run("deactivated account", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByEmail", ctx, "a@example.com").Return(&models.User{ID: 1, Password: string(hash), Active: false}, nil)

		_, err := NewAuthService(users, nil, zap.NewNop()).Signin(ctx, models.SignInRequest{Email: "a@example.com", Password: "secret-pass"})

		assert.Equal(t, models.CodeUnauthorized, models.ErrorCode(err))
	})
}

func TestAuthService_FirebaseLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		_, err := NewAuthService(new(MockUserRepository), nil, zap.NewNop()).FirebaseLogin(ctx, "tok")
		assert.Equal(t, models.CodeUnauthorized, models.ErrorCode(err))
	})

	t.Run("invalid token", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), fakeVerifier{err: errors.New("expired")}, zap.NewNop())
		_, err := svc.FirebaseLogin(ctx, "tok")
		assert.Equal(t, models.CodeUnauthorized, models.ErrorCode(err))
	})

	t.Run("links existing email", func(t *testing.T) {
		users := new(MockUserRepository)
		token := &auth.Token{UID: "fb-1", Claims: map[string]interface{}{"email": "a@example.com"}}
		users.On("GetUserByFirebaseUID", ctx, "fb-1").Return(nil, repositories.ErrUserNotFound)
		users.On("GetUserByEmail", ctx, "a@example.com").Return(&models.User{ID: 3, Active: true}, nil)
		users.On("LinkFirebaseUID", ctx, uint(3), "fb-1").Return(nil)

		user, err := NewAuthService(users, fakeVerifier{token: token}, zap.NewNop()).FirebaseLogin(ctx, "tok")

		require.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)
		users.AssertExpectations(t)
	})

	t.Run("creates new account", func(t *testing.T) {
		users := new(MockUserRepository)
		token := &auth.Token{UID: "fb-2", Claims: map[string]interface{}{"email": "new@example.com", "name": "Nia Rahman"}}
		users.On("GetUserByFirebaseUID", ctx, "fb-2").Return(nil, repositories.ErrUserNotFound)
		users.On("GetUserByEmail", ctx, "new@example.com").Return(nil, repositories.ErrUserNotFound)
		users.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.FirebaseUID != nil && *u.FirebaseUID == "fb-2" && u.Username == "new" && u.FirstName == "Nia" && u.LastName == "Rahman"
		})).Return(nil)

		_, err := NewAuthService(users, fakeVerifier{token: token}, zap.NewNop()).FirebaseLogin(ctx, "tok")

		require.NoError(t, err)
		users.AssertExpectations(t)
	})
}
