package middleware

import (
	"errors"
	"net/http"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/anonto42/estate-hub/backend/internal/repositories"
	"github.com/anonto42/estate-hub/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FirebaseAuthMiddleware verifies Firebase ID tokens and resolves them to the
// linked local account. The result is stored the same way JWTAuthMiddleware
// stores it, so handlers need not know which provider is active.
func FirebaseAuthMiddleware(verifier firebase.TokenVerifier, users repositories.UserRepository, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, err := bearerToken(c)
			if err != nil {
				return err
			}

			ctx := c.Request().Context()
			token, err := verifier.VerifyIDToken(ctx, idToken)
			if err != nil {
				logger.Debug("firebase token rejected", zap.Error(err))
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			user, err := users.GetUserByFirebaseUID(ctx, token.UID)
			if err != nil {
				if errors.Is(err, repositories.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "No account is linked to this Firebase user")
				}
				return models.NewInternalError(err)
			}
			if !user.Active {
				return echo.NewHTTPError(http.StatusUnauthorized, "The user belonging to this token no longer exists.")
			}

			c.Set(UserContextKey, &models.JwtCustomClaims{
				UserID: user.ID,
				Email:  user.Email,
				Role:   user.Role,
			})
			c.Set("firebaseUID", token.UID)

			return next(c)
		}
	}
}
