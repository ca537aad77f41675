package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anonto42/estate-hub/backend/internal/models"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandler renders every error returned by handlers and middleware as
// {"status": "fail"|"error", "message": ...}. Underlying causes are included
// only when exposeDetails is set.
func ErrorHandler(logger *zap.Logger, exposeDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Something went wrong"
		var cause error

		var appErr *models.AppError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.Status
			message = appErr.Message
			cause = appErr.Err
		case errors.As(err, &httpErr):
			status = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
			cause = httpErr.Internal
		default:
			cause = err
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request error",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", status),
				zap.Error(err),
			)
		}

		body := echo.Map{"status": statusLabel(status), "message": message}
		if exposeDetails && cause != nil {
			body["error"] = cause.Error()
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}

func statusLabel(status int) string {
	if status >= http.StatusInternalServerError {
		return "error"
	}
	return "fail"
}

// NotFound answers any route that nothing else matched.
func NotFound(c echo.Context) error {
	return models.NewNotFoundError(fmt.Sprintf("Can't find %s on this server!", c.Request().RequestURI))
}
