package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"usersvc/internal/logger"
	"usersvc/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler renders errors as {"error": "..."} with the status of their
// kind. Storage failures are logged and reported without detail.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message := statusFor(err)
		if code >= http.StatusInternalServerError {
			logger.FromEcho(c, log).Error("request failed", zap.Error(err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, ErrorResponse{Error: message})
		}
		if writeErr != nil {
			logger.FromEcho(c, log).Error("write error response", zap.Error(writeErr))
		}
	}
}

func statusFor(err error) (int, string) {
	var (
		validationErr *services.ValidationError
		storeErr      *services.StoreError
		httpErr       *echo.HTTPError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.Is(err, services.ErrInvalidManager):
		return http.StatusBadRequest, "Invalid or inactive manager."
	case errors.Is(err, services.ErrMissingIdentifier):
		return http.StatusBadRequest, "Provide user_id or mob_num."
	case errors.As(err, &storeErr):
		return http.StatusInternalServerError, "Database error."
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
