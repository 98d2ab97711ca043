package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "brokersearch/server/errors"
)

var (
	errorStatsOnce sync.Once
	errorStats     *apperrors.ErrorStats
)

// GetErrorStats общие счетчики ошибок API
func GetErrorStats() *apperrors.ErrorStats {
	errorStatsOnce.Do(func() {
		errorStats = apperrors.NewErrorStats(50)
	})
	return errorStats
}

// HTTPError ошибка с HTTP статусом и сообщением для пользователя
type HTTPError interface {
	error
	StatusCode() int
	UserMessage() string
	GetContext() string
	Unwrap() error
}

// ErrorResponse тело ответа об ошибке
type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id,omitempty"`
}

func newErrorResponse(message, requestID string) ErrorResponse {
	return ErrorResponse{
		Error:     message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: requestID,
	}
}

// HandleGinError логирует ошибку, учитывает ее в счетчиках и отвечает JSON.
// Ошибки без HTTP статуса отдаются как 500 с общим сообщением.
func HandleGinError(c *gin.Context, err error) {
	reqID := GetRequestIDFromGin(c)
	endpoint := c.FullPath()
	if endpoint == "" {
		endpoint = c.Request.URL.Path
	}

	var appErr *apperrors.AppError
	var httpErr HTTPError
	if !errors.As(err, &appErr) {
		if errors.As(err, &httpErr) {
			appErr = &apperrors.AppError{Code: httpErr.StatusCode(), Message: httpErr.UserMessage(), Err: httpErr.Unwrap()}
		} else {
			appErr = apperrors.NewInternalError("необработанная ошибка", err)
		}
	}

	GetErrorStats().Record(appErr, endpoint, reqID)
	_ = c.Error(err)

	logAttrs := []any{
		"error", appErr.Unwrap(),
		"user_message", appErr.UserMessage(),
		"context", appErr.GetContext(),
		"status_code", appErr.StatusCode(),
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		slog.Error("HTTP error", logAttrs...)
	} else {
		slog.Warn("HTTP error", logAttrs...)
	}

	c.AbortWithStatusJSON(appErr.StatusCode(), newErrorResponse(appErr.UserMessage(), reqID))
}
