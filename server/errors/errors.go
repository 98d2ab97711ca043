package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"brokersearch/database"
	"brokersearch/importer"
)

// AppError ошибка приложения с HTTP статусом и сообщением для пользователя
type AppError struct {
	Code    int    `json:"status_code"`
	Message string `json:"message"`
	Err     error  `json:"-"` // только для логов
	Context string `json:"-"`
}

// Error реализует интерфейс error
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap возвращает вложенную ошибку для errors.Is и errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode HTTP статус ошибки
func (e *AppError) StatusCode() int {
	return e.Code
}

// UserMessage сообщение для пользователя
func (e *AppError) UserMessage() string {
	return e.Message
}

// GetContext контекст ошибки
func (e *AppError) GetContext() string {
	return e.Context
}

// WithContext добавляет контекст к ошибке
func (e *AppError) WithContext(context string) *AppError {
	e.Context = context
	return e
}

// NewValidationError создает ошибку 400 Bad Request
func NewValidationError(message string, err error) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: err}
}

// NewNotFoundError создает ошибку 404 Not Found
func NewNotFoundError(message string, err error) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: err}
}

// NewUnprocessableError создает ошибку 422: данные есть, но их нельзя обработать
func NewUnprocessableError(message string, err error) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: message, Err: err}
}

// NewTooManyRequestsError создает ошибку 429
func NewTooManyRequestsError(message string) *AppError {
	return &AppError{Code: http.StatusTooManyRequests, Message: message}
}

// NewInternalError создает ошибку 500. Пользователь видит общее сообщение,
// детали остаются в логах.
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: "Внутренняя ошибка сервера",
		Err:     errors.Join(errors.New(message), err),
	}
}

// NewServiceUnavailableError создает ошибку 503
func NewServiceUnavailableError(message string, err error) *AppError {
	return &AppError{Code: http.StatusServiceUnavailable, Message: message, Err: err}
}

// WrapError оборачивает ошибку с контекстом.
// AppError сохраняет свой статус, остальные становятся InternalError.
func WrapError(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Err:     appErr.Err,
			Context: appErr.Context,
		}
	}

	return NewInternalError(message, err)
}

// FromLoadError переводит ошибку загрузки данных в AppError.
// Сообщения об отсутствующем файле и колонке показываются пользователю как есть.
func FromLoadError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var missing *importer.MissingColumnError
	var badDate *importer.DateParseError
	switch {
	case errors.Is(err, importer.ErrFileNotFound):
		return NewServiceUnavailableError(importer.ErrFileNotFound.Error(), err)
	case errors.Is(err, database.ErrNoImports):
		return NewServiceUnavailableError("База показов пуста, выполните импорт", err)
	case errors.As(err, &missing):
		return NewUnprocessableError(missing.Error(), err)
	case errors.As(err, &badDate):
		return NewUnprocessableError(badDate.Error(), err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return NewServiceUnavailableError("запрос отменен", err)
	}

	return NewInternalError("не удалось загрузить данные показов", err)
}
