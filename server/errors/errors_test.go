package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"brokersearch/database"
	"brokersearch/importer"
)

func TestFromLoadError(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"файл не найден", importer.ErrFileNotFound, http.StatusServiceUnavailable, "Файл данных не найден"},
		{"нет колонки", &importer.MissingColumnError{Column: "Дата"}, http.StatusUnprocessableEntity, "Отсутствует колонка: Дата"},
		{"плохая дата", fmt.Errorf("load: %w", &importer.DateParseError{Row: 5, Value: "x"}), http.StatusUnprocessableEntity, `Некорректная дата в строке 5: "x"`},
		{"пустая база", database.ErrNoImports, http.StatusServiceUnavailable, "База показов пуста, выполните импорт"},
		{"отмена", context.Canceled, http.StatusServiceUnavailable, "запрос отменен"},
		{"прочее", errors.New("disk failure"), http.StatusInternalServerError, "Внутренняя ошибка сервера"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromLoadError(tc.err)
			assert.Equal(t, tc.code, appErr.StatusCode())
			assert.Equal(t, tc.message, appErr.UserMessage())
		})
	}

	assert.Nil(t, FromLoadError(nil))
}

func TestFromLoadError_KeepsAppError(t *testing.T) {
	original := NewValidationError("пустой запрос", nil)
	assert.Same(t, original, FromLoadError(original))
}

func TestInternalErrorHidesDetails(t *testing.T) {
	cause := errors.New("sqlite: disk I/O error")
	err := NewInternalError("не удалось загрузить данные", cause)

	assert.Equal(t, "Внутренняя ошибка сервера", err.UserMessage())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk I/O error")
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "контекст"))

	wrapped := WrapError(NewNotFoundError("район не найден", nil), "поиск")
	assert.Equal(t, http.StatusNotFound, wrapped.Code)
	assert.Equal(t, "поиск: район не найден", wrapped.Message)

	wrapped = WrapError(errors.New("boom"), "поиск")
	assert.Equal(t, http.StatusInternalServerError, wrapped.Code)
}

func TestErrorStats(t *testing.T) {
	stats := NewErrorStats(2)

	stats.Record(NewValidationError("a", nil), "/api/brokers/search", "r1")
	stats.Record(NewUnprocessableError("b", nil), "/api/brokers/search", "r2")
	stats.Record(NewServiceUnavailableError("c", nil), "/api/districts/search", "r3")
	stats.Record(nil, "/ignored", "r4")

	snap := stats.Snapshot()
	assert.Equal(t, int64(3), snap.TotalErrors)
	assert.Equal(t, int64(1), snap.ErrorsByKind["DataError"])
	assert.Equal(t, int64(2), snap.ErrorsByEndpoint["/api/brokers/search"])
	assert.Len(t, snap.LastErrors, 2)
	assert.Equal(t, "r3", snap.LastErrors[0].RequestID)
	assert.Equal(t, "r2", snap.LastErrors[1].RequestID)

	stats.Reset()
	assert.Equal(t, int64(0), stats.Snapshot().TotalErrors)
}
