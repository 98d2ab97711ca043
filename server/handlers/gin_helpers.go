package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "brokersearch/server/errors"
	"brokersearch/server/middleware"
)

// SendJSONResponse отправляет JSON ответ через Gin context
func SendJSONResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// SendError отправляет ошибку через общий обработчик middleware
func SendError(c *gin.Context, err error) {
	middleware.HandleGinError(c, err)
}

// requiredQuery возвращает непустой параметр запроса или ошибку валидации
func requiredQuery(c *gin.Context, name string) (string, error) {
	value := strings.TrimSpace(c.Query(name))
	if value == "" {
		return "", apperrors.NewValidationError("не указан параметр "+name, nil)
	}
	return value, nil
}

// intQuery разбирает целый параметр; пустое значение заменяется на def
func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError("параметр "+name+" должен быть целым числом", err)
	}
	return value, nil
}
