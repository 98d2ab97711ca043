package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "brokersearch/server/errors"
	"brokersearch/server/formatting"
	"brokersearch/server/services"
)

// DefaultResolveDays период простого поиска по умолчанию
const DefaultResolveDays = 14

// SearchHandler обработчики поиска брокеров
type SearchHandler struct {
	service *services.SearchService
}

// NewSearchHandler создает обработчик поиска
func NewSearchHandler(service *services.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// RepliesResponse ответ в виде готовых текстов сообщений
type RepliesResponse struct {
	Messages []string `json:"messages"`
}

// AreasResponse список известных районов
type AreasResponse struct {
	Areas []string `json:"areas"`
	Total int      `json:"total"`
}

// HandleSearchBrokers GET /api/brokers/search?q=
func (h *SearchHandler) HandleSearchBrokers(c *gin.Context) {
	query, err := requiredQuery(c, "q")
	if err != nil {
		SendError(c, err)
		return
	}

	result, err := h.service.SearchBrokers(c.Request.Context(), query)
	if err != nil {
		SendError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, result)
}

// HandleSearchDistrict GET /api/districts/search?q=
func (h *SearchHandler) HandleSearchDistrict(c *gin.Context) {
	query, err := requiredQuery(c, "q")
	if err != nil {
		SendError(c, err)
		return
	}

	result, err := h.service.SearchByDistrict(c.Request.Context(), query)
	if err != nil {
		SendError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, result)
}

// HandleListAreas GET /api/districts
func (h *SearchHandler) HandleListAreas(c *gin.Context) {
	areas, err := h.service.ListAreas(c.Request.Context())
	if err != nil {
		SendError(c, err)
		return
	}
	if areas == nil {
		areas = []string{}
	}
	SendJSONResponse(c, http.StatusOK, AreasResponse{Areas: areas, Total: len(areas)})
}

// HandleResolveObject GET /api/objects/resolve?object=&days=&match=&exclude_status=
func (h *SearchHandler) HandleResolveObject(c *gin.Context) {
	object, err := requiredQuery(c, "object")
	if err != nil {
		SendError(c, err)
		return
	}
	days, err := intQuery(c, "days", DefaultResolveDays)
	if err != nil {
		SendError(c, err)
		return
	}
	mode, err := services.ParseMatchMode(c.Query("match"))
	if err != nil {
		SendError(c, apperrors.NewValidationError(err.Error(), err))
		return
	}

	result, err := h.service.ResolveObject(c.Request.Context(), services.ResolveObjectRequest{
		Object:        object,
		Days:          days,
		Mode:          mode,
		ExcludeStatus: c.Query("exclude_status"),
	})
	if err != nil {
		SendError(c, err)
		return
	}
	if result.Brokers == nil {
		result.Brokers = []string{}
	}
	SendJSONResponse(c, http.StatusOK, result)
}

// HandleQuery GET /api/query?text=&format=json|text
// Формат text возвращает тексты сообщений так, как их отправляет бот.
func (h *SearchHandler) HandleQuery(c *gin.Context) {
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "json")))
	if format != "json" && format != "text" {
		SendError(c, apperrors.NewValidationError("format должен быть json или text", nil))
		return
	}

	text, err := requiredQuery(c, "text")
	if err != nil {
		SendError(c, err)
		return
	}

	result, err := h.service.Route(c.Request.Context(), text)
	if err != nil {
		SendError(c, err)
		return
	}

	if format == "text" {
		SendJSONResponse(c, http.StatusOK, RepliesResponse{Messages: formatting.RoutedReplies(result)})
		return
	}
	SendJSONResponse(c, http.StatusOK, result)
}
