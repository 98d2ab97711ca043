package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brokersearch/server/middleware"
)

// HandleHealth GET /health
func HandleHealth(c *gin.Context) {
	SendJSONResponse(c, http.StatusOK, gin.H{"status": "ok"})
}

// HandleErrorMetrics GET /api/errors/metrics
func HandleErrorMetrics(c *gin.Context) {
	SendJSONResponse(c, http.StatusOK, middleware.GetErrorStats().Snapshot())
}

// HandleResetErrorMetrics POST /api/errors/reset
func HandleResetErrorMetrics(c *gin.Context) {
	middleware.GetErrorStats().Reset()
	SendJSONResponse(c, http.StatusOK, gin.H{"status": "ok"})
}
