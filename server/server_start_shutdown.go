package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"brokersearch/server/handlers"
	"brokersearch/server/middleware"
)

// Start запускает HTTP сервер и блокируется до его остановки
func (s *Server) Start() error {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%s", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Сервер запускается на порту %s", s.config.Port)
	log.Printf("API доступно по адресу: http://localhost%s", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("не удалось запустить HTTP сервер на %s: %w", addr, err)
	}

	return nil
}

// Shutdown корректно останавливает сервер
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	log.Println("Initiating graceful shutdown...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}

	log.Println("Graceful shutdown completed")
	return nil
}

// ServeHTTP реализует http.Handler для тестов и вспомогательных утилит
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		http.Error(w, "server is not initialized", http.StatusInternalServerError)
		return
	}
	handler.ServeHTTP(w, r)
}

func (s *Server) ensureHTTPHandler() (http.Handler, error) {
	s.handlerOnce.Do(func() {
		if s.searchService == nil {
			s.handlerInitErr = fmt.Errorf("search service is nil")
			return
		}
		s.httpHandler = s.buildHTTPHandler()
	})

	if s.handlerInitErr != nil {
		return nil, s.handlerInitErr
	}
	return s.httpHandler, nil
}

func (s *Server) buildHTTPHandler() http.Handler {
	// Режим можно переопределить через GIN_MODE
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())

	s.registerGinHandlers(router)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{
			Error:     "Маршрут не найден",
			Timestamp: time.Now().Format(time.RFC3339),
			RequestID: middleware.GetRequestIDFromGin(c),
		})
	})

	return router
}

func (s *Server) registerGinHandlers(router *gin.Engine) {
	router.GET("/health", handlers.HandleHealth)

	api := router.Group("/api")
	api.Use(middleware.GinRateLimitMiddleware(middleware.NewLimiter(s.config.RateLimitPerSec, s.config.RateLimitBurst)))
	{
		api.GET("/brokers/search", s.searchHandler.HandleSearchBrokers)
		api.GET("/districts", s.searchHandler.HandleListAreas)
		api.GET("/districts/search", s.searchHandler.HandleSearchDistrict)
		api.GET("/objects/resolve", s.searchHandler.HandleResolveObject)
		api.GET("/query", s.searchHandler.HandleQuery)

		errorsAPI := api.Group("/errors")
		{
			errorsAPI.GET("/metrics", handlers.HandleErrorMetrics)
			errorsAPI.POST("/reset", handlers.HandleResetErrorMetrics)
		}
	}
}
