package server

import (
	"net/http"
	"sync"

	"brokersearch/internal/config"
	"brokersearch/server/handlers"
	"brokersearch/server/services"
)

// Server HTTP API поиска брокеров
type Server struct {
	config        *config.Config
	searchService *services.SearchService
	searchHandler *handlers.SearchHandler

	httpServer     *http.Server
	handlerOnce    sync.Once
	httpHandler    http.Handler
	handlerInitErr error
}

// NewServer создает сервер поверх готового сервиса поиска
func NewServer(cfg *config.Config, searchService *services.SearchService) *Server {
	if cfg == nil {
		cfg = config.GetDefaults()
	}
	return &Server{
		config:        cfg,
		searchService: searchService,
		searchHandler: handlers.NewSearchHandler(searchService),
	}
}
