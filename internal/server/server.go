package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/caloria/backend/config"
	"github.com/pageza/caloria/backend/internal/api"
	"github.com/pageza/caloria/backend/internal/logger"
	"github.com/pageza/caloria/backend/internal/middleware"
	"github.com/pageza/caloria/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	router *gin.Engine
	http   *http.Server
}

// New creates a new server instance with all routes registered
func New(cfg *config.Config, analysisService service.IFoodAnalysisService) *Server {
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.Timeout(cfg.RequestTimeout),
	)

	api.RegisterRoutes(router, analysisService)

	return &Server{
		config: cfg,
		router: router,
		http: &http.Server{
			Addr:              cfg.ServerAddress(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until the server is shut down
func (s *Server) Start() error {
	logger.WithField("addr", s.http.Addr).Info("Starting HTTP server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
