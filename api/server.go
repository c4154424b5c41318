// Package api - Thin HTTP layer over the fee engine.
// The API is ONLY responsible for: input binding, engine orchestration, output serialization.
// The API NEVER performs fee logic.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"barodeal/core/fee"
	"barodeal/internal/logging"
)

// Config holds the server settings
type Config struct {
	Version string

	// RateLimit is the sustained requests per second; zero disables throttling
	RateLimit float64
	Burst     int
}

// Server is the API server
type Server struct {
	engine  *fee.Engine
	router  *gin.Engine
	version string
	logger  *zap.Logger
}

// NewServer creates a new API server
func NewServer(engine *fee.Engine, cfg Config) *Server {
	return NewServerWithLogger(engine, cfg, logging.Named("api"))
}

// NewServerWithLogger creates a new API server logging to logger
func NewServerWithLogger(engine *fee.Engine, cfg Config, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(requestID(), recovery(logger), accessLog(logger))
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		router.Use(throttle(rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)))
	}

	s := &Server{
		engine:  engine,
		router:  router,
		version: cfg.Version,
		logger:  logger,
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	v1 := s.router.Group("/v1")
	{
		v1.POST("/calculate", s.handleCalculate)
		v1.GET("/schedules", s.handleSchedules)
	}

	// Supporting endpoints
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/version", s.handleVersion)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
