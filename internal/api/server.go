// Package api is the transport boundary: an echo HTTP server exposing
// the synchronous debate endpoint, stored-session lookups, audit
// status, and a websocket streaming endpoint.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/nexusdebate/internal/audit"
	"github.com/nexusdebate/internal/debate"
	"github.com/nexusdebate/internal/session"
)

// Server represents the API server
type Server struct {
	echo     *echo.Echo
	port     int
	engine   *debate.Engine
	recorder *audit.Recorder
	store    *session.Store
}

// NewServer creates a new API server
func NewServer(port int, rateLimit float64, engine *debate.Engine, recorder *audit.Recorder, store *session.Store) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Err(v.Error).
				Msg("Request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	server := &Server{
		echo:     e,
		port:     port,
		engine:   engine,
		recorder: recorder,
		store:    store,
	}

	// Setup routes
	server.setupRoutes(rateLimit)

	return server
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes(rateLimit float64) {
	// Health check endpoint
	s.echo.GET("/health", s.health)

	// Debate-starting requests are rate limited; reads are not.
	limiter := middleware.RateLimiter(
		middleware.NewRateLimiterMemoryStore(rate.Limit(rateLimit)),
	)

	// API v1 group
	v1 := s.echo.Group("/api/v1")
	v1.POST("/debates", s.runDebate, limiter)
	v1.GET("/debates/:id", s.getDebate)
	v1.GET("/debates/:id/audit", s.getAudit)

	// Real-time streaming
	s.echo.GET("/ws/debate", s.streamDebate, limiter)
}

// Start begins the API server
func (s *Server) Start() error {
	// Start server in a goroutine
	go func() {
		if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	log.Info().Int("port", s.port).Msg("API server started")

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.store.Close()
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"agents":   []string{"Paranoid Lawyer", "Greedy Finance", "Mediator"},
		"features": []string{"multi-round", "rebuttals", "streaming", "audit"},
	})
}
