// Package server exposes the view controller's transitions over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /api/view
//	POST   /api/view/tab           {"tab": "inbox"|"processed"}
//	POST   /api/view/layout        {"layout": "card"|"list"}
//	POST   /api/view/query         {"query": "acme"}
//	DELETE /api/view/query
//	POST   /api/view/search/toggle
//	POST   /api/sync
//
// Every mutating route answers with the resulting view.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"invoicedesk/internal/logger"
	"invoicedesk/internal/view"
)

const shutdownTimeout = 5 * time.Second

// Server serves the invoice view over HTTP.
type Server struct {
	ctrl   *view.Controller
	engine *gin.Engine
	log    zerolog.Logger
}

// New builds the router for ctrl.
func New(ctrl *view.Controller) *Server {
	s := &Server{
		ctrl:   ctrl,
		engine: gin.New(),
		log:    logger.WithComponent("server"),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.health)

	api := s.engine.Group("/api")
	api.GET("/view", s.getView)
	api.POST("/view/tab", s.selectTab)
	api.POST("/view/layout", s.selectLayout)
	api.POST("/view/query", s.setQuery)
	api.DELETE("/view/query", s.clearQuery)
	api.POST("/view/search/toggle", s.toggleSearch)
	api.POST("/sync", s.sync)
}

// Run listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	const op = "Run"

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%s: listen failed: %w", op, err)
	case <-ctx.Done():
		s.log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	}
}
