// Package admin implements the responder's debug/admin HTTP surface: a
// read-only view over PDR repository contents, BIOS attribute counts,
// live endpoint state, and Prometheus metrics. It never mutates domain
// state; every handler takes a short RWMutex-guarded snapshot read
// through the packages it wraps.
package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/danmuck/pldmd/internal/bios"
	"github.com/danmuck/pldmd/internal/endpoint"
	"github.com/danmuck/pldmd/internal/observability"
	"github.com/danmuck/pldmd/internal/pdr"
)

// Server is the admin/debug HTTP surface. It runs on its own goroutine,
// entirely separate from the single-threaded domain core.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
}

// New builds a Server bound to addr, with corsOrigins allowed for
// browser-based dashboards. repo, biosReg, and endpoints back the
// read-only inspection routes.
func New(addr string, corsOrigins []string, repo *pdr.Repository, biosReg *bios.Registry, endpoints *endpoint.Manager, logger zerolog.Logger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(observability.RequestLogger(logger))
	engine.Use(observability.RequestMetricsMiddleware())
	engine.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	s := &Server{engine: engine}
	s.registerRoutes(repo, biosReg, endpoints)
	s.httpServer = &http.Server{Addr: addr, Handler: engine}
	return s
}

// Handler exposes the underlying http.Handler for tests that want to
// drive routes with httptest without binding a real listener.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		return err
	}
}
