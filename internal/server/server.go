// Package server assembles the gin router and runs it with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fileshelf/internal/domain/auth"
	"fileshelf/internal/domain/upload"
	"fileshelf/internal/middleware"
)

type Deps struct {
	Files       *upload.Handler
	Auth        *auth.Handler
	Logger      *log.Logger
	CORSOrigins []string
	// MaxUploadBytes bounds multipart memory; larger parts spill to temp files.
	MaxUploadBytes int64
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	if d.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = d.MaxUploadBytes
	}

	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(d.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	upload.RegisterRoutes(r, d.Files)
	d.Auth.RegisterRoutes(r)

	return r
}

// Server is the HTTP listener around the router.
type Server struct {
	httpServer      *http.Server
	logger          *log.Logger
	shutdownTimeout time.Duration
}

func New(addr string, handler http.Handler, logger *log.Logger, shutdownTimeout time.Duration) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:          logger,
		shutdownTimeout: shutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server started", "addr", s.httpServer.Addr)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown requested")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
