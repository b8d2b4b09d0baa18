// Package server exposes the evaluation engine over HTTP for
// dashboards and batch callers.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/engine"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/logging"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/snapshot"
)

// Config carries the HTTP server settings. Zero values pick defaults.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return c
}

// Server owns the HTTP lifecycle around one evaluation engine.
type Server struct {
	cfg    Config
	router *gin.Engine
	http   *http.Server
	eval   *engine.Engine
	// store is optional; history endpoints answer 503 without it.
	store *snapshot.Store
	log   *charmlog.Logger
}

// New wires the router. A nil store disables persistence endpoints.
func New(cfg Config, eval *engine.Engine, store *snapshot.Store) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		cfg:    cfg.withDefaults(),
		router: gin.New(),
		eval:   eval,
		store:  store,
		log:    logging.WithPrefix("http"),
	}
	s.routes()
	return s
}

// Handler returns the router, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening without blocking.
func (s *Server) Start(ctx context.Context) error {
	s.http = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("server stopped", "error", err)
		}
	}()
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("shut down cleanly")
	return nil
}
