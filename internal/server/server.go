package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/uniportal/internal/bootstrap"
	"github.com/yigit/uniportal/internal/config"
	"github.com/yigit/uniportal/internal/pkg/helpers"
)

// closer releases one resource acquired during startup
type closer struct {
	name string
	fn   func() error
}

// Server owns the HTTP listener and everything the handlers depend on
type Server struct {
	config  *config.Config
	router  *gin.Engine
	logger  zerolog.Logger
	http    *http.Server
	closers []closer
}

// NewServer loads the configuration and wires the application.
// Resources opened before a failing step are released before returning.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}
	s := &Server{config: cfg, logger: lgr}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}
	if dbPool != nil {
		s.closers = append(s.closers, closer{"database pool", func() error { dbPool.Close(); return nil }})
	}

	state, err := bootstrap.SetupState(cfg, dbPool, lgr)
	if err != nil {
		s.release()
		return nil, fmt.Errorf("failed to setup state store: %w", err)
	}
	s.closers = append(s.closers, closer{"state store", state.Close})

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, state, lgr)
	if err != nil {
		s.release()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	s.router = bootstrap.SetupRouter(cfg, deps, lgr)
	return s, nil
}

// Run serves until the listener fails or SIGINT/SIGTERM arrives, then shuts down
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  helpers.ParseDuration(s.config.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: helpers.ParseDuration(s.config.Server.WriteTimeout, 30*time.Second),
		IdleTimeout:  2 * time.Minute,
	}

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		listenErr <- s.http.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			s.release()
			return fmt.Errorf("error starting server: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received")
	}

	return s.Shutdown(context.Background())
}

// Shutdown drains in-flight requests, then closes resources in reverse order of acquisition
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := helpers.ParseDuration(s.config.Server.ShutdownTimeout, 10*time.Second)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var errs []error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			errs = append(errs, err)
		}
	}
	if err := s.release(); err != nil {
		errs = append(errs, err)
	}

	s.logger.Info().Msg("Server stopped")
	return errors.Join(errs...)
}

func (s *Server) release() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		c := s.closers[i]
		if err := c.fn(); err != nil {
			s.logger.Error().Err(err).Str("resource", c.name).Msg("Close failed")
			errs = append(errs, fmt.Errorf("close %s: %w", c.name, err))
			continue
		}
		s.logger.Info().Str("resource", c.name).Msg("Closed")
	}
	s.closers = nil
	return errors.Join(errs...)
}
