// Package server hosts the static cat gallery over local HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/yazelin/catime/pkg/errors"
	"github.com/yazelin/catime/pkg/logging"
)

// Server serves the gallery directory on the loopback interface.
type Server struct {
	dir    string
	port   int
	logger *zerolog.Logger
}

// New creates a gallery server for a docs directory.
func New(dir string, port int) *Server {
	return &Server{dir: dir, port: port, logger: logging.Default()}
}

// WithLogger sets the logger and returns the server.
func (s *Server) WithLogger(logger *zerolog.Logger) *Server {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// URL returns the address the gallery is served on.
func (s *Server) URL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", s.port)
}

// Serve blocks serving the gallery until the context is cancelled, then
// shuts the server down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if _, err := os.Stat(s.dir); err != nil {
		return &errors.NotFoundError{Resource: "gallery directory", ID: s.dir}
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:      http.FileServer(http.Dir(s.dir)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", httpServer.Addr).Str("dir", s.dir).Msg("Gallery server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down gallery server")

		// The parent context is already cancelled, start a fresh one.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	}
}
