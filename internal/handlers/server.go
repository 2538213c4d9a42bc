package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/crypto/acme/autocert"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// TLSDomains switches the server to HTTPS on :443 with ACME certificates
	// cached in TLSCacheDir. Port then only serves the ACME HTTP challenge.
	TLSDomains  []string
	TLSCacheDir string
}

// Server wraps http.Server with optional automatic TLS and graceful shutdown.
type Server struct {
	server    *http.Server
	challenge *http.Server
	manager   *autocert.Manager
	logger    *slog.Logger
	config    ServerConfig
}

func NewServer(handler http.Handler, config ServerConfig, logger *slog.Logger) *Server {
	if config.ReadTimeout == 0 {
		config.ReadTimeout = 15 * time.Second
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = 30 * time.Second
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		server: &http.Server{
			Addr:         ":" + config.Port,
			Handler:      handler,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
		},
		logger: logger,
		config: config,
	}

	if len(config.TLSDomains) > 0 {
		s.manager = &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(config.TLSDomains...),
			Cache:      autocert.DirCache(config.TLSCacheDir),
		}
		s.server.Addr = ":443"
		s.server.TLSConfig = s.manager.TLSConfig()
		s.challenge = &http.Server{
			Addr:        ":" + config.Port,
			Handler:     s.manager.HTTPHandler(nil),
			ReadTimeout: config.ReadTimeout,
		}
	}
	return s
}

// Start listens until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	if s.manager == nil {
		s.logger.Info("starting HTTP server", slog.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	go func() {
		s.logger.Info("starting ACME challenge server", slog.String("addr", s.challenge.Addr))
		if err := s.challenge.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("challenge server error", slog.Any("error", err))
		}
	}()
	s.logger.Info("starting HTTPS server", slog.String("addr", s.server.Addr), slog.Any("domains", s.config.TLSDomains))
	if err := s.server.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.challenge != nil {
		if err := s.challenge.Shutdown(ctx); err != nil {
			s.logger.Warn("challenge server shutdown", slog.Any("error", err))
		}
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Addr returns the main listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}
