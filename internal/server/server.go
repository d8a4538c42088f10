// Package server exposes drift correction over HTTP.
//
// Routes:
//
//	POST /api/v1/correct  correct one spectrum pair (JSON in, JSON out)
//	GET  /api/v1/health   liveness and cache statistics
//
// Finished corrections are kept in an LRU cache keyed by drift.Key, so a
// repeated request is answered without recomputation.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cwbudde/algo-gamma/drift"
	"github.com/cwbudde/algo-gamma/internal/cache"
	"github.com/cwbudde/algo-gamma/internal/logging"
)

// Config configures the server.
type Config struct {
	Addr         string
	CacheSize    int
	// CacheTTL expires cached results; 0 keeps them until evicted.
	CacheTTL     time.Duration
	MaxBodyBytes int64
	Version      string
}

// DefaultConfig listens on :8080 with a 128-entry cache and 8 MiB bodies.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		CacheSize:    128,
		MaxBodyBytes: 8 << 20,
		Version:      "dev",
	}
}

// Server serves the correction API. It is safe for concurrent use.
type Server struct {
	cfg     Config
	results *cache.LRU[string, *drift.Result]
	started time.Time
	mux     *http.ServeMux
}

// New builds a server. Zero fields of cfg take their defaults.
func New(cfg Config) *Server {
	def := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = def.CacheSize
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if cfg.Version == "" {
		cfg.Version = def.Version
	}

	cc := cache.DefaultConfig()
	cc.MaxSize = cfg.CacheSize
	cc.TTL = cfg.CacheTTL

	s := &Server{
		cfg:     cfg,
		results: cache.New[string, *drift.Result](cc),
		started: time.Now(),
		mux:     http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/v1/correct", s.handleCorrect)
	s.mux.HandleFunc("/api/v1/health", s.handleHealth)

	return s
}

// Handler returns the routed handler wrapped in request-ID and access-log
// middleware.
func (s *Server) Handler() http.Handler {
	return logging.Middleware(s.mux)
}

// CacheStats reports the result cache statistics.
func (s *Server) CacheStats() cache.Stats {
	return s.results.Stats()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}

	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.ServerStartup(ln.Addr().String(), s.cfg.CacheSize, "cache_ttl", s.cfg.CacheTTL, "version", s.cfg.Version)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	logging.Info("server stopped")

	return nil
}
