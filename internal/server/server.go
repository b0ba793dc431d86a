// Package server exposes a cache instance over a small JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/polycache/polycache/internal/config"
	"github.com/polycache/polycache/pkg/cache"
)

// Backend is the cache surface the server needs. *persist.Cached[string,
// string] satisfies it; so does any plain cache.Cache[string, string] wrapped
// with an eviction counter.
type Backend interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
	Len() int
	Cap() int
	Keys() []string
	Evictions() uint64
}

// Server serves cache operations over HTTP.
type Server struct {
	cache    Backend
	policy   cache.Policy
	pageSize int
	logger   zerolog.Logger

	shutdownTimeout time.Duration
	httpServer      *http.Server

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New builds a server around the given backend.
func New(cfg config.ServerConfig, policy cache.Policy, backend Backend, logger zerolog.Logger) *Server {
	s := &Server{
		cache:           backend,
		policy:          policy,
		pageSize:        cfg.PageSize,
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().
			Str("addr", s.httpServer.Addr).
			Str("policy", s.policy.String()).
			Int("capacity", s.cache.Cap()).
			Msg("http server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Info().Msg("shutting down http server")
		return s.httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging wraps a handler with zerolog request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
