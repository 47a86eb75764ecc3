package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pfrederiksen/rlol/internal/config"
	"github.com/pfrederiksen/rlol/internal/logger"
	"github.com/pfrederiksen/rlol/internal/site"
	"github.com/pfrederiksen/rlol/internal/source"
)

// Server serves the site from live sheet data.
type Server struct {
	cfg     *config.Config
	fetcher *source.Fetcher
	log     *logger.Logger
	now     func() time.Time
	router  *chi.Mux
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for requests and lifecycle events.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithClock sets the clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a Server.
func New(cfg *config.Config, fetcher *source.Fetcher, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		fetcher: fetcher,
		log:     logger.Default(),
		now:     time.Now,
		router:  chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.StripSlashes)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleHub)
	s.router.Get("/teams", s.handleTeams)
	s.router.Get("/schedule", s.handleSchedule)
	s.router.Get("/standings", s.handleStandings)
	s.router.Get("/stats", s.handleStats)
	s.router.Get("/"+site.CalendarFile, s.handleCalendar)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/metrics", s.handleMetrics)
		r.Get("/{view}", s.handleAPI)
	})
}

// requestLogger logs each request with its chi request id.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := logger.Fields{
			"request_id":  middleware.GetReqID(r.Context()),
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      status,
			"bytes":       ww.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          r.RemoteAddr,
		}
		if status >= http.StatusInternalServerError {
			s.log.Warn("Request failed", fields)
		} else {
			s.log.Info("Request", fields)
		}
	})
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout.Duration,
		WriteTimeout: s.cfg.Server.WriteTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server starting", logger.Fields{"addr": srv.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("Shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout.Duration)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("Server stopped", nil)
	return nil
}

func chiRequestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
