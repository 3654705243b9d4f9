// Package server serves the tier list form over HTTP.
//
// Visitors fill in a name and up to five coffees per category. Submitting the
// form applies the completeness gate and, on success, shows a two-column
// preview with a link to download the composite PNG. Form state lives in a
// session keyed by a cookie, so the download re-renders exactly what was
// previewed.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/coffeetier/pkg/buildinfo"
	"github.com/matzehuels/coffeetier/pkg/config"
	"github.com/matzehuels/coffeetier/pkg/pipeline"
	"github.com/matzehuels/coffeetier/pkg/session"
)

// CookieName is the session cookie.
const CookieName = "coffeetier_session"

const (
	maxBodyBytes    = 64 << 10
	cleanupInterval = 10 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// Server is the web front end.
type Server struct {
	cfg    config.Config
	store  session.Store
	runner *pipeline.Runner
	logger *log.Logger
	pages  *pages
}

// New builds a server. The store is owned by the caller.
func New(cfg config.Config, store session.Store, runner *pipeline.Runner, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(logger, cfg.RenderOptions()...)
	}
	p, err := newPages(cfg.Page)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:    cfg,
		store:  store,
		runner: runner,
		logger: logger,
		pages:  p,
	}, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.SetHeader("Server", buildinfo.UserAgent()))
	r.Use(observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxBodyBytes))

	r.Get("/", s.handleIndex)
	r.Post("/generate", s.handleGenerate)
	r.Get("/download", s.handleDownload)
	r.Get("/tables/{category}.png", s.handleTable)
	r.Post("/reset", s.handleReset)
	r.Get("/healthz", s.handleHealth)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.ReadTimeout.Duration,
		WriteTimeout: s.cfg.Server.WriteTimeout.Duration,
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go s.cleanupLoop(cleanupCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr, "sessions", s.cfg.Session.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "err", err)
			}
		}
	}
}
