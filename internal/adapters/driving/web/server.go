// Package web serves the browser front end: a search form, sample query
// buttons, a status badge and a single result/empty/error region.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/services"
	"github.com/custodia-labs/seekr/internal/logger"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server is the web adapter.
type Server struct {
	ports  *Ports
	page   *template.Template
	router chi.Router

	mu      sync.RWMutex
	limit   int
	samples []string
	health  domain.HealthIndicator
}

// NewServer creates a web server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	page, err := parsePage()
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	s := &Server{
		ports:  ports,
		page:   page,
		limit:  domain.DefaultAppSettings().Search.DefaultLimit,
		health: domain.UnknownIndicator(),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(recoverer(logger.L()))
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLog(logger.L()))
	r.Use(s.ports.Metrics.Middleware())

	r.Get("/", s.handleIndex)
	r.Post("/", s.handleSearch)
	r.Get("/search-ui", s.handleIndex)
	r.Get("/healthz", s.handleHealthz)
	if s.ports.Metrics != nil {
		r.Handle("/metrics", s.ports.Metrics.Handler())
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Reload re-reads the default limit and sample queries from settings.
func (s *Server) Reload() error {
	if s.ports.Settings == nil {
		return nil
	}
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return fmt.Errorf("reload settings: %w", err)
	}

	s.mu.Lock()
	s.limit = settings.Search.DefaultLimit
	s.samples = settings.Search.SampleQueries
	s.mu.Unlock()

	logger.Debug("Web settings reloaded: limit=%d samples=%d", settings.Search.DefaultLimit, len(settings.Search.SampleQueries))
	return nil
}

// CheckStatus probes the backend once and stores the badge shown on every page.
func (s *Server) CheckStatus(ctx context.Context) domain.HealthIndicator {
	ind := s.ports.Health.CheckStatus(ctx)
	s.mu.Lock()
	s.health = ind
	s.mu.Unlock()
	return ind
}

// Run checks status once, then serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.CheckStatus(ctx)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.L().Info("Server stopped gracefully")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, "", 0, domain.IdleViewState())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	query := r.PostFormValue("query")
	limit, err := strconv.Atoi(r.PostFormValue("limit"))
	if err != nil || limit <= 0 {
		limit = s.defaultLimit()
	}

	// One controller per request: page loads are independent sessions.
	ctrl := s.ports.NewController(services.NewHTMLRenderer())
	state, err := ctrl.HandleSearch(r.Context(), query, limit)
	if err != nil {
		logger.L().Debug("search failed",
			zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
			zap.Error(err),
		)
	}
	s.respond(w, query, limit, state)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	ind := s.health
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"backend": ind.Label,
	})
}

func (s *Server) respond(w http.ResponseWriter, query string, limit int, state domain.ViewState) {
	s.mu.RLock()
	data := pageData{
		Query:        query,
		Limit:        limit,
		LimitOptions: domain.LimitOptions,
		Samples:      s.samples,
		Health:       newBadge(s.health),
		State:        state,
	}
	if data.Limit == 0 {
		data.Limit = s.limit
	}
	s.mu.RUnlock()

	var buf bytes.Buffer
	if err := renderPage(&buf, s.page, data); err != nil {
		logger.L().Error("render page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) defaultLimit() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.limit
}
