// Package server exposes the CSV codec and graph store over HTTP.
//
// The API is versioned under /v1. Conversion endpoints translate between
// the JSON interchange format and CSV tables without persisting anything;
// the /v1/graphs endpoints store graphs by server-assigned UUID.
package server

import (
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cygraph/pkg/cache"
	"github.com/matzehuels/cygraph/pkg/observability"
	"github.com/matzehuels/cygraph/pkg/store"
)

// Config configures a Server.
type Config struct {
	// Store persists graphs for the /v1/graphs endpoints. Required.
	Store store.Store

	// Cache memoizes conversion results keyed by input hash.
	// Defaults to [cache.NullCache] when nil.
	Cache cache.Cache

	// CacheTTL bounds the lifetime of cached conversions. Zero means no expiry.
	CacheTTL time.Duration

	// Logger receives request logs. Defaults to the standard charm logger.
	Logger *charmlog.Logger
}

// Server handles the HTTP API.
type Server struct {
	store    store.Store
	cache    cache.Cache
	cacheTTL time.Duration
	log      *charmlog.Logger
}

// New creates a Server from cfg.
func New(cfg Config) *Server {
	c := cfg.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = charmlog.Default()
	}
	return &Server{
		store:    cfg.Store,
		cache:    c,
		cacheTTL: cfg.CacheTTL,
		log:      logger,
	}
}

// Router builds the HTTP handler with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/encode", s.handleEncode)
		r.Post("/decode", s.handleDecode)

		r.Route("/graphs", func(r chi.Router) {
			r.Post("/", s.handleCreateGraph)
			r.Get("/", s.handleListGraphs)
			r.Get("/{id}", s.handleGetGraph)
			r.Delete("/{id}", s.handleDeleteGraph)
			r.Get("/{id}/csv", s.handleGraphCSV)
		})
	})

	return r
}

// logRequests logs each request on completion and fires the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed,
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
