// Package httpapi serves the service panels over HTTP: discovery, execution,
// a cookie-backed selection and usage statistics.
package httpapi

import (
	"net/http"
	"time"

	"ai-forms/internal/adapter/render"
	"ai-forms/internal/application/port/input"
	"ai-forms/internal/application/port/output"
	"ai-forms/internal/infrastructure/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

type Config struct {
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	MaxUploadBytes int64
	// AccessLog enables httplog request logging.
	AccessLog bool
}

func DefaultConfig() Config {
	return Config{
		RequestTimeout: 90 * time.Second,
		RateLimitRPS:   2,
		RateLimitBurst: 5,
		MaxUploadBytes: 10 << 20,
		AccessLog:      true,
	}
}

type Server struct {
	cfg      Config
	registry output.ServiceRegistry
	executor input.ServiceExecutor
	html     *render.HTMLRenderer
	metrics  *metrics.Metrics
	sessions *SessionStore
	logger   output.LoggerPort
	router   chi.Router
}

func NewServer(
	cfg Config,
	registry output.ServiceRegistry,
	executor input.ServiceExecutor,
	html *render.HTMLRenderer,
	m *metrics.Metrics,
	logger output.LoggerPort,
) *Server {
	s := &Server{
		cfg:      cfg,
		registry: registry,
		executor: executor,
		html:     html,
		metrics:  m,
		sessions: NewSessionStore(),
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.cfg.AccessLog {
		r.Use(httplog.RequestLogger(httplog.NewLogger("ai-forms", httplog.Options{
			JSON:    true,
			Concise: true,
		})))
	}
	r.Use(middleware.Recoverer)
	r.Use(s.recordMetrics)

	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Get("/services", s.listServices)
		r.Get("/services/{id}", s.getService)
		r.Get("/stats", s.stats)
		r.Get("/session/selection", s.getSelection)
		r.Put("/session/selection", s.putSelection)

		r.Group(func(r chi.Router) {
			r.Use(rateLimit(s.cfg.RateLimitRPS, s.cfg.RateLimitBurst))
			r.Post("/services/{id}/execute", s.execute)
			r.Post("/session/execute", s.executeSelection)
		})
	})

	return r
}
