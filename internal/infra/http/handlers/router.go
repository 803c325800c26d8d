package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/leadpilot/internal/infra/http/middleware"
)

type RouterConfig struct {
	Health    *HealthHandler
	Leads     *LeadHandler
	Import    *ImportHandler
	Discovery *DiscoveryHandler
	Audits    *AuditHandler
	Outreach  *OutreachHandler

	// Limiter guards the write endpoints; nil disables rate limiting
	Limiter        *middleware.RateLimiter
	AllowedOrigins []string
	RequestTimeout time.Duration
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy     bool
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}

	limited := func(h http.HandlerFunc) http.Handler {
		if cfg.Limiter == nil {
			return h
		}
		return cfg.Limiter.Limit(h)
	}

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", cfg.Leads.List)
		r.Method(http.MethodPost, "/", limited(cfg.Leads.Create))
		r.Method(http.MethodPost, "/import", limited(cfg.Import.Handle))
		r.Method(http.MethodPost, "/discover", limited(cfg.Discovery.Handle))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", cfg.Leads.Get)
			r.Delete("/", cfg.Leads.Delete)

			r.Get("/audit", cfg.Audits.Latest)
			r.Method(http.MethodPost, "/audit", limited(cfg.Audits.Run))
			r.Method(http.MethodPost, "/audit/async", limited(cfg.Audits.Enqueue))

			r.Method(http.MethodPost, "/outreach", limited(cfg.Outreach.Handle))
		})
	})

	return r
}
