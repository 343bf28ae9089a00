package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/xavierca1/leadpilot/internal/infra/events"
	"github.com/xavierca1/leadpilot/internal/infra/http/middleware"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

type RouterConfig struct {
	Dashboard   *usecase.Dashboard
	Hub         *events.Hub
	Health      *HealthHandler
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool
	Logger     *zap.Logger
}

// NewServer builds the HTTP server for the router. Shutdown closes the event
// hub first so open /events streams do not hold the server open.
func NewServer(addr string, cfg RouterConfig) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if cfg.Hub != nil {
		srv.RegisterOnShutdown(cfg.Hub.Close)
	}
	return srv
}

// NewRouter mounts every endpoint. Routes that call the AI gateway sit
// behind the rate limiter when one is given.
func NewRouter(cfg RouterConfig) http.Handler {
	dashboard := NewDashboardHandler(cfg.Dashboard, cfg.Logger)
	leads := NewLeadHandler(cfg.Dashboard, cfg.Logger)
	contents := NewContentHandler(cfg.Dashboard, cfg.Logger)
	templates := NewTemplateHandler(cfg.Dashboard, cfg.Logger)
	stream := NewEventsHandler(cfg.Hub)

	limited := func(h http.HandlerFunc) http.Handler {
		if cfg.RateLimiter == nil {
			return h
		}
		return cfg.RateLimiter.Handler(h)
	}

	r := chi.NewRouter()
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/events", stream.Stream)

	r.Get("/state", dashboard.State)
	r.Put("/view", dashboard.Navigate)
	r.Get("/product", dashboard.GetProduct)
	r.Put("/product", dashboard.PutProduct)
	r.Get("/dashboard", dashboard.Summary)

	r.Method(http.MethodPost, "/scans", limited(leads.Scan))

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", leads.List)
		r.Method(http.MethodPost, "/{id}/qualify", limited(leads.Qualify))
		r.Delete("/{id}", leads.Discard)
	})

	r.Route("/contents", func(r chi.Router) {
		r.Get("/", contents.List)
		r.Get("/{id}", contents.Get)
		r.Patch("/{id}", contents.Update)
		r.Post("/{id}/select", contents.Select)
		r.Method(http.MethodPost, "/{id}/image", limited(contents.GenerateImage))
		r.Post("/{id}/link", contents.InsertLink)
		r.Get("/{id}/export", contents.Export)
		r.Post("/{id}/send", contents.Send)
	})

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", templates.Search)
		r.Post("/", templates.Save)
		r.Post("/{id}/use", templates.Use)
		r.Delete("/{id}", templates.Delete)
	})

	return r
}
