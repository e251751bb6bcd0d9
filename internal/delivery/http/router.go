package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"landingwaitlist/internal/delivery/http/controllers"
	"landingwaitlist/internal/delivery/http/middleware"
	"landingwaitlist/internal/domain"
	"landingwaitlist/internal/metrics"
)

// RouterConfig carries everything NewRouter wires into the mux.
type RouterConfig struct {
	Logger         *slog.Logger
	Waitlist       *controllers.WaitlistController
	Page           *controllers.PageController
	Admin          *controllers.AdminController // nil disables the admin routes
	Health         *controllers.HealthController
	TokenVerifier  domain.TokenVerifier
	Limiter        *middleware.KeyedLimiter
	TrustProxy     bool
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes and wraps it
// in the logging and CORS middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	limit := middleware.RateLimit(cfg.Limiter, cfg.TrustProxy, cfg.Metrics, cfg.Logger)

	// Public signup
	mux.HandleFunc("POST /waitlist", limit(cfg.Waitlist.Join))
	mux.HandleFunc("GET /waitlist/count", cfg.Waitlist.Count)
	mux.HandleFunc("GET /{$}", cfg.Page.Landing)
	mux.HandleFunc("POST /join", limit(cfg.Page.Join))

	// Admin
	if cfg.Admin != nil && cfg.TokenVerifier != nil {
		admin := middleware.RequireAdmin(cfg.TokenVerifier, cfg.Logger)
		mux.HandleFunc("POST /admin/login", limit(cfg.Admin.Login))
		mux.HandleFunc("GET /admin/waitlist", admin(cfg.Admin.ListWaitlist))
		mux.HandleFunc("DELETE /admin/waitlist/{email}", admin(cfg.Admin.RemoveFromWaitlist))
	}

	// Operations
	mux.HandleFunc("GET /healthz", cfg.Health.Health)
	if cfg.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.LoggingMiddleware(cfg.Logger, middleware.CORS(cfg.AllowedOrigins, mux))
}
