package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/joestump/bookmarks/docs/swagger"
	"github.com/joestump/bookmarks/internal/api"
	"github.com/joestump/bookmarks/internal/auth"
	"github.com/joestump/bookmarks/internal/bookmarks"
	"github.com/joestump/bookmarks/internal/logger"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Service        *bookmarks.Service
	Logger         logger.Logger
	APIToken       string
	AllowedOrigins []string
	RateLimit      api.RateLimitConfig
	Production     bool
	StartTime      time.Time
}

// NewRouter assembles the full chi router. Only /healthz and the API docs
// are public. Metrics, /api and unmatched paths require the bearer token, so
// an anonymous caller gets 401 for every other path.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	bearer := auth.NewBearerTokenMiddleware(deps.APIToken, deps.Logger)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(deps.Logger))
	r.Use(middleware.Recoverer)
	// CORS preflight is answered here, before the token gate on /api.
	r.Use(cors.New(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Location"},
	}).Handler)

	r.Get("/healthz", healthz(deps.StartTime))
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))
	r.With(bearer.Authenticate).Handle("/metrics", promhttp.Handler())
	r.NotFound(bearer.Authenticate(http.NotFoundHandler()).ServeHTTP)

	r.Mount("/api", api.NewAPIRouter(api.Deps{
		BearerAuth: bearer,
		Service:    deps.Service,
		Logger:     deps.Logger,
		RateLimit:  deps.RateLimit,
		Production: deps.Production,
	}))

	return r
}
