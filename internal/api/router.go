package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/joestump/bookmarks/internal/auth"
	"github.com/joestump/bookmarks/internal/bookmarks"
	"github.com/joestump/bookmarks/internal/logger"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	BearerAuth *auth.BearerTokenMiddleware
	Service    *bookmarks.Service
	Logger     logger.Logger
	RateLimit  RateLimitConfig
	// Production hides internal error text from 500 responses.
	Production bool
}

// NewAPIRouter creates the chi sub-router mounted at /api.
// Every route requires the bearer token and returns application/json.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(jsonContentType)
	// The token gate runs first so unauthenticated requests never reach
	// the limiter or the service.
	r.Use(deps.BearerAuth.Authenticate)
	r.Use(rateLimit(deps.RateLimit, deps.Logger))

	registerBookmarkRoutes(r, deps.Service, deps.Logger, deps.Production)

	return r
}
