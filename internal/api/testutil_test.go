package api_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/bookmarks/internal/api"
	"github.com/joestump/bookmarks/internal/auth"
	"github.com/joestump/bookmarks/internal/bookmarks"
	"github.com/joestump/bookmarks/internal/logger"
	"github.com/joestump/bookmarks/internal/store"
	"github.com/joestump/bookmarks/internal/testutil"
)

const testToken = "test-api-token"

// testEnv holds the router and database needed for API integration tests.
type testEnv struct {
	Router http.Handler
	DB     *sqlx.DB
	Store  *store.BookmarkStore
}

type envOption func(*api.Deps)

func production() envOption { return func(d *api.Deps) { d.Production = true } }

func rateLimited(rps float64, burst int) envOption {
	return func(d *api.Deps) { d.RateLimit = api.RateLimitConfig{RPS: rps, Burst: burst} }
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with the real store and service.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	log := logger.NewNop()

	bs := store.NewBookmarkStore(db)
	deps := api.Deps{
		BearerAuth: auth.NewBearerTokenMiddleware(testToken, log),
		Service:    bookmarks.NewService(bs, log),
		Logger:     log,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	return &testEnv{
		Router: api.NewAPIRouter(deps),
		DB:     db,
		Store:  bs,
	}
}

// do sends an authenticated request to the router.
func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	authRequest(req, testToken)
	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}

// authRequest adds a Bearer token to the request.
func authRequest(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}
