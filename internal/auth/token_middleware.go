// Package auth gates API requests behind a static shared bearer token.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/joestump/bookmarks/internal/logger"
)

// BearerTokenMiddleware authenticates API requests against a single
// process-configured secret.
type BearerTokenMiddleware struct {
	hash [sha256.Size]byte
	log  logger.Logger
}

// NewBearerTokenMiddleware creates a middleware accepting exactly token.
func NewBearerTokenMiddleware(token string, log logger.Logger) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{hash: sha256.Sum256([]byte(token)), log: log}
}

// Authenticate rejects requests lacking "Authorization: Bearer <token>" with
// 401 {"error": "Unauthorized request"} before next is invoked.
func (m *BearerTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.reject(w, r)
			return
		}
		plaintext := strings.TrimPrefix(authHeader, "Bearer ")
		if plaintext == "" || !m.valid(plaintext) {
			m.reject(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// valid compares digests so the comparison time does not depend on the
// length of the presented token.
func (m *BearerTokenMiddleware) valid(token string) bool {
	sum := sha256.Sum256([]byte(token))
	return subtle.ConstantTimeCompare(sum[:], m.hash[:]) == 1
}

func (m *BearerTokenMiddleware) reject(w http.ResponseWriter, r *http.Request) {
	m.log.Warn("unauthorized request",
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
	)
	writeUnauthorized(w)
}

// writeUnauthorized writes a 401 JSON response with {"error": "Unauthorized request"}.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized request"})
}
