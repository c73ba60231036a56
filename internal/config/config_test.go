package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOOKMARKS_DB_DSN", "file:bookmarks.db")
	t.Setenv("BOOKMARKS_API_TOKEN", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8000" {
		t.Errorf("http.addr = %q, want %q", cfg.HTTP.Addr, ":8000")
	}
	if cfg.DB.Driver != "sqlite3" {
		t.Errorf("db.driver = %q, want %q", cfg.DB.Driver, "sqlite3")
	}
	if cfg.Production() {
		t.Error("expected non-production default env")
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("shutdown timeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("cors origins = %v, want [*]", cfg.CORS.AllowedOrigins)
	}
	if cfg.RateLimit.RPS != 0 {
		t.Errorf("ratelimit.rps = %v, want 0", cfg.RateLimit.RPS)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("BOOKMARKS_HTTP_ADDR", ":9999")
	t.Setenv("BOOKMARKS_DB_DRIVER", "postgres")
	t.Setenv("BOOKMARKS_ENV", "production")
	t.Setenv("BOOKMARKS_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("BOOKMARKS_RATELIMIT_RPS", "5")
	t.Setenv("BOOKMARKS_RATELIMIT_BURST", "20")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":9999" {
		t.Errorf("http.addr = %q, want %q", cfg.HTTP.Addr, ":9999")
	}
	if cfg.DB.Driver != "postgres" {
		t.Errorf("db.driver = %q, want %q", cfg.DB.Driver, "postgres")
	}
	if !cfg.Production() {
		t.Error("expected production env")
	}
	if got := strings.Join(cfg.CORS.AllowedOrigins, "|"); got != "https://a.example|https://b.example" {
		t.Errorf("cors origins = %q", got)
	}
	if cfg.RateLimit.RPS != 5 || cfg.RateLimit.Burst != 20 {
		t.Errorf("ratelimit = %v/%d, want 5/20", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing dsn",
			env:     map[string]string{"BOOKMARKS_API_TOKEN": "secret"},
			wantErr: "BOOKMARKS_DB_DSN",
		},
		{
			name:    "missing token",
			env:     map[string]string{"BOOKMARKS_DB_DSN": "file:x.db"},
			wantErr: "BOOKMARKS_API_TOKEN",
		},
		{
			name: "unknown driver",
			env: map[string]string{
				"BOOKMARKS_DB_DSN":    "file:x.db",
				"BOOKMARKS_API_TOKEN": "secret",
				"BOOKMARKS_DB_DRIVER": "oracle",
			},
			wantErr: "BOOKMARKS_DB_DRIVER",
		},
		{
			name: "bad shutdown timeout",
			env: map[string]string{
				"BOOKMARKS_DB_DSN":           "file:x.db",
				"BOOKMARKS_API_TOKEN":        "secret",
				"BOOKMARKS_SHUTDOWN_TIMEOUT": "soon",
			},
			wantErr: "BOOKMARKS_SHUTDOWN_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOOKMARKS_DB_DSN", "")
			t.Setenv("BOOKMARKS_API_TOKEN", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatalf("Load() = nil error, want error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
