package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvProduction hides internal error detail from API responses.
const EnvProduction = "production"

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	API struct {
		Token string
	}
	Log struct {
		Level  string
		Pretty bool
	}
	CORS struct {
		AllowedOrigins []string
	}
	RateLimit struct {
		RPS   float64
		Burst int
	}
	Env             string
	ShutdownTimeout time.Duration
}

// Production reports whether the service runs with Env set to "production".
func (c *Config) Production() bool {
	return c.Env == EnvProduction
}

// Load reads config from environment (BOOKMARKS_ prefix) and optional bookmarks.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKMARKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("bookmarks")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8000")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("cors.allowed_origins", "*")
	v.SetDefault("ratelimit.rps", 0)
	v.SetDefault("ratelimit.burst", 10)
	v.SetDefault("shutdown.timeout", "10s")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.API.Token = v.GetString("api.token")
	cfg.Env = v.GetString("env")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Pretty = v.GetBool("log.pretty")
	cfg.CORS.AllowedOrigins = splitList(v.GetString("cors.allowed_origins"))
	cfg.RateLimit.RPS = v.GetFloat64("ratelimit.rps")
	cfg.RateLimit.Burst = v.GetInt("ratelimit.burst")

	timeout, err := time.ParseDuration(v.GetString("shutdown.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKS_SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.ShutdownTimeout = timeout

	switch cfg.DB.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return nil, fmt.Errorf("BOOKMARKS_DB_DRIVER %q is not supported (sqlite3, mysql, postgres)", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("BOOKMARKS_DB_DSN is required")
	}
	if cfg.API.Token == "" {
		return nil, fmt.Errorf("BOOKMARKS_API_TOKEN is required")
	}
	if cfg.RateLimit.RPS < 0 {
		return nil, fmt.Errorf("BOOKMARKS_RATELIMIT_RPS must not be negative")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
