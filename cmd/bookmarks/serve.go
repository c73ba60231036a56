package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/bookmarks/internal/api"
	"github.com/joestump/bookmarks/internal/bookmarks"
	"github.com/joestump/bookmarks/internal/config"
	"github.com/joestump/bookmarks/internal/db"
	"github.com/joestump/bookmarks/internal/logger"
	"github.com/joestump/bookmarks/internal/server"
	"github.com/joestump/bookmarks/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver, log); err != nil {
				return err
			}

			svc := bookmarks.NewService(store.NewBookmarkStore(database), log)

			router := server.NewRouter(server.Deps{
				Service:        svc,
				Logger:         log,
				APIToken:       cfg.API.Token,
				AllowedOrigins: cfg.CORS.AllowedOrigins,
				RateLimit: api.RateLimitConfig{
					RPS:   cfg.RateLimit.RPS,
					Burst: cfg.RateLimit.Burst,
				},
				Production: cfg.Production(),
				StartTime:  time.Now(),
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("starting bookmarks",
				logger.String("env", cfg.Env),
				logger.String("driver", cfg.DB.Driver),
			)
			return server.New(cfg.HTTP.Addr, router, log).Run(ctx, cfg.ShutdownTimeout)
		},
	}
}
