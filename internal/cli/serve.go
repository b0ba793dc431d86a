package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/polycache/polycache/internal/config"
	"github.com/polycache/polycache/internal/logging"
	"github.com/polycache/polycache/internal/persist"
	"github.com/polycache/polycache/internal/server"
	"github.com/polycache/polycache/pkg/cache"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the cache over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Init(configFile); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			cfg := config.Get()

			logger := logging.NewFromValues(cfg.Logging.Level, cfg.Logging.Format)
			logger.Info().
				Str("version", buildInfo.Version).
				Str("policy", cfg.Cache.Policy).
				Int("capacity", cfg.Cache.Capacity).
				Msg("starting polycache")

			policy, err := cache.ParsePolicy(cfg.Cache.Policy)
			if err != nil {
				return err
			}

			store, err := persist.OpenSQLite(cfg.Database.Path, cfg.Database.QueryTimeout)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					logger.Warn().Err(closeErr).Msg("failed to close store")
				}
			}()

			cached, err := persist.NewCached[string, string](policy, cfg.Cache.Capacity, store, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx = logging.WithContext(ctx, logger)

			if err := cached.Load(ctx); err != nil {
				return fmt.Errorf("failed to load persisted entries: %w", err)
			}
			logger.Info().Int("entries", cached.Len()).Str("db", cfg.Database.Path).Msg("persisted entries loaded")

			// Policy and capacity are fixed for the lifetime of the cache;
			// a config edit takes effect on the next start.
			manager := config.GetManager()
			manager.OnConfigChange(func(next *config.Config) {
				if next.Cache != cfg.Cache {
					logger.Warn().Msg("cache policy/capacity changed on disk; restart to apply")
				}
			})
			if err := manager.Watch(); err != nil {
				logger.Warn().Err(err).Msg("config watch unavailable")
			}

			srv := server.New(cfg.Server, policy, cached, logger)
			if err := srv.Run(ctx); err != nil {
				return err
			}

			// Drain async writes before the store closes.
			if err := cached.Flush(); err != nil {
				return err
			}
			logger.Info().Msg("shutdown complete")
			return nil
		},
	}
}
