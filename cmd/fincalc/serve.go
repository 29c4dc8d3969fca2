package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/fincalc/internal/cache"
	"github.com/iwvelando/fincalc/internal/server"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var serverConfigPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := server.LoadConfig(serverConfigPath)
			if err != nil {
				return err
			}

			logger, err := initializeLogger(mergeLogging(a.conf.Logging, cfg.Logging), a.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store := chartCache(ctx, cfg, logger)
			defer func() { _ = store.Close() }()

			srv := server.NewHTTPServer(cfg, server.NewHandler(logger, cfg, store, version))
			return run(ctx, srv, logger)
		},
	}

	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	return cmd
}

// chartCache connects to Redis when configured and reachable, otherwise it
// caches in memory.
func chartCache(ctx context.Context, cfg *server.Config, logger *zap.Logger) cache.Cache {
	if cfg.Cache.RedisAddress == "" {
		return cache.NewMemoryCache(cfg.Cache.MaxEntries)
	}

	redisCache := cache.NewRedisCache(cfg.Cache.RedisAddress, cfg.Cache.KeyPrefix)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, caching charts in memory",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Cache.RedisAddress),
			zap.Error(err),
		)
		_ = redisCache.Close()
		return cache.NewMemoryCache(cfg.Cache.MaxEntries)
	}
	return redisCache
}

// run serves until ctx is cancelled, then shuts the server down gracefully.
func run(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "main.serve"),
			zap.String("address", srv.Addr),
			zap.String("version", version),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.String("op", "main.serve"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
