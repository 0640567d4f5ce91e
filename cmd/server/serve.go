package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lawdesk/internal/cache"
	"lawdesk/internal/db"
	"lawdesk/internal/jobs"
	"lawdesk/internal/metrics"
	"lawdesk/internal/resolver"
	"lawdesk/internal/server"
)

const (
	pruneInterval   = time.Hour
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (overrides SERVER_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.ServerAddr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		resolverOpts []resolver.Option
		serverOpts   []server.Option
		deps         server.Deps
	)

	// Query log
	if cfg.IsQueryLogEnabled() {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations completed")

		metrics.Init(database, logger)
		defer metrics.Flush()
		deps.DB = database

		pruner := jobs.NewQueryLogPruner(database, pruneInterval, cfg.QueryLogRetention, logger)
		go pruner.Start(ctx)
	} else {
		logger.Info("DATABASE_URL not set, query log disabled")
	}

	// Answer cache and shared limiter storage
	if cfg.IsCacheEnabled() {
		storage := cache.NewRedisStorage(cfg.RedisURL)
		defer storage.Close()

		resolverOpts = append(resolverOpts, resolver.WithCache(cache.New(storage, cfg.CacheTTL, logger)))
		serverOpts = append(serverOpts, server.WithLimiterStorage(storage))
		logger.Info("answer cache enabled", zap.Duration("ttl", cfg.CacheTTL))
	}

	r, err := newResolver(ctx, resolverOpts...)
	if err != nil {
		return err
	}
	deps.Resolver = r

	srv := server.New(cfg, logger, serverOpts...)
	srv.RegisterRoutes(deps)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		if err := srv.Shutdown(shutdownTimeout); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server exited")
	}

	return nil
}
