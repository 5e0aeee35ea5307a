package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trendboard/internal/corpus"
	"trendboard/internal/jobs"
	"trendboard/internal/metrics"
	"trendboard/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard web server",
	Long: `Starts the HTTP server with the dashboard at / and the JSON API under /api.

When WATCH_DATA is set the data root is watched and the dataset is rebuilt
after files change.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	corp := corpus.New(catalog, logger)
	metrics.Init(corp, cfg.DataRoot)

	// Warm the cache; a missing root is reported per request instead
	if _, err := corp.Load(ctx, cfg.DataRoot); err != nil {
		var cfgErr *corpus.ConfigurationError
		if !errors.As(err, &cfgErr) {
			return err
		}
		logger.Warn("data root unavailable", zap.Error(err))
	}

	srv := server.New(cfg, logger)
	srv.RegisterRoutes(corp)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		return srv.Shutdown()
	})
	if cfg.WatchData {
		reloader := jobs.NewReloader(corp, cfg.DataRoot, cfg.WatchDebounce, logger)
		g.Go(func() error {
			return reloader.Start(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("server exited")
	return nil
}
