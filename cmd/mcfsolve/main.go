// Command mcfsolve is the batch runner for the multi-commodity flow solver:
// it loads one or more job description files, runs the two-pass algorithm
// over each, and reports the result. There is no gRPC server here — this is
// a leaf CLI over internal/mcf/pass, with a config-then-logger-then-run
// startup sequence and no transport layer to bind.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"mcfsolver/pkg/cache"
	"mcfsolver/pkg/config"
	"mcfsolver/pkg/logger"
	"mcfsolver/pkg/metrics"
	"mcfsolver/pkg/store"
	"mcfsolver/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	persist := flag.Bool("persist", false, "save loaded jobs and results to the configured database")
	flag.Parse()
	jobFiles := flag.Args()
	if len(jobFiles) == 0 {
		logger.Fatal("usage: mcfsolve [-persist] <job-file>...")
	}

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		tp, err := telemetry.Init(ctx, telemetry.Config{
			Enabled:     cfg.Tracing.Enabled,
			Endpoint:    cfg.Tracing.Endpoint,
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			Environment: cfg.App.Environment,
			SampleRate:  cfg.Tracing.SampleRate,
		})
		if err != nil {
			logger.Log.Warn("failed to init telemetry", "error", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					logger.Log.Warn("failed to shutdown telemetry", "error", err)
				}
			}()
		}
	}

	m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)

	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartMetricsServer(cfg.Metrics.Port); err != nil {
				logger.Log.Warn("metrics server stopped", "error", err)
			}
		}()
	}

	var solverCache *cache.SolverCache
	if cfg.Cache.Enabled {
		baseCache, err := cache.New(cache.FromConfig(&cfg.Cache))
		if err != nil {
			logger.Log.Warn("failed to create cache, continuing without cache", "error", err)
		} else {
			solverCache = cache.NewSolverCache(baseCache, cfg.Cache.DefaultTTL)
			logger.Info("solver cache initialized", "driver", cfg.Cache.Driver, "ttl", cfg.Cache.DefaultTTL)
		}
	}

	var jobStore store.Store
	if *persist && cfg.Database.Driver == "postgres" {
		pgStore, err := store.Open(ctx, &cfg.Database)
		if err != nil {
			logger.Fatal("failed to open job store", "error", err)
		}
		defer pgStore.Close()
		jobStore = pgStore
		logger.Info("job store initialized", "driver", cfg.Database.Driver)
	}

	r := &runner{
		cfg:     cfg,
		metrics: m,
		cache:   solverCache,
		store:   jobStore,
	}

	failures := 0
	for _, path := range jobFiles {
		if err := r.runFile(ctx, path); err != nil {
			logger.Error("job failed", "file", path, "error", err)
			failures++
		}
	}

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d jobs failed\n", failures, len(jobFiles))
		os.Exit(1)
	}
}
