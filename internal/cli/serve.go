package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/anchorplan/anchorplan/internal/httpapi"
	"github.com/anchorplan/anchorplan/pkg/cache"
	"github.com/anchorplan/anchorplan/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	envFile string // .env file to load
	noCache bool   // disable result caching
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the placement HTTP API",
		Long: `Run the placement HTTP API.

The server exposes placement and density optimization over HTTP and
serves Prometheus metrics on /metrics. Configuration beyond --addr
comes from the environment, optionally loaded from a .env file:

  ANCHORPLAN_ADDR   listen address (default :8080)
  REDIS_ADDR        redis cache address (host:port); local file cache if empty
  REDIS_PASSWORD    redis password
  REDIS_DB          redis database number
  CACHE_PREFIX      cache key prefix for shared deployments
  MONGO_URI         mongodb connection string for the run archive
  MONGO_DB          mongodb database name (default "anchorplan")`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides ANCHORPLAN_ADDR)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "load environment from this file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")

	return cmd
}

// runServe assembles the cache, run store, and metrics from the
// environment and runs the HTTP server until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", opts.envFile, err)
		}
	} else {
		_ = godotenv.Load() // .env in the working directory, if present
	}

	addr := opts.addr
	if addr == "" {
		addr = os.Getenv("ANCHORPLAN_ADDR")
	}
	if addr == "" {
		addr = ":8080"
	}

	resultCache, err := serveCacheFromEnv(opts.noCache)
	if err != nil {
		return err
	}

	var keyer cache.Keyer
	if prefix := os.Getenv("CACHE_PREFIX"); prefix != "" {
		keyer = cache.NewScopedKeyer(nil, prefix)
		c.Logger.Debug("Cache keys scoped", "prefix", prefix)
	}

	runner := pipeline.NewRunner(resultCache, keyer, c.Logger)
	defer runner.Close()

	var store *httpapi.RunStore
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		db := os.Getenv("MONGO_DB")
		if db == "" {
			db = appName
		}
		store, err = httpapi.NewRunStore(ctx, uri, db)
		if err != nil {
			return fmt.Errorf("connect run store: %w", err)
		}
		defer store.Close(context.Background())
		c.Logger.Info("Run archive enabled", "db", db)
	} else {
		printWarning("MONGO_URI not set; run archive disabled")
	}

	metrics := httpapi.NewMetrics(nil)
	metrics.Install()

	srv, err := httpapi.NewServer(httpapi.Config{
		Addr:    addr,
		Runner:  runner,
		Store:   store,
		Metrics: metrics,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}

	printInfo("Listening on %s", addr)
	printDetail("POST /v1/placements")
	printDetail("POST /v1/optimizations")
	printDetail("GET  /v1/placements/{id}")
	printDetail("GET  /metrics")

	return srv.Run(ctx)
}

// serveCacheFromEnv picks the result cache backend: redis when
// REDIS_ADDR is set, the local file cache otherwise.
func serveCacheFromEnv(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		db := 0
		if v := os.Getenv("REDIS_DB"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("REDIS_DB %q: %w", v, err)
			}
			db = n
		}
		return cache.NewRedisCache(addr, os.Getenv("REDIS_PASSWORD"), db)
	}
	return newCache(noCache)
}
