package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/echart/internal/server"
	"github.com/matzehuels/echart/pkg/cache"
	"github.com/matzehuels/echart/pkg/pipeline"
)

type serveOpts struct {
	addr     string
	redisURL string
	prefix   string
	noCache  bool
	maxBody  int64
	timeout  time.Duration
}

func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render pipeline over HTTP",
		Long: `Serve the render pipeline over HTTP.

Chart files are POSTed to /v1/render or /v1/layout. Results are cached in the
local file cache, or in Redis when --redis is given so several instances can
share one cache.`,
		Example: `  echart serve --addr :8080
  echart serve --redis redis://localhost:6379/0
  curl --data-binary @sales.toml 'localhost:8080/v1/render?format=png' > sales.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for a shared cache (redis://host:port/db)")
	cmd.Flags().StringVar(&opts.prefix, "cache-prefix", "", "extra namespace for cache keys")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body in bytes")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", server.DefaultRenderTimeout, "per-request render timeout")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()

	var cc cache.Cache
	switch {
	case opts.noCache:
		cc = cache.NewNullCache()
	case opts.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: opts.redisURL})
		if err != nil {
			return err
		}
		c.Logger.Info("using redis cache", "url", opts.redisURL)
		cc = rc
	default:
		fc, err := newCache(false)
		if err != nil {
			return err
		}
		cc = fc
	}

	var keyer cache.Keyer
	if opts.prefix != "" {
		keyer = cache.NewScopedKeyer(nil, opts.prefix)
	}

	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	defer runner.Close()

	srv := server.New(runner, c.Logger, server.Config{
		Addr:          opts.addr,
		MaxBodyBytes:  opts.maxBody,
		RenderTimeout: opts.timeout,
	})
	return srv.ListenAndServe(ctx)
}
