package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tiler/pkg/cache"
	"github.com/matzehuels/tiler/pkg/observability"
	"github.com/matzehuels/tiler/pkg/pipeline"
	"github.com/matzehuels/tiler/pkg/server"
	"github.com/matzehuels/tiler/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string
	mongoURI      string
	mongoDB       string
	redisAddr     string
	redisPassword string
	storeDir      string
	namespace     string
	noCache       bool
	noStats       bool
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API over the rendering pipeline and a layout store.

Layouts are kept in MongoDB when --mongo-uri is set, in --store-dir when set,
and in memory otherwise. Artifacts are cached in Redis when --redis-addr is
set and in the local cache directory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection URI for the layout store")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "tiler", "MongoDB database name")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for the artifact cache")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "directory for a file-backed layout store")
	cmd.Flags().StringVar(&opts.namespace, "cache-namespace", "", "prefix for cache keys when several deployments share a cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.noStats, "no-stats", false, "do not serve counters on /stats")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	artifactCache, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if opts.namespace != "" {
		keyer = cache.NewScopedKeyer(nil, opts.namespace+":")
	}
	runner := pipeline.NewRunner(artifactCache, keyer, c.Logger)
	defer runner.Close()

	st, err := c.serverStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	var serverOpts []server.Option
	if !opts.noStats {
		counters := observability.NewCounters()
		observability.Register(counters.Hooks())
		defer observability.Reset()
		serverOpts = append(serverOpts, server.WithStats(counters))
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.New(runner, st, c.Logger, serverOpts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("Listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return ctx.Err()
}

func (c *CLI) serverCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.redisAddr == "" || opts.noCache {
		return newCache(opts.noCache)
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     opts.redisAddr,
		Password: opts.redisPassword,
		Prefix:   appName + ":",
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.Logger.Info("Using Redis cache", "addr", opts.redisAddr)
	return rc, nil
}

func (c *CLI) serverStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	switch {
	case opts.mongoURI != "":
		s, err := store.NewMongo(ctx, store.MongoConfig{URI: opts.mongoURI, Database: opts.mongoDB})
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		c.Logger.Info("Using MongoDB store", "database", opts.mongoDB)
		return s, nil
	case opts.storeDir != "":
		s, err := store.NewFileStore(opts.storeDir)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("Using file store", "dir", s.Path())
		return s, nil
	default:
		c.Logger.Warn("Using in-memory store; layouts are lost on exit")
		return store.NewMemory(), nil
	}
}
