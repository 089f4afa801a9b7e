package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/specbox/internal/server"
	"github.com/matzehuels/specbox/pkg/cache"
	"github.com/matzehuels/specbox/pkg/observability"
	"github.com/matzehuels/specbox/pkg/pipeline"
	"github.com/matzehuels/specbox/pkg/store"
)

// badgerGCInterval is how often the badger value log is compacted.
const badgerGCInterval = 10 * time.Minute

// serveOpts holds the command-line flags for the serve command. Every flag
// falls back to a SPECBOX_ environment variable.
type serveOpts struct {
	addr          string
	storeDir      string
	mongoURI      string
	mongoDB       string
	redisAddr     string
	redisPassword string
	badgerDir     string
	cachePrefix   string
	noCache       bool
	renderTimeout time.Duration
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render and hover API over HTTP",
		Long: `Start the HTTP API. Figures are stored in MongoDB when --mongo-uri is set,
in --store-dir otherwise, and in memory when neither is given. Renders are
cached in Redis when --redis-addr is set, in a badger database when
--badger-dir is set, and in the local cache directory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", envOr("ADDR", server.DefaultAddr), "listen address [SPECBOX_ADDR]")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", envOr("STORE_DIR", ""), "keep figures in this directory [SPECBOX_STORE_DIR]")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", envOr("MONGO_URI", ""), "keep figures in MongoDB [SPECBOX_MONGO_URI]")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", envOr("MONGO_DB", store.DefaultMongoDatabase), "MongoDB database [SPECBOX_MONGO_DB]")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", envOr("REDIS_ADDR", ""), "cache renders in Redis [SPECBOX_REDIS_ADDR]")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", envOr("REDIS_PASSWORD", ""), "Redis password [SPECBOX_REDIS_PASSWORD]")
	cmd.Flags().StringVar(&opts.badgerDir, "badger-dir", envOr("BADGER_DIR", ""), "cache renders in a badger database [SPECBOX_BADGER_DIR]")
	cmd.Flags().StringVar(&opts.cachePrefix, "cache-prefix", envOr("CACHE_PREFIX", ""), "prefix cache keys, for instances sharing one Redis [SPECBOX_CACHE_PREFIX]")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().DurationVar(&opts.renderTimeout, "render-timeout", server.DefaultRenderTimeout, "per-request timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	observability.SetPipelineHooks(observability.LogPipelineHooks{Logger: logger})
	observability.SetCacheHooks(observability.LogCacheHooks{Logger: logger})
	observability.SetServerHooks(observability.LogServerHooks{Logger: logger})
	defer observability.Reset()

	st, err := openStore(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	ch, err := openCache(ctx, opts, logger)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if opts.cachePrefix != "" {
		keyer = cache.NewScopedKeyer(nil, opts.cachePrefix)
	}
	runner := pipeline.NewRunner(ch, keyer, logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:          opts.addr,
		Store:         st,
		Runner:        runner,
		Logger:        logger,
		RenderTimeout: opts.renderTimeout,
	})
	printInfo("Listening on %s", StyleHighlight.Render(opts.addr))
	return srv.ListenAndServe(ctx)
}

func openStore(ctx context.Context, opts serveOpts, logger *log.Logger) (store.Store, error) {
	switch {
	case opts.mongoURI != "":
		logger.Info("figure store", "backend", "mongo", "database", opts.mongoDB)
		return store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI, Database: opts.mongoDB})
	case opts.storeDir != "":
		logger.Info("figure store", "backend", "file", "dir", opts.storeDir)
		return store.NewFileStore(opts.storeDir)
	}
	logger.Info("figure store", "backend", "memory")
	return store.NewMemoryStore(), nil
}

func openCache(ctx context.Context, opts serveOpts, logger *log.Logger) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisAddr != "":
		logger.Info("render cache", "backend", "redis", "addr", opts.redisAddr)
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr, Password: opts.redisPassword})
	case opts.badgerDir != "":
		logger.Info("render cache", "backend", "badger", "dir", opts.badgerDir)
		bc, err := cache.NewBadgerCache(opts.badgerDir, logger)
		if err != nil {
			return nil, err
		}
		go bc.RunGC(ctx, badgerGCInterval)
		return bc, nil
	}
	logger.Info("render cache", "backend", "file")
	return newCache(false)
}
