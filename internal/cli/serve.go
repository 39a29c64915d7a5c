package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cygraph/pkg/cache"
	"github.com/matzehuels/cygraph/pkg/server"
	"github.com/matzehuels/cygraph/pkg/store"
)

// shutdownTimeout bounds graceful shutdown when the serve context is cancelled.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion and graph storage API",
		Long: `Serve runs an HTTP API exposing the CSV codec and a graph store. Without
a config file it listens on :8080 with an in-memory store and no cache; a
TOML config file can select a MongoDB store and a Redis conversion cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return runServe(cmd.Context(), c, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file path")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func runServe(ctx context.Context, c *CLI, cfg serveConfig) error {
	st, err := newStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	conversionCache, err := newConversionCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer conversionCache.Close()

	srv := server.New(server.Config{
		Store:    st,
		Cache:    conversionCache,
		CacheTTL: cfg.Cache.TTL.Duration,
		Logger:   c.Logger,
	})

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", cfg.Server.Addr, "store", storeBackend(cfg.Store), "cache", cacheBackend(cfg.Cache))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func newStore(ctx context.Context, cfg storeConfig) (store.Store, error) {
	if cfg.Backend == "mongo" {
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	}
	return store.NewMemoryStore(), nil
}

func newConversionCache(ctx context.Context, cfg cacheConfig) (cache.Cache, error) {
	if cfg.Backend == "redis" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return cache.NewNullCache(), nil
}

func storeBackend(cfg storeConfig) string {
	if cfg.Backend == "" {
		return "memory"
	}
	return cfg.Backend
}

func cacheBackend(cfg cacheConfig) string {
	if cfg.Backend == "" {
		return "none"
	}
	return cfg.Backend
}
