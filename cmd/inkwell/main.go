// Command inkwell runs the blog backend: an HTTP API for accounts,
// sessions, and posts, backed by PostgreSQL (or an in-memory store for
// local development).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/httpapi"
	"inkwell/internal/logging"
	"inkwell/internal/migrations"
	"inkwell/internal/posts"
	"inkwell/internal/store"
	"inkwell/internal/telemetry"
)

const serviceName = "inkwell"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "inkwell",
		Short:        "Blog backend with JWT sessions and refresh rotation",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(migrateCmd(&configPath))
	return root
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.DatabaseDSN == "" {
				return errors.New("migrate requires database_dsn")
			}
			return migrate(cmd.Context(), cfg.DatabaseDSN)
		},
	}
}

func migrate(ctx context.Context, dsn string) error {
	pg, err := store.OpenPostgres(dsn)
	if err != nil {
		return err
	}
	defer pg.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, pg.DB(), ".")
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := logging.NewJSON(os.Stdout, parseLogLevel(cfg.LogLevel))

	shutdownTracing, err := telemetry.Init(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(c)
	}()

	userStore, postStore, closeStore, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	builder := auth.New().
		WithConfig(engineConfig(cfg)).
		WithStore(userStore).
		WithLogger(logger.With("component", "auth"))

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		builder = builder.WithRedis(client)
		logger.Info(ctx, "login throttling enabled", "redis_addr", cfg.RedisAddr)
	}

	engine, err := builder.Build()
	if err != nil {
		return err
	}

	api := httpapi.NewServer(engine, userStore, posts.NewService(postStore), logger.With("component", "http"))
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           otelhttp.NewHandler(api.Handler(), serviceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStores selects PostgreSQL when a DSN is configured, otherwise the
// in-memory store. Both satisfy auth.UserStore and posts.Store.
func openStores(ctx context.Context, cfg config.Config, logger logging.Logger) (auth.UserStore, posts.Store, func(), error) {
	if cfg.DatabaseDSN == "" {
		logger.Warn(ctx, "no database configured, using in-memory store")
		mem := store.NewMemory()
		return mem, mem, func() {}, nil
	}

	pg, err := store.OpenPostgres(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pg.Ping(pingCtx); err != nil {
		pg.Close()
		return nil, nil, nil, err
	}
	return pg, pg, func() { pg.Close() }, nil
}

func engineConfig(cfg config.Config) auth.Config {
	ec := auth.DefaultConfig()
	ec.AccessSecret = []byte(cfg.AccessSecret)
	ec.RefreshSecret = []byte(cfg.RefreshSecret)
	if cfg.AccessTTL > 0 {
		ec.AccessTTL = cfg.AccessTTL
	}
	if cfg.RefreshTTL > 0 {
		ec.RefreshTTL = cfg.RefreshTTL
	}
	ec.ProductionMode = cfg.Production
	return ec
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
