package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pokedex-catalog/config"
	"pokedex-catalog/handlers"
	"pokedex-catalog/logging"
	"pokedex-catalog/middleware"
	"pokedex-catalog/services"
	"pokedex-catalog/store"
	"pokedex-catalog/utils"
	"pokedex-catalog/workers"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	if !cfg.EnvFileLoaded {
		logger.Info("no .env file found, using process environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return store.Open(connectCtx, store.Options{
		Driver:        cfg.Store.Driver,
		MongoURI:      cfg.Store.MongoConnectionURI(),
		MongoDatabase: cfg.Store.MongoDatabase,
		PostgresDSN:   cfg.Store.DatabaseURL,
	})
}

func runServe(parent context.Context) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Info("connected to store", zap.String("driver", cfg.Store.Driver))
	return serve(ctx, cfg, backend, logger)
}

// serve runs the HTTP server on an open store until ctx is cancelled or the
// listener fails. The store is closed on return.
func serve(ctx context.Context, cfg *config.Config, backend store.Backend, logger *zap.Logger) (err error) {
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if closeErr := backend.Close(closeCtx); closeErr != nil {
			logger.Warn("store close", zap.Error(closeErr))
		}
	}()

	gateway := store.NewGateway(backend, logger)
	gate := middleware.NewGate(cfg.Login.Username, cfg.Login.Password, cfg.SessionTTL, logger)

	var pictures services.PictureUploader
	if cfg.R2.Enabled() {
		uploader, err := utils.NewR2Uploader(ctx, cfg.R2)
		if err != nil {
			return err
		}
		pictures = uploader
		logger.Info("picture uploads enabled", zap.String("bucket", cfg.R2.Bucket))
	}

	health := workers.NewStoreHealth(backend, cfg.HealthInterval, logger)
	if err := health.Start(); err != nil {
		return fmt.Errorf("failed to start health checks: %w", err)
	}

	svc := handlers.Services{
		Catalog:     services.NewCatalogService(gateway, logger),
		Submissions: services.NewSubmissionService(gateway, pictures, logger),
		Auth:        services.NewAuthService(gate, logger),
		Pages:       services.NewPageService(cfg.Web.PagesDir),
		Health:      health,
	}
	app := handlers.NewApp(handlers.AppConfig{
		AllowedOrigins: cfg.Web.AllowedOrigins,
		StaticDir:      cfg.Web.StaticDir,
	}, gate, svc, logger)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(":" + cfg.Port)
	}()
	logger.Info("server running", zap.String("port", cfg.Port))

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
	case err = <-listenErr:
		logger.Error("server error", zap.Error(err))
	}

	if shutdownErr := app.ShutdownWithTimeout(10 * time.Second); shutdownErr != nil {
		logger.Warn("server shutdown", zap.Error(shutdownErr))
	}
	if stopErr := health.Stop(); stopErr != nil {
		logger.Warn("health check shutdown", zap.Error(stopErr))
	}
	return err
}
