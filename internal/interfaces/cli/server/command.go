package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/myphoto-inc/myphoto/internal/infrastructure/cache"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/migration"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/storage"
	"github.com/myphoto-inc/myphoto/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/myphoto-inc/myphoto/internal/interfaces/http"
	"github.com/myphoto-inc/myphoto/internal/shared/goroutine"
)

const shutdownTimeout = 30 * time.Second

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the MyPhoto HTTP server with the configuration from configs/config.yaml and MYPHOTO_* variables.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", true, "Apply pending database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" && env == "" {
		env = envVar
	}

	app, err := bootstrap.Load(env)
	if err != nil {
		return err
	}
	defer app.Close()

	log := app.Logger
	cfg := app.Config

	log.Infow("starting server",
		"environment", env,
		"mode", cfg.Server.Mode,
		"database", cfg.Database.Driver,
		"storage", cfg.Storage.Type,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := handleMigrations(ctx, app); err != nil {
		return err
	}

	blobs, err := storage.NewBlobStoreFromConfig(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize blob storage: %w", err)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	router, err := httpRouter.NewRouter(httpRouter.Dependencies{
		DB:     app.DB,
		Config: cfg,
		Logger: log,
		Blobs:  blobs,
		Redis:  redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	serverErr := make(chan error, 1)
	goroutine.SafeGo(log, "http-server", func() {
		serverErr <- router.Run(cfg.Server.GetAddr())
	}, func(err error) { serverErr <- err })

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(ctx context.Context, app *bootstrap.Env) error {
	strategy, err := migration.NewGooseStrategy(app.Config.Database.Driver)
	if err != nil {
		return err
	}

	if autoMigrate {
		if err := migration.NewManagerWithStrategy(strategy).Migrate(ctx, app.DB); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}

	version, err := strategy.GetVersion(ctx, app.DB)
	if err != nil {
		app.Logger.Warnw("failed to check migration status", "error", err)
		return nil
	}
	app.Logger.Infow("current migration version", "version", version)
	return nil
}
