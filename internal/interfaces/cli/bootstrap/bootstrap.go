// Package bootstrap loads configuration, logging and the database for CLI commands.
package bootstrap

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/myphoto-inc/myphoto/internal/infrastructure/config"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/database"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

// Env is what every command needs before doing real work.
type Env struct {
	Config *config.Config
	DB     *gorm.DB
	Logger logger.Interface
}

// Load reads the configuration for env, installs the process logger and opens the database.
func Load(env string) (*Env, error) {
	cfg, err := config.Load(MapEnvToGinMode(env))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Env{
		Config: cfg,
		DB:     db,
		Logger: logger.NewLogger(),
	}, nil
}

// Close releases the database connection.
func (e *Env) Close() {
	if err := database.Close(e.DB); err != nil {
		e.Logger.Warnw("failed to close database", "error", err)
	}
}

// MapEnvToGinMode maps deployment names onto gin modes. An empty env keeps
// the configured server.mode.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "development", "dev", "debug":
		return gin.DebugMode
	case "test", "testing":
		return gin.TestMode
	default:
		return ""
	}
}
