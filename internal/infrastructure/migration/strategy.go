package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/models"
	"github.com/myphoto-inc/myphoto/internal/shared/config"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

// Strategy defines the interface for different migration strategies
type Strategy interface {
	// Migrate brings the schema up to date
	Migrate(ctx context.Context, db *gorm.DB) error
	// GetName returns the strategy name
	GetName() string
}

// GormAutoMigrateStrategy derives the schema from the persistence models.
// Tests and throwaway databases use it; it never drops columns.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().Named("migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	all := models.All()
	s.logger.Infow("starting gorm auto migration", "models_count", len(all))
	if err := db.WithContext(ctx).AutoMigrate(all...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// MigrationState is one row of goose status output.
type MigrationState struct {
	Version   int64
	Path      string
	Applied   bool
	AppliedAt time.Time
}

// GooseStrategy applies the embedded versioned SQL scripts for one driver.
type GooseStrategy struct {
	dialect goose.Dialect
	fsys    fs.FS
	logger  logger.Interface
}

func NewGooseStrategy(driver string) (*GooseStrategy, error) {
	var (
		dialect goose.Dialect
		dir     string
	)
	switch driver {
	case config.DriverSQLite:
		dialect, dir = goose.DialectSQLite3, "scripts/sqlite"
	case config.DriverMySQL:
		dialect, dir = goose.DialectMySQL, "scripts/mysql"
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}

	fsys, err := fs.Sub(scripts, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}

	return &GooseStrategy{
		dialect: dialect,
		fsys:    fsys,
		logger:  logger.NewLogger().Named("migration.goose"),
	}, nil
}

// provider must not be closed: Close would close the shared *sql.DB.
func (s *GooseStrategy) provider(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	p, err := goose.NewProvider(s.dialect, sqlDB, s.fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	return p, nil
}

func (s *GooseStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}

	currentVersion, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current version: %w", err)
	}
	s.logger.Infow("current migration status", "version", currentVersion)

	results, err := p.Up(ctx)
	if err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, r := range results {
		s.logger.Infow("applied migration",
			"version", r.Source.Version,
			"duration", r.Duration)
	}

	finalVersion, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion)
	return nil
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

// MigrateDown rolls back up to steps migrations, stopping early at version 0.
func (s *GooseStrategy) MigrateDown(ctx context.Context, db *gorm.DB, steps int) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		r, err := p.Down(ctx)
		if errors.Is(err, goose.ErrNoNextVersion) {
			break
		}
		if err != nil {
			s.logger.Errorw("down migration failed", "error", err)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
		s.logger.Infow("rolled back migration", "version", r.Source.Version)
	}
	return nil
}

func (s *GooseStrategy) GetVersion(ctx context.Context, db *gorm.DB) (int64, error) {
	p, err := s.provider(db)
	if err != nil {
		return 0, err
	}
	version, err := p.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get version: %w", err)
	}
	return version, nil
}

func (s *GooseStrategy) Status(ctx context.Context, db *gorm.DB) ([]MigrationState, error) {
	p, err := s.provider(db)
	if err != nil {
		return nil, err
	}
	statuses, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	out := make([]MigrationState, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, MigrationState{
			Version:   st.Source.Version,
			Path:      st.Source.Path,
			Applied:   st.State == goose.StateApplied,
			AppliedAt: st.AppliedAt,
		})
	}
	return out, nil
}
