package database

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/adapters/dbprofile"
)

// Migrate executes pending migrations from the specified directory. Only the
// PostgreSQL profiles carry a migration history; other backends bootstrap
// their schema from the entity catalog. A dedicated short-lived connection is
// used because the migrate driver takes ownership of the handle it is given.
// Safe to call repeatedly - only pending migrations run.
func Migrate(profile dbprofile.Profile, settings dbprofile.ConnSettings, migrationsPath string, logger *zap.Logger) error {
	if profile.DBType != dbprofile.TypePostgres {
		return fmt.Errorf("migrations are only supported on PostgreSQL profiles, not %s", profile.Code)
	}

	handle, err := sql.Open(profile.Driver, profile.DSN(settings))
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}

	driver, err := postgres.WithInstance(handle, &postgres.Config{})
	if err != nil {
		_ = handle.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres", driver)
	if err != nil {
		_ = handle.Close()
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Warn("Failed to close migration source", zap.Error(srcErr))
		}
		if dbErr != nil {
			logger.Warn("Failed to close migration database", zap.Error(dbErr))
		}
	}()

	err = m.Up()
	if err == migrate.ErrNoChange {
		logger.Info("No migrations to apply (database up-to-date)")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, _, _ := m.Version()
	logger.Info("Applied migrations successfully", zap.Uint("version", newVersion))
	return nil
}
