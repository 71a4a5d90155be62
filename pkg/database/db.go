// Package database owns the connection to the profile-selected backend and
// the schema bootstrap that runs against it.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/adapters/dbprofile"
	"github.com/restgate/registry-engine/pkg/logging"
)

// DB wraps the pooled database handle together with the profile it was
// opened from. The profile is fixed for the lifetime of the process.
type DB struct {
	*sql.DB
	Profile dbprofile.Profile
}

// PoolConfig sizes the connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Connect opens a connection pool for the resolved profile and verifies it
// with a ping. A backend that cannot be reached is fatal to the caller; there
// is no degraded mode.
func Connect(ctx context.Context, profile dbprofile.Profile, settings dbprofile.ConnSettings, pool PoolConfig, logger *zap.Logger) (*DB, error) {
	dsn := profile.DSN(settings)

	handle, err := sql.Open(profile.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", profile.Code, err)
	}

	if pool.MaxOpenConns > 0 {
		handle.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		handle.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		handle.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := handle.PingContext(pingCtx); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("failed to ping %s: %s", profile.Code, logging.SanitizeError(err))
	}

	logger.Info("Connected to database",
		zap.String("profile", profile.Code),
		zap.String("backend", profile.DisplayName),
		zap.String("dsn", logging.SanitizeDSN(dsn)))

	return &DB{DB: handle, Profile: profile}, nil
}

// Rebind rewrites ? placeholders into the active backend's style.
func (db *DB) Rebind(query string) string {
	return db.Profile.Dialect.Rebind(query)
}
