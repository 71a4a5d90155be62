package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/catalog"
	"github.com/restgate/registry-engine/pkg/logging"
)

// Bootstrap creates the registered tables on the connected backend, in
// dependency order, with foreign keys declared ON DELETE CASCADE. It is
// idempotent: backends with CREATE TABLE IF NOT EXISTS skip existing tables
// natively, others via duplicate-table error classification.
//
// The PostgreSQL profiles use golang-migrate instead (see Migrate); Bootstrap
// serves the backends that have no migration history.
func Bootstrap(ctx context.Context, db *DB, cat *catalog.Catalog, logger *zap.Logger) error {
	if err := cat.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	stmts, err := cat.DDL(db.Profile.Dialect)
	if err != nil {
		return fmt.Errorf("failed to render DDL: %w", err)
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if db.Profile.Dialect.IsDuplicateTable(err) {
				continue
			}
			return fmt.Errorf("bootstrap statement failed: %s", logging.SanitizeError(err))
		}
	}

	logger.Info("Schema bootstrap complete",
		zap.String("profile", db.Profile.Code),
		zap.Int("tables", len(stmts)))
	return nil
}
