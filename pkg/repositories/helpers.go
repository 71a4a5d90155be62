// Package repositories implements data access for the registry entities over
// the profile-selected backend. Queries are written with ? placeholders and
// rebound to the active dialect.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/restgate/registry-engine/pkg/apperrors"
	"github.com/restgate/registry-engine/pkg/database"
)

// classify maps backend errors onto the application sentinels: missing rows,
// referential-integrity rejections, and unique-constraint conflicts. Anything
// else is wrapped with the failed operation.
func classify(db *database.DB, err error, op string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return apperrors.ErrNotFound
	case db.Profile.Dialect.IsForeignKeyViolation(err):
		return apperrors.ErrForeignKey
	case db.Profile.Dialect.IsUniqueViolation(err):
		return apperrors.ErrConflict
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// ns converts an optional string to its bind value: NULL when empty. Empty
// strings and NULL must not diverge between backends (Oracle treats '' as
// NULL), so optional text is always stored as NULL.
func ns(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func str(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

type rowScanner interface {
	Scan(dest ...any) error
}
