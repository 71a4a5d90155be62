// Package sqlite registers the SQL_LCL profile: a local file-backed SQLite
// database. There is no hosted SQLite profile.
package sqlite

import (
	"errors"
	"fmt"

	modernc "modernc.org/sqlite"

	"github.com/restgate/registry-engine/pkg/adapters/dbprofile"
	"github.com/restgate/registry-engine/pkg/catalog"
)

// SQLite extended result codes for constraint violations.
const (
	codeConstraintForeignKey = 787  // SQLITE_CONSTRAINT_FOREIGNKEY
	codeConstraintPrimaryKey = 1555 // SQLITE_CONSTRAINT_PRIMARYKEY
	codeConstraintUnique     = 2067 // SQLITE_CONSTRAINT_UNIQUE
)

type dialect struct{}

func (dialect) Name() string { return "sqlite" }

// Rebind is a no-op: the driver takes ? placeholders natively.
func (dialect) Rebind(query string) string { return query }

func (dialect) ColumnType(c catalog.Column) string {
	// SQLite type names are affinity hints; keep them close to the portable
	// declarations so dumped schemas stay readable.
	switch c.Type {
	case catalog.TypeString:
		return fmt.Sprintf("VARCHAR(%d)", c.Size)
	case catalog.TypeText:
		return "TEXT"
	case catalog.TypeInt:
		return "INTEGER"
	case catalog.TypeBool:
		return "INTEGER"
	case catalog.TypeTimestamp:
		return "TIMESTAMP"
	}
	return "TEXT"
}

func (dialect) SupportsCreateIfNotExists() bool { return true }

func (dialect) IsForeignKeyViolation(err error) bool { return hasCode(err, codeConstraintForeignKey) }

func (dialect) IsUniqueViolation(err error) bool {
	return hasCode(err, codeConstraintUnique) || hasCode(err, codeConstraintPrimaryKey)
}

func (dialect) IsDuplicateTable(err error) bool { return false } // IF NOT EXISTS covers bootstrap

func hasCode(err error, code int) bool {
	var sqErr *modernc.Error
	return errors.As(err, &sqErr) && sqErr.Code() == code
}

func init() {
	dbprofile.Register(dbprofile.Profile{
		DBType:      dbprofile.TypeSQLite,
		Host:        dbprofile.HostLocal,
		DisplayName: "SQLite (local file)",
		Driver:      "sqlite",
		Dialect:     dialect{},
		DSN: func(s dbprofile.ConnSettings) string {
			path := s.Path
			if path == "" {
				path = "registry.db"
			}
			// Referential integrity is off by default in SQLite; the cascade
			// and orphan-rejection behavior depends on this pragma.
			return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
		},
	})
}
