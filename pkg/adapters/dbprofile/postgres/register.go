// Package postgres registers the PostgreSQL profiles: POS_NEO (Neon managed
// hosting, TLS required) and POS_LCL (local instance).
package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver "pgx"

	"github.com/restgate/registry-engine/pkg/adapters/dbprofile"
	"github.com/restgate/registry-engine/pkg/catalog"
)

// PostgreSQL error codes (class 23 = integrity constraint violation).
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeDuplicateTable      = "42P07"
)

type dialect struct{}

func (dialect) Name() string { return "postgres" }

func (dialect) Rebind(query string) string {
	return dbprofile.RebindPositional(query, "$")
}

func (dialect) ColumnType(c catalog.Column) string {
	switch c.Type {
	case catalog.TypeString:
		return fmt.Sprintf("VARCHAR(%d)", c.Size)
	case catalog.TypeText:
		return "TEXT"
	case catalog.TypeInt:
		return "INTEGER"
	case catalog.TypeBool:
		return "BOOLEAN"
	case catalog.TypeTimestamp:
		return "TIMESTAMPTZ"
	}
	return "TEXT"
}

func (dialect) SupportsCreateIfNotExists() bool { return true }

func (dialect) IsForeignKeyViolation(err error) bool { return hasCode(err, codeForeignKeyViolation) }
func (dialect) IsUniqueViolation(err error) bool     { return hasCode(err, codeUniqueViolation) }
func (dialect) IsDuplicateTable(err error) bool      { return hasCode(err, codeDuplicateTable) }

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func dsn(s dbprofile.ConnSettings, sslMode string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Database, sslMode)
}

func init() {
	dbprofile.Register(dbprofile.Profile{
		DBType:      dbprofile.TypePostgres,
		Host:        dbprofile.HostNeon,
		DisplayName: "PostgreSQL (Neon)",
		Driver:      "pgx",
		Dialect:     dialect{},
		DSN: func(s dbprofile.ConnSettings) string {
			// Neon only accepts TLS connections.
			return dsn(s, "require")
		},
	})

	dbprofile.Register(dbprofile.Profile{
		DBType:      dbprofile.TypePostgres,
		Host:        dbprofile.HostLocal,
		DisplayName: "PostgreSQL (local)",
		Driver:      "pgx",
		Dialect:     dialect{},
		DSN: func(s dbprofile.ConnSettings) string {
			mode := s.SSLMode
			if mode == "" {
				mode = "disable"
			}
			return dsn(s, mode)
		},
	})
}
