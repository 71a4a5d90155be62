// Package mysql registers the MySQL profiles: MSQ_ABS (managed site) and
// MSQ_LCL (local instance).
package mysql

import (
	"errors"
	"fmt"

	godriver "github.com/go-sql-driver/mysql"

	"github.com/restgate/registry-engine/pkg/adapters/dbprofile"
	"github.com/restgate/registry-engine/pkg/catalog"
)

// MySQL server error numbers.
const (
	errNoReferencedRow  = 1452 // FK insert/update: parent row missing
	errRowIsReferenced  = 1451 // FK delete: child rows exist
	errDuplicateEntry   = 1062
	errTableExistsError = 1050
)

type dialect struct{}

func (dialect) Name() string { return "mysql" }

// Rebind is a no-op: the driver takes ? placeholders natively.
func (dialect) Rebind(query string) string { return query }

func (dialect) ColumnType(c catalog.Column) string {
	switch c.Type {
	case catalog.TypeString:
		return fmt.Sprintf("VARCHAR(%d)", c.Size)
	case catalog.TypeText:
		return "TEXT"
	case catalog.TypeInt:
		return "INT"
	case catalog.TypeBool:
		return "TINYINT(1)"
	case catalog.TypeTimestamp:
		return "DATETIME"
	}
	return "TEXT"
}

func (dialect) SupportsCreateIfNotExists() bool { return true }

func (dialect) IsForeignKeyViolation(err error) bool {
	return hasNumber(err, errNoReferencedRow) || hasNumber(err, errRowIsReferenced)
}
func (dialect) IsUniqueViolation(err error) bool { return hasNumber(err, errDuplicateEntry) }
func (dialect) IsDuplicateTable(err error) bool  { return hasNumber(err, errTableExistsError) }

func hasNumber(err error, number uint16) bool {
	var myErr *godriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == number
}

func dsn(s dbprofile.ConnSettings, tls string) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", s.User, s.Password, s.Host, s.Port, s.Database)
	if tls != "" {
		out += "&tls=" + tls
	}
	return out
}

func init() {
	dbprofile.Register(dbprofile.Profile{
		DBType:      dbprofile.TypeMySQL,
		Host:        dbprofile.HostABS,
		DisplayName: "MySQL (ABS site)",
		Driver:      "mysql",
		Dialect:     dialect{},
		DSN: func(s dbprofile.ConnSettings) string {
			return dsn(s, "true")
		},
	})

	dbprofile.Register(dbprofile.Profile{
		DBType:      dbprofile.TypeMySQL,
		Host:        dbprofile.HostLocal,
		DisplayName: "MySQL (local)",
		Driver:      "mysql",
		Dialect:     dialect{},
		DSN: func(s dbprofile.ConnSettings) string {
			return dsn(s, "")
		},
	})
}
