// Package oracle registers the Oracle profiles: OCR_ABS (managed site) and
// OCR_LCL (local instance).
package oracle

import (
	"fmt"
	"strings"

	goora "github.com/sijms/go-ora/v2"

	"github.com/restgate/registry-engine/pkg/adapters/dbprofile"
	"github.com/restgate/registry-engine/pkg/catalog"
)

type dialect struct{}

func (dialect) Name() string { return "oracle" }

func (dialect) Rebind(query string) string {
	return dbprofile.RebindPositional(query, ":")
}

func (dialect) ColumnType(c catalog.Column) string {
	switch c.Type {
	case catalog.TypeString:
		return fmt.Sprintf("VARCHAR2(%d)", c.Size)
	case catalog.TypeText:
		return "CLOB"
	case catalog.TypeInt:
		return "NUMBER(10)"
	case catalog.TypeBool:
		return "NUMBER(1)"
	case catalog.TypeTimestamp:
		return "TIMESTAMP"
	}
	return "CLOB"
}

func (dialect) SupportsCreateIfNotExists() bool { return false }

// go-ora surfaces server errors with their ORA- code in the message; the
// driver has no stable structured error type to unwrap, so classification
// matches on the code text.
func (dialect) IsForeignKeyViolation(err error) bool {
	return hasORACode(err, "ORA-02291") || hasORACode(err, "ORA-02292")
}
func (dialect) IsUniqueViolation(err error) bool { return hasORACode(err, "ORA-00001") }
func (dialect) IsDuplicateTable(err error) bool  { return hasORACode(err, "ORA-00955") }

func hasORACode(err error, code string) bool {
	return err != nil && strings.Contains(err.Error(), code)
}

func init() {
	register := func(host, display string, opts map[string]string) {
		dbprofile.Register(dbprofile.Profile{
			DBType:      dbprofile.TypeOracle,
			Host:        host,
			DisplayName: display,
			Driver:      "oracle",
			Dialect:     dialect{},
			DSN: func(s dbprofile.ConnSettings) string {
				return goora.BuildUrl(s.Host, s.Port, s.Database, s.User, s.Password, opts)
			},
		})
	}

	register(dbprofile.HostABS, "Oracle (ABS site)", map[string]string{"SSL": "true"})
	register(dbprofile.HostLocal, "Oracle (local)", nil)
}
