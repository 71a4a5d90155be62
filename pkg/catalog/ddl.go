package catalog

import (
	"fmt"
	"strings"
)

// Dialect is the surface the catalog needs from a database backend to render
// DDL. Profile dialects in pkg/adapters/dbprofile satisfy it implicitly.
type Dialect interface {
	// ColumnType maps a catalog column to the backend's type name.
	ColumnType(c Column) string
	// SupportsCreateIfNotExists reports whether CREATE TABLE IF NOT EXISTS
	// is accepted. Backends without it rely on duplicate-object error
	// classification during bootstrap instead.
	SupportsCreateIfNotExists() bool
}

// DDL renders one CREATE TABLE statement per registered entity, in dependency
// order. Foreign keys are emitted with ON DELETE CASCADE: cascade behavior is
// a declared storage constraint here, not an ORM-side convention.
func (c *Catalog) DDL(d Dialect) ([]string, error) {
	defs, err := c.SortedTables()
	if err != nil {
		return nil, err
	}

	stmts := make([]string, 0, len(defs))
	for _, def := range defs {
		stmts = append(stmts, c.createTable(def, d))
	}
	return stmts, nil
}

// DropDDL renders DROP TABLE statements in reverse dependency order so child
// tables go before their parents.
func (c *Catalog) DropDDL(d Dialect) ([]string, error) {
	defs, err := c.SortedTables()
	if err != nil {
		return nil, err
	}

	stmts := make([]string, 0, len(defs))
	for i := len(defs) - 1; i >= 0; i-- {
		stmts = append(stmts, fmt.Sprintf("DROP TABLE %s", defs[i].Table))
	}
	return stmts, nil
}

func (c *Catalog) createTable(def *TableDef, d Dialect) string {
	var b strings.Builder
	if d.SupportsCreateIfNotExists() {
		fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", def.Table)
	} else {
		fmt.Fprintf(&b, "CREATE TABLE %s (\n", def.Table)
	}

	lines := make([]string, 0, len(def.Columns)+4)
	for _, col := range def.Columns {
		line := fmt.Sprintf("    %s %s", col.Name, d.ColumnType(col))
		if col.NotNull {
			line += " NOT NULL"
		}
		if col.Default != "" {
			line += " DEFAULT " + col.Default
		}
		lines = append(lines, line)
	}

	if def.PrimaryKey != "" {
		lines = append(lines, fmt.Sprintf("    PRIMARY KEY (%s)", def.PrimaryKey))
	}
	for _, u := range def.Uniques {
		lines = append(lines, fmt.Sprintf("    CONSTRAINT %s UNIQUE (%s)", u.Name, strings.Join(u.Columns, ", ")))
	}
	for _, ck := range def.Checks {
		lines = append(lines, fmt.Sprintf("    CONSTRAINT %s CHECK (%s)", ck.Name, ck.Expr))
	}
	for _, fk := range def.ForeignKeys {
		refTable := c.TableName(fk.RefEntity)
		lines = append(lines, fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE CASCADE",
			fk.Column, refTable, fk.RefColumn))
	}

	b.WriteString(strings.Join(lines, ",\n"))
	b.WriteString("\n)")
	return b.String()
}
