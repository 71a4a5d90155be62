// Package catalog is a process-wide registry of entity table definitions.
//
// Entities register themselves by name; relationships between entities are
// declared as name references and resolved by catalog lookup, never as direct
// struct linkage. This keeps model packages decoupled while still letting the
// catalog validate every foreign key against the entity it targets.
package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jinzhu/inflection"
)

// ColType is the storage-independent column type. Each database dialect maps
// these to its own type names when rendering DDL.
type ColType int

const (
	TypeString ColType = iota // bounded varchar, Size required
	TypeText                  // unbounded text
	TypeInt
	TypeBool
	TypeTimestamp
)

// Column describes one column of an entity's table.
type Column struct {
	Name    string
	Type    ColType
	Size    int
	NotNull bool
	Default string // SQL literal, empty for none
}

// ForeignKey declares a reference to another entity by name. The target is
// resolved against the catalog at validation time.
type ForeignKey struct {
	Column    string
	RefEntity string
	RefColumn string
}

// Unique is a named multi-column unique constraint.
type Unique struct {
	Name    string
	Columns []string
}

// Check is a named check constraint with a portable SQL expression.
type Check struct {
	Name string
	Expr string
}

// TableDef is the full declaration one entity registers with the catalog.
type TableDef struct {
	Entity string // entity name, unique within the catalog
	Table  string // storage name; derived from Entity if empty
	Columns []Column
	PrimaryKey  string
	Uniques     []Unique
	Checks      []Check
	ForeignKeys []ForeignKey
}

// Catalog holds registered table definitions keyed by lowercase entity name.
type Catalog struct {
	mu    sync.RWMutex
	defs  map[string]*TableDef
	order []string // registration order, for stable output
}

// New returns an empty catalog. Tests use this; production code registers
// into Default.
func New() *Catalog {
	return &Catalog{defs: make(map[string]*TableDef)}
}

// Default is the catalog entities register into from their init functions.
var Default = New()

// Register adds a table definition to the catalog. Entity and table names are
// lowercased so declared names and foreign-key references compare byte-equal
// regardless of how the caller cased them. Registering the same entity twice
// panics, as does a definition with no columns: both are programmer errors
// that should fail at process start, not at first query.
func (c *Catalog) Register(def TableDef) {
	if def.Entity == "" {
		panic("catalog: entity name is required")
	}
	if len(def.Columns) == 0 {
		panic(fmt.Sprintf("catalog: entity %q has no columns", def.Entity))
	}

	def.Entity = strings.ToLower(def.Entity)
	if def.Table == "" {
		def.Table = inflection.Plural(def.Entity)
	}
	def.Table = strings.ToLower(def.Table)
	for i := range def.Columns {
		def.Columns[i].Name = strings.ToLower(def.Columns[i].Name)
	}
	def.PrimaryKey = strings.ToLower(def.PrimaryKey)
	for i := range def.ForeignKeys {
		def.ForeignKeys[i].Column = strings.ToLower(def.ForeignKeys[i].Column)
		def.ForeignKeys[i].RefEntity = strings.ToLower(def.ForeignKeys[i].RefEntity)
		def.ForeignKeys[i].RefColumn = strings.ToLower(def.ForeignKeys[i].RefColumn)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.defs[def.Entity]; exists {
		panic(fmt.Sprintf("catalog: entity %q registered twice", def.Entity))
	}
	c.defs[def.Entity] = &def
	c.order = append(c.order, def.Entity)
}

// Lookup returns the definition for an entity name, case-insensitively.
func (c *Catalog) Lookup(entity string) (*TableDef, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.defs[strings.ToLower(entity)]
	return def, ok
}

// TableName returns the storage name for an entity, or the empty string if
// the entity is not registered.
func (c *Catalog) TableName(entity string) string {
	def, ok := c.Lookup(entity)
	if !ok {
		return ""
	}
	return def.Table
}

// Validate resolves every foreign-key reference through the catalog and
// checks the structural invariants: the referenced entity must be registered,
// the referenced column must exist and be that entity's primary key or part
// of a unique constraint, and the local column must exist.
func (c *Catalog) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, name := range c.order {
		def := c.defs[name]
		cols := make(map[string]bool, len(def.Columns))
		for _, col := range def.Columns {
			if col.Type == TypeString && col.Size <= 0 {
				return fmt.Errorf("entity %q: column %q is a string with no size", name, col.Name)
			}
			if cols[col.Name] {
				return fmt.Errorf("entity %q: duplicate column %q", name, col.Name)
			}
			cols[col.Name] = true
		}
		if def.PrimaryKey != "" && !cols[def.PrimaryKey] {
			return fmt.Errorf("entity %q: primary key %q is not a declared column", name, def.PrimaryKey)
		}

		for _, fk := range def.ForeignKeys {
			if !cols[fk.Column] {
				return fmt.Errorf("entity %q: foreign key column %q is not a declared column", name, fk.Column)
			}
			target, ok := c.defs[fk.RefEntity]
			if !ok {
				return fmt.Errorf("entity %q: foreign key references unregistered entity %q", name, fk.RefEntity)
			}
			if !c.isKeyColumn(target, fk.RefColumn) {
				return fmt.Errorf("entity %q: foreign key references %s.%s which is neither primary key nor unique",
					name, fk.RefEntity, fk.RefColumn)
			}
		}
	}

	_, err := c.sortedLocked()
	return err
}

// isKeyColumn reports whether col is the primary key of def or covered by a
// single-column unique constraint.
func (c *Catalog) isKeyColumn(def *TableDef, col string) bool {
	if def.PrimaryKey == col {
		return true
	}
	for _, u := range def.Uniques {
		if len(u.Columns) == 1 && strings.ToLower(u.Columns[0]) == col {
			return true
		}
	}
	return false
}

// SortedTables returns definitions in dependency order: every referenced
// entity before the entities referencing it. A genuine reference cycle is an
// error naming the entities involved.
func (c *Catalog) SortedTables() ([]*TableDef, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sortedLocked()
}

func (c *Catalog) sortedLocked() ([]*TableDef, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(c.order))
	sorted := make([]*TableDef, 0, len(c.order))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("catalog: dependency cycle involving entities: %s", strings.Join(append(path, name), " -> "))
		}
		state[name] = visiting
		def := c.defs[name]
		for _, fk := range def.ForeignKeys {
			if fk.RefEntity == name {
				continue // self-reference orders trivially
			}
			if _, ok := c.defs[fk.RefEntity]; ok {
				if err := visit(fk.RefEntity, append(path, name)); err != nil {
					return err
				}
			}
		}
		state[name] = done
		sorted = append(sorted, def)
		return nil
	}

	for _, name := range c.order {
		if err := visit(name, nil); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}
