// Package dbprofile holds the fixed registry of database profiles. A profile
// is one DB-type × hosting-site combination, identified by a code such as
// POS_NEO or SQL_LCL. Driver packages register their profiles from init();
// after process start the registry is read-only and resolution is pure.
package dbprofile

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/restgate/registry-engine/pkg/apperrors"
	"github.com/restgate/registry-engine/pkg/catalog"
)

// DB-type prefixes.
const (
	TypePostgres = "POS"
	TypeOracle   = "OCR"
	TypeMySQL    = "MSQ"
	TypeSQLite   = "SQL"
)

// Hosting-site prefixes. ABS is a registered site label carried over from the
// upstream deployment; it has no further semantics here.
const (
	HostNeon  = "NEO"
	HostABS   = "ABS"
	HostLocal = "LCL"
)

var (
	validTypes = map[string]bool{TypePostgres: true, TypeOracle: true, TypeMySQL: true, TypeSQLite: true}
	validHosts = map[string]bool{HostNeon: true, HostABS: true, HostLocal: true}
)

// ConnSettings carries connection parameters from configuration. Path is used
// by file-backed profiles only.
type ConnSettings struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	Path     string
}

// Dialect abstracts the per-backend SQL surface: placeholder style, DDL type
// names, and driver error classification. It satisfies catalog.Dialect.
type Dialect interface {
	Name() string
	// Rebind rewrites ? placeholders into the backend's positional style.
	Rebind(query string) string
	ColumnType(c catalog.Column) string
	SupportsCreateIfNotExists() bool
	// IsForeignKeyViolation reports whether err is a referential-integrity
	// rejection from the backend.
	IsForeignKeyViolation(err error) bool
	IsUniqueViolation(err error) bool
	// IsDuplicateTable reports whether err means the table already exists,
	// used by bootstrap on backends without CREATE TABLE IF NOT EXISTS.
	IsDuplicateTable(err error) bool
}

// Profile is one resolvable registry entry.
type Profile struct {
	Code        string // "{DB_TYPE}_{HOST}"
	DBType      string
	Host        string
	DisplayName string
	Driver      string // database/sql driver name
	Dialect     Dialect
	// DSN builds the connection string for this profile from settings.
	DSN func(s ConnSettings) string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Profile)
)

// Register is called by each driver package's init. It panics on malformed
// codes and duplicates: profile wiring is compile-time configuration and must
// not limp past process start.
func Register(p Profile) {
	if !validTypes[p.DBType] {
		panic(fmt.Sprintf("dbprofile: unknown DB type %q", p.DBType))
	}
	if !validHosts[p.Host] {
		panic(fmt.Sprintf("dbprofile: unknown hosting site %q", p.Host))
	}
	if p.Dialect == nil || p.DSN == nil || p.Driver == "" {
		panic(fmt.Sprintf("dbprofile: incomplete profile %s_%s", p.DBType, p.Host))
	}

	p.Code = p.DBType + "_" + p.Host

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[p.Code]; exists {
		panic(fmt.Sprintf("dbprofile: profile %s registered twice", p.Code))
	}
	registry[p.Code] = p
}

// Resolve maps a profile code to its registered profile. Unknown codes return
// apperrors.ErrUnknownProfile; callers treat this as fatal at startup.
// Resolution is case-insensitive on the code and has no side effects.
func Resolve(code string) (Profile, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	p, ok := registry[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (known: %s)", apperrors.ErrUnknownProfile, code, strings.Join(codesLocked(), ", "))
	}
	return p, nil
}

// Codes returns all registered profile codes, sorted.
func Codes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return codesLocked()
}

// Profiles returns all registered profiles sorted by code.
func Profiles() []Profile {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Profile, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func codesLocked() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
