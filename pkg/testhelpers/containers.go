// Package testhelpers provides a shared PostgreSQL container for integration
// tests. The container is started once per test run and reused.
package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/restgate/registry-engine/pkg/adapters/dbprofile"
	_ "github.com/restgate/registry-engine/pkg/adapters/dbprofile/postgres"
	"github.com/restgate/registry-engine/pkg/catalog"
	"github.com/restgate/registry-engine/pkg/database"
	_ "github.com/restgate/registry-engine/pkg/models"
)

// TestImage is the PostgreSQL image used for integration tests.
const TestImage = "postgres:16-alpine"

// TestDB holds the shared test container and a bootstrapped connection.
type TestDB struct {
	Container testcontainers.Container
	DB        *database.DB
}

var (
	sharedTestDB     *TestDB
	sharedTestDBOnce sync.Once
	sharedTestDBErr  error
)

// GetTestDB returns a shared PostgreSQL database for integration tests, with
// the registered schema already created. The container is started once and
// reused across all tests in the run.
func GetTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedTestDBOnce.Do(func() {
		sharedTestDB, sharedTestDBErr = setupTestDB()
	})

	if sharedTestDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedTestDBErr)
	}

	return sharedTestDB
}

func setupTestDB() (*TestDB, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        TestImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "registry_test",
			"POSTGRES_USER":     "registry",
			"POSTGRES_PASSWORD": "test_password",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	profile, err := dbprofile.Resolve("POS_LCL")
	if err != nil {
		return nil, err
	}

	settings := dbprofile.ConnSettings{
		Host:     host,
		Port:     port.Int(),
		User:     "registry",
		Password: "test_password",
		Database: "registry_test",
		SSLMode:  "disable",
	}

	var db *database.DB
	for i := 0; i < 10; i++ {
		db, err = database.Connect(ctx, profile, settings, database.PoolConfig{MaxOpenConns: 5}, zap.NewNop())
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := database.Bootstrap(ctx, db, catalog.Default, zap.NewNop()); err != nil {
		return nil, fmt.Errorf("failed to bootstrap test schema: %w", err)
	}

	return &TestDB{Container: container, DB: db}, nil
}

// Truncate empties the given tables so a test starts from a clean slate.
// Tables are cleared in reverse order so child rows go before their parents.
func (tdb *TestDB) Truncate(t *testing.T, tables ...string) {
	t.Helper()

	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := tdb.DB.Exec("DELETE FROM " + tables[i]); err != nil {
			t.Fatalf("Failed to clear table %s: %v", tables[i], err)
		}
	}
}
