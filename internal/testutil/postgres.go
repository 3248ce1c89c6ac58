// Package testutil provides storage fixtures for tests: a migrated postgres
// container and an in-memory redis server.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/SofusA/cli-dungeon-sub000/internal/config"
	"github.com/SofusA/cli-dungeon-sub000/internal/storage/postgres"
	"github.com/SofusA/cli-dungeon-sub000/migrations"
)

const (
	pgImage    = "postgres:16-alpine"
	pgUser     = "dungeon"
	pgPassword = "dungeon"
	pgDatabase = "dungeon_test"
)

// NewMigratedPostgres starts a throwaway postgres container, applies the
// embedded schema and returns a connected pool. The container is terminated
// when the test finishes.
//
// Precondition: Docker must be available. Skipped under -short.
// Postcondition: The characters and encounters tables exist and are empty.
func NewMigratedPostgres(t *testing.T) *postgres.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests are skipped in short mode")
	}
	ctx := context.Background()
	start := time.Now()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        pgImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDatabase,
			},
			// postgres logs readiness once for the init server and once for the real one.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v [%s]", err, time.Since(start))
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	db, err := databaseConfig(ctx, container)
	if err != nil {
		t.Fatalf("resolving container address: %v", err)
	}
	if err := migrations.Up(db.DSN()); err != nil {
		t.Fatalf("applying migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, db)
	if err != nil {
		t.Fatalf("connecting to test postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	t.Logf("postgres ready on %s:%d [%s]", db.Host, db.Port, time.Since(start))
	return pool
}

func databaseConfig(ctx context.Context, c testcontainers.Container) (config.DatabaseConfig, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return config.DatabaseConfig{}, err
	}
	port, err := c.MappedPort(ctx, "5432")
	if err != nil {
		return config.DatabaseConfig{}, err
	}
	return config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            pgUser,
		Password:        pgPassword,
		Name:            pgDatabase,
		SSLMode:         "disable",
		MaxConns:        4,
		MinConns:        1,
		MaxConnLifetime: time.Minute,
	}, nil
}
