// Package testutil holds helpers shared by integration tests: a disposable
// PostgreSQL container and deterministic fixtures.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	pkgpostgres "github.com/psspowers/underwriting/pkg/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DSN       string
	Pool      *pgxpool.Pool
}

// NewPostgresContainer starts a PostgreSQL container for testing.
// The caller should defer container.Cleanup(t).
func NewPostgresContainer(ctx context.Context, t *testing.T) *PostgresContainer {
	t.Helper()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("underwriting_test"),
		postgres.WithUsername("underwriting"),
		postgres.WithPassword("underwriting"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pool, err := pkgpostgres.NewPoolFromDSN(ctx, dsn, 4, 0)
	if err != nil {
		t.Fatalf("failed to open pool: %v", err)
	}

	return &PostgresContainer{
		Container: pgContainer,
		DSN:       dsn,
		Pool:      pool,
	}
}

// Cleanup closes the pool and terminates the container.
func (pc *PostgresContainer) Cleanup(t *testing.T) {
	t.Helper()

	if pc.Pool != nil {
		pc.Pool.Close()
	}

	if pc.Container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := pc.Container.Terminate(ctx); err != nil {
			t.Logf("warning: failed to terminate postgres container: %v", err)
		}
	}
}

// MigrateUp applies the golang-migrate migrations in dir (a filesystem path).
func (pc *PostgresContainer) MigrateUp(t *testing.T, dir string) {
	t.Helper()
	if err := pkgpostgres.RunMigrations(pc.DSN, sourceURL(t, dir)); err != nil {
		t.Fatalf("failed to migrate up: %v", err)
	}
}

// MigrateDown rolls back the migrations in dir.
func (pc *PostgresContainer) MigrateDown(t *testing.T, dir string) {
	t.Helper()
	if err := pkgpostgres.RunMigrationsDown(pc.DSN, sourceURL(t, dir)); err != nil {
		t.Fatalf("failed to migrate down: %v", err)
	}
}

func sourceURL(t *testing.T, dir string) string {
	t.Helper()
	abs, err := filepath.Abs(dir)
	if err != nil {
		t.Fatalf("failed to resolve migrations dir %s: %v", dir, err)
	}
	return "file://" + filepath.ToSlash(abs)
}
