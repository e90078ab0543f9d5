//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-market-api/internal/config"
	"github.com/maxaizer/job-market-api/internal/repositories"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"os/exec"
	"testing"
	"time"
)

func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// NewPostgresDatabase starts a throwaway PostgreSQL container and returns a migrated context.
func NewPostgresDatabase(t *testing.T) *repositories.DbContext {
	t.Helper()
	SkipIfNoDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "jobs",
				"POSTGRES_PASSWORD": "jobs",
				"POSTGRES_DB":       "jobs",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dbCtx, err := repositories.NewDbContext(ctx, config.DBConfig{
		Driver:           config.DriverPostgres,
		ConnectionString: fmt.Sprintf("postgres://jobs:jobs@%s:%s/jobs?sslmode=disable", host, port.Port()),
		MaxOpenConns:     4,
		ConnMaxLifetime:  time.Hour,
	})
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())

	t.Cleanup(func() {
		_ = dbCtx.Close()
	})
	return dbCtx
}
