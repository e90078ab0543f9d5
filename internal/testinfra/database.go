package testinfra

import (
	"context"
	"github.com/maxaizer/job-market-api/internal/config"
	"github.com/maxaizer/job-market-api/internal/repositories"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"testing"
	"time"
)

// NewDatabase opens a migrated SQLite database that lives as long as the test.
func NewDatabase(t *testing.T) *repositories.DbContext {
	t.Helper()

	dbCtx, err := repositories.NewDbContext(context.Background(), config.DBConfig{
		Driver:           config.DriverSqlite,
		ConnectionString: filepath.Join(t.TempDir(), "jobs.db"),
		MaxOpenConns:     1,
		MaxIdleConns:     1,
		ConnMaxLifetime:  time.Hour,
	})
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())

	t.Cleanup(func() {
		_ = dbCtx.Close()
	})
	return dbCtx
}
