package repositories

import (
	"context"
	"github.com/maxaizer/job-market-api/internal/config"
	"github.com/maxaizer/job-market-api/internal/logger"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func openSqlite(t *testing.T, path string) *DbContext {
	dbContext, err := NewDbContext(context.Background(), config.DBConfig{
		Driver:           config.DriverSqlite,
		ConnectionString: path,
		MaxOpenConns:     1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbContext.Close() })
	return dbContext
}

func Test_NewDbContext_CreatesMissingSqliteDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "jobs.db")

	dbContext := openSqlite(t, path)

	require.NoError(t, dbContext.Migrate())
	require.NoError(t, dbContext.Ping(context.Background()))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func Test_EnsureSqliteDir_SkipsInMemoryDatabases(t *testing.T) {
	for _, dsn := range []string{":memory:", "file::memory:?cache=shared", "file:jobs?mode=memory"} {
		assert.NoError(t, ensureSqliteDir(dsn), dsn)
	}
}

func Test_GormErrors_AreLoggedAsDbErrors(t *testing.T) {
	dbContext := openSqlite(t, filepath.Join(t.TempDir(), "jobs.db"))
	hook := test.NewGlobal()
	defer hook.Reset()

	var count int64
	err := dbContext.DB.Table("missing_table").Count(&count).Error
	require.Error(t, err)

	var dbErrors []*log.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Data[logger.ErrorTypeField] == logger.ErrorTypeDb {
			dbErrors = append(dbErrors, entry)
		}
	}
	require.NotEmpty(t, dbErrors)
	assert.Equal(t, log.ErrorLevel, dbErrors[0].Level)
	assert.Contains(t, dbErrors[0].Message, "missing_table")
}
