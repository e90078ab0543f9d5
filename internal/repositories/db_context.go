package repositories

import (
	"context"
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/maxaizer/job-market-api/internal/config"
	"github.com/maxaizer/job-market-api/internal/entities"
	"github.com/maxaizer/job-market-api/internal/logger"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type DbContext struct {
	DB   *gorm.DB
	pool *pgxpool.Pool
}

func NewDbContext(ctx context.Context, cfg config.DBConfig) (*DbContext, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return newPostgresContext(ctx, cfg)
	default:
		return newSqliteContext(cfg)
	}
}

func newSqliteContext(cfg config.DBConfig) (*DbContext, error) {
	if err := ensureSqliteDir(cfg.ConnectionString); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(cfg.ConnectionString), gormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &DbContext{DB: db}, nil
}

func newPostgresContext(ctx context.Context, cfg config.DBConfig) (*DbContext, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	if cfg.ConnMaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}), gormConfig())
	if err != nil {
		pool.Close()
		return nil, err
	}

	return &DbContext{DB: db, pool: pool}, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.New(gormLogWriter{}, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Error,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// gormLogWriter reports gorm's error lines as db errors.
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...any) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf(format, args...)
}

// ensureSqliteDir creates the parent directory of a file database.
func ensureSqliteDir(connectionString string) error {
	path := strings.TrimPrefix(connectionString, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.HasPrefix(path, ":memory:") || strings.Contains(connectionString, "mode=memory") {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("can't create sqlite directory %s: %w", dir, err)
	}
	return nil
}

func (c *DbContext) Migrate() error {
	models := []any{
		entities.Company{},
		entities.Location{},
		entities.Industry{},
		entities.EmploymentType{},
		entities.JobLevel{},
		entities.Skill{},
		entities.Job{},
		entities.JobSkill{},
		entities.DashboardCache{},
	}

	for _, model := range models {
		if err := c.DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T entity: %w", model, err)
		}
	}

	return nil
}

func (c *DbContext) Ping(ctx context.Context) error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	err = db.Close()
	if c.pool != nil {
		c.pool.Close()
	}
	return err
}
