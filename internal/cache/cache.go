package cache

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-market-api/internal/config"
	"github.com/maxaizer/job-market-api/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"time"
)

var ErrNotFound = errors.New("key not found in cache")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Open builds the store selected by cfg. It returns nil when caching is disabled.
func Open(ctx context.Context, cfg config.CacheConfig, db *gorm.DB) (Store, error) {
	switch cfg.Backend {
	case config.CacheMemory:
		return NewMemory(cfg.TTL), nil
	case config.CacheDatabase:
		return NewDatabase(repositories.NewCacheEntriesRepository(db)), nil
	case config.CacheRedis:
		store, err := NewRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.CacheNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
