package cache

import (
	"context"
	"time"
)

type cacheEntries interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// Database keeps payloads in the dashboard_cache table.
type Database struct {
	entries cacheEntries
}

func NewDatabase(entries cacheEntries) *Database {
	return &Database{entries: entries}
}

func (d *Database) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := d.entries.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNotFound
	}
	return data, nil
}

func (d *Database) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return d.entries.Save(ctx, key, value, ttl)
}

func (d *Database) Close() error {
	return nil
}
