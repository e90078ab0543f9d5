package cache

import (
	"context"
	gocache "github.com/patrickmn/go-cache"
	"time"
)

type Memory struct {
	cache *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{cache: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	if value, found := m.cache.Get(key); found {
		return value.([]byte), nil
	}
	return nil, ErrNotFound
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.cache.Set(key, value, ttl)
	return nil
}

func (m *Memory) Close() error {
	m.cache.Flush()
	return nil
}
