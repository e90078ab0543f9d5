package config

import (
	"fmt"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"time"
)

type cacheBackend string

const (
	CacheNone     cacheBackend = "none"
	CacheMemory   cacheBackend = "memory"
	CacheDatabase cacheBackend = "database"
	CacheRedis    cacheBackend = "redis"
)

type CacheConfig struct {
	Backend         cacheBackend  `mapstructure:"backend"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupSchedule string        `mapstructure:"cleanup_schedule"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
}

func (config CacheConfig) Enabled() bool {
	return config.Backend != CacheNone
}

func (config CacheConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("cache.backend", string(CacheNone))
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.cleanup_schedule", "*/15 * * * *")
}

func (config CacheConfig) validate() error {
	switch config.Backend {
	case CacheNone:
		return nil
	case CacheMemory:
	case CacheDatabase:
		if _, err := cron.ParseStandard(config.CleanupSchedule); err != nil {
			return fmt.Errorf("invalid cleanup_schedule %q: %w", config.CleanupSchedule, err)
		}
	case CacheRedis:
		if config.RedisAddr == "" {
			return fmt.Errorf("missing variable: redis_addr")
		}
	default:
		return fmt.Errorf("unknown cache backend %q", config.Backend)
	}

	if config.TTL <= 0 {
		return fmt.Errorf("cache ttl must be greater than zero")
	}
	return nil
}

func (config CacheConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"cache.backend":        "CACHE_BACKEND",
		"cache.ttl":            "CACHE_TTL",
		"cache.redis_addr":     "REDIS_ADDR",
		"cache.redis_password": "REDIS_PASSWORD",
	})
}
