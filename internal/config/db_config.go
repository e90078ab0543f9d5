package config

import (
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type dbDriver string

const (
	DriverSqlite   dbDriver = "sqlite"
	DriverPostgres dbDriver = "postgres"
)

type DBConfig struct {
	Driver           dbDriver      `mapstructure:"driver"`
	ConnectionString string        `mapstructure:"connection_string"`
	MaxOpenConns     int           `mapstructure:"max_open_conns"`
	MaxIdleConns     int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime  time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate      bool          `mapstructure:"auto_migrate"`
}

func (config DBConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", string(DriverSqlite))
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	if config.Driver != DriverSqlite && config.Driver != DriverPostgres {
		return fmt.Errorf("unsupported db driver %q", config.Driver)
	}
	if config.MaxOpenConns <= 0 {
		return fmt.Errorf("max_open_conns must be greater than zero")
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"db.driver":            "DB_DRIVER",
		"db.connection_string": "DB_CONNECTION_STRING",
		"db.max_open_conns":    "DB_MAX_OPEN_CONNS",
		"db.auto_migrate":      "DB_AUTO_MIGRATE",
	})
}
