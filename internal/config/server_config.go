package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
	"time"
)

type environment string

const (
	Development environment = "development"
	Production  environment = "production"
)

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	Env               environment   `mapstructure:"env"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
	RateLimitDisabled bool          `mapstructure:"rate_limit_disabled"`
	MetricsEnabled    bool          `mapstructure:"metrics_enabled"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

func (config ServerConfig) IsProduction() bool {
	return config.Env == Production
}

func (config ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", config.Port)
}

func (config ServerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8002)
	v.SetDefault("server.env", string(Development))
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3100", "http://localhost:3000"})
	v.SetDefault("server.rate_limit_requests", 1000)
	v.SetDefault("server.rate_limit_window", time.Minute)
	v.SetDefault("server.metrics_enabled", true)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

func (config ServerConfig) validate() error {

	var problems []string

	if config.Port <= 0 || config.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d", config.Port))
	}

	if config.Env != Development && config.Env != Production {
		problems = append(problems, fmt.Sprintf("unknown env %q", config.Env))
	}

	if !config.RateLimitDisabled && (config.RateLimitRequests <= 0 || config.RateLimitWindow <= 0) {
		problems = append(problems, "rate limit requires positive rate_limit_requests and rate_limit_window")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid variables: %s", strings.Join(problems, ", "))
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"server.port":                "PORT",
		"server.env":                 "ENV",
		"server.allowed_origins":     "ALLOWED_ORIGINS",
		"server.rate_limit_disabled": "RATE_LIMIT_DISABLED",
		"server.metrics_enabled":     "METRICS_ENABLED",
	})
}
