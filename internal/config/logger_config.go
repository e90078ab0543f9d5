package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
)

type logLevel string

const (
	LevelInfo    logLevel = "INFO"
	LevelDebug   logLevel = "DEBUG"
	LevelWarning logLevel = "WARNING"
	LevelError   logLevel = "ERROR"
	LevelFatal   logLevel = "FATAL"
)

type logFormat string

const (
	FormatText logFormat = "text"
	FormatJSON logFormat = "json"
)

type LoggerConfig struct {
	LogLevel     logLevel  `mapstructure:"log_level"`
	Format       logFormat `mapstructure:"format"`
	AppName      string    `mapstructure:"app_name"`
	LokiURL      string    `mapstructure:"loki_url"`
	LokiUser     string    `mapstructure:"loki_user"`
	LokiPassword string    `mapstructure:"loki_password"`
	OutputFile   string    `mapstructure:"output_file"`
}

func (config LoggerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", string(LevelInfo))
	v.SetDefault("logger.format", string(FormatText))
	v.SetDefault("logger.app_name", "job-market-api")
}

func (config LoggerConfig) validate() error {
	var errs []error

	if config.LogLevel == "" {
		errs = append(errs, fmt.Errorf("missing variable: log_level"))
	}
	if config.Format != FormatText && config.Format != FormatJSON {
		errs = append(errs, fmt.Errorf("unknown log format %q", config.Format))
	}
	if config.LokiURL != "" && config.AppName == "" {
		errs = append(errs, fmt.Errorf("missing variable: app_name is required with loki_url"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config LoggerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"logger.loki_url":      "LOKI_URL",
		"logger.loki_user":     "LOKI_USER",
		"logger.loki_password": "LOKI_PASSWORD",
		"logger.app_name":      "APP_NAME",
		"logger.log_level":     "LOG_LEVEL",
		"logger.output_file":   "LOG_OUTPUT_FILE",
	})
}
