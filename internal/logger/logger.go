package logger

import (
	"context"
	"github.com/maxaizer/job-market-api/internal/config"
	log "github.com/sirupsen/logrus"
	"io"
	"os"
	"path/filepath"
)

const ErrorTypeField = "error_type"

const (
	ErrorTypeDb    = "db"
	ErrorTypeCache = "cache"
	ErrorTypeHttp  = "http"
)

const timestampFormat = "2006-01-02T15:04:05.000 -0700"

var (
	logFile  *os.File
	stopLoki func()
)

func Setup(ctx context.Context, cfg config.LoggerConfig) {

	writers := []io.Writer{os.Stdout}

	if cfg.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0755); err != nil {
			log.Fatalf("Failed to create log directory: %v", err)
		}

		file, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		logFile = file
		writers = append(writers, file)
	}

	log.SetOutput(io.MultiWriter(writers...))
	log.SetFormatter(newFormatter(cfg))
	log.SetLevel(parseLevel(cfg))

	addPrometheusHook()

	if cfg.LokiURL != "" {
		stop, err := addLokiHook(ctx, cfg, log.GetLevel())
		if err != nil {
			log.Errorf("Failed to enable Loki logging: %v", err)
		} else {
			stopLoki = stop
		}
	}
}

func newFormatter(cfg config.LoggerConfig) log.Formatter {
	if cfg.Format == config.FormatJSON {
		return &log.JSONFormatter{TimestampFormat: timestampFormat}
	}
	return &log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	}
}

func parseLevel(cfg config.LoggerConfig) log.Level {
	switch cfg.LogLevel {
	case config.LevelInfo:
		return log.InfoLevel
	case config.LevelDebug:
		return log.DebugLevel
	case config.LevelWarning:
		return log.WarnLevel
	case config.LevelError:
		return log.ErrorLevel
	case config.LevelFatal:
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

func Cleanup() {
	if stopLoki != nil {
		stopLoki()
	}
	if logFile != nil {
		_ = logFile.Close()
	}
}
