// internal/logger/logger.go
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"tenant-portal/internal/config"
)

var log = logrus.New()

// Initialize configures the shared logger from config. Safe to call
// once at startup before anything else logs.
func Initialize(cfg *config.Config) error {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Log.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.Log.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.FilePath), 0755); err != nil {
			return err
		}
		rotated := &lumberjack.Logger{
			Filename: cfg.Log.FilePath,
			MaxSize:  cfg.Log.MaxSize,
			MaxAge:   cfg.Log.MaxAge,
		}
		log.SetOutput(io.MultiWriter(os.Stdout, rotated))
	}

	return nil
}

// Get returns the shared logger instance.
func Get() *logrus.Logger {
	return log
}
