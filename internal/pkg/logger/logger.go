// Package logger provides the application-wide structured logger. Output is
// JSON to stdout, with an optional file sink for local runs.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/piresc/nebengtrip/internal/pkg/models"
)

// AppLogger wraps logrus with the marketplace's output configuration
type AppLogger struct {
	*logrus.Logger
	file *os.File
}

// NewAppLogger creates a new application logger
func NewAppLogger(config models.LoggerConfig) (*AppLogger, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	appLogger := &AppLogger{Logger: l}

	if config.FilePath != "" {
		if err := appLogger.setupFileOutput(config.FilePath); err != nil {
			return nil, fmt.Errorf("failed to setup file output: %w", err)
		}
	}

	return appLogger, nil
}

func (al *AppLogger) setupFileOutput(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	al.file = file
	al.SetOutput(io.MultiWriter(os.Stdout, file))
	return nil
}

// Close releases the file sink, if any
func (al *AppLogger) Close() error {
	if al.file != nil {
		return al.file.Close()
	}
	return nil
}

var global = logrus.New()

// SetGlobalLogger installs the logger used by package-level helpers
func SetGlobalLogger(l *AppLogger) {
	global = l.Logger
}

// WithFields returns an entry on the global logger
func WithFields(fields logrus.Fields) *logrus.Entry {
	return global.WithFields(fields)
}

// Info logs at info level on the global logger
func Info(args ...interface{}) { global.Info(args...) }

// Warn logs at warn level on the global logger
func Warn(args ...interface{}) { global.Warn(args...) }

// Error logs at error level on the global logger
func Error(args ...interface{}) { global.Error(args...) }
