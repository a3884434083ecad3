// Package logger provides the process-wide structured logger.
package logger

import (
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	mu   sync.RWMutex
	root = hclog.New(&hclog.LoggerOptions{
		Name:   "preditor",
		Level:  hclog.Info,
		Output: os.Stderr,
	})
)

// SetLevel adjusts the global log level ("debug", "info", "warn", "error").
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	root.SetLevel(hclog.LevelFromString(level))
}

// Get returns the underlying logger for components that carry their own.
func Get() hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Info logs informational messages with key-value pairs
func Info(msg string, args ...interface{}) {
	Get().Info(msg, args...)
}

// Warn logs warning messages with key-value pairs
func Warn(msg string, args ...interface{}) {
	Get().Warn(msg, args...)
}

// Error logs error messages with key-value pairs
func Error(msg string, args ...interface{}) {
	Get().Error(msg, args...)
}

// Debug logs debug messages with key-value pairs
func Debug(msg string, args ...interface{}) {
	Get().Debug(msg, args...)
}
