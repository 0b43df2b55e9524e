// Package logging holds the process-wide zap logger used by the pipeline.
package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
	mu         sync.RWMutex
)

// Logger returns the shared logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		if logger == nil {
			logger = zap.NewNop()
		}
	})

	mu.RLock()
	defer mu.RUnlock()

	return logger
}

// SetLogger replaces the shared logger. A nil logger restores the no-op one.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}

	mu.Lock()
	logger = l
	mu.Unlock()
}

// New builds the CLI logger: warnings and above by default, debug output when
// verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = ""

	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	return cfg.Build()
}
