package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
)

const logFileName = "assistant.log"

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init builds the process logger. Output goes to stderr and, when dir is
// set, to a JSON log file inside it.
func Init(verbose bool, dir string) error {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
		cfg.OutputPaths = append(cfg.OutputPaths, filepath.Join(dir, logFileName))
	}

	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	mu.Lock()
	logger = built
	mu.Unlock()
	zap.ReplaceGlobals(built)

	return nil
}

// SetLogger swaps the process logger and returns a function restoring the
// previous one.
func SetLogger(l *zap.Logger) func() {
	mu.Lock()
	previous := logger
	logger = l
	mu.Unlock()

	return func() {
		mu.Lock()
		logger = previous
		mu.Unlock()
	}
}

// Close flushes buffered log entries.
func Close() {
	mu.RLock()
	l := logger
	mu.RUnlock()
	_ = l.Sync()
}

func sugar() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Sugar()
}

// Debug logs a debug message
func Debug(msg string, keysAndValues ...any) {
	sugar().Debugw(msg, keysAndValues...)
}

// Info logs an info message
func Info(msg string, keysAndValues ...any) {
	sugar().Infow(msg, keysAndValues...)
}

// Warn logs a warning message
func Warn(msg string, keysAndValues ...any) {
	sugar().Warnw(msg, keysAndValues...)
}

// Error logs an error message
func Error(msg string, keysAndValues ...any) {
	sugar().Errorw(msg, keysAndValues...)
}
