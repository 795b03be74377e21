// Package logging provides structured file logging for the jpegfit CLI.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Logger writes structured records to a timestamped log file. A nil Logger
// is valid and discards everything, so callers never branch on whether
// file logging is enabled.
type Logger struct {
	log      *slog.Logger
	file     *os.File
	filePath string
}

// Setup creates a logger that writes to a timestamped log file under
// logDir. Returns nil if logging is disabled (noLog=true).
func Setup(logDir string, verbose, noLog bool) (*Logger, error) {
	if noLog {
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	// Generate timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("jpegfit_run_%s.log", timestamp)
	filePath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", filePath, err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})

	l := &Logger{
		log:      slog.New(handler),
		file:     file,
		filePath: filePath,
	}

	l.Info("jpegfit starting", "log_file", filePath)
	if verbose {
		l.Debug("debug level logging enabled")
	}

	return l, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// FilePath returns the path to the log file.
func (l *Logger) FilePath() string {
	if l == nil {
		return ""
	}
	return l.filePath
}

// Debug logs a debug-level message with key-value attributes.
func (l *Logger) Debug(msg string, args ...any) {
	if l == nil {
		return
	}
	l.log.Debug(msg, args...)
}

// Info logs an info-level message with key-value attributes.
func (l *Logger) Info(msg string, args ...any) {
	if l == nil {
		return
	}
	l.log.Info(msg, args...)
}

// Warn logs a warning message with key-value attributes.
func (l *Logger) Warn(msg string, args ...any) {
	if l == nil {
		return
	}
	l.log.Warn(msg, args...)
}

// Error logs an error message with key-value attributes.
func (l *Logger) Error(msg string, args ...any) {
	if l == nil {
		return
	}
	l.log.Error(msg, args...)
}
