package slogutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"jref/internal/config"
)

// LoggerFactory creates the CLI logger from config and flags.
// Precedence: --quiet wins, then -v counts, then the configured level.
type LoggerFactory struct {
	projectRoot string
	config      *config.Config
	verbosity   int
	quiet       bool
	closers     []io.Closer
}

// NewLoggerFactory creates a new logger factory.
func NewLoggerFactory(projectRoot string, cfg *config.Config, verbosity int, quiet bool) *LoggerFactory {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &LoggerFactory{
		projectRoot: projectRoot,
		config:      cfg,
		verbosity:   verbosity,
		quiet:       quiet,
		closers:     make([]io.Closer, 0),
	}
}

// CLILogger builds the root logger: stderr at the effective level, teed
// with a file logger when the config names one. Never fails; a broken
// log file degrades to stderr-only.
func (f *LoggerFactory) CLILogger() *slog.Logger {
	level := f.effectiveLevel()
	stderr := NewJrefHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	logFile := f.config.Logging.File
	if logFile == "" {
		return slog.New(stderr)
	}
	if !filepath.IsAbs(logFile) && f.projectRoot != "" {
		logFile = filepath.Join(f.projectRoot, ".jref", logFile)
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return slog.New(stderr)
	}
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return slog.New(stderr)
	}
	f.closers = append(f.closers, file)

	// The file always records at the configured level even when the
	// terminal is quieted.
	fileLevel := LevelFromString(f.config.Logging.Level)
	fileHandler := NewJrefHandler(file, &slog.HandlerOptions{Level: fileLevel})
	return NewTeeLogger(stderr, fileHandler)
}

// Close releases any log files opened by the factory.
func (f *LoggerFactory) Close() {
	for _, c := range f.closers {
		c.Close()
	}
	f.closers = f.closers[:0]
}

// effectiveLevel resolves the stderr level from flags and config.
func (f *LoggerFactory) effectiveLevel() slog.Level {
	if f.quiet {
		return LevelFromVerbosity(0, true)
	}
	if f.verbosity > 0 {
		return LevelFromVerbosity(f.verbosity, false)
	}
	if f.config.Logging.Level != "" {
		return LevelFromString(f.config.Logging.Level)
	}
	return LevelFromVerbosity(0, false)
}
