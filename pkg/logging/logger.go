package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// EnvLogLevel selects the log level (debug, info, warn, error).
	EnvLogLevel = "LOG_LEVEL"

	// EnvLogFile, when set, tees logs into a size-rotated file at that path.
	EnvLogFile = "LOG_FILE"

	logFileMaxSizeMB  = 50
	logFileMaxBackups = 3
	logFileMaxAgeDays = 7
)

// ParseLogLevel converts a level name into a slog.Level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger returns a JSON logger tagged with module and version.
// Debug level adds source locations.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return newLogger(output(), module, version, ParseLogLevel(level))
}

// SetDefaultStructuredLogger installs the structured logger as the slog default,
// using LOG_LEVEL for verbosity.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv(EnvLogLevel))
}

// SetDefaultStructuredLoggerWithLevel installs the structured logger with an explicit level.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// NewLogLogger adapts the default slog logger to the standard library log package.
func NewLogLogger(level slog.Level, addSource bool) *log.Logger {
	h := slog.NewJSONHandler(output(), &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	})
	return slog.NewLogLogger(h, level)
}

func newLogger(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(h).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

// output returns stderr, optionally tee'd into a rotating log file.
func output() io.Writer {
	path := strings.TrimSpace(os.Getenv(EnvLogFile))
	if path == "" {
		return os.Stderr
	}
	return io.MultiWriter(os.Stderr, NewFileWriter(path))
}

// NewFileWriter returns a size-rotated log file writer.
func NewFileWriter(path string) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
		Compress:   true,
	}
}
