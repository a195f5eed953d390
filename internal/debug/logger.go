package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	writer io.Writer = io.Discard
	logger           = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// SetOutput sets the debug output destination.
// LOG_LEVEL (debug|info|warn|error) and LOG_FORMAT (text|json) shape the
// structured logger; the level defaults to debug.
func SetOutput(w io.Writer) {
	writer = w
	logger = newLogger(w)
}

func newLogger(w io.Writer) *slog.Logger {
	lvl := slog.LevelDebug
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Log writes a debug message
func Log(format string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(format, args...))
}

// Logger returns the structured logger behind Log
func Logger() *slog.Logger {
	return logger
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	return writer != io.Discard
}
