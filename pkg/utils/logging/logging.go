package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
)

type ctxKey struct{}

var defaultLogger *slog.Logger

func init() {
	defaultLogger = newLogger(os.Stdout, slog.LevelInfo, FormatConsole)
}

// Format is the log output format
type Format int

const (
	FormatConsole Format = iota
	FormatJSON
)

// Default returns the process-wide logger.
func Default() *slog.Logger {
	return defaultLogger
}

// With returns a new context with the given logger embedded.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From extracts a logger from the context. Falls back to the default logger
// when the context has none.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}

// Configure replaces the default logger. Level is one of debug, info, warn
// and error; format is "console" or "json".
func Configure(w io.Writer, level, format string) error {
	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "info", "":
		lv = slog.LevelInfo
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		return goerr.New("invalid log level", goerr.V("level", level))
	}

	var f Format
	switch strings.ToLower(format) {
	case "console", "":
		f = FormatConsole
	case "json":
		f = FormatJSON
	default:
		return goerr.New("invalid log format", goerr.V("format", format))
	}

	defaultLogger = newLogger(w, lv, f)
	return nil
}

// redactor masks secret-bearing fields before they reach any log sink.
var redactor = masq.New(
	masq.WithFieldName("HashedPassword"),
	masq.WithFieldName("Authorization"),
	masq.WithFieldPrefix("secret"),
	masq.WithFieldPrefix("Secret"),
)

func newLogger(w io.Writer, level slog.Level, format Format) *slog.Logger {
	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: redactor,
		})
	default:
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithSource(true),
			clog.WithReplaceAttr(redactor),
		)
	}

	return slog.New(handler)
}
