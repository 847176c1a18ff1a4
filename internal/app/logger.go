package app

import (
	"io"
	"log/slog"
)

// newLogger creates an isolated slog.Logger writing to outW; it does not set
// the global logger. Tracing logs at debug level, so it lowers the level to
// debug.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if cfg.LogLevel != "" {
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			level = slog.LevelWarn
		}
	}
	if cfg.Trace {
		level = min(level, slog.LevelDebug)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch cfg.LogFormat {
	case "json":
		handler = slog.NewJSONHandler(outW, handlerOpts)
	default:
		handler = slog.NewTextHandler(outW, handlerOpts)
	}
	return slog.New(handler)
}
