package logging

import (
	"log/slog"
	"os"
	"sync"
)

var once sync.Once

// Init configures the process-wide slog default. Level is one of debug,
// info, warn, error; format is text or json. Unknown values fall back to
// info and text. Logs go to stderr so command output stays clean on stdout.
func Init(level, format string) {
	once.Do(func() {
		var lvl slog.Level
		switch level {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		default:
			lvl = slog.LevelInfo
		}

		opts := &slog.HandlerOptions{Level: lvl}

		var handler slog.Handler
		if format == "json" {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		} else {
			handler = slog.NewTextHandler(os.Stderr, opts)
		}
		slog.SetDefault(slog.New(handler))
	})
}
