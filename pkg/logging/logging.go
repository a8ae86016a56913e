package logging

import (
	"io"
	"log/slog"
	"os"
)

var osOpenFile = os.OpenFile
var stderr io.Writer = os.Stderr

// ParseLevel maps a settings level name to a slog level; unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init builds a text logger writing to stderr and, when logFile is set, appending to it.
// The returned close func releases the log file.
func Init(level string, logFile string) (*slog.Logger, func() error, error) {
	writers := []io.Writer{stderr}
	closeFn := func() error { return nil }

	if logFile != "" {
		f, err := osOpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closeFn, err
		}
		writers = append(writers, f)
		closeFn = f.Close
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Shorten time format
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String("time", a.Value.Time().Format("15:04:05"))
			}
			return a
		},
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// Discard is a logger that drops everything; services use it when none is configured.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
