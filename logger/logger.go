package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs a JSON slog logger at the given level as the process default.
func Init(levelStr string) *slog.Logger {
	return InitWithWriter(os.Stdout, levelStr)
}

func InitWithWriter(w io.Writer, levelStr string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(levelStr),
	})

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
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
