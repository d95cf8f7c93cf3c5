package logger

import (
	"io"
	"log/slog"
)

// Setup installs a text slog handler on w as the default logger.
// Debug records are emitted only when verbose is set.
func Setup(verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	return l
}
