package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Text output on stdout keeps local logs
// readable; handlers attach request-scoped attributes per call.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
