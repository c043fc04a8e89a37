package logger

import (
	"log/slog"
	"os"
)

// New returns the application logger. JSON output keeps log aggregation
// simple in the deployment environments this service targets.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
