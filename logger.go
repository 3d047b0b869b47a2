package psdkit

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with running pipelines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for psdkit and its sub-packages.
// By default psdkit produces no log output. Pass nil to restore the
// silent default.
//
// Log levels used by psdkit:
//   - [slog.LevelDebug]: per-layer detail (bounds, sizes, skipped layers)
//   - [slog.LevelInfo]: pipeline stages and produced artifacts
//   - [slog.LevelWarn]: layers dropped or emptied because they fall outside the canvas
//
// Example:
//
//	psdkit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by psdkit. The psd codec
// receives it through psd.WithLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
