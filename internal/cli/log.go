// Package cli implements the psdkit command-line interface.
//
// The CLI is built with cobra and logs through charmbracelet/log, which is
// also installed as the slog handler of the psdkit library so pipeline
// diagnostics show up in the same stream.
//
// # Commands
//
//   - inspect: print canvas size, resolution and layers of a document
//   - restore: fold a template back into its flat design, with previews
//   - unwrap: unfold a flat design around its view
//   - stroke: build stroked versions of a template
//   - generate: fill a template from an image and unfold it
//   - preview: render the flattened, trimmed preview of a document
//   - scale: rescale a document
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gogpu/psdkit"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// installLogger routes library diagnostics to l.
func installLogger(l *log.Logger) {
	psdkit.SetLogger(slog.New(l))
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
