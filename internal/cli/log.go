// Package cli implements the echart command-line interface.
//
// # Commands
//
//   - init: write an example chart file
//   - render: render a chart file to SVG, PNG, PDF or JSON
//   - layout: print the computed layers as a table
//   - inspect: browse the layers interactively
//   - serve: run the HTTP rendering service
//   - cache: manage the local layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context. Calls the chart library rejects (a zero
// canvas size, a too-short series) are reported as warnings through
// [DiagnosticLogger].
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of an operation. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered 2 files (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// DiagnosticLogger reports rejected chart calls as warnings. Register it
// with observability.SetDiagnosticHooks.
type DiagnosticLogger struct {
	Logger *log.Logger
}

// OnReject implements observability.DiagnosticHooks.
func (d DiagnosticLogger) OnReject(component, code, message string) {
	d.Logger.Warn("rejected", "component", component, "code", code, "msg", message)
}
