// Package cli implements the repodash command-line interface.
//
// This package provides commands for listing, browsing and rendering a
// repository catalog, serving a built dashboard directory locally, and
// managing the catalog response cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - list: Print the catalog as a table, cards or JSON
//   - browse: Interactive dashboard with filters and copy buttons
//   - render: Write the dashboard as a static HTML page
//   - languages: Print the language filter set
//   - serve: Preview a built dashboard directory over HTTP
//   - cache: Manage the catalog response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
// Library packages report through observability hooks, which
// [installHooks] turns into debug lines.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wronai/repodash/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded 42 repositories from repos.json (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// logHooks forwards library events to the logger.
type logHooks struct {
	logger *log.Logger
}

// installHooks routes catalog, cache and HTTP events to l.
func installHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetCatalogHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnAttempt(_ context.Context, location string) {
	h.logger.Debug("trying catalog", "location", location)
}

func (h logHooks) OnAttemptFailed(_ context.Context, location string, err error) {
	h.logger.Debug("catalog candidate failed", "location", location, "error", err)
}

func (h logHooks) OnWarning(_ context.Context, location, msg string) {
	h.logger.Warn(msg, "location", location)
}

func (h logHooks) OnLoaded(_ context.Context, location string, count int, d time.Duration) {
	h.logger.Debug("catalog loaded", "location", location, "repositories", count, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnExhausted(_ context.Context, attempts int, err error) {
	h.logger.Debug("all catalog candidates failed", "attempts", attempts, "error", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "error", err)
}
