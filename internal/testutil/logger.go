// Package testutil provides shared test helpers.
package testutil

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/leapstack-labs/chainsql/internal/logging"
)

// NewTestLogger returns a debug-level logger that writes through the zerolog
// handler to t.Log. Output only appears on failure or with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	zl := zerolog.New(zerolog.ConsoleWriter{Out: testWriter{t}, NoColor: true, TimeFormat: "15:04:05"}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
	return slog.New(logging.NewHandler(zl))
}

// Capture is a logger whose JSON output is kept for assertions.
type Capture struct {
	Logger *slog.Logger

	mu  sync.Mutex
	buf bytes.Buffer
}

// NewCapture returns a debug-level Capture.
func NewCapture() *Capture {
	c := &Capture{}
	c.Logger = slog.New(logging.NewHandler(zerolog.New(captureWriter{c}).Level(zerolog.DebugLevel)))
	return c
}

// String returns everything logged so far, one JSON object per line.
func (c *Capture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

type captureWriter struct{ c *Capture }

func (w captureWriter) Write(p []byte) (int, error) {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()
	return w.c.buf.Write(p)
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}
