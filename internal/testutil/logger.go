// Package testutil provides test helpers shared across packages.
package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// NewTestLogger returns a debug-level logger that writes to t.Log(), so
// output only shows for failing tests or with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return NewLogRecorder(t).Logger()
}

// LogRecorder keeps the message of every record logged through its Logger
// and mirrors the formatted record to t.Log. Records arriving after the
// test has finished, as from a stream goroutine still winding down, are
// kept but not mirrored.
type LogRecorder struct {
	tb testing.TB

	mu       sync.Mutex
	finished bool
	messages []string
}

// NewLogRecorder creates a LogRecorder tied to the lifetime of t.
func NewLogRecorder(t testing.TB) *LogRecorder {
	t.Helper()
	r := &LogRecorder{tb: t}
	t.Cleanup(func() {
		r.mu.Lock()
		r.finished = true
		r.mu.Unlock()
	})
	return r
}

// Logger returns a debug-level logger feeding the recorder.
func (r *LogRecorder) Logger() *slog.Logger {
	text := slog.NewTextHandler(r, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(recordingHandler{Handler: text, rec: r})
}

// Messages returns the messages logged so far, in order.
func (r *LogRecorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Write receives formatted records from the text handler.
func (r *LogRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	finished := r.finished
	r.mu.Unlock()

	if !finished {
		r.tb.Log(string(p))
	}
	return len(p), nil
}

type recordingHandler struct {
	slog.Handler
	rec *LogRecorder
}

func (h recordingHandler) Handle(ctx context.Context, record slog.Record) error {
	h.rec.mu.Lock()
	h.rec.messages = append(h.rec.messages, record.Message)
	h.rec.mu.Unlock()
	return h.Handler.Handle(ctx, record)
}

func (h recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return recordingHandler{Handler: h.Handler.WithAttrs(attrs), rec: h.rec}
}

func (h recordingHandler) WithGroup(name string) slog.Handler {
	return recordingHandler{Handler: h.Handler.WithGroup(name), rec: h.rec}
}
