// Package features provides shared test utilities for UI feature tests.
package features

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/adminshell/internal/testutil"
	"github.com/leapstack-labs/adminshell/internal/ui/components"
	"github.com/leapstack-labs/adminshell/internal/ui/mounts"
)

// TestSessionSecret signs cookies in feature tests.
const TestSessionSecret = "test-secret-key-32-bytes-long!!"

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Mounts       *mounts.Registry
	SessionStore *sessions.CookieStore
	Logger       *slog.Logger
	Logs         *testutil.LogRecorder
}

// SetupTestFixture creates a fixture with an empty mount registry.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	logs := testutil.NewLogRecorder(t)
	return &TestFixture{
		Mounts:       mounts.New(),
		SessionStore: sessions.NewCookieStore([]byte(TestSessionSecret)),
		Logger:       logs.Logger(),
		Logs:         logs,
	}
}

// StreamRequest builds a datastar GET request carrying signals in the query.
func StreamRequest(t *testing.T, path string, signals components.Signals) *http.Request {
	t.Helper()

	body, err := json.Marshal(signals)
	if err != nil {
		t.Fatalf("marshal signals: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, path+"?datastar="+url.QueryEscape(string(body)), nil)
	req.Header.Set("Datastar-Request", "true")
	return req
}

// ActionRequest builds a datastar POST request carrying signals in the body.
func ActionRequest(t *testing.T, path string, signals components.Signals) *http.Request {
	t.Helper()

	body, err := json.Marshal(signals)
	if err != nil {
		t.Fatalf("marshal signals: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Datastar-Request", "true")
	return req
}

// StreamRecorder is a ResponseWriter that tests may read while a stream
// handler is still writing to it from another goroutine.
type StreamRecorder struct {
	mu     sync.Mutex
	header http.Header
	code   int
	body   bytes.Buffer
}

// NewStreamRecorder returns an empty StreamRecorder.
func NewStreamRecorder() *StreamRecorder {
	return &StreamRecorder{header: make(http.Header)}
}

// Header implements http.ResponseWriter.
func (r *StreamRecorder) Header() http.Header {
	return r.header
}

// WriteHeader implements http.ResponseWriter.
func (r *StreamRecorder) WriteHeader(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.code == 0 {
		r.code = code
	}
}

// Write implements http.ResponseWriter.
func (r *StreamRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.code == 0 {
		r.code = http.StatusOK
	}
	return r.body.Write(p)
}

// Flush implements http.Flusher. Writes are already visible to readers.
func (r *StreamRecorder) Flush() {}

// Body returns everything written so far.
func (r *StreamRecorder) Body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.String()
}

// Count returns how many times substr occurs in the body so far.
func (r *StreamRecorder) Count(substr string) int {
	return strings.Count(r.Body(), substr)
}
