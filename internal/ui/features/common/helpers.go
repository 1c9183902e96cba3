package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/adminshell/internal/ui/components"
)

// ReadSignals decodes the shell signals of a datastar request.
// It must run before datastar.NewSSE, which takes over the response.
func ReadSignals(r *http.Request) (components.Signals, error) {
	var signals components.Signals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		return signals, fmt.Errorf("failed to read signals: %w", err)
	}
	if signals.MountID == "" {
		return signals, errors.New("missing mountId signal")
	}
	return signals, nil
}

// ViewportHint returns the last viewport width stored in the session,
// or fallback when the browser has not reported one yet.
func ViewportHint(store sessions.Store, r *http.Request, fallback int) int {
	session, err := store.Get(r, SessionName)
	if err != nil {
		return fallback
	}
	if width, ok := session.Values[viewportWidthKey].(int); ok && width > 0 {
		return width
	}
	return fallback
}

// SaveViewportHint stores width in the session. Call it before any body is
// written, the session travels in a Set-Cookie header.
func SaveViewportHint(store sessions.Store, w http.ResponseWriter, r *http.Request, width int) error {
	if width <= 0 {
		return nil
	}
	session, err := store.Get(r, SessionName)
	if err != nil && session == nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	session.Values[viewportWidthKey] = width
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
