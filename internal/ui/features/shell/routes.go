// Package shell provides the mount stream and event endpoints of the
// admin layout shell.
package shell

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/adminshell/internal/ui/components"
	"github.com/leapstack-labs/adminshell/internal/ui/mounts"
)

// SetupRoutes registers the shell routes on the router.
func SetupRoutes(
	router chi.Router,
	registry *mounts.Registry,
	sessionStore sessions.Store,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(registry, sessionStore, logger)

	// SSE routes (long-lived streams)
	router.Get(components.StreamPath, handlers.StreamSSE)

	// Actions
	router.Post(components.ViewportPath, handlers.Viewport)
	router.Post(components.TogglePath, handlers.Toggle)
	router.Post(components.NavigatePath, handlers.Navigate)

	return nil
}
