package admin

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/adminshell/internal/layout"
)

// SetupRoutes registers one page route per destination, plus the root redirect.
func SetupRoutes(
	router chi.Router,
	views Views,
	sessionStore sessions.Store,
	opts Options,
) error {
	handlers := NewHandlers(views, sessionStore, opts)

	router.Get("/", handlers.Root)
	for _, d := range layout.Destinations() {
		router.Get(d.Path, handlers.Page(d))
	}

	return nil
}
