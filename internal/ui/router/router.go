// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	adminFeature "github.com/leapstack-labs/adminshell/internal/ui/features/admin"
	shellFeature "github.com/leapstack-labs/adminshell/internal/ui/features/shell"
	"github.com/leapstack-labs/adminshell/internal/ui/mounts"
	"github.com/leapstack-labs/adminshell/internal/ui/resources"
)

// Deps holds what the feature routes need.
type Deps struct {
	Mounts               *mounts.Registry
	SessionStore         sessions.Store
	Views                adminFeature.Views
	Logger               *slog.Logger
	AppName              string
	DefaultViewportWidth int
	IsDev                bool

	// Reload is signalled to make dev browsers reload. Only used when IsDev is set.
	Reload <-chan struct{}
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) error {
	// Hot reload endpoint for dev mode
	if deps.IsDev {
		setupReload(router, deps.Reload)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := shellFeature.SetupRoutes(router, deps.Mounts, deps.SessionStore, deps.Logger); err != nil {
		return err
	}

	if err := adminFeature.SetupRoutes(router, deps.Views, deps.SessionStore, adminFeature.Options{
		AppName:              deps.AppName,
		IsDev:                deps.IsDev,
		DefaultViewportWidth: deps.DefaultViewportWidth,
	}); err != nil {
		return err
	}

	return nil
}

// setupReload wires the dev reload stream. Pages hold /reload open; the
// first connection after a server restart reloads immediately, later ones
// wait for a signal on reload or a hit on /hotreload.
func setupReload(router chi.Router, reload <-chan struct{}) {
	manual := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		doReload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(doReload)
		select {
		case <-reload:
			doReload()
		case <-manual:
			doReload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case manual <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
