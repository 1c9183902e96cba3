package admin

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/adminshell/internal/layout"
	"github.com/leapstack-labs/adminshell/internal/ui/components"
	"github.com/leapstack-labs/adminshell/internal/ui/features/common"
)

// Handlers provides HTTP handlers for the admin destinations.
type Handlers struct {
	views        Views
	sessionStore sessions.Store
	opts         Options
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(views Views, sessionStore sessions.Store, opts Options) *Handlers {
	if opts.DefaultViewportWidth <= 0 {
		opts.DefaultViewportWidth = layout.Breakpoint
	}
	return &Handlers{
		views:        DefaultViews().Merge(views),
		sessionStore: sessionStore,
		opts:         opts,
	}
}

// Page returns the handler rendering destination d inside the shell.
// Every render is a fresh mount with its own id and a closed sidebar.
func (h *Handlers) Page(d layout.Destination) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		width := common.ViewportHint(h.sessionStore, r, h.opts.DefaultViewportWidth)

		data := components.ShellData{
			MountID:      uuid.NewString(),
			CurrentPath:  d.Path,
			State:        layout.New(width),
			Destinations: layout.Destinations(),
		}

		page := components.Page(d.Label, h.opts.AppName, h.opts.IsDev, components.Shell(data, h.views[d.Path]))
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// Root redirects to the overview destination.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, layout.OverviewPath, http.StatusFound)
}
