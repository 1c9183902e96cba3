package shell

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/adminshell/internal/layout"
	"github.com/leapstack-labs/adminshell/internal/ui/components"
	"github.com/leapstack-labs/adminshell/internal/ui/features/common"
	"github.com/leapstack-labs/adminshell/internal/ui/mounts"
)

// Handlers provides HTTP handlers for the layout shell.
type Handlers struct {
	mounts       *mounts.Registry
	sessionStore sessions.Store
	logger       *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(registry *mounts.Registry, sessionStore sessions.Store, logger *slog.Logger) *Handlers {
	return &Handlers{
		mounts:       registry,
		sessionStore: sessionStore,
		logger:       logger,
	}
}

// StreamSSE is the long-lived SSE endpoint backing one mounted shell.
// It owns the mount's layout state for as long as the browser keeps the
// stream open: it subscribes on entry, applies delivered events, and
// releases the subscription when the request ends.
//
// A page may reopen its stream (a retry after a network error) without
// being unmounted. The new stream takes over the mount id and resumes from
// the sidebarOpen signal the page still holds.
func (h *Handlers) StreamSSE(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE takes over the response)
	signals, err := common.ReadSignals(r)
	if err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	sub, err := h.mounts.Takeover(signals.MountID)
	if err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(fmt.Errorf("failed to mount shell: %w", err))
		return
	}
	defer sub.Close()

	log := h.logger.With("mount", sub.ID())
	log.Debug("shell mounted", "width", signals.ViewportWidth, "path", signals.CurrentPath, "sidebar_open", signals.SidebarOpen)
	defer log.Debug("shell unmounted")

	state := layout.New(signals.ViewportWidth)
	state.SidebarOpen = signals.SidebarOpen
	sse := datastar.NewSSE(w, r)

	// The first paint used the session hint; sync it with the real width.
	if err := h.sendChrome(sse, state, signals.CurrentPath); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done():
			log.Debug("shell stream replaced")
			return
		case ev := <-sub.Events():
			if !state.Apply(ev) {
				continue
			}
			log.Debug("shell state changed",
				"event", ev.Kind.String(),
				"mobile", state.IsMobile,
				"sidebar", state.Sidebar().String(),
			)
			if err := h.sendChrome(sse, state, signals.CurrentPath); err != nil {
				_ = sse.ConsoleError(err)
				// Don't return - the next event re-sends the full chrome
			}
		}
	}
}

// sendChrome patches the server-owned signals and morphs the header and sidebar.
func (h *Handlers) sendChrome(sse *datastar.ServerSentEventGenerator, state layout.State, currentPath string) error {
	signals, err := json.Marshal(components.StateSignals(state))
	if err != nil {
		return err
	}
	if err := sse.PatchSignals(signals); err != nil {
		return err
	}
	if err := sse.PatchElementTempl(components.MobileHeader(state)); err != nil {
		return err
	}
	return sse.PatchElementTempl(components.Sidebar(state, currentPath, layout.Destinations()))
}

// Viewport records a resize notification from the browser.
func (h *Handlers) Viewport(w http.ResponseWriter, r *http.Request) {
	signals, err := common.ReadSignals(r)
	if err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	if err := common.SaveViewportHint(h.sessionStore, w, r, signals.ViewportWidth); err != nil {
		h.logger.Warn("failed to store viewport hint", "error", err)
	}

	h.deliver(w, r, signals.MountID, layout.Resize(signals.ViewportWidth))
}

// Toggle records an activation of the mobile toggle control.
func (h *Handlers) Toggle(w http.ResponseWriter, r *http.Request) {
	signals, err := common.ReadSignals(r)
	if err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	h.deliver(w, r, signals.MountID, layout.ToggleEvent())
}

// Navigate records a navigation link activation. The browser performs the
// navigation itself; this only lets the mount collapse its sidebar.
func (h *Handlers) Navigate(w http.ResponseWriter, r *http.Request) {
	signals, err := common.ReadSignals(r)
	if err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	h.deliver(w, r, signals.MountID, layout.LinkEvent(signals.NavigateTo))
}

func (h *Handlers) deliver(w http.ResponseWriter, r *http.Request, mountID string, ev layout.Event) {
	err := h.mounts.Deliver(r.Context(), mountID, ev)
	sse := datastar.NewSSE(w, r)
	if err != nil {
		h.logger.Debug("event not delivered", "mount", mountID, "event", ev.Kind.String(), "error", err)
		_ = sse.ConsoleError(fmt.Errorf("%s: %w", ev.Kind, err))
	}
}
