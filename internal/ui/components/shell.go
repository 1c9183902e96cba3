package components

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/adminshell/internal/layout"
)

// Shell renders the layout shell around content. The root element carries
// the mount's signals and opens the mount stream once the browser has
// reported its viewport width.
func Shell(data ShellData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signals, err := json.Marshal(Signals{
			MountID:        data.MountID,
			ViewportWidth:  data.State.Width,
			CurrentPath:    data.CurrentPath,
			IsMobile:       data.State.IsMobile,
			SidebarOpen:    data.State.SidebarOpen,
			SidebarVisible: data.State.Visibility() == layout.Visible,
		})
		if err != nil {
			return err
		}

		hw := newWriter(w)
		hw.raw(`<div id="` + ShellID + `" class="admin-shell" data-signals="`)
		hw.text(string(signals))
		hw.raw(`" data-init="$viewportWidth = window.innerWidth; @get('` + StreamPath + `', {openWhenHidden: true})"`)
		hw.raw(` data-on:resize__window__debounce.150ms="$viewportWidth = window.innerWidth; @post('` + ViewportPath + `')">`)
		hw.render(ctx, MobileHeader(data.State))
		hw.render(ctx, Sidebar(data.State, data.CurrentPath, data.Destinations))
		hw.raw(`<main id="` + ContentID + `" class="admin-content">`)
		if content != nil {
			hw.render(ctx, content)
		}
		hw.raw(`</main></div>`)
		return hw.err
	})
}

// MobileHeader renders the narrow-viewport header bar with the sidebar toggle.
// On desktop the element is still emitted, hidden, so the stream can morph it.
func MobileHeader(state layout.State) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := newWriter(w)
		hw.raw(`<header id="` + MobileHeaderID + `" class="admin-mobile-header"`)
		if !state.ShowToggle() {
			hw.raw(` hidden`)
		}
		hw.raw(`><button type="button" class="admin-toggle" aria-controls="` + SidebarID + `" aria-expanded="`)
		hw.text(boolAttr(state.SidebarOpen))
		hw.raw(`" data-on:click="@post('` + TogglePath + `')">`)
		if state.SidebarOpen {
			hw.raw(`<span aria-hidden="true">✕</span><span class="sr-only">Close navigation</span>`)
		} else {
			hw.raw(`<span aria-hidden="true">☰</span><span class="sr-only">Open navigation</span>`)
		}
		hw.raw(`</button><span class="admin-brand">Admin</span></header>`)
		return hw.err
	})
}

// Sidebar renders the navigation panel. Its visibility comes from
// layout.SidebarVisibility; the active destination is marked for the router.
func Sidebar(state layout.State, currentPath string, destinations []layout.Destination) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		vis := state.Visibility()

		hw := newWriter(w)
		hw.raw(`<aside id="` + SidebarID + `" class="admin-sidebar admin-sidebar--`)
		hw.text(vis.String())
		hw.raw(`" data-visibility="`)
		hw.text(vis.String())
		hw.raw(`"`)
		if vis == layout.Hidden {
			hw.raw(` aria-hidden="true"`)
		}
		hw.raw(`><nav class="admin-nav">`)
		for _, d := range destinations {
			hw.raw(`<a class="admin-nav-link`)
			if d.Path == currentPath {
				hw.raw(` active" aria-current="page`)
			}
			hw.raw(`" href="`)
			hw.text(string(templ.URL(d.Path)))
			hw.raw(`" data-on:click="$navigateTo = '`)
			hw.text(d.Path)
			hw.raw(`'; @post('` + NavigatePath + `')">`)
			hw.raw(`<span class="admin-nav-icon" aria-hidden="true">`)
			hw.text(d.Icon)
			hw.raw(`</span><span>`)
			hw.text(d.Label)
			hw.raw(`</span></a>`)
		}
		hw.raw(`</nav></aside>`)
		return hw.err
	})
}

// Placeholder is the default content of a destination that the embedding
// application has not supplied a view for.
func Placeholder(title, body string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := newWriter(w)
		hw.raw(`<section class="admin-placeholder"><h1>`)
		hw.text(title)
		hw.raw(`</h1><p>`)
		hw.text(body)
		hw.raw(`</p></section>`)
		return hw.err
	})
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
