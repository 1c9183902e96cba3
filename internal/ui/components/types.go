// Package components provides the templ components of the admin layout shell.
package components

import "github.com/leapstack-labs/adminshell/internal/layout"

// Element ids patched by the shell stream.
const (
	ShellID        = "admin-shell"
	MobileHeaderID = "admin-mobile-header"
	SidebarID      = "admin-sidebar"
	ContentID      = "admin-content"
)

// Shell endpoints used by the rendered datastar actions.
const (
	StreamPath   = "/admin/shell/stream"
	ViewportPath = "/admin/shell/viewport"
	TogglePath   = "/admin/shell/toggle"
	NavigatePath = "/admin/shell/navigate"
)

// ShellData holds everything the shell chrome needs to render.
type ShellData struct {
	MountID      string
	CurrentPath  string
	State        layout.State
	Destinations []layout.Destination
}

// Signals is the datastar signal set owned by one mount.
type Signals struct {
	MountID        string `json:"mountId"`
	ViewportWidth  int    `json:"viewportWidth"`
	CurrentPath    string `json:"currentPath"`
	NavigateTo     string `json:"navigateTo"`
	IsMobile       bool   `json:"isMobile"`
	SidebarOpen    bool   `json:"sidebarOpen"`
	SidebarVisible bool   `json:"sidebarVisible"`
}

// StateSignals returns the server-owned part of the signal set for a state.
func StateSignals(s layout.State) map[string]any {
	return map[string]any{
		"isMobile":       s.IsMobile,
		"sidebarOpen":    s.SidebarOpen,
		"sidebarVisible": s.Visibility() == layout.Visible,
	}
}
