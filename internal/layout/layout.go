// Package layout holds the state machine behind the admin layout shell.
//
// The shell owns two values: whether the sidebar is open and whether the
// viewport is narrower than the mobile breakpoint. Everything the views
// need (sidebar visibility, toggle availability) is derived from them
// through pure functions so it can be tested without a renderer.
package layout

// Breakpoint is the viewport width below which the shell uses mobile behavior.
const Breakpoint = 768

// Visibility is the rendered state of the sidebar.
type Visibility int

const (
	Hidden Visibility = iota
	Visible
)

func (v Visibility) String() string {
	if v == Visible {
		return "visible"
	}
	return "hidden"
}

// SidebarState is the mobile sidebar state.
type SidebarState int

const (
	Closed SidebarState = iota
	Open
)

func (s SidebarState) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// IsMobile reports whether a viewport of the given width is below the breakpoint.
func IsMobile(width int) bool {
	return width < Breakpoint
}

// SidebarVisibility derives the sidebar visibility. Desktop viewports always
// show the sidebar; on mobile it follows sidebarOpen.
func SidebarVisibility(isMobile, sidebarOpen bool) Visibility {
	if !isMobile || sidebarOpen {
		return Visible
	}
	return Hidden
}

// State is the per-mount layout state.
type State struct {
	SidebarOpen bool
	IsMobile    bool
	Width       int
}

// New returns the initial state for a viewport of the given width.
func New(width int) State {
	return State{
		SidebarOpen: false,
		IsMobile:    IsMobile(width),
		Width:       width,
	}
}

// Resize recomputes IsMobile for a new viewport width.
func (s *State) Resize(width int) {
	s.Width = width
	s.IsMobile = IsMobile(width)
}

// Toggle flips the sidebar between open and closed.
func (s *State) Toggle() {
	s.SidebarOpen = !s.SidebarOpen
}

// LinkActivated collapses the sidebar after navigation on mobile viewports.
// Desktop activations leave SidebarOpen untouched.
func (s *State) LinkActivated() {
	if s.IsMobile {
		s.SidebarOpen = false
	}
}

// Sidebar returns the sidebar state machine position.
func (s State) Sidebar() SidebarState {
	if s.SidebarOpen {
		return Open
	}
	return Closed
}

// Visibility returns the rendered sidebar visibility for the state.
func (s State) Visibility() Visibility {
	return SidebarVisibility(s.IsMobile, s.SidebarOpen)
}

// ShowToggle reports whether the mobile header and its toggle are rendered.
func (s State) ShowToggle() bool {
	return s.IsMobile
}

// Apply dispatches an event and reports whether the rendered chrome changed.
// A resize that stays on the same side of the breakpoint changes nothing the
// views depend on, so it reports false even though Width moved.
func (s *State) Apply(ev Event) bool {
	before := s.chrome()
	switch ev.Kind {
	case EventResize:
		s.Resize(ev.Width)
	case EventToggle:
		s.Toggle()
	case EventLinkActivated:
		s.LinkActivated()
	default:
		return false
	}
	return s.chrome() != before
}

type chrome struct {
	isMobile    bool
	sidebarOpen bool
}

func (s State) chrome() chrome {
	return chrome{isMobile: s.IsMobile, sidebarOpen: s.SidebarOpen}
}
