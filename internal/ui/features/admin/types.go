// Package admin provides the admin destination pages wrapped in the layout shell.
package admin

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/adminshell/internal/layout"
	"github.com/leapstack-labs/adminshell/internal/ui/components"
)

// Views maps a destination path to the content rendered in the shell's
// content region. The embedding application owns these views.
type Views map[string]templ.Component

// DefaultViews returns placeholder content for every destination.
func DefaultViews() Views {
	return Views{
		layout.OverviewPath:     components.Placeholder("Overview", "Key figures for the platform appear here."),
		layout.UsersPath:        components.Placeholder("Users", "User management appears here."),
		layout.TransactionsPath: components.Placeholder("Transactions", "Withdrawal requests and their status appear here."),
	}
}

// Merge returns a copy of v with override's entries taking precedence.
func (v Views) Merge(override Views) Views {
	merged := make(Views, len(v)+len(override))
	for path, c := range v {
		merged[path] = c
	}
	for path, c := range override {
		if c != nil {
			merged[path] = c
		}
	}
	return merged
}

// Options configures the admin pages.
type Options struct {
	AppName              string
	IsDev                bool
	DefaultViewportWidth int
}
