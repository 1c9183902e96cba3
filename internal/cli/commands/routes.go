package commands

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/adminshell/internal/cli/output"
	"github.com/leapstack-labs/adminshell/internal/layout"
	"github.com/leapstack-labs/adminshell/internal/ui/components"
)

// Route describes one HTTP endpoint served by the shell.
type Route struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// NewRoutesCommand creates the routes command.
func NewRoutesCommand() *cobra.Command {
	var dev bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the HTTP routes served by the shell",
		Long: `List the navigation destinations and shell endpoints.

Output adapts to environment:
  - Terminal: table
  - Piped/Scripted: Markdown table`,
		Example: `  # List routes
  adminshell routes

  # Include dev-mode reload endpoints, as JSON
  adminshell routes --dev --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoutes(NewCommandContext(cmd).Renderer, dev)
		},
	}

	cmd.Flags().BoolVar(&dev, "dev", false, "Include dev-mode endpoints")

	return cmd
}

func runRoutes(r *output.Renderer, dev bool) error {
	routes := ShellRoutes(dev)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(routes)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Routes"))
		r.Println("")
	}

	rows := make([][]string, 0, len(routes))
	for _, rt := range routes {
		rows = append(rows, []string{rt.Method, rt.Path, rt.Description})
	}
	r.Table([]string{"Method", "Path", "Description"}, rows)
	return nil
}

// ShellRoutes returns the routes the UI server registers, in registration order.
func ShellRoutes(dev bool) []Route {
	var routes []Route
	if dev {
		routes = append(routes,
			Route{http.MethodGet, "/reload", "Dev reload stream"},
			Route{http.MethodGet, "/hotreload", "Trigger a dev reload"},
		)
	}

	routes = append(routes,
		Route{http.MethodGet, "/static/*", "Static assets"},
		Route{http.MethodGet, components.StreamPath, "Shell state stream for one mount"},
		Route{http.MethodPost, components.ViewportPath, "Report viewport width"},
		Route{http.MethodPost, components.TogglePath, "Toggle the sidebar"},
		Route{http.MethodPost, components.NavigatePath, "Activate a navigation link"},
		Route{http.MethodGet, "/", "Redirect to " + layout.OverviewPath},
	)

	for _, d := range layout.Destinations() {
		routes = append(routes, Route{http.MethodGet, d.Path, d.Label + " page"})
	}
	return routes
}
