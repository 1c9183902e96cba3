package commands

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/adminshell/internal/cli/config"
	"github.com/leapstack-labs/adminshell/internal/ui"
	"github.com/leapstack-labs/adminshell/internal/ui/features/admin"
)

// NewServeCommand creates the serve command.
//
// Its flags are read by the config loader; see flagKeys in package config.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Serve the admin layout shell",
		Long: `Start a web server hosting the admin layout shell.

Every page under /admin renders inside the shell: a sidebar with the
Overview, Users and Transactions destinations that collapses below a
768px viewport, and a mobile header with a toggle button.`,
		Example: `  # Serve on the default port
  adminshell serve

  # Serve on a custom port without opening a browser
  adminshell serve --port 3000 --no-browser

  # Serve with live reload of static assets
  adminshell serve --dev`,
		RunE: runServe,
	}

	cmd.Flags().String("host", "", "Host to bind (default: localhost)")
	cmd.Flags().Int("port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().Bool("no-browser", false, "Don't auto-open browser")
	cmd.Flags().Bool("watch", true, "Watch static assets in dev mode")
	cmd.Flags().Bool("dev", false, "Enable dev mode with browser reload")
	cmd.Flags().String("title", "", "Application name shown in page titles")
	cmd.Flags().Int("default-width", 0, "Viewport width assumed before the browser reports one")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	uiCfg := cmdCtx.Cfg.GetUIConfig()
	r := cmdCtx.Renderer

	if uiCfg.SessionSecret == config.DefaultSessionSecret && !uiCfg.Dev {
		cmdCtx.Logger.Warn("using the built-in session secret; set ui.session_secret or ADMINSHELL_UI__SESSION_SECRET")
	}

	server := ui.NewServer(serverConfig(uiCfg, cmdCtx))
	url := "http://" + server.Addr() + "/admin"

	if uiCfg.AutoOpen {
		go openBrowser(url)
	}

	r.Println(fmt.Sprintf("%s serving on %s", r.Bold(uiCfg.Title), r.Accent(url)))
	r.Println(r.Muted("Press Ctrl+C to stop"))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return server.Serve(ctx)
}

// serverConfig maps the CLI configuration onto the UI server.
func serverConfig(uiCfg *config.UIConfig, cmdCtx *CommandContext) ui.Config {
	return ui.Config{
		Host:                 uiCfg.Host,
		Port:                 uiCfg.Port,
		Dev:                  uiCfg.Dev,
		Watch:                uiCfg.Watch,
		SessionSecret:        uiCfg.SessionSecret,
		AppName:              uiCfg.Title,
		DefaultViewportWidth: uiCfg.DefaultViewportWidth,
		Logger:               cmdCtx.Logger,
		Views:                admin.DefaultViews(),
	}
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
