package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/adminshell/internal/cli/config"
	"github.com/leapstack-labs/adminshell/internal/cli/testutil"
	intutil "github.com/leapstack-labs/adminshell/internal/testutil"
)

func TestNewServeCommand(t *testing.T) {
	cmd := NewServeCommand()

	assert.Equal(t, "serve", cmd.Use)
	assert.Contains(t, cmd.Aliases, "ui")
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"host", "port", "no-browser", "watch", "dev", "title", "default-width"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestServerConfig(t *testing.T) {
	uiCfg := &config.UIConfig{
		Host:                 "0.0.0.0",
		Port:                 9000,
		Dev:                  true,
		Watch:                true,
		Title:                "Back Office",
		SessionSecret:        "0123456789abcdef",
		DefaultViewportWidth: 1280,
	}
	cmdCtx := &CommandContext{Logger: intutil.NewTestLogger(t)}

	got := serverConfig(uiCfg, cmdCtx)

	assert.Equal(t, "0.0.0.0", got.Host)
	assert.Equal(t, 9000, got.Port)
	assert.True(t, got.Dev)
	assert.True(t, got.Watch)
	assert.Equal(t, "Back Office", got.AppName)
	assert.Equal(t, "0123456789abcdef", got.SessionSecret)
	assert.Equal(t, 1280, got.DefaultViewportWidth)
	assert.Same(t, cmdCtx.Logger, got.Logger)
	assert.Len(t, got.Views, 3)
}

func TestShellRoutes(t *testing.T) {
	routes := ShellRoutes(false)

	var paths []string
	for _, r := range routes {
		paths = append(paths, r.Method+" "+r.Path)
	}
	assert.Contains(t, paths, "GET /admin")
	assert.Contains(t, paths, "GET /admin/users")
	assert.Contains(t, paths, "GET /admin/withdrawals")
	assert.Contains(t, paths, "GET /admin/shell/stream")
	assert.Contains(t, paths, "POST /admin/shell/toggle")
	assert.NotContains(t, paths, "GET /reload")

	assert.Len(t, ShellRoutes(true), len(routes)+2)
}

func TestRunRoutes(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		require.NoError(t, runRoutes(tr.Renderer, false))

		out := tr.Output()
		assert.Contains(t, out, "# Routes")
		assert.Contains(t, out, "| GET | /admin/withdrawals | Transactions page |")
		testutil.AssertValidMarkdown(t, out)
	})

	t.Run("text", func(t *testing.T) {
		tr := testutil.NewTestRendererText()
		require.NoError(t, runRoutes(tr.Renderer, true))

		out := tr.Output()
		assert.Contains(t, out, "/hotreload")
		assert.NotContains(t, out, "# Routes")
	})

	t.Run("json", func(t *testing.T) {
		tr := testutil.NewTestRendererJSON()
		require.NoError(t, runRoutes(tr.Renderer, false))

		var routes []Route
		require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &routes))
		assert.Equal(t, ShellRoutes(false), routes)
		testutil.AssertNoANSI(t, tr.Output())
	})
}

func TestRunConfig(t *testing.T) {
	cfg := &config.Config{
		LogFormat:    "json",
		OutputFormat: "auto",
		UI:           &config.UIConfig{Port: 9000, SessionSecret: "super-secret-value-123"},
	}

	t.Run("yaml redacts secret", func(t *testing.T) {
		tr := testutil.NewTestRendererText()
		require.NoError(t, runConfig(tr.Renderer, cfg, false))

		out := tr.Output()
		assert.Contains(t, out, "port: 9000")
		assert.Contains(t, out, "host: localhost")
		assert.Contains(t, out, "log_format: json")
		assert.Contains(t, out, redacted)
		assert.NotContains(t, out, "super-secret-value-123")
		assert.Equal(t, "super-secret-value-123", cfg.UI.SessionSecret, "runConfig must not mutate the loaded config")
	})

	t.Run("show secrets", func(t *testing.T) {
		tr := testutil.NewTestRendererText()
		require.NoError(t, runConfig(tr.Renderer, cfg, true))
		assert.Contains(t, tr.Output(), "super-secret-value-123")
	})

	t.Run("markdown", func(t *testing.T) {
		tr := testutil.NewTestRendererMarkdown()
		require.NoError(t, runConfig(tr.Renderer, cfg, false))

		out := tr.Output()
		assert.True(t, strings.HasPrefix(out, "# Configuration"))
		assert.Contains(t, out, "```yaml")
		testutil.AssertValidMarkdown(t, out)
	})

	t.Run("json", func(t *testing.T) {
		tr := testutil.NewTestRendererJSON()
		require.NoError(t, runConfig(tr.Renderer, cfg, false))

		var got config.Config
		require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &got))
		require.NotNil(t, got.UI)
		assert.Equal(t, 9000, got.UI.Port)
		assert.Equal(t, redacted, got.UI.SessionSecret)
	})
}
