package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.BoolP("verbose", "v", false, "")
	fs.String("log-format", "", "")
	fs.StringP("output", "o", "", "")
	fs.String("config", "", "")
	fs.Int("port", 0, "")
	fs.String("host", "", "")
	fs.Bool("dev", false, "")
	fs.Bool("no-browser", false, "")
	fs.Int("default-width", 0, "")
	return fs
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "adminshell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	require.NotNil(t, cfg.UI)
	assert.Equal(t, DefaultPort, cfg.UI.Port)
	assert.Equal(t, DefaultHost, cfg.UI.Host)
	assert.True(t, cfg.UI.AutoOpen)
	assert.Equal(t, DefaultViewportWidth, cfg.UI.DefaultViewportWidth)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_FileFoundUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
verbose: true
ui:
  port: 9000
  title: Back Office
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))
	chdir(t, nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.True(t, cfg.Verbose)
	assert.Equal(t, 9000, cfg.UI.Port)
	assert.Equal(t, "Back Office", cfg.UI.Title)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, DefaultHost, cfg.UI.Host)
	assert.NotEmpty(t, GetConfigFileUsed())

	resolved, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(cfg.ProjectRoot)
	require.NoError(t, err)
	assert.Equal(t, resolved, got)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeConfig(t, dir, `
ui:
  port: 9000
  host: 0.0.0.0
  default_viewport_width: 1280
`)

	t.Setenv("ADMINSHELL_UI__PORT", "9100")
	t.Setenv("ADMINSHELL_UI__DEFAULT_VIEWPORT_WIDTH", "1440")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--port", "9200", "--no-browser"}))

	cfg, err := LoadConfig(path, fs)
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.UI.Port, "flag beats env and file")
	assert.Equal(t, 1440, cfg.UI.DefaultViewportWidth, "env beats file")
	assert.Equal(t, "0.0.0.0", cfg.UI.Host, "file beats defaults")
	assert.False(t, cfg.UI.AutoOpen, "--no-browser disables auto open")
}

func TestLoadConfig_UnsetFlagsIgnored(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeConfig(t, dir, "ui:\n  port: 9000\n")

	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := LoadConfig(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.UI.Port)
	assert.True(t, cfg.UI.AutoOpen)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{name: "invalid yaml", content: "ui: [", errSubstr: "error reading config file"},
		{name: "bad log format", content: "log_format: xml", errSubstr: "invalid log_format"},
		{name: "bad port", content: "ui:\n  port: 70000", errSubstr: "invalid ui.port"},
		{name: "short secret", content: "ui:\n  session_secret: short", errSubstr: "session_secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			chdir(t, dir)
			path := writeConfig(t, dir, tt.content)

			_, err := LoadConfig(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := LoadConfig("does-not-exist.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.yaml")
}

func TestGetUIConfig(t *testing.T) {
	var cfg Config
	assert.Equal(t, DefaultUIConfig(), cfg.GetUIConfig())

	cfg.UI = &UIConfig{Port: 9000}
	ui := cfg.GetUIConfig()
	assert.Equal(t, 9000, ui.Port)
	assert.Equal(t, DefaultHost, ui.Host)
	assert.Equal(t, DefaultViewportWidth, ui.DefaultViewportWidth)
	assert.Equal(t, 0, cfg.UI.DefaultViewportWidth, "GetUIConfig must not mutate the loaded config")
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	assert.NotNil(t, GetLogger(ctx))
	assert.Equal(t, DefaultPort, GetConfig(ctx).UI.Port)

	cfg := &Config{UI: &UIConfig{Port: 1}}
	var buf bytes.Buffer
	logger := NewLogger(&buf, true, "json")

	ctx = WithLogger(WithConfig(ctx, cfg), logger)
	assert.Same(t, cfg, GetConfig(ctx))

	GetLogger(ctx).Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false, "text").Debug("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&buf, false, "text").Info("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}
