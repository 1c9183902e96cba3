package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return buf.String(), err
}

func TestRoot_Version(t *testing.T) {
	out, err := runRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "adminshell v"+Version)
}

func TestRoot_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"serve", "routes", "config", "version", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	sub, _, err := cmd.Find([]string{"ui"})
	require.NoError(t, err)
	assert.Equal(t, "serve", sub.Name(), "ui is an alias of serve")
}

func TestRoot_RoutesMarkdown(t *testing.T) {
	out, err := runRoot(t, "routes", "--output", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Routes")
	assert.Contains(t, out, "/admin/users")
}

func TestRoot_ConfigFlagOverrides(t *testing.T) {
	out, err := runRoot(t, "config", "--output", "text", "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "log_format: json")
	assert.Contains(t, out, "output: text")
}

func TestRoot_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  title: Back Office\n"), 0600))

	out, err := runRoot(t, "--config", path, "config", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Back Office")
}

func TestRoot_InvalidConfig(t *testing.T) {
	_, err := runRoot(t, "config", "--log-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestCompletion(t *testing.T) {
	out, err := runRoot(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "adminshell")

	_, err = runRoot(t, "completion", "tcsh")
	require.Error(t, err)
}
