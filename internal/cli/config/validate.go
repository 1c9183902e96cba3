package config

import (
	"fmt"
	"strings"
)

// minSessionSecretLen is the shortest secret accepted for signing session cookies.
const minSessionSecretLen = 16

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q: want text or json", c.LogFormat)
	}

	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("invalid output %q: want auto, text, markdown or json", c.OutputFormat)
	}

	if c.UI == nil {
		return nil
	}

	if c.UI.Port < 0 || c.UI.Port > 65535 {
		return fmt.Errorf("invalid ui.port %d", c.UI.Port)
	}
	if c.UI.DefaultViewportWidth < 0 {
		return fmt.Errorf("invalid ui.default_viewport_width %d", c.UI.DefaultViewportWidth)
	}
	if c.UI.SessionSecret != "" && len(c.UI.SessionSecret) < minSessionSecretLen {
		return fmt.Errorf("ui.session_secret must be at least %d characters", minSessionSecretLen)
	}
	return nil
}
