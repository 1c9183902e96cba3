// Package config provides configuration management for the adminshell CLI.
//
// Values are layered with koanf: built-in defaults, then the YAML config
// file, then ADMINSHELL_ environment variables, then explicitly set flags.
package config

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Host                 string `koanf:"host" yaml:"host" json:"host"`
	Port                 int    `koanf:"port" yaml:"port" json:"port"`
	AutoOpen             bool   `koanf:"auto_open" yaml:"auto_open" json:"auto_open"`
	Watch                bool   `koanf:"watch" yaml:"watch" json:"watch"`
	Dev                  bool   `koanf:"dev" yaml:"dev" json:"dev"`
	Title                string `koanf:"title" yaml:"title" json:"title"`
	SessionSecret        string `koanf:"session_secret" yaml:"session_secret" json:"session_secret"`
	DefaultViewportWidth int    `koanf:"default_viewport_width" yaml:"default_viewport_width" json:"default_viewport_width"`
}

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool      `koanf:"verbose" yaml:"verbose" json:"verbose"`
	LogFormat    string    `koanf:"log_format" yaml:"log_format" json:"log_format"`
	OutputFormat string    `koanf:"output" yaml:"output" json:"output"`
	UI           *UIConfig `koanf:"ui" yaml:"ui" json:"ui"`

	// ProjectRoot is the directory the config file was found in, or the
	// working directory when there is none.
	ProjectRoot string `koanf:"-" yaml:"-" json:"-"`
}

// Default configuration values.
const (
	DefaultHost          = "localhost"
	DefaultPort          = 8765
	DefaultTitle         = "Admin"
	DefaultViewportWidth = 1024
	DefaultLogFormat     = "text"
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultSessionSecret = "adminshell-dev-secret-change-in-production"
)

// DefaultUIConfig returns a UIConfig with default values.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Host:                 DefaultHost,
		Port:                 DefaultPort,
		AutoOpen:             true,
		Watch:                true,
		Dev:                  false,
		Title:                DefaultTitle,
		SessionSecret:        DefaultSessionSecret,
		DefaultViewportWidth: DefaultViewportWidth,
	}
}

// GetUIConfig returns the UI config with defaults applied for any unset values.
func (c *Config) GetUIConfig() *UIConfig {
	if c.UI == nil {
		return DefaultUIConfig()
	}
	ui := *c.UI
	if ui.Host == "" {
		ui.Host = DefaultHost
	}
	if ui.Port == 0 {
		ui.Port = DefaultPort
	}
	if ui.Title == "" {
		ui.Title = DefaultTitle
	}
	if ui.SessionSecret == "" {
		ui.SessionSecret = DefaultSessionSecret
	}
	if ui.DefaultViewportWidth == 0 {
		ui.DefaultViewportWidth = DefaultViewportWidth
	}
	return &ui
}
