package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/adminshell/internal/cli/config"
	"github.com/leapstack-labs/adminshell/internal/cli/output"
)

// redacted replaces secrets in printed configuration.
const redacted = "********"

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the config file,
ADMINSHELL_ environment variables and flags.

The session secret is redacted unless --show-secrets is given.`,
		Example: `  # Show effective config
  adminshell config

  # Show effective config as JSON
  adminshell config --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			return runConfig(cmdCtx.Renderer, cmdCtx.Cfg, showSecrets)
		},
	}

	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print secrets in clear text")

	return cmd
}

func runConfig(r *output.Renderer, cfg *config.Config, showSecrets bool) error {
	effective := *cfg
	effective.UI = cfg.GetUIConfig()
	if !showSecrets {
		effective.UI.SessionSecret = redacted
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(effective)
	}

	data, err := yaml.Marshal(effective)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(1, "Configuration"))
		r.Println("")
		if file := config.GetConfigFileUsed(); file != "" {
			r.Println(fmt.Sprintf("Loaded from `%s`.", file))
			r.Println("")
		}
		r.Println(output.FormatCodeBlock("yaml", string(data)))
		return nil
	}

	_, err = r.Writer().Write(data)
	return err
}
