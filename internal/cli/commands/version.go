package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/adminshell/internal/cli/output"
)

// BuildInfo identifies the running binary. The fields are set at build
// time with -ldflags.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"commit"`
	BuildDate string `json:"built"`
	GoVersion string `json:"go"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}

	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the adminshell version, the commit and date it was built from,
and the Go toolchain that built it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(NewCommandContext(cmd).Renderer, info)
		},
	}
}

func runVersion(r *output.Renderer, info BuildInfo) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "adminshell v"+info.Version))
		r.Println("")
		r.Table([]string{"Commit", "Built", "Go"}, [][]string{{info.GitCommit, info.BuildDate, info.GoVersion}})
		return nil
	}

	r.Println(fmt.Sprintf("%s %s", r.Bold("adminshell v"+info.Version), r.Muted("("+info.GoVersion+")")))
	r.Println(fmt.Sprintf("commit %s, built %s", info.GitCommit, info.BuildDate))
	return nil
}
