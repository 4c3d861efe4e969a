package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/squint/internal/cli/output"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := GetRenderer(cmd.Context())

			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(map[string]string{
					"version":    version,
					"build_date": buildDate,
					"git_commit": gitCommit,
					"go_version": runtime.Version(),
				})
			}

			r.Printf("squint %s\n", version)
			r.Printf("  build date: %s\n", buildDate)
			r.Printf("  git commit: %s\n", gitCommit)
			r.Printf("  go version: %s\n", runtime.Version())
			return nil
		},
	}
}
