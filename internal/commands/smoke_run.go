package cnpharness

import (
	"github.com/pilotbench/cnpharness/internal/smoke"
	"github.com/spf13/cobra"
)

// smokeRunCmd exercises the five functional scenarios against the target CLI.
var smokeRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the five functional scenarios against a fresh target build",
	Long:  `The 'run' subcommand exercises single execution, cooldown status, health check, batch execution, and async execution through the build-and-run indirection, and exits non-zero if any scenario fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return smoke.RunSuite(GetConfig())
	},
}

func init() {
	smokeCmd.AddCommand(smokeRunCmd)
}
