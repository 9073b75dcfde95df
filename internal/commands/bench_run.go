package cnpharness

import (
	"github.com/pilotbench/cnpharness/internal/bench"
	"github.com/spf13/cobra"
)

// benchRunCmd measures the target CLI and writes the results snapshot.
var benchRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Measure startup latency, command latency, binary size, and cold vs warm start",
	Long:  `The 'run' subcommand times invocations of the target CLI against fixed latency and size targets, prints a report, and persists the measurements as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return bench.RunSuite(GetConfig())
	},
}

func init() {
	benchCmd.AddCommand(benchRunCmd)
}
