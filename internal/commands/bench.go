// internal/commands/bench.go
package cnpharness

import "github.com/spf13/cobra"

// benchCmd groups benchmark-related CLI commands.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Group commands for benchmarking the target CLI",
}

func init() {
	rootCmd.AddCommand(benchCmd)
}
