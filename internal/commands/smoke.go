// internal/commands/smoke.go
package cnpharness

import "github.com/spf13/cobra"

// smokeCmd groups smoke-test CLI commands.
var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Group commands for smoke-testing the target CLI",
}

func init() {
	rootCmd.AddCommand(smokeCmd)
}
