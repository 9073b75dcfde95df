// internal/commands/show.go
package cnpharness

import "github.com/spf13/cobra"

// showCmd groups commands that display harness state.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for displaying harness state",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
