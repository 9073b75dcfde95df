package cnpharness

import (
	"github.com/pilotbench/cnpharness/internal/appconfig"
	"github.com/spf13/cobra"
)

// showConfigCmd implements the 'show config' command, which displays the resolved configuration.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show resolved config settings",
	Long:  `Show the resolved configuration after the JSON config file has been loaded and overridden by flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		appconfig.ShowConfig(cmd.OutOrStdout(), GetConfig())
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
