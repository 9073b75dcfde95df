// internal/commands/root.go
package cnpharness

import (
	"fmt"
	"os"

	"github.com/pilotbench/cnpharness/internal/appconfig"
	"github.com/pilotbench/cnpharness/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "cnpharness",
	Short:        "cnpharness — benchmark and smoke-test harness for the cnp CLI",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appconfig.Load(cfgFile)
		if err != nil {
			return err
		}

		// Changed flags override the config file.
		if cmd.Flags().Changed("debug") {
			cfg.Debug = viper.GetBool("debug")
		}
		if cmd.Flags().Changed("progress") {
			cfg.Progress = viper.GetBool("progress")
		}
		if cmd.Flags().Changed("probe") {
			cfg.Probe = viper.GetBool("probe")
		}
		if cmd.Flags().Changed("logFile") {
			cfg.LogFile = viper.GetString("logFile")
		}
		if cmd.Flags().Changed("cliPath") {
			cfg.CLIPath = viper.GetString("cliPath")
		}
		if cmd.Flags().Changed("workDir") {
			cfg.WorkDir = viper.GetString("workDir")
		}
		if cmd.Flags().Changed("resultsFile") {
			cfg.ResultsFile = viper.GetString("resultsFile")
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug result dumps")
	rootCmd.PersistentFlags().Bool("progress", false, "show a live progress view during bench runs")
	rootCmd.PersistentFlags().Bool("probe", false, "stop sampling after the first completed attempt")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().String("cliPath", "", "path to the target CLI binary")
	rootCmd.PersistentFlags().String("workDir", "", "working directory for smoke scenarios")
	rootCmd.PersistentFlags().String("resultsFile", "", "path for the benchmark results JSON")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("progress", rootCmd.PersistentFlags().Lookup("progress"))
	_ = viper.BindPFlag("probe", rootCmd.PersistentFlags().Lookup("probe"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = viper.BindPFlag("cliPath", rootCmd.PersistentFlags().Lookup("cliPath"))
	_ = viper.BindPFlag("workDir", rootCmd.PersistentFlags().Lookup("workDir"))
	_ = viper.BindPFlag("resultsFile", rootCmd.PersistentFlags().Lookup("resultsFile"))
}

// GetConfig returns the loaded harness configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
