package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the resolved configuration summary.
func ShowConfig(out io.Writer, cfg *Config) {
	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.ConfigPath == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", cfg.ConfigPath)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Target CLI:        %s\n", cfg.TargetCLIPath())
	fmt.Fprintf(out, "  Working Dir:       %s\n", cfg.WorkingDir())
	fmt.Fprintf(out, "  Build Command:     %s\n", strings.Join(cfg.BuildCommand(), " "))
	fmt.Fprintf(out, "  Results File:      %s\n", cfg.ResultsPath())
	fmt.Fprintf(out, "  Batch File:        %s\n", cfg.BatchFilePath())
	fmt.Fprintf(out, "  Command Timeout:   %s\n", cfg.CommandTimeout())
	fmt.Fprintf(out, "  Scenario Timeout:  %s\n", cfg.ScenarioTimeout())
	fmt.Fprintf(out, "  Batch Timeout:     %s\n", cfg.BatchTimeout())
	fmt.Fprintf(out, "  Scenario Pause:    %s\n", cfg.ScenarioPause())
	fmt.Fprintf(out, "  Startup Samples:   %d\n", cfg.StartupSampleCount())
	fmt.Fprintf(out, "  Command Samples:   %d\n", cfg.CommandSampleCount())
	fmt.Fprintf(out, "  Probe Mode:        %v\n", cfg.Probe)
	fmt.Fprintf(out, "  Cold Start:        %v\n", cfg.ColdStart)
	if purge := cfg.CachePurgeCommand(); len(purge) > 0 {
		fmt.Fprintf(out, "  Purge Command:     %s\n", strings.Join(purge, " "))
	} else {
		fmt.Fprintf(out, "  Purge Command:     (none)\n")
	}
	fmt.Fprintf(out, "  Progress UI:       %v\n", cfg.Progress)
	fmt.Fprintf(out, "  Debug:             %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:          %s\n", cfg.LogFilePath())
}
