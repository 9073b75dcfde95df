// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting the harness configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the harness configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// DefaultCLIPath is where a release build of the target CLI is expected.
	DefaultCLIPath = "./target/release/cnp-unified"
	// DefaultResultsFile receives the serialized benchmark measurements.
	DefaultResultsFile = "performance_results.json"
	// defaultCommandTimeout bounds a single benchmark invocation attempt.
	defaultCommandTimeout = 10 * time.Second
	// defaultScenarioTimeout bounds a single smoke scenario invocation.
	defaultScenarioTimeout = 30 * time.Second
	// defaultBatchTimeout bounds the batch scenario, which runs several prompts.
	defaultBatchTimeout = 60 * time.Second
	// defaultScenarioPause separates smoke scenarios so cooldown state from one
	// invocation does not bleed into the next.
	defaultScenarioPause = 2 * time.Second
	// defaultStartupIterations is the sample count for the --help startup test.
	defaultStartupIterations = 5
	// defaultCommandIterations is the sample count for subcommand latency tests.
	defaultCommandIterations = 3
)

// Config represents the top-level harness configuration.
type Config struct {
	CLIPath             string   `json:"cliPath,omitempty"`
	WorkDir             string   `json:"workDir,omitempty"`
	BuildTool           string   `json:"buildTool,omitempty"`
	BuildArgs           []string `json:"buildArgs,omitempty"`
	TargetBin           string   `json:"targetBin,omitempty"`
	ResultsFile         string   `json:"resultsFile,omitempty"`
	BatchFile           string   `json:"batchFile,omitempty"`
	TimeoutSeconds      int      `json:"timeout,omitempty"`
	ScenarioTimeoutSecs int      `json:"scenarioTimeout,omitempty"`
	BatchTimeoutSecs    int      `json:"batchTimeout,omitempty"`
	StartupIterations   int      `json:"startupIterations,omitempty"`
	CommandIterations   int      `json:"commandIterations,omitempty"`
	PauseSeconds        *int     `json:"pauseSeconds,omitempty"`
	PurgeCommand        []string `json:"purgeCommand,omitempty"`
	ColdStart           bool     `json:"coldStart"`
	Probe               bool     `json:"probe"`
	Debug               bool     `json:"debug"`
	Progress            bool     `json:"progress"`
	LogFile             string   `json:"logFile,omitempty"`
	ConfigPath          string   `json:"-"`
}

// TargetCLIPath returns the path to the prebuilt target CLI binary.
func (c Config) TargetCLIPath() string {
	if p := strings.TrimSpace(c.CLIPath); p != "" {
		return p
	}
	return DefaultCLIPath
}

// WorkingDir returns the directory smoke scenarios run from.
func (c Config) WorkingDir() string {
	if d := strings.TrimSpace(c.WorkDir); d != "" {
		return d
	}
	return "."
}

// BuildCommand returns the build-and-run indirection used by the smoke
// driver, e.g. ["cargo", "run", "--bin", "cnp-unified", "--"]. Scenario
// arguments are appended after the trailing separator.
func (c Config) BuildCommand() []string {
	tool := strings.TrimSpace(c.BuildTool)
	if tool == "" {
		tool = "cargo"
	}
	if len(c.BuildArgs) > 0 {
		return append([]string{tool}, c.BuildArgs...)
	}
	bin := strings.TrimSpace(c.TargetBin)
	if bin == "" {
		bin = "cnp-unified"
	}
	return []string{tool, "run", "--bin", bin, "--"}
}

// ResultsPath returns the benchmark results file path.
func (c Config) ResultsPath() string {
	if p := strings.TrimSpace(c.ResultsFile); p != "" {
		return p
	}
	return DefaultResultsFile
}

// BatchFilePath returns where the batch scenario writes its prompts file.
func (c Config) BatchFilePath() string {
	if p := strings.TrimSpace(c.BatchFile); p != "" {
		return p
	}
	return filepath.Join(os.TempDir(), "cnpharness_batch_prompts.json")
}

// CommandTimeout bounds one benchmark invocation attempt.
func (c Config) CommandTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultCommandTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ScenarioTimeout bounds one smoke scenario invocation.
func (c Config) ScenarioTimeout() time.Duration {
	if c.ScenarioTimeoutSecs <= 0 {
		return defaultScenarioTimeout
	}
	return time.Duration(c.ScenarioTimeoutSecs) * time.Second
}

// BatchTimeout bounds the batch scenario invocation.
func (c Config) BatchTimeout() time.Duration {
	if c.BatchTimeoutSecs <= 0 {
		return defaultBatchTimeout
	}
	return time.Duration(c.BatchTimeoutSecs) * time.Second
}

// ScenarioPause returns the idle time inserted between smoke scenarios.
// An explicit zero disables the pause.
func (c Config) ScenarioPause() time.Duration {
	if c.PauseSeconds == nil {
		return defaultScenarioPause
	}
	if *c.PauseSeconds < 0 {
		return 0
	}
	return time.Duration(*c.PauseSeconds) * time.Second
}

// StartupSampleCount returns the iteration count for the startup test.
func (c Config) StartupSampleCount() int {
	if c.StartupIterations <= 0 {
		return defaultStartupIterations
	}
	return c.StartupIterations
}

// CommandSampleCount returns the iteration count for subcommand latency tests.
func (c Config) CommandSampleCount() int {
	if c.CommandIterations <= 0 {
		return defaultCommandIterations
	}
	return c.CommandIterations
}

// CachePurgeCommand resolves the best-effort cache purge issued before the
// cold-start measurement. Returns nil when cold-start normalization is not
// enabled, in which case the cold sample is reported as unnormalized.
func (c Config) CachePurgeCommand() []string {
	if len(c.PurgeCommand) > 0 {
		return c.PurgeCommand
	}
	if !c.ColdStart {
		return nil
	}
	switch runtime.GOOS {
	case "darwin":
		return []string{"sudo", "purge"}
	case "linux":
		return []string{"sh", "-c", "sync && echo 3 > /proc/sys/vm/drop_caches"}
	default:
		return nil
	}
}

// LogFilePath returns the path to the harness log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "cnpharness.log"
}

// Load reads the harness configuration from the specified path, with
// fallback to a legacy path. A missing config file is not an error: the
// harness runs entirely on defaults in that case.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, nil
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("no configuration file found at %q", path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
