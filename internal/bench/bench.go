// internal/bench/bench.go
// Package bench measures startup latency, command latency, binary size,
// and cold-vs-warm start behavior of the target CLI.
package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pilotbench/cnpharness/internal/appconfig"
	"github.com/pilotbench/cnpharness/internal/invoke"
	"github.com/pilotbench/cnpharness/internal/logging"
)

const (
	// startupTarget is the latency budget for --help, in seconds.
	startupTarget = 0.1
	// commandTarget is the latency budget for subcommands, in seconds.
	commandTarget = 1.0
	// binarySizeTargetMB is the size budget for the release binary.
	binarySizeTargetMB = 10.0
	// warmIterations is the number of warm samples in the startup comparison.
	warmIterations = 3
)

// Suite runs the benchmark tests and accumulates measurement records
// keyed by test identifier.
type Suite struct {
	cfg     *appconfig.Config
	runner  invoke.Runner
	results map[string]any

	// OnProgress, when set, receives a short label before each test runs.
	OnProgress func(step string)
}

// New returns a Suite bound to a configuration and a subprocess runner.
func New(cfg *appconfig.Config, runner invoke.Runner) *Suite {
	return &Suite{
		cfg:     cfg,
		runner:  runner,
		results: make(map[string]any),
	}
}

// Results exposes the accumulated measurement records.
func (s *Suite) Results() map[string]any {
	return s.results
}

// Run executes all benchmark tests. A missing target binary aborts before
// any subprocess call; every other failure degrades into a fail marker
// within the recorded measurements.
func (s *Suite) Run(ctx context.Context) error {
	cliPath := s.cfg.TargetCLIPath()
	if _, err := os.Stat(cliPath); err != nil {
		return fmt.Errorf("target CLI not found at %q (build it first, e.g. cargo build --release): %w", cliPath, err)
	}

	s.step("binary size")
	s.testBinarySize()
	s.step("startup latency")
	s.testStartup(ctx)
	s.step("command latency")
	s.testCommands(ctx)
	s.step("cold vs warm start")
	s.testColdVsWarm(ctx)

	return nil
}

func (s *Suite) step(label string) {
	if s.OnProgress != nil {
		s.OnProgress(label)
	}
	logging.LogEvent("bench: %s", label)
}

type sampleOutcome struct {
	times      []float64
	success    bool
	outputSize int
}

// sample runs argv the requested number of times under the configured
// timeout. A timed-out attempt contributes the timeout value as its sample
// and the batch continues. Success and output size reflect the first
// attempt only. In probe mode the loop returns after the first attempt
// that did not time out.
func (s *Suite) sample(ctx context.Context, argv []string, iterations int) sampleOutcome {
	timeout := s.cfg.CommandTimeout()
	var out sampleOutcome
	for i := 0; i < iterations; i++ {
		res, err := s.runner.Run(ctx, argv, invoke.Options{Timeout: timeout})
		if err != nil {
			logging.LogEvent("bench: attempt %d of %v failed to spawn: %v", i+1, argv, err)
			out.times = append(out.times, 0)
			continue
		}
		out.times = append(out.times, res.Duration.Seconds())
		if i == 0 {
			out.success = res.Success()
			out.outputSize = res.OutputSize()
		}
		if s.cfg.Probe && !res.TimedOut {
			break
		}
	}
	return out
}

// testStartup measures the fastest command the target exposes.
func (s *Suite) testStartup(ctx context.Context) {
	argv := []string{s.cfg.TargetCLIPath(), "--help"}
	outcome := s.sample(ctx, argv, s.cfg.StartupSampleCount())
	s.results["cli_startup"] = newMeasurement("help", outcome.times, outcome.success, outcome.outputSize, startupTarget)
}

// testCommands measures the heavier subcommands against a 1s budget.
func (s *Suite) testCommands(ctx context.Context) {
	cliPath := s.cfg.TargetCLIPath()
	commands := []struct {
		name string
		argv []string
	}{
		{"health", []string{cliPath, "health", "--format", "json"}},
		{"cooldown", []string{cliPath, "cooldown", "--format", "json"}},
	}

	for _, cmd := range commands {
		outcome := s.sample(ctx, cmd.argv, s.cfg.CommandSampleCount())
		s.results["cli_"+cmd.name] = newMeasurement(cmd.name, outcome.times, outcome.success, outcome.outputSize, commandTarget)
	}
}

// testBinarySize checks the release binary against its size budget. A
// missing file logs a warning and records nothing.
func (s *Suite) testBinarySize() {
	info, err := os.Stat(s.cfg.TargetCLIPath())
	if err != nil {
		logging.LogEvent("bench: binary missing at %q, skipping size check", s.cfg.TargetCLIPath())
		return
	}
	s.results["binary_size"] = newSizeMeasurement(info.Size(), binarySizeTargetMB)
}

// testColdVsWarm issues a best-effort cache purge, then contrasts one cold
// invocation with warm repeats. Purge failure is surfaced on the record
// rather than swallowed.
func (s *Suite) testColdVsWarm(ctx context.Context) {
	normalized := false
	if purge := s.cfg.CachePurgeCommand(); len(purge) > 0 {
		res, err := s.runner.Run(ctx, purge, invoke.Options{Timeout: s.cfg.CommandTimeout()})
		normalized = err == nil && res.Success()
		if !normalized {
			logging.LogEvent("bench: cache purge did not complete, cold-start sample is unnormalized")
		}
	}

	argv := []string{s.cfg.TargetCLIPath(), "--help"}
	cold := s.sample(ctx, argv, 1)
	warm := s.sample(ctx, argv, warmIterations)

	var coldTime float64
	if len(cold.times) > 0 {
		coldTime = cold.times[0]
	}
	warmAvg := mean(warm.times)

	s.results["startup_comparison"] = StartupComparison{
		ColdStart:    coldTime,
		WarmStartAvg: warmAvg,
		Improvement:  coldTime - warmAvg,
		Normalized:   normalized,
	}
}

// Save serializes the full measurement mapping as indented JSON with
// non-ASCII passthrough.
func (s *Suite) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating results directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating result file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s.results); err != nil {
		return fmt.Errorf("error writing results to file: %w", err)
	}

	logging.LogEvent("bench: results written to %s", path)
	return nil
}
