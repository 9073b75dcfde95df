// internal/smoke/smoke.go
// Package smoke exercises five functional scenarios against the target CLI
// through a build-and-run indirection and reports aggregate pass/fail.
package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/pilotbench/cnpharness/internal/appconfig"
	"github.com/pilotbench/cnpharness/internal/invoke"
	"github.com/pilotbench/cnpharness/internal/logging"
	"github.com/pilotbench/cnpharness/internal/util"
)

// Suite runs the smoke scenarios in a fixed order with a pause between
// them so cooldown state from one invocation does not skew the next.
type Suite struct {
	cfg    *appconfig.Config
	runner invoke.Runner
	out    io.Writer
	sleep  func(time.Duration)
}

// New returns a Suite bound to a configuration and a subprocess runner.
func New(cfg *appconfig.Config, runner invoke.Runner) *Suite {
	return &Suite{
		cfg:    cfg,
		runner: runner,
		out:    os.Stdout,
		sleep:  time.Sleep,
	}
}

// SetOutput redirects the PASS/FAIL report, primarily for tests.
func (s *Suite) SetOutput(w io.Writer) { s.out = w }

type scenario struct {
	name string
	run  func(ctx context.Context) bool
}

// Run executes all scenarios in sequence and prints the per-scenario and
// aggregate report. The returned flag is true only when every scenario
// passed; callers map it to the process exit status.
func (s *Suite) Run(ctx context.Context) (bool, []ScenarioResult) {
	scenarios := []scenario{
		{"immediate execution", s.testImmediateExecution},
		{"cooldown detection", s.testCooldownDetection},
		{"health check", s.testHealthCheck},
		{"batch execution", s.testBatchExecution},
		{"scheduled execution", s.testScheduledExecution},
	}

	results := make([]ScenarioResult, 0, len(scenarios))
	for i, sc := range scenarios {
		logging.LogEvent("smoke: scenario %d/%d: %s", i+1, len(scenarios), sc.name)
		passed := s.runScenario(ctx, sc)
		results = append(results, ScenarioResult{Name: sc.name, Passed: passed})
		if i < len(scenarios)-1 {
			s.sleep(s.cfg.ScenarioPause())
		}
	}

	s.report(results)

	for _, r := range results {
		if !r.Passed {
			return false, results
		}
	}
	return true, results
}

// runScenario shields the sequence from a panicking scenario, recording
// it as a failure so the run can still complete and report.
func (s *Suite) runScenario(ctx context.Context, sc scenario) (passed bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.LogEvent("smoke: scenario %q panicked: %v", sc.name, r)
			passed = false
		}
	}()
	return sc.run(ctx)
}

func (s *Suite) report(results []ScenarioResult) {
	pass := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "smoke test summary")
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
			pass.Fprintf(s.out, "PASS")
		} else {
			fail.Fprintf(s.out, "FAIL")
		}
		fmt.Fprintf(s.out, " %s\n", r.Name)
	}
	fmt.Fprintf(s.out, "total: %d/%d passed\n", passed, len(results))
}

// invokeCLI runs one scenario command through the build-and-run
// indirection. A spawn error, timeout, or non-zero exit yields no result.
func (s *Suite) invokeCLI(ctx context.Context, timeout time.Duration, args ...string) (invoke.Result, bool) {
	argv := invoke.BuildAndRun(s.cfg.BuildCommand(), args...)
	res, err := s.runner.Run(ctx, argv, invoke.Options{Timeout: timeout, Dir: s.cfg.WorkingDir()})
	if err != nil {
		logging.LogEvent("smoke: spawn failed: %v", err)
		return res, false
	}
	if res.TimedOut {
		logging.LogEvent("smoke: command timed out after %s", timeout)
		return res, false
	}
	if !res.Success() {
		logging.LogEvent("smoke: command exited %d: %s", res.ExitCode, util.TruncateRunes(string(res.Stderr), 200))
		return res, false
	}
	return res, true
}

// testImmediateExecution runs a synchronous execute call and requires the
// output to parse as a JSON object.
func (s *Suite) testImmediateExecution(ctx context.Context) bool {
	res, ok := s.invokeCLI(ctx, s.cfg.ScenarioTimeout(),
		"execute",
		"--prompt", "immediate execution smoke prompt",
		"--mode", "sync",
		"--format", "json",
	)
	if !ok {
		return false
	}

	resp, err := parseExecuteResponse([]byte(res.Text()))
	if err != nil {
		logging.LogEvent("smoke: %v", err)
		return false
	}
	logging.LogEvent("smoke: completion length %d", len(resp.Completion))
	if resp.ExecutionMetadata != nil {
		logging.LogEvent("smoke: completed after %d attempts", resp.ExecutionMetadata.TotalAttempts)
	}
	return true
}

// testCooldownDetection reads the cooldown status and surfaces the
// remaining seconds when the system is cooling.
func (s *Suite) testCooldownDetection(ctx context.Context) bool {
	res, ok := s.invokeCLI(ctx, s.cfg.ScenarioTimeout(), "cooldown", "--format", "json")
	if !ok {
		return false
	}

	status, err := parseCooldown([]byte(res.Text()))
	if err != nil {
		logging.LogEvent("smoke: %v", err)
		return false
	}
	if status.IsCooling {
		logging.LogEvent("smoke: system cooling, %.0f seconds remaining", status.SecondsRemaining)
	} else {
		logging.LogEvent("smoke: system available")
	}
	return true
}

// testHealthCheck passes as soon as the health command returns a result;
// the human-readable output is not parsed.
func (s *Suite) testHealthCheck(ctx context.Context) bool {
	_, ok := s.invokeCLI(ctx, s.cfg.ScenarioTimeout(), "health", "--format", "pretty")
	return ok
}

// testBatchExecution writes a two-prompt batch file, runs it with
// concurrency 1, and requires the output to parse as a JSON array. The
// per-entry success count is informational.
func (s *Suite) testBatchExecution(ctx context.Context) bool {
	batchFile := s.cfg.BatchFilePath()
	if err := s.writeBatchFile(batchFile); err != nil {
		logging.LogEvent("smoke: %v", err)
		return false
	}

	res, ok := s.invokeCLI(ctx, s.cfg.BatchTimeout(),
		"batch",
		"--file", batchFile,
		"--concurrent", "1",
		"--format", "json",
	)
	if !ok {
		return false
	}

	successes, total, err := parseBatchResults([]byte(res.Text()))
	if err != nil {
		logging.LogEvent("smoke: %v", err)
		return false
	}
	logging.LogEvent("smoke: batch complete, %d/%d succeeded", successes, total)
	return true
}

// testScheduledExecution runs execute in async mode as a simplified
// stand-in for true scheduling; any returned result passes.
func (s *Suite) testScheduledExecution(ctx context.Context) bool {
	_, ok := s.invokeCLI(ctx, s.cfg.ScenarioTimeout(),
		"execute",
		"--prompt", "scheduled execution smoke prompt",
		"--mode", "async",
		"--format", "pretty",
	)
	return ok
}

// writeBatchFile serializes the fixed prompt pair and validates it against
// the batch schema before the target ever sees it.
func (s *Suite) writeBatchFile(path string) error {
	prompts := []BatchPrompt{
		{ID: "smoke_prompt_1", Prompt: "batch smoke prompt one"},
		{ID: "smoke_prompt_2", Prompt: "batch smoke prompt two"},
	}

	data, err := json.MarshalIndent(prompts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batch prompts: %w", err)
	}
	if err := validateAgainst(batchFileSchema, data); err != nil {
		return fmt.Errorf("batch prompts file: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create batch file directory: %w", err)
		}
	}
	if err := util.WriteFile(path, data); err != nil {
		return fmt.Errorf("write batch prompts file: %w", err)
	}
	logging.LogEvent("smoke: batch prompts written to %s", path)
	return nil
}
