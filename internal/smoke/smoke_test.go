package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pilotbench/cnpharness/internal/appconfig"
	"github.com/pilotbench/cnpharness/internal/invoke"
)

type fakeRunner struct {
	calls [][]string
	fn    func(argv []string, opt invoke.Options) (invoke.Result, error)
}

func (f *fakeRunner) Run(_ context.Context, argv []string, opt invoke.Options) (invoke.Result, error) {
	f.calls = append(f.calls, argv)
	return f.fn(argv, opt)
}

// subcommand extracts the target CLI subcommand from a build-and-run argv.
func subcommand(argv []string) string {
	for i, arg := range argv {
		if arg == "--" && i+1 < len(argv) {
			return argv[i+1]
		}
	}
	return ""
}

func jsonResult(payload string) invoke.Result {
	return invoke.Result{Stdout: []byte(payload), ExitCode: 0, Duration: 10 * time.Millisecond}
}

func testConfig(t *testing.T) *appconfig.Config {
	t.Helper()
	zero := 0
	return &appconfig.Config{
		PauseSeconds: &zero,
		BatchFile:    filepath.Join(t.TempDir(), "batch_prompts.json"),
	}
}

// allPassRunner answers every scenario with a parseable, successful response.
func allPassRunner() *fakeRunner {
	return &fakeRunner{fn: func(argv []string, _ invoke.Options) (invoke.Result, error) {
		switch subcommand(argv) {
		case "execute":
			return jsonResult(`{"completion":"done","execution_metadata":{"total_attempts":1}}`), nil
		case "cooldown":
			return jsonResult(`{"is_cooling":false}`), nil
		case "health":
			return jsonResult("all systems nominal"), nil
		case "batch":
			return jsonResult(`[{"status":"success"},{"status":"success"}]`), nil
		}
		return invoke.Result{ExitCode: 1}, nil
	}}
}

func TestParseCooldownSurfacesRemainingSeconds(t *testing.T) {
	status, err := parseCooldown([]byte(`{"is_cooling":true,"seconds_remaining":42}`))
	if err != nil {
		t.Fatalf("parseCooldown: %v", err)
	}
	if !status.IsCooling || status.SecondsRemaining != 42 {
		t.Fatalf("status: %+v", status)
	}
}

func TestParseCooldownDefaults(t *testing.T) {
	status, err := parseCooldown([]byte(`{}`))
	if err != nil {
		t.Fatalf("parseCooldown: %v", err)
	}
	if status.IsCooling || status.SecondsRemaining != 0 {
		t.Fatalf("defaults: %+v", status)
	}

	if _, err := parseCooldown([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed response")
	}
}

func TestParseExecuteResponse(t *testing.T) {
	resp, err := parseExecuteResponse([]byte(`{"completion":"hello","execution_metadata":{"total_attempts":2}}`))
	if err != nil {
		t.Fatalf("parseExecuteResponse: %v", err)
	}
	if resp.Completion != "hello" || resp.ExecutionMetadata == nil || resp.ExecutionMetadata.TotalAttempts != 2 {
		t.Fatalf("resp: %+v", resp)
	}

	if _, err := parseExecuteResponse([]byte(`"just a string"`)); err == nil {
		t.Fatal("expected error for non-object response")
	}
}

func TestParseBatchResultsCountsSuccesses(t *testing.T) {
	successes, total, err := parseBatchResults([]byte(`[{"status":"success"},{"status":"success"}]`))
	if err != nil {
		t.Fatalf("parseBatchResults: %v", err)
	}
	if successes != 2 || total != 2 {
		t.Fatalf("counts: %d/%d", successes, total)
	}

	successes, total, err = parseBatchResults([]byte(`[{"status":"success"},{"status":"error"}]`))
	if err != nil {
		t.Fatalf("parseBatchResults: %v", err)
	}
	if successes != 1 || total != 2 {
		t.Fatalf("counts: %d/%d", successes, total)
	}

	if _, _, err := parseBatchResults([]byte(`{"status":"success"}`)); err == nil {
		t.Fatal("expected error for non-array response")
	}
}

func TestWriteBatchFile(t *testing.T) {
	cfg := testConfig(t)
	suite := New(cfg, allPassRunner())

	path := cfg.BatchFilePath()
	if err := suite.writeBatchFile(path); err != nil {
		t.Fatalf("writeBatchFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read batch file: %v", err)
	}
	var prompts []BatchPrompt
	if err := json.Unmarshal(data, &prompts); err != nil {
		t.Fatalf("batch file must be valid json: %v", err)
	}
	if len(prompts) != 2 || prompts[0].ID == "" || prompts[1].Prompt == "" {
		t.Fatalf("prompts: %+v", prompts)
	}
}

func TestCooldownScenarioPassesWhileCooling(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{fn: func(_ []string, _ invoke.Options) (invoke.Result, error) {
		return jsonResult(`{"is_cooling":true,"seconds_remaining":42}`), nil
	}}
	suite := New(cfg, runner)
	suite.SetOutput(&bytes.Buffer{})

	if !suite.testCooldownDetection(context.Background()) {
		t.Fatal("cooling system is still a passing scenario")
	}
}

func TestScenarioFailsOnTimeout(t *testing.T) {
	cfg := testConfig(t)
	runner := &fakeRunner{fn: func(_ []string, opt invoke.Options) (invoke.Result, error) {
		return invoke.Result{TimedOut: true, ExitCode: -1, Duration: opt.Timeout}, nil
	}}
	suite := New(cfg, runner)
	suite.SetOutput(&bytes.Buffer{})

	if suite.testHealthCheck(context.Background()) {
		t.Fatal("timed-out invocation must yield no result")
	}
}

func TestRunScenarioRecoversPanic(t *testing.T) {
	cfg := testConfig(t)
	suite := New(cfg, allPassRunner())
	suite.SetOutput(&bytes.Buffer{})

	passed := suite.runScenario(context.Background(), scenario{
		name: "boom",
		run:  func(context.Context) bool { panic("scenario exploded") },
	})
	if passed {
		t.Fatal("panicking scenario must be recorded as failed")
	}
}

func TestRunAllScenariosPass(t *testing.T) {
	cfg := testConfig(t)
	suite := New(cfg, allPassRunner())
	var buf bytes.Buffer
	suite.SetOutput(&buf)

	ok, results := suite.Run(context.Background())
	if !ok {
		t.Fatalf("expected overall pass, results: %+v", results)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 scenarios, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Fatalf("scenario %q failed", r.Name)
		}
	}
	if !strings.Contains(buf.String(), "5/5 passed") {
		t.Fatalf("summary missing, got:\n%s", buf.String())
	}
}

func TestRunSingleFailureFlipsExitStatus(t *testing.T) {
	cfg := testConfig(t)
	base := allPassRunner()
	runner := &fakeRunner{fn: func(argv []string, opt invoke.Options) (invoke.Result, error) {
		if subcommand(argv) == "health" {
			return invoke.Result{ExitCode: 1, Stderr: []byte("unhealthy")}, nil
		}
		return base.fn(argv, opt)
	}}
	suite := New(cfg, runner)
	var buf bytes.Buffer
	suite.SetOutput(&buf)

	ok, results := suite.Run(context.Background())
	if ok {
		t.Fatal("one failing scenario must fail the run")
	}
	for _, r := range results {
		if r.Name == "health check" {
			if r.Passed {
				t.Fatal("health check must be the failing scenario")
			}
		} else if !r.Passed {
			t.Fatalf("scenario %q should still pass", r.Name)
		}
	}
	if !strings.Contains(buf.String(), "4/5 passed") {
		t.Fatalf("summary missing, got:\n%s", buf.String())
	}
}

func TestRunUsesBuildAndRunIndirection(t *testing.T) {
	cfg := testConfig(t)
	runner := allPassRunner()
	suite := New(cfg, runner)
	suite.SetOutput(&bytes.Buffer{})

	suite.Run(context.Background())

	if len(runner.calls) != 5 {
		t.Fatalf("expected 5 invocations, got %d", len(runner.calls))
	}
	for _, argv := range runner.calls {
		if argv[0] != "cargo" || argv[1] != "run" {
			t.Fatalf("scenario must go through the build indirection: %v", argv)
		}
	}
}
