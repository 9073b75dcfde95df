package invoke

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestRunCapturesOutput(t *testing.T) {
	skipOnWindows(t)

	res, err := ExecRunner{}.Run(context.Background(), []string{"echo", "hello"}, Options{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Success() {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Text() != "hello" {
		t.Fatalf("stdout: %q", res.Text())
	}
	if res.OutputSize() == 0 {
		t.Fatal("expected non-zero output size")
	}
}

func TestRunNonZeroExitIsData(t *testing.T) {
	skipOnWindows(t)

	res, err := ExecRunner{}.Run(context.Background(), []string{"sh", "-c", "exit 3"}, Options{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if res.Success() {
		t.Fatalf("expected failure, got %+v", res)
	}
	if res.ExitCode != 3 {
		t.Fatalf("exit code: %d", res.ExitCode)
	}
}

func TestRunTimeoutRecordsTimeoutAsDuration(t *testing.T) {
	skipOnWindows(t)

	timeout := 100 * time.Millisecond
	res, err := ExecRunner{}.Run(context.Background(), []string{"sleep", "5"}, Options{Timeout: timeout})
	if err != nil {
		t.Fatalf("timeout must not be an error: %v", err)
	}
	if !res.TimedOut {
		t.Fatalf("expected timeout, got %+v", res)
	}
	if res.Duration != timeout {
		t.Fatalf("timeout duration must equal the configured timeout: %v", res.Duration)
	}
	if res.Success() {
		t.Fatal("timed-out invocation must not be a success")
	}
}

func TestRunMissingBinaryIsError(t *testing.T) {
	if _, err := (ExecRunner{}).Run(context.Background(), []string{"cnpharness-no-such-binary"}, Options{}); err == nil {
		t.Fatal("expected spawn error for missing binary")
	}
}

func TestRunEmptyArgvIsError(t *testing.T) {
	if _, err := (ExecRunner{}).Run(context.Background(), nil, Options{}); err == nil {
		t.Fatal("expected error for empty argv")
	}
}

func TestBuildAndRun(t *testing.T) {
	argv := BuildAndRun([]string{"cargo", "run", "--bin", "cnp-unified", "--"}, "health", "--format", "json")
	joined := strings.Join(argv, " ")
	if joined != "cargo run --bin cnp-unified -- health --format json" {
		t.Fatalf("argv: %q", joined)
	}
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}
