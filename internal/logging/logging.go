// Package logging fans harness log output out to stdout and an optional file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogInvocation records one target CLI invocation with its outcome.
func LogInvocation(argv []string, duration time.Duration, exitCode int, timedOut bool) {
	msg := buildInvocationMessage(argv, duration, exitCode, timedOut)
	log.Println(msg)
}

func buildInvocationMessage(argv []string, duration time.Duration, exitCode int, timedOut bool) string {
	cmd := strings.Join(argv, " ")
	if strings.TrimSpace(cmd) == "" {
		cmd = "unknown"
	}
	parts := []string{"[INVOKE]"}
	parts = append(parts, fmt.Sprintf("cmd=%q", cmd))
	parts = append(parts, fmt.Sprintf("duration=%s", duration))
	if timedOut {
		parts = append(parts, "timeout=true")
	} else {
		parts = append(parts, fmt.Sprintf("exit=%d", exitCode))
	}
	return strings.Join(parts, " ")
}
