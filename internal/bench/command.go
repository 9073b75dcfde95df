package bench

import (
	"context"
	"fmt"
	"os"

	"github.com/k0kubun/pp"
	"github.com/pilotbench/cnpharness/internal/appconfig"
	"github.com/pilotbench/cnpharness/internal/invoke"
	"github.com/pilotbench/cnpharness/internal/logging"
	"github.com/pilotbench/cnpharness/internal/tui"
)

// RunSuite is the CLI entry point for 'bench run'. It measures the target
// CLI, prints the report, and persists the results snapshot. Measurement
// failures are reported and logged but never turn into a non-zero exit so
// the harness stays usable in CI pipelines that only collect the snapshot.
func RunSuite(cfg *appconfig.Config) error {
	suite := New(cfg, invoke.ExecRunner{})
	ctx := context.Background()

	var runErr error
	if cfg.Progress {
		runErr = tui.RunWithProgress(func(onStep func(string)) error {
			suite.OnProgress = onStep
			return suite.Run(ctx)
		})
	} else {
		runErr = suite.Run(ctx)
	}
	if runErr != nil {
		logging.LogEvent("bench: aborted: %v", runErr)
		fmt.Fprintf(os.Stderr, "benchmark aborted: %v\n", runErr)
		return nil
	}

	suite.Report(os.Stdout)

	if cfg.Debug {
		pp.Println(suite.Results())
	}

	path := cfg.ResultsPath()
	if err := suite.Save(path); err != nil {
		logging.LogEvent("bench: save failed: %v", err)
		fmt.Fprintf(os.Stderr, "could not save results: %v\n", err)
		return nil
	}
	fmt.Printf("\nResults saved to %s\n", path)
	return nil
}
