package smoke

import (
	"context"
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/pilotbench/cnpharness/internal/appconfig"
	"github.com/pilotbench/cnpharness/internal/invoke"
)

// RunSuite is the CLI entry point for 'smoke run'. It runs all scenarios
// and returns an error when any of them failed, so the process exits
// non-zero for failed runs.
func RunSuite(cfg *appconfig.Config) error {
	suite := New(cfg, invoke.ExecRunner{})
	ok, results := suite.Run(context.Background())

	if cfg.Debug {
		pp.Println(results)
	}

	if !ok {
		failed := 0
		for _, r := range results {
			if !r.Passed {
				failed++
			}
		}
		return fmt.Errorf("smoke: %d of %d scenarios failed", failed, len(results))
	}
	return nil
}
