package preflight

import (
	"context"
	"path/filepath"

	"mriseq/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	switch cfg.Reference.Source {
	case config.SourceSnapshot:
		results = append(results, CheckSnapshot(ctx, cfg.Snapshot.Path))
	default:
		results = append(results, CheckReadableFile("Reference table", cfg.ReferencePath()))
	}

	// Snapshot directory (always checked; `table import` writes there)
	results = append(results, CheckDirectoryAccess("Snapshot directory", filepath.Dir(cfg.Snapshot.Path)))

	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
