package preflight

import (
	"context"

	"traduce/internal/config"
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

	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	results = append(results, CheckDiskSpace("State disk space", cfg.Paths.StateDir))
	results = append(results, CheckCatalog(ctx, cfg))
	if cfg.Investigation.CrossrefTablesPath != "" {
		results = append(results, CheckCrossrefTables(cfg.Investigation.CrossrefTablesPath))
	}

	return results
}

// AllPassed reports whether every check in the set succeeded.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
