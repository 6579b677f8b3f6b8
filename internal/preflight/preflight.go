package preflight

import (
	"path/filepath"

	"pemm/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckFileReadable("Handlist", cfg.Paths.Handlist),
	}
	if cfg.Paths.Incipits != "" {
		results = append(results, CheckFileReadable("Incipits", cfg.Paths.Incipits))
	}
	results = append(results, CheckSchema("Schema", cfg.Paths.Schema))
	results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	if cfg.Database.Enabled {
		results = append(results, CheckDirectoryAccess("Database directory", filepath.Dir(cfg.Database.Path)))
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
