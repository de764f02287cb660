package preflight

import (
	"fmt"
	"path/filepath"
	"strings"

	"altotriage/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// ForTriage checks that input can be listed and both destinations can be
// written or created.
func ForTriage(input, validDir, noPolygonDir string) []Result {
	parent := filepath.Dir(filepath.Clean(input))
	return []Result{
		CheckDirectoryAccess("Input directory", input, ReadOnly),
		CheckDestination("Valid destination", validDir, parent),
		CheckDestination("No-polygon destination", noPolygonDir, parent),
	}
}

// RunAll executes every check applicable to the configuration. The input
// directory is checked only when one is configured.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("State directory", cfg.Paths.StateDir, ReadWrite)}
	if cfg.Logging.ToFile {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir, ReadWrite))
	}
	if input := strings.TrimSpace(cfg.Paths.InputDir); input != "" {
		validDir, noPolygonDir := cfg.DestinationDirs(input)
		results = append(results, ForTriage(input, validDir, noPolygonDir)...)
	}
	return results
}

// FirstFailure returns an error describing the first failed result, or nil.
func FirstFailure(results []Result) error {
	for _, r := range results {
		if !r.Passed {
			return fmt.Errorf("%s: %s", strings.ToLower(r.Name), r.Detail)
		}
	}
	return nil
}
