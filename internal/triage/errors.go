package triage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRunInProgress indicates another process holds the lock for the same input folder.
	ErrRunInProgress = errors.New("another triage run is in progress for this folder")
	ErrPreflight     = errors.New("preflight failed")
	ErrFilesystem    = errors.New("filesystem error")
)

// wrap tags err with marker so callers can classify why a run stopped.
func wrap(marker error, operation, path string, err error) error {
	detail := buildDetail(operation, path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, path string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if path = strings.TrimSpace(path); path != "" {
		parts = append(parts, path)
	}
	if len(parts) == 0 {
		return "triage failure"
	}
	return strings.Join(parts, " ")
}
