// Package logging assembles structured slog loggers and formatting helpers used
// across altotriage.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing (terminal plus optional log file). Component loggers tag
// every line with the subsystem that produced it, and the package provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so per-file triage
// diagnostics keep the same shape whether they land on a terminal or in JSON.
package logging
