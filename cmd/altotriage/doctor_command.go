package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"altotriage/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, directories, and the run ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			var lines []string

			lines = append(lines, renderSectionHeader("Configuration", colorize)...)
			configDetail := ctx.configPath
			if !ctx.configExists {
				configDetail += " (not found, using defaults)"
			}
			lines = append(lines,
				renderStatusLine("Config file", statusInfo, configDetail, colorize),
				renderStatusLine("Annotations", statusInfo, fmt.Sprintf("*%s with *%s images", cfg.Triage.AnnotationExtension, cfg.Triage.ImageExtension), colorize),
				renderStatusLine("Polygon tokens", statusInfo, fmt.Sprintf("%d", cfg.Triage.PolygonTokens), colorize),
				renderStatusLine("On parse error", statusInfo, cfg.Triage.OnParseError, colorize),
				renderStatusLine("Image bounds check", statusInfo, yesNo(cfg.Validation.CheckImageBounds), colorize),
			)

			results := preflight.RunAll(cfg)
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Directories", colorize)...)
			if strings.TrimSpace(cfg.Paths.InputDir) == "" {
				lines = append(lines, renderStatusLine("Input directory", statusWarn, "not configured (pass DIR to triage)", colorize))
			}
			for _, r := range results {
				lines = append(lines, renderStatusLine(r.Name, checkStatus(r.Passed), r.Detail, colorize))
			}

			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Run ledger", colorize)...)
			lines = append(lines, ledgerStatusLine(cmd, ctx, colorize))

			for _, line := range lines {
				fmt.Fprintln(out, line)
			}

			if err := preflight.FirstFailure(results); err != nil {
				return fmt.Errorf("doctor: %w", err)
			}
			return nil
		},
	}
}

func ledgerStatusLine(cmd *cobra.Command, ctx *commandContext, colorize bool) string {
	store, err := ctx.openLedger()
	if errors.Is(err, errLedgerDisabled) {
		return renderStatusLine("Ledger", statusWarn, "disabled", colorize)
	}
	if err != nil {
		return renderStatusLine("Ledger", statusError, err.Error(), colorize)
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), 0)
	if err != nil {
		return renderStatusLine("Ledger", statusError, err.Error(), colorize)
	}
	return renderStatusLine("Ledger", statusOK, fmt.Sprintf("%s (%d runs)", store.Path(), len(runs)), colorize)
}
