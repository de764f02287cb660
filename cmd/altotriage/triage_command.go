package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"altotriage/internal/config"
	"altotriage/internal/ledger"
	"altotriage/internal/logging"
	"altotriage/internal/triage"
)

const inputPrompt = "Please enter the folder path: "

func newTriageCommand(ctx *commandContext) *cobra.Command {
	var parsePolicy string
	var showSummary bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "triage [DIR]",
		Short: "Copy valid annotation files into sibling _valid folders",
		Long: `Classify every annotation file in DIR and copy it, with its page image,
into DIR_valid (all polygons well formed) or DIR_valid_no_poly (text lines
without polygons). Files with a malformed polygon or without text lines are
left out. Without DIR the configured input_dir is used, then a prompt.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err = withParsePolicy(cfg, parsePolicy)
			if err != nil {
				return err
			}

			input, err := resolveInputDir(cmd, cfg, args)
			if err != nil {
				return err
			}

			// Keep stdout clean for the JSON report.
			logOut := cmd.OutOrStdout()
			if jsonOutput {
				logOut = cmd.ErrOrStderr()
			}
			logger, closeLog, err := logging.NewFromConfig(cfg, logOut)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer func() { _ = closeLog() }()

			var opts []triage.Option
			if cfg.Ledger.Enabled {
				store, err := ledger.Open(cfg.LedgerPath())
				if err != nil {
					logging.WarnWithContext(logger, "run ledger unavailable, history will not be recorded", "ledger",
						logging.String("path", cfg.LedgerPath()),
						logging.Error(err),
					)
				} else {
					defer store.Close()
					opts = append(opts, triage.WithRecorder(store))
				}
			}

			report, runErr := triage.NewEngine(cfg, logger, opts...).Run(cmd.Context(), input)
			if report != nil {
				switch {
				case jsonOutput:
					if err := writeJSON(cmd, report); err != nil {
						return err
					}
				case showSummary:
					fmt.Fprintln(cmd.OutOrStdout(), renderReportSummary(report))
				}
			}
			if runErr != nil {
				return runErr
			}
			if !jsonOutput {
				fmt.Fprintln(cmd.OutOrStdout(), "Processing completed.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&parsePolicy, "on-parse-error", "", "Parse failure policy: skip or abort (overrides config)")
	cmd.Flags().BoolVar(&showSummary, "summary", false, "Print an outcome table after the run")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run report as JSON")
	return cmd
}

// withParsePolicy returns a copy of cfg using policy when one is given.
func withParsePolicy(cfg *config.Config, policy string) (*config.Config, error) {
	policy = strings.ToLower(strings.TrimSpace(policy))
	if policy == "" {
		return cfg, nil
	}
	override := *cfg
	override.Triage.OnParseError = policy
	if err := override.Validate(); err != nil {
		return nil, fmt.Errorf("--on-parse-error: %w", err)
	}
	return &override, nil
}

// resolveInputDir picks the folder from the argument, then config, then an
// interactive prompt on stdin.
func resolveInputDir(cmd *cobra.Command, cfg *config.Config, args []string) (string, error) {
	input := ""
	if len(args) > 0 {
		input = strings.TrimSpace(args[0])
	}
	if input == "" {
		input = strings.TrimSpace(cfg.Paths.InputDir)
	}
	if input == "" {
		prompted, err := promptLine(cmd.InOrStdin(), cmd.OutOrStdout(), inputPrompt)
		if err != nil {
			return "", err
		}
		input = prompted
	}
	if input == "" {
		return "", errors.New("no input folder given")
	}
	return config.ExpandPath(input)
}

func promptLine(in io.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read folder path: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func renderReportSummary(report *triage.Report) string {
	counts := report.Counts()
	rows := make([][]string, 0, len(triage.Outcomes)+1)
	for _, outcome := range triage.Outcomes {
		rows = append(rows, []string{outcomeLabel(outcome), strconv.Itoa(counts[outcome])})
	}
	rows = append(rows, []string{"Total", strconv.Itoa(len(report.Files))})
	return renderTable([]string{"Outcome", "Files"}, rows, []columnAlignment{alignLeft, alignRight})
}
