package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"altotriage/internal/ledger"
	"altotriage/internal/triage"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded triage runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openLedger()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if runs == nil {
					runs = []ledger.Run{}
				}
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No triage runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderRunTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show per-file outcomes for a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openLedger()
			if err != nil {
				return err
			}
			defer store.Close()

			id := strings.TrimSpace(args[0])
			run, err := store.GetRun(cmd.Context(), id)
			if err != nil {
				return err
			}
			files, err := store.RunFiles(cmd.Context(), id)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, struct {
					Run   *ledger.Run         `json:"run"`
					Files []triage.FileResult `json:"files"`
				}{Run: run, Files: files})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:            %s\n", run.ID)
			fmt.Fprintf(out, "Status:         %s\n", run.Status)
			fmt.Fprintf(out, "Input:          %s\n", run.InputDir)
			fmt.Fprintf(out, "Valid:          %s\n", run.ValidDir)
			fmt.Fprintf(out, "No polygons:    %s\n", run.NoPolygonDir)
			fmt.Fprintf(out, "Started:        %s\n", run.StartedAt.Local().Format(historyTimeLayout))
			fmt.Fprintf(out, "Duration:       %s\n", run.Duration().Round(time.Millisecond))
			if run.Error != "" {
				fmt.Fprintf(out, "Error:          %s\n", run.Error)
			}
			if len(files) == 0 {
				fmt.Fprintln(out, "No files processed")
				return nil
			}
			fmt.Fprintln(out, renderFileTable(files))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run as JSON")
	return cmd
}

func renderRunTable(runs []ledger.Run) string {
	headers := []string{"Run", "Started", "Status", "Input", "Files"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight}
	for _, outcome := range triage.Outcomes {
		headers = append(headers, outcomeLabel(outcome))
		aligns = append(aligns, alignRight)
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		row := []string{
			run.ID,
			run.StartedAt.Local().Format(historyTimeLayout),
			run.Status,
			run.InputDir,
			strconv.Itoa(run.TotalFiles),
		}
		for _, outcome := range triage.Outcomes {
			row = append(row, strconv.Itoa(run.Count(outcome)))
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows, aligns)
}

func renderFileTable(files []triage.FileResult) string {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		image := "-"
		if f.ImageCopied {
			image = f.Image
		}
		rows = append(rows, []string{
			f.Name,
			outcomeLabel(f.Outcome),
			strconv.Itoa(f.TextLines),
			strconv.Itoa(f.Polygons),
			image,
			f.Detail,
		})
	}
	return renderTable(
		[]string{"File", "Outcome", "Lines", "Polygons", "Image", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
	)
}
