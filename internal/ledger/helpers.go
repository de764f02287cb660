package ledger

import (
	"database/sql"
	"fmt"
	"time"
)

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run          Run
		startedRaw   string
		finishedRaw  string
		errorMessage sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.InputDir,
		&run.ValidDir,
		&run.NoPolygonDir,
		&startedRaw,
		&finishedRaw,
		&run.Status,
		&errorMessage,
		&run.TotalFiles,
		&run.Valid,
		&run.NoPolygons,
		&run.InvalidPolygon,
		&run.NoTextLines,
		&run.ParseErrors,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}

	var err error
	if run.StartedAt, err = parseTime(startedRaw); err != nil {
		return nil, fmt.Errorf("parse started_at for run %s: %w", run.ID, err)
	}
	if run.FinishedAt, err = parseTime(finishedRaw); err != nil {
		return nil, fmt.Errorf("parse finished_at for run %s: %w", run.ID, err)
	}
	run.Error = errorMessage.String
	return &run, nil
}

// Timestamps are stored with a fixed-width layout so they sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, raw)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
