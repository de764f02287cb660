package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"altotriage/internal/triage"
)

// ErrRunNotFound is returned when a run ID has no ledger entry.
var ErrRunNotFound = errors.New("run not found")

// Run is the stored summary of one triage run.
type Run struct {
	ID             string    `json:"id"`
	InputDir       string    `json:"input_dir"`
	ValidDir       string    `json:"valid_dir"`
	NoPolygonDir   string    `json:"no_polygon_dir"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	Status         string    `json:"status"`
	Error          string    `json:"error,omitempty"`
	TotalFiles     int       `json:"total_files"`
	Valid          int       `json:"valid"`
	NoPolygons     int       `json:"no_polygons"`
	InvalidPolygon int       `json:"invalid_polygon"`
	NoTextLines    int       `json:"no_text_lines"`
	ParseErrors    int       `json:"parse_errors"`
}

// Count returns the stored tally for outcome.
func (r Run) Count(outcome triage.Outcome) int {
	switch outcome {
	case triage.OutcomeValid:
		return r.Valid
	case triage.OutcomeNoPolygons:
		return r.NoPolygons
	case triage.OutcomeInvalidPolygon:
		return r.InvalidPolygon
	case triage.OutcomeNoTextLines:
		return r.NoTextLines
	case triage.OutcomeParseError:
		return r.ParseErrors
	default:
		return 0
	}
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

const runColumns = "id, input_dir, valid_dir, no_polygon_dir, started_at, finished_at, status, error_message, total_files, valid_count, no_polygon_count, invalid_polygon_count, no_text_lines_count, parse_error_count"

// RecordRun stores report and its file results in a single transaction.
// Recording the same run ID again replaces the earlier entry.
func (s *Store) RecordRun(ctx context.Context, report *triage.Report) error {
	if report == nil {
		return errors.New("record run: nil report")
	}
	ctx = ensureContext(ctx)
	return withLockRetry(ctx, func() error {
		return s.recordRunTx(ctx, report)
	})
}

func (s *Store) recordRunTx(ctx context.Context, report *triage.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	counts := report.Counts()
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, report.RunID); err != nil {
		return fmt.Errorf("clear run %s: %w", report.RunID, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.InputDir,
		report.ValidDir,
		report.NoPolygonDir,
		formatTime(report.StartedAt),
		formatTime(report.FinishedAt),
		report.Status(),
		nullableString(report.Error),
		len(report.Files),
		counts[triage.OutcomeValid],
		counts[triage.OutcomeNoPolygons],
		counts[triage.OutcomeInvalidPolygon],
		counts[triage.OutcomeNoTextLines],
		counts[triage.OutcomeParseError],
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", report.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_files (
            run_id, position, name, outcome, destination, image, image_copied, text_lines, polygons, detail
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare file insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range report.Files {
		if _, err := stmt.ExecContext(ctx,
			report.RunID,
			i,
			f.Name,
			string(f.Outcome),
			nullableString(f.Destination),
			nullableString(f.Image),
			boolToInt(f.ImageCopied),
			f.TextLines,
			f.Polygons,
			nullableString(f.Detail),
		); err != nil {
			return fmt.Errorf("insert file %s: %w", f.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", report.RunID, err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun fetches a single run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// RunFiles returns the per-file results of a run in processing order.
func (s *Store) RunFiles(ctx context.Context, id string) ([]triage.FileResult, error) {
	ctx = ensureContext(ctx)
	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, outcome, destination, image, image_copied, text_lines, polygons, detail
        FROM run_files WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list run files: %w", err)
	}
	defer rows.Close()

	files := []triage.FileResult{}
	for rows.Next() {
		var (
			f           triage.FileResult
			outcome     string
			destination sql.NullString
			image       sql.NullString
			imageCopied int
			detail      sql.NullString
		)
		if err := rows.Scan(&f.Name, &outcome, &destination, &image, &imageCopied, &f.TextLines, &f.Polygons, &detail); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		f.Outcome = triage.Outcome(outcome)
		f.Destination = destination.String
		f.Image = image.String
		f.ImageCopied = imageCopied != 0
		f.Detail = detail.String
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run files: %w", err)
	}
	return files, nil
}
