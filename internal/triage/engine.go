package triage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"altotriage/internal/alto"
	"altotriage/internal/config"
	"altotriage/internal/fileutil"
	"altotriage/internal/imageinfo"
	"altotriage/internal/logging"
	"altotriage/internal/preflight"
)

// Recorder persists finished run reports.
type Recorder interface {
	RecordRun(ctx context.Context, report *Report) error
}

// Engine runs triage passes over annotation folders.
type Engine struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRecorder stores every finished report through r.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine constructs an engine bound to cfg.
func NewEngine(cfg *config.Config, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	e := &Engine{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "triage"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Destinations are the output folders for one run.
type Destinations struct {
	Valid     string
	NoPolygon string
}

// For returns the destination matching a copied classification.
func (d Destinations) For(class Classification) string {
	if class == NoPolygons {
		return d.NoPolygon
	}
	return d.Valid
}

// Run triages every annotation file directly inside inputDir. The returned
// report is non-nil whenever the run started, including when it aborted.
func (e *Engine) Run(ctx context.Context, inputDir string) (*Report, error) {
	if strings.TrimSpace(inputDir) == "" {
		return nil, errors.New("input directory is required")
	}
	input, err := filepath.Abs(inputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve input directory: %w", err)
	}

	validDir, noPolygonDir := e.cfg.DestinationDirs(input)
	dest := Destinations{Valid: validDir, NoPolygon: noPolygonDir}

	report := &Report{
		RunID:        uuid.NewString(),
		InputDir:     input,
		ValidDir:     dest.Valid,
		NoPolygonDir: dest.NoPolygon,
		StartedAt:    e.now().UTC(),
		Files:        []FileResult{},
	}
	logger := e.logger.With(logging.String(logging.FieldRunID, report.RunID))

	if err := preflight.FirstFailure(preflight.ForTriage(input, dest.Valid, dest.NoPolygon)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPreflight, err)
	}

	lock, err := acquireRunLock(e.cfg.LocksDir(), input)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.release(); err != nil {
			logger.Warn("release run lock failed", logging.Error(err))
		}
	}()

	logger.Info("triage started",
		logging.String("input_dir", input),
		logging.String("valid_dir", dest.Valid),
		logging.String("no_polygon_dir", dest.NoPolygon),
	)

	runErr := e.process(ctx, logger, input, dest, report)
	return e.finish(ctx, logger, report, runErr)
}

func (e *Engine) process(ctx context.Context, logger *slog.Logger, input string, dest Destinations, report *Report) error {
	for _, dir := range []string{dest.Valid, dest.NoPolygon} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return wrap(ErrFilesystem, "create destination", dir, err)
		}
	}

	// os.ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(input)
	if err != nil {
		return wrap(ErrFilesystem, "list input directory", input, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), e.cfg.Triage.AnnotationExtension) {
			continue
		}
		result, err := e.processFile(logger, input, dest, entry.Name())
		if result != nil {
			report.Files = append(report.Files, *result)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) processFile(logger *slog.Logger, input string, dest Destinations, name string) (*FileResult, error) {
	annotationPath := filepath.Join(input, name)
	imageName := e.cfg.ImageNameFor(name)
	imagePath := filepath.Join(input, imageName)
	fileLogger := logger.With(logging.String(logging.FieldFile, annotationPath))

	doc, err := alto.ParseFile(annotationPath)
	if err != nil {
		result := &FileResult{Name: name, Outcome: OutcomeParseError, Detail: err.Error()}
		if e.cfg.Triage.OnParseError == config.ParseErrorAbort {
			fileLogger.Error("annotation could not be parsed, aborting", logging.Error(err))
			return result, err
		}
		logging.WarnWithContext(fileLogger, "annotation could not be parsed", "parse_error",
			logging.Error(err),
			logging.String(logging.FieldOutcome, string(OutcomeParseError)),
		)
		return result, nil
	}

	rules := Rules{Namespace: e.cfg.Triage.Namespace, PolygonTokens: e.cfg.Triage.PolygonTokens}
	verdict := Classify(doc, rules, e.imageBounds(fileLogger, imagePath))
	result := &FileResult{
		Name:      name,
		Outcome:   verdict.Class.Outcome(),
		TextLines: verdict.TextLines,
		Polygons:  verdict.Polygons,
	}

	switch verdict.Class {
	case NoTextLines:
		logging.WarnWithContext(fileLogger, "no information found", "no_text_lines",
			logging.String(logging.FieldOutcome, string(result.Outcome)),
		)
		return result, nil
	case SomePolygonInvalid:
		result.Detail = verdict.Reason
		logging.WarnWithContext(fileLogger, "polygon not valid", "invalid_polygon",
			logging.String(logging.FieldOutcome, string(result.Outcome)),
			logging.String("points", strings.Join(verdict.InvalidPoints, " ")),
			logging.String("reason", verdict.Reason),
		)
		return result, nil
	case NoPolygons:
		fileLogger.Info("no polygon elements found", logging.Int("text_lines", verdict.TextLines))
	}

	target := dest.For(verdict.Class)
	result.Destination = target
	copied, err := e.copyPair(fileLogger, annotationPath, imagePath, target)
	if err != nil {
		return result, err
	}
	if copied {
		result.Image = imageName
		result.ImageCopied = true
	}
	return result, nil
}

// copyPair copies the annotation and, when present, its image into target.
func (e *Engine) copyPair(logger *slog.Logger, annotationPath, imagePath, target string) (bool, error) {
	logger.Info("copying annotation pair",
		logging.String("image", imagePath),
		logging.String("destination", target),
	)
	if err := fileutil.CopyFileAtomic(annotationPath, filepath.Join(target, filepath.Base(annotationPath))); err != nil {
		return false, wrap(ErrFilesystem, "copy annotation", annotationPath, err)
	}

	exists, err := fileutil.Exists(imagePath)
	if err != nil {
		return false, wrap(ErrFilesystem, "stat image", imagePath, err)
	}
	if !exists {
		logger.Debug("no sibling image", logging.String("image", imagePath))
		return false, nil
	}
	if err := fileutil.CopyFileAtomic(imagePath, filepath.Join(target, filepath.Base(imagePath))); err != nil {
		return false, wrap(ErrFilesystem, "copy image", imagePath, err)
	}
	return true, nil
}

// imageBounds returns the page size when bounds checking is enabled and the
// image can be decoded. A missing or unreadable image disables the check for
// that file.
func (e *Engine) imageBounds(logger *slog.Logger, imagePath string) *imageinfo.Size {
	if !e.cfg.Validation.CheckImageBounds {
		return nil
	}
	exists, err := fileutil.Exists(imagePath)
	if err != nil || !exists {
		return nil
	}
	size, format, err := imageinfo.Probe(imagePath)
	if err != nil {
		logging.WarnWithContext(logger, "image size unavailable, skipping bounds check", "image_probe",
			logging.String("image", imagePath),
			logging.Error(err),
		)
		return nil
	}
	logger.Debug("image probed",
		logging.String("format", format),
		logging.Int("width", size.Width),
		logging.Int("height", size.Height),
	)
	return &size
}

func (e *Engine) finish(ctx context.Context, logger *slog.Logger, report *Report, runErr error) (*Report, error) {
	report.FinishedAt = e.now().UTC()
	if runErr != nil {
		report.Aborted = true
		report.Error = runErr.Error()
	}

	if e.recorder != nil {
		// Record even when ctx was cancelled so aborted runs stay visible.
		if err := e.recorder.RecordRun(context.WithoutCancel(ctx), report); err != nil {
			logging.WarnWithContext(logger, "record run failed", "ledger", logging.Error(err))
		}
	}

	counts := report.Counts()
	attrs := []logging.Attr{
		logging.String("status", report.Status()),
		logging.Int("files", len(report.Files)),
		logging.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	}
	for _, outcome := range Outcomes {
		attrs = append(attrs, logging.Int(string(outcome), counts[outcome]))
	}
	if runErr != nil {
		attrs = append(attrs, logging.Error(runErr))
		logger.Error("triage aborted", logging.Args(attrs...)...)
		return report, runErr
	}
	logger.Info("triage finished", logging.Args(attrs...)...)
	return report, nil
}
