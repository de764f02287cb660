package triage

import "time"

// Outcome is the recorded result for one annotation file.
type Outcome string

const (
	OutcomeNoTextLines    Outcome = "no_text_lines"
	OutcomeNoPolygons     Outcome = "no_polygons"
	OutcomeValid          Outcome = "valid"
	OutcomeInvalidPolygon Outcome = "invalid_polygon"
	OutcomeParseError     Outcome = "parse_error"
)

// Outcomes lists every outcome in display order.
var Outcomes = []Outcome{
	OutcomeValid,
	OutcomeNoPolygons,
	OutcomeInvalidPolygon,
	OutcomeNoTextLines,
	OutcomeParseError,
}

// Copied reports whether files with this outcome land in a destination.
func (o Outcome) Copied() bool {
	return o == OutcomeValid || o == OutcomeNoPolygons
}

// FileResult describes what happened to one annotation file.
type FileResult struct {
	Name        string  `json:"name"`
	Outcome     Outcome `json:"outcome"`
	Destination string  `json:"destination,omitempty"`
	Image       string  `json:"image,omitempty"`
	ImageCopied bool    `json:"image_copied"`
	TextLines   int     `json:"text_lines"`
	Polygons    int     `json:"polygons"`
	Detail      string  `json:"detail,omitempty"`
}

// Report summarizes a triage run.
type Report struct {
	RunID        string       `json:"run_id"`
	InputDir     string       `json:"input_dir"`
	ValidDir     string       `json:"valid_dir"`
	NoPolygonDir string       `json:"no_polygon_dir"`
	StartedAt    time.Time    `json:"started_at"`
	FinishedAt   time.Time    `json:"finished_at"`
	Files        []FileResult `json:"files"`
	Aborted      bool         `json:"aborted"`
	Error        string       `json:"error,omitempty"`
}

// Counts tallies files per outcome.
func (r *Report) Counts() map[Outcome]int {
	counts := make(map[Outcome]int, len(Outcomes))
	for _, f := range r.Files {
		counts[f.Outcome]++
	}
	return counts
}

// CopiedFiles returns the number of annotation files copied to either destination.
func (r *Report) CopiedFiles() int {
	n := 0
	for _, f := range r.Files {
		if f.Outcome.Copied() {
			n++
		}
	}
	return n
}

// Status returns "aborted" or "completed".
func (r *Report) Status() string {
	if r.Aborted {
		return "aborted"
	}
	return "completed"
}
