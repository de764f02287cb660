package triage

import (
	"fmt"

	"altotriage/internal/alto"
	"altotriage/internal/imageinfo"
)

// Classification is the structural verdict for one annotation document.
type Classification int

const (
	NoTextLines Classification = iota
	NoPolygons
	AllPolygonsValid
	SomePolygonInvalid
)

func (c Classification) String() string {
	switch c {
	case NoTextLines:
		return "NoTextLines"
	case NoPolygons:
		return "NoPolygons"
	case AllPolygonsValid:
		return "AllPolygonsValid"
	case SomePolygonInvalid:
		return "SomePolygonInvalid"
	default:
		return fmt.Sprintf("Classification(%d)", int(c))
	}
}

// Outcome maps the classification onto the recorded per-file outcome.
func (c Classification) Outcome() Outcome {
	switch c {
	case NoTextLines:
		return OutcomeNoTextLines
	case NoPolygons:
		return OutcomeNoPolygons
	case AllPolygonsValid:
		return OutcomeValid
	default:
		return OutcomeInvalidPolygon
	}
}

// Rules holds the document conventions Classify checks against.
type Rules struct {
	Namespace     string
	PolygonTokens int
}

// Verdict is the result of classifying one document.
type Verdict struct {
	Class     Classification
	TextLines int
	Polygons  int
	// InvalidPoints holds the tokens of the first polygon that failed.
	InvalidPoints []string
	Reason        string
}

// Classify inspects doc and decides where it belongs. Polygon checks stop at
// the first failure. When bounds is non-nil every vertex must also be numeric
// and lie inside the image.
func Classify(doc *alto.Document, rules Rules, bounds *imageinfo.Size) Verdict {
	lines := doc.TextLines(rules.Namespace)
	if len(lines) == 0 {
		return Verdict{Class: NoTextLines, Reason: "no TextLine elements"}
	}

	polygons := doc.Polygons(rules.Namespace)
	verdict := Verdict{TextLines: len(lines), Polygons: len(polygons)}
	if len(polygons) == 0 {
		verdict.Class = NoPolygons
		verdict.Reason = "no Polygon elements"
		return verdict
	}

	for i, polygon := range polygons {
		points := alto.PolygonPoints(polygon)
		tokens := alto.PointTokens(points)
		if len(tokens) != rules.PolygonTokens {
			verdict.Class = SomePolygonInvalid
			verdict.InvalidPoints = tokens
			verdict.Reason = fmt.Sprintf("polygon %d has %d point tokens, want %d", i+1, len(tokens), rules.PolygonTokens)
			return verdict
		}
		if bounds == nil {
			continue
		}
		if reason := outOfBounds(points, *bounds); reason != "" {
			verdict.Class = SomePolygonInvalid
			verdict.InvalidPoints = tokens
			verdict.Reason = fmt.Sprintf("polygon %d %s", i+1, reason)
			return verdict
		}
	}

	verdict.Class = AllPolygonsValid
	return verdict
}

func outOfBounds(points string, bounds imageinfo.Size) string {
	vertices, err := alto.ParsePoints(points)
	if err != nil {
		return err.Error()
	}
	for _, v := range vertices {
		if !bounds.Contains(v.X, v.Y) {
			return fmt.Sprintf("point (%g, %g) lies outside the %dx%d image", v.X, v.Y, bounds.Width, bounds.Height)
		}
	}
	return ""
}
