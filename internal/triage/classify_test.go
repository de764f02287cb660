package triage

import (
	"strings"
	"testing"

	"altotriage/internal/alto"
	"altotriage/internal/imageinfo"
	"altotriage/internal/testsupport"
)

func parseDoc(t *testing.T, lines ...testsupport.Line) *alto.Document {
	t.Helper()
	root, err := alto.Parse(strings.NewReader(testsupport.ALTODocument(lines...)))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return &alto.Document{Path: "fixture.xml", Root: root}
}

var defaultRules = Rules{Namespace: testsupport.ALTONamespace, PolygonTokens: 8}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		lines    []testsupport.Line
		want     Classification
		polygons int
	}{
		{name: "no text lines", want: NoTextLines},
		{name: "text lines without polygons", lines: []testsupport.Line{{}, {}}, want: NoPolygons},
		{
			name:     "all valid",
			lines:    []testsupport.Line{{Polygons: []string{"1 1 2 2 3 3 4 4"}}, {Polygons: []string{"5 5 6 6 7 7 8 8"}}},
			want:     AllPolygonsValid,
			polygons: 2,
		},
		{
			name:     "one short polygon",
			lines:    []testsupport.Line{{Polygons: []string{"1 1 2 2 3 3 4 4"}}, {Polygons: []string{"1 1 2 2 3 3"}}},
			want:     SomePolygonInvalid,
			polygons: 2,
		},
		{
			name:     "extra whitespace still counts tokens",
			lines:    []testsupport.Line{{Polygons: []string{"  1 1\t2 2   3 3 4 4 "}}},
			want:     AllPolygonsValid,
			polygons: 1,
		},
		{
			name:     "empty points",
			lines:    []testsupport.Line{{Polygons: []string{""}}},
			want:     SomePolygonInvalid,
			polygons: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(parseDoc(t, tt.lines...), defaultRules, nil)
			if got.Class != tt.want {
				t.Fatalf("Classify = %s, want %s (reason %q)", got.Class, tt.want, got.Reason)
			}
			if got.Polygons != tt.polygons {
				t.Fatalf("polygons = %d, want %d", got.Polygons, tt.polygons)
			}
		})
	}
}

func TestClassifyReportsFirstInvalidPolygon(t *testing.T) {
	doc := parseDoc(t,
		testsupport.Line{Polygons: []string{"1 2 3"}},
		testsupport.Line{Polygons: []string{"1 1 2 2"}},
	)
	got := Classify(doc, defaultRules, nil)
	if got.Class != SomePolygonInvalid {
		t.Fatalf("expected invalid, got %s", got.Class)
	}
	if strings.Join(got.InvalidPoints, " ") != "1 2 3" {
		t.Fatalf("expected first failing polygon, got %v", got.InvalidPoints)
	}
	if !strings.Contains(got.Reason, "polygon 1") {
		t.Fatalf("unexpected reason %q", got.Reason)
	}
}

func TestClassifyIgnoresOtherNamespaces(t *testing.T) {
	const xmlDoc = `<alto xmlns="http://example.com/other"><TextLine><Polygon POINTS="1"/></TextLine></alto>`
	root, err := alto.Parse(strings.NewReader(xmlDoc))
	if err != nil {
		t.Fatal(err)
	}
	got := Classify(&alto.Document{Root: root}, defaultRules, nil)
	if got.Class != NoTextLines {
		t.Fatalf("expected NoTextLines for foreign namespace, got %s", got.Class)
	}
}

func TestClassifyWithBounds(t *testing.T) {
	bounds := &imageinfo.Size{Width: 100, Height: 50}

	inside := parseDoc(t, testsupport.Line{Polygons: []string{"0 0 100 0 100 50 0 50"}})
	if got := Classify(inside, defaultRules, bounds); got.Class != AllPolygonsValid {
		t.Fatalf("expected polygon on the edges to be valid, got %s (%s)", got.Class, got.Reason)
	}

	outside := parseDoc(t, testsupport.Line{Polygons: []string{"0 0 101 0 101 50 0 50"}})
	got := Classify(outside, defaultRules, bounds)
	if got.Class != SomePolygonInvalid || !strings.Contains(got.Reason, "outside") {
		t.Fatalf("expected out-of-bounds polygon to be invalid, got %s (%s)", got.Class, got.Reason)
	}

	nonNumeric := parseDoc(t, testsupport.Line{Polygons: []string{"a 0 1 0 1 1 0 1"}})
	if got := Classify(nonNumeric, defaultRules, bounds); got.Class != SomePolygonInvalid {
		t.Fatalf("expected non-numeric polygon to be invalid, got %s", got.Class)
	}
	if got := Classify(nonNumeric, defaultRules, nil); got.Class != AllPolygonsValid {
		t.Fatalf("token count alone should accept non-numeric points, got %s", got.Class)
	}
}

func TestClassificationOutcome(t *testing.T) {
	cases := map[Classification]Outcome{
		NoTextLines:        OutcomeNoTextLines,
		NoPolygons:         OutcomeNoPolygons,
		AllPolygonsValid:   OutcomeValid,
		SomePolygonInvalid: OutcomeInvalidPolygon,
	}
	for class, want := range cases {
		if got := class.Outcome(); got != want {
			t.Fatalf("%s.Outcome() = %s, want %s", class, got, want)
		}
	}
	if Classification(42).String() != "Classification(42)" {
		t.Fatalf("unexpected String for unknown value: %s", Classification(42))
	}
}
