package main

import (
	"strings"
	"testing"
)

func TestRenderTableKeepsHeaderCase(t *testing.T) {
	out := renderTable([]string{"Outcome", "Files"}, [][]string{{"Invalid Polygon", "2"}}, []columnAlignment{alignLeft, alignRight})
	if !strings.Contains(out, "Outcome") || !strings.Contains(out, "Files") {
		t.Fatalf("expected headers as given, got:\n%s", out)
	}
	if strings.Contains(out, "OUTCOME") {
		t.Fatalf("headers were upper-cased:\n%s", out)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"Name", "Outcome", "Detail"}, [][]string{{"a.xml"}}, nil)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// top border, header, separator, one row, bottom border
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[3], "a.xml") {
		t.Fatalf("row missing from output:\n%s", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}
