package imageinfo_test

import (
	"path/filepath"
	"testing"

	"altotriage/internal/imageinfo"
	"altotriage/internal/testsupport"
)

func TestProbeJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.jpg")
	testsupport.WriteJPEG(t, path, 64, 32)

	size, format, err := imageinfo.Probe(path)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("unexpected format %q", format)
	}
	if size != (imageinfo.Size{Width: 64, Height: 32}) {
		t.Fatalf("unexpected size %+v", size)
	}
}

func TestProbeRejectsUnknownData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.jpg")
	testsupport.WriteText(t, path, "not an image")
	if _, _, err := imageinfo.Probe(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSizeContains(t *testing.T) {
	size := imageinfo.Size{Width: 100, Height: 50}
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{100, 50, true},
		{50.5, 25, true},
		{-1, 10, false},
		{10, 51, false},
		{101, 0, false},
	}
	for _, tt := range tests {
		if got := size.Contains(tt.x, tt.y); got != tt.want {
			t.Fatalf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
