package testsupport

import (
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ALTONamespace is the ALTO v4 namespace used by generated fixtures.
const ALTONamespace = "http://www.loc.gov/standards/alto/ns-v4#"

// Line describes one TextLine in a generated document. Each entry in Polygons
// becomes a Polygon element carrying that POINTS value.
type Line struct {
	Polygons []string
}

// ALTODocument renders a minimal ALTO v4 document with the given text lines.
func ALTODocument(lines ...Line) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<alto xmlns="` + ALTONamespace + `">` + "\n")
	b.WriteString("  <Layout><Page ID=\"p1\"><PrintSpace><TextBlock ID=\"b1\">\n")
	for i, line := range lines {
		fmt.Fprintf(&b, "    <TextLine ID=\"l%d\">\n", i+1)
		if len(line.Polygons) > 0 {
			b.WriteString("      <Shape>\n")
			for _, points := range line.Polygons {
				b.WriteString(`        <Polygon POINTS="`)
				_ = xml.EscapeText(&b, []byte(points))
				b.WriteString("\"/>\n")
			}
			b.WriteString("      </Shape>\n")
		}
		b.WriteString("      <String CONTENT=\"text\"/>\n")
		b.WriteString("    </TextLine>\n")
	}
	b.WriteString("  </TextBlock></PrintSpace></Page></Layout>\n")
	b.WriteString("</alto>\n")
	return b.String()
}

// WriteALTO writes a generated ALTO document to path.
func WriteALTO(t testing.TB, path string, lines ...Line) {
	t.Helper()
	WriteText(t, path, ALTODocument(lines...))
}

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteJPEG writes a solid grey JPEG of the given size to path.
func WriteJPEG(t testing.TB, path string, width, height int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = color.Gray{Y: 0x80}.Y
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// ReadDirNames lists the file names in dir, or nil when it does not exist.
func ReadDirNames(t testing.TB, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}
