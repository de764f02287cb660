package alto

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"golang.org/x/net/html/charset"
)

const (
	// TextLineElement is the local name of ALTO text line elements.
	TextLineElement = "TextLine"
	// PolygonElement is the local name of ALTO polygon shape elements.
	PolygonElement = "Polygon"
)

var (
	// ErrEmptyDocument indicates the input contained no root element.
	ErrEmptyDocument = errors.New("alto: document has no root element")
	// ErrMultipleRoots indicates a second top-level element after the root closed.
	ErrMultipleRoots = errors.New("alto: junk after document element")
)

// ParseError reports a document that could not be read or parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrorKind classifies the failure for reporting.
func (e *ParseError) ErrorKind() string { return "parse" }

// Node is one element of a parsed document. Nodes are never modified after
// Parse returns.
type Node struct {
	name     xml.Name
	attrs    []xml.Attr
	children []*Node
}

// Name returns the namespace-resolved element name.
func (n *Node) Name() xml.Name { return n.name }

// Attr returns the value of the unqualified attribute with the given local name.
func (n *Node) Attr(local string) (string, bool) {
	for _, attr := range n.attrs {
		if attr.Name.Space == "" && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

// Children returns a copy of the node's child elements.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Document is a parsed annotation file.
type Document struct {
	Path string
	Root *Node
}

// entityDecl matches general internal entities in a DOCTYPE subset.
// Parameter and external entities are not expanded.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([A-Za-z_:][-A-Za-z0-9._:]*)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

// declareEntities registers the internal entities of a DOCTYPE directive with
// the decoder. Replacement text is inserted literally.
func declareEntities(dec *xml.Decoder, directive xml.Directive) {
	if !bytes.HasPrefix(bytes.TrimSpace(directive), []byte("DOCTYPE")) {
		return
	}
	for _, m := range entityDecl.FindAllSubmatch(directive, -1) {
		name := string(m[1])
		if _, ok := dec.Entity[name]; ok {
			// First declaration wins.
			continue
		}
		value := m[2]
		if value == nil {
			value = m[3]
		}
		dec.Entity[name] = string(value)
	}
}

// Parse reads a whole XML document from r and returns its root element.
// Entities declared in an internal DTD subset are expanded.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Entity = map[string]string{}

	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.Directive:
			if root == nil {
				declareEntities(dec, t)
			}
		case xml.StartElement:
			node := &Node{name: t.Name}
			if len(t.Attr) > 0 {
				node.attrs = make([]xml.Attr, len(t.Attr))
				copy(node.attrs, t.Attr)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, ErrMultipleRoots
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	if len(stack) != 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

// ParseFile opens and parses the annotation at path. Any failure, including
// an unreadable file, is returned as a *ParseError.
func ParseFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	root, err := Parse(file)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &Document{Path: path, Root: root}, nil
}

// Descendants returns every element below root whose name matches, in
// document order. The root itself is never included.
func Descendants(root *Node, name xml.Name) []*Node {
	if root == nil {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		for _, child := range n.children {
			if child.name == name {
				out = append(out, child)
			}
			walk(child)
		}
	}
	walk(root)
	return out
}

// TextLines returns all TextLine elements in the given namespace.
func (d *Document) TextLines(namespace string) []*Node {
	return Descendants(d.Root, xml.Name{Space: namespace, Local: TextLineElement})
}

// Polygons returns all Polygon elements in the given namespace, wherever they
// appear in the document.
func (d *Document) Polygons(namespace string) []*Node {
	return Descendants(d.Root, xml.Name{Space: namespace, Local: PolygonElement})
}
