package alto

import (
	"fmt"
	"strconv"
	"strings"
)

// PointsAttr is the polygon attribute holding the coordinate list.
const PointsAttr = "POINTS"

// Point is one polygon vertex in image pixel space.
type Point struct {
	X, Y float64
}

// PointTokens splits a POINTS value on any run of whitespace.
func PointTokens(points string) []string {
	return strings.Fields(points)
}

// PolygonPoints returns the raw POINTS value of a polygon; a missing attribute
// reads as empty.
func PolygonPoints(polygon *Node) string {
	value, _ := polygon.Attr(PointsAttr)
	return value
}

// ParsePoints decodes a POINTS value into vertices. The token count must be
// even and every token numeric.
func ParsePoints(points string) ([]Point, error) {
	tokens := PointTokens(points)
	if len(tokens)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates (%d)", len(tokens))
	}
	out := make([]Point, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		x, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		y, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i+1, err)
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out, nil
}
