package path

import (
	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/raster"
)

// AppendPolygon flattens elems and adds their edges to dst. Every
// subpath is closed, as a fill requires.
func AppendPolygon(dst *raster.Polygon, elems []Element, tolerance float64) {
	it := NewEdgeIter(elems, tolerance)
	for {
		s, ok := it.Next()
		if !ok {
			return
		}
		dst.Add(fixed.PtF(s.P0.X, s.P0.Y), fixed.PtF(s.P1.X, s.P1.Y))
	}
}

// ToPolygon returns the polygon of p.
func ToPolygon(p *Path, tolerance float64) *raster.Polygon {
	poly := &raster.Polygon{}
	AppendPolygon(poly, p.Elements(), tolerance)
	return poly
}

// Boxes reports whether elems describe a union of disjoint, axis-aligned
// rectangles and returns them. Such a path fills the same pixels under
// either fill rule, so callers may composite the boxes directly instead
// of scan converting. Empty rectangles are dropped.
func Boxes(elems []Element) ([]fixed.Box, bool) {
	var (
		boxes []fixed.Box
		pts   []fixed.Point
	)
	flush := func() bool {
		if len(pts) > 1 && pts[len(pts)-1] == pts[0] {
			pts = pts[:len(pts)-1]
		}
		switch len(pts) {
		case 0, 1:
			pts = pts[:0]
			return true
		case 4:
		default:
			return false
		}
		b, ok := rectOf(pts)
		pts = pts[:0]
		if !ok {
			return false
		}
		if !b.IsEmpty() {
			boxes = append(boxes, b)
		}
		return true
	}

	for _, e := range elems {
		switch e := e.(type) {
		case MoveTo:
			if !flush() {
				return nil, false
			}
			pts = append(pts, fixed.PtF(e.Point.X, e.Point.Y))
		case LineTo:
			pts = append(pts, fixed.PtF(e.Point.X, e.Point.Y))
		case Close:
			var start fixed.Point
			if len(pts) > 0 {
				start = pts[0]
			}
			if !flush() {
				return nil, false
			}
			pts = append(pts, start)
		default:
			return nil, false
		}
	}
	if !flush() {
		return nil, false
	}

	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			if !boxes[i].Intersect(boxes[j]).IsEmpty() {
				return nil, false
			}
		}
	}
	return boxes, true
}

// rectOf returns the box traced by four corners in either winding.
func rectOf(p []fixed.Point) (fixed.Box, bool) {
	horizFirst := p[0].Y == p[1].Y && p[1].X == p[2].X && p[2].Y == p[3].Y && p[3].X == p[0].X
	vertFirst := p[0].X == p[1].X && p[1].Y == p[2].Y && p[2].X == p[3].X && p[3].Y == p[0].Y
	if !horizFirst && !vertFirst {
		return fixed.Box{}, false
	}
	return fixed.Box{
		P1: fixed.Point{X: min(p[0].X, p[2].X), Y: min(p[0].Y, p[2].Y)},
		P2: fixed.Point{X: max(p[0].X, p[2].X), Y: max(p[0].Y, p[2].Y)},
	}, true
}
