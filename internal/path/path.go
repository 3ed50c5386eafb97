// Package path builds device-space paths and converts them into polygon
// edges for the scan converters.
package path

import "math"

// Point is a device-space position.
type Point struct {
	X, Y float64
}

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Length returns the distance from the origin.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// DefaultTolerance is the maximum distance, in pixels, between a curve
// and its flattened polyline.
const DefaultTolerance = 0.1

// Element is one path command.
type Element interface {
	isElement()
}

// MoveTo starts a new subpath.
type MoveTo struct{ Point Point }

// LineTo draws a straight line from the current point.
type LineTo struct{ Point Point }

// QuadTo draws a quadratic Bézier curve.
type QuadTo struct{ Control, Point Point }

// CubicTo draws a cubic Bézier curve.
type CubicTo struct{ Control1, Control2, Point Point }

// Close ends the current subpath with a line back to its start.
type Close struct{}

func (MoveTo) isElement()  {}
func (LineTo) isElement()  {}
func (QuadTo) isElement()  {}
func (CubicTo) isElement() {}
func (Close) isElement()   {}

// Path is a sequence of elements. The zero value is an empty path.
type Path struct {
	elems      []Element
	start      Point
	current    Point
	hasCurrent bool
}

// New returns an empty path.
func New() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Point{X: x, Y: y}
	p.elems = append(p.elems, MoveTo{Point: pt})
	p.start, p.current, p.hasCurrent = pt, pt, true
}

// LineTo adds a line to (x, y). Without a current point it behaves like
// MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(x, y)
		return
	}
	pt := Point{X: x, Y: y}
	p.elems = append(p.elems, LineTo{Point: pt})
	p.current = pt
}

// QuadTo adds a quadratic curve with control point (cx, cy) ending at
// (x, y).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(cx, cy)
	}
	pt := Point{X: x, Y: y}
	p.elems = append(p.elems, QuadTo{Control: Point{X: cx, Y: cy}, Point: pt})
	p.current = pt
}

// CubicTo adds a cubic curve ending at (x, y).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.hasCurrent {
		p.MoveTo(c1x, c1y)
	}
	pt := Point{X: x, Y: y}
	p.elems = append(p.elems, CubicTo{
		Control1: Point{X: c1x, Y: c1y},
		Control2: Point{X: c2x, Y: c2y},
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current subpath.
func (p *Path) Close() {
	if !p.hasCurrent {
		return
	}
	p.elems = append(p.elems, Close{})
	p.current = p.start
}

// Rectangle adds a closed axis-aligned rectangle.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Append adds elements to the end of the path.
func (p *Path) Append(elems ...Element) {
	for _, e := range elems {
		switch e := e.(type) {
		case MoveTo:
			p.MoveTo(e.Point.X, e.Point.Y)
		case LineTo:
			p.LineTo(e.Point.X, e.Point.Y)
		case QuadTo:
			p.QuadTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case CubicTo:
			p.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case Close:
			p.Close()
		}
	}
}

// Elements returns the path's elements. The slice must not be modified.
func (p *Path) Elements() []Element {
	return p.elems
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elems) == 0
}

// Reset empties the path, keeping its capacity.
func (p *Path) Reset() {
	p.elems = p.elems[:0]
	p.hasCurrent = false
}

// Translate returns a copy of the path moved by (dx, dy).
func (p *Path) Translate(dx, dy float64) *Path {
	d := Point{X: dx, Y: dy}
	q := &Path{elems: make([]Element, len(p.elems))}
	for i, e := range p.elems {
		switch e := e.(type) {
		case MoveTo:
			q.elems[i] = MoveTo{Point: e.Point.Add(d)}
		case LineTo:
			q.elems[i] = LineTo{Point: e.Point.Add(d)}
		case QuadTo:
			q.elems[i] = QuadTo{Control: e.Control.Add(d), Point: e.Point.Add(d)}
		case CubicTo:
			q.elems[i] = CubicTo{Control1: e.Control1.Add(d), Control2: e.Control2.Add(d), Point: e.Point.Add(d)}
		default:
			q.elems[i] = e
		}
	}
	q.start, q.current, q.hasCurrent = p.start.Add(d), p.current.Add(d), p.hasCurrent
	return q
}
