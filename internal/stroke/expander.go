package stroke

import (
	"math"

	"github.com/gogpu/glitter/internal/path"
)

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// Style is the pen a path is stroked with.
type Style struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// DefaultStyle returns a one pixel wide style with butt caps and miter
// joins limited at 10.
func DefaultStyle() Style {
	return Style{
		Width:      1,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 10,
	}
}

// minLength is the distance below which consecutive points merge.
const minLength = 1e-9

// Expander converts stroked paths to fill outlines. The zero value is
// not usable; create one with NewExpander. An Expander reuses its
// scratch between calls and must not be shared between goroutines.
type Expander struct {
	style     Style
	tolerance float64
	radius    float64

	pts []path.Point
	out *path.Path
}

// NewExpander returns an expander for style.
func NewExpander(style Style) *Expander {
	return &Expander{
		style:     style,
		tolerance: path.DefaultTolerance,
		radius:    style.Width / 2,
	}
}

// SetTolerance sets the curve flattening tolerance. Non-positive values
// are ignored.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Style returns the style the expander strokes with.
func (e *Expander) Style() Style {
	return e.style
}

// Expand returns the outline of elems stroked with the expander's
// style. The outline must be filled with the non-zero rule.
func (e *Expander) Expand(elems []path.Element) *path.Path {
	e.out = path.New()
	if !(e.radius > 0) {
		return e.out
	}

	e.pts = e.pts[:0]
	drawn := false
	var start path.Point
	for _, el := range elems {
		switch el := el.(type) {
		case path.MoveTo:
			e.subpath(false, drawn)
			e.pts = append(e.pts[:0], el.Point)
			start, drawn = el.Point, false
		case path.LineTo:
			e.lineTo(start, el.Point)
			drawn = true
		case path.QuadTo, path.CubicTo:
			if len(e.pts) == 0 {
				e.pts = append(e.pts, start)
			}
			from := e.pts[len(e.pts)-1]
			for _, poly := range path.Flatten([]path.Element{path.MoveTo{Point: from}, el}, e.tolerance) {
				for _, p := range poly[1:] {
					e.lineTo(start, p)
				}
			}
			drawn = true
		case path.Close:
			e.subpath(true, drawn)
			e.pts = append(e.pts[:0], start)
			drawn = false
		}
	}
	e.subpath(false, drawn)
	return e.out
}

// lineTo appends p to the current polyline, dropping repeated points.
func (e *Expander) lineTo(start, p path.Point) {
	if len(e.pts) == 0 {
		e.pts = append(e.pts, start)
	}
	if p.Distance(e.pts[len(e.pts)-1]) > minLength {
		e.pts = append(e.pts, p)
	}
}

// subpath strokes the collected polyline and clears it.
func (e *Expander) subpath(closed, drawn bool) {
	pts := e.pts
	e.pts = e.pts[:0]
	if closed && len(pts) > 2 && pts[0].Distance(pts[len(pts)-1]) <= minLength {
		pts = pts[:len(pts)-1]
	}

	switch {
	case len(pts) == 0:
		return
	case len(pts) == 1:
		if drawn {
			e.dot(pts[0])
		}
		return
	}

	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	for i := range n {
		e.segment(pts[i], pts[(i+1)%len(pts)])
	}
	for i := 1; i < len(pts)-1; i++ {
		e.join(pts[i-1], pts[i], pts[i+1])
	}
	if closed {
		last := len(pts) - 1
		e.join(pts[last-1], pts[last], pts[0])
		e.join(pts[last], pts[0], pts[1])
		return
	}
	e.cap(pts[0], pts[1])
	e.cap(pts[len(pts)-1], pts[len(pts)-2])
}

// normal returns the left normal of a to b scaled to the pen radius, and
// the unit direction.
func (e *Expander) normal(a, b path.Point) (n, dir path.Point) {
	d := b.Sub(a)
	l := d.Length()
	dir = path.Point{X: d.X / l, Y: d.Y / l}
	return path.Point{X: -dir.Y * e.radius, Y: dir.X * e.radius}, dir
}

func neg(p path.Point) path.Point {
	return path.Point{X: -p.X, Y: -p.Y}
}

func (e *Expander) segment(a, b path.Point) {
	n, _ := e.normal(a, b)
	e.polygon(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

// join fills the wedge between segments a-p and p-b on the outside of
// the turn.
func (e *Expander) join(a, p, b path.Point) {
	n0, d0 := e.normal(a, p)
	n1, d1 := e.normal(p, b)
	cross := d0.X*d1.Y - d0.Y*d1.X
	dot := d0.X*d1.X + d0.Y*d1.Y
	if math.Abs(cross) < minLength && dot > 0 {
		return
	}

	if e.style.Join == LineJoinRound {
		e.disk(p)
		return
	}

	// The outer side is opposite the direction of the turn.
	if cross > 0 {
		n0, n1 = neg(n0), neg(n1)
	}
	outer0, outer1 := p.Add(n0), p.Add(n1)

	limit := e.style.MiterLimit
	if e.style.Join == LineJoinMiter && dot > -1 && 2 <= limit*limit*(1+dot) {
		s := 1 / (1 + dot)
		tip := p.Add(path.Point{X: (n0.X + n1.X) * s, Y: (n0.Y + n1.Y) * s})
		e.polygon(p, outer0, tip, outer1)
		return
	}
	e.polygon(p, outer0, outer1)
}

// cap closes the stroke at end, whose segment comes from prev.
func (e *Expander) cap(end, prev path.Point) {
	switch e.style.Cap {
	case LineCapRound:
		e.disk(end)
	case LineCapSquare:
		n, d := e.normal(prev, end)
		ext := path.Point{X: d.X * e.radius, Y: d.Y * e.radius}
		e.polygon(end.Add(n), end.Add(n).Add(ext), end.Sub(n).Add(ext), end.Sub(n))
	}
}

// dot draws a zero-length subpath at p.
func (e *Expander) dot(p path.Point) {
	switch e.style.Cap {
	case LineCapRound:
		e.disk(p)
	case LineCapSquare:
		r := e.radius
		e.polygon(
			path.Point{X: p.X - r, Y: p.Y - r},
			path.Point{X: p.X + r, Y: p.Y - r},
			path.Point{X: p.X + r, Y: p.Y + r},
			path.Point{X: p.X - r, Y: p.Y + r},
		)
	}
}

// disk approximates a disk of the pen radius centered at c by a regular
// polygon within tolerance.
func (e *Expander) disk(c path.Point) {
	n := 8
	if e.tolerance < e.radius {
		step := 2 * math.Acos(1-e.tolerance/e.radius)
		n = max(n, int(math.Ceil(2*math.Pi/step)))
	}
	pts := make([]path.Point, n)
	for i := range pts {
		s, co := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = path.Point{X: c.X + e.radius*co, Y: c.Y + e.radius*s}
	}
	e.polygon(pts...)
}

// polygon adds a closed piece to the outline with positive orientation.
// Degenerate pieces are skipped.
func (e *Expander) polygon(pts ...path.Point) {
	var area float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}
	if math.Abs(area) < minLength {
		return
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	e.out.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		e.out.LineTo(p.X, p.Y)
	}
	e.out.Close()
}
