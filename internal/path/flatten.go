package path

// maxDepth bounds curve subdivision; 2^16 segments per curve is far
// below any useful tolerance and stops runaway recursion on NaN input.
const maxDepth = 16

// flattenQuad appends the end points of line segments approximating the
// quadratic curve p0-p1-p2 to dst. p0 is not appended.
func flattenQuad(dst []Point, p0, p1, p2 Point, tolerance float64) []Point {
	return quadRec(dst, p0, p1, p2, tolerance, 0)
}

func quadRec(dst []Point, p0, p1, p2 Point, tolerance float64, depth int) []Point {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) <= tolerance {
		return append(dst, p2)
	}

	// de Casteljau split at t = 0.5.
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	m := q0.Lerp(q1, 0.5)

	dst = quadRec(dst, p0, q0, m, tolerance, depth+1)
	return quadRec(dst, m, q1, p2, tolerance, depth+1)
}

// flattenCubic is flattenQuad for the cubic p0-p1-p2-p3.
func flattenCubic(dst []Point, p0, p1, p2, p3 Point, tolerance float64) []Point {
	return cubicRec(dst, p0, p1, p2, p3, tolerance, 0)
}

func cubicRec(dst []Point, p0, p1, p2, p3 Point, tolerance float64, depth int) []Point {
	d := max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxDepth || d <= tolerance {
		return append(dst, p3)
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	m := r0.Lerp(r1, 0.5)

	dst = cubicRec(dst, p0, q0, r0, m, tolerance, depth+1)
	return cubicRec(dst, m, r1, q2, p3, tolerance, depth+1)
}

// distanceToLine returns the distance from p to the line through a and
// b, or to a when the line is degenerate.
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	l := ab.Length()
	if l == 0 {
		return p.Distance(a)
	}
	ap := p.Sub(a)
	cross := ab.X*ap.Y - ab.Y*ap.X
	if cross < 0 {
		cross = -cross
	}
	return cross / l
}

// Flatten returns the polyline of every subpath in elems, with curves
// replaced by line segments. Subpaths are not closed.
func Flatten(elems []Element, tolerance float64) [][]Point {
	var (
		out [][]Point
		cur []Point
	)
	var start Point
	for _, e := range elems {
		switch e := e.(type) {
		case MoveTo:
			if len(cur) > 1 {
				out = append(out, cur)
			}
			start = e.Point
			cur = []Point{e.Point}
		case LineTo:
			if len(cur) == 0 {
				cur = []Point{start}
			}
			cur = append(cur, e.Point)
		case QuadTo:
			if len(cur) == 0 {
				cur = []Point{start}
			}
			cur = flattenQuad(cur, cur[len(cur)-1], e.Control, e.Point, tolerance)
		case CubicTo:
			if len(cur) == 0 {
				cur = []Point{start}
			}
			cur = flattenCubic(cur, cur[len(cur)-1], e.Control1, e.Control2, e.Point, tolerance)
		case Close:
			if len(cur) > 1 {
				out = append(out, cur)
			}
			cur = nil
		}
	}
	if len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}
