package path

// Segment is a straight line from P0 to P1.
type Segment struct {
	P0, P1 Point
}

// EdgeIter walks the line segments of a filled path. Curves are
// flattened on the fly and every subpath is closed back to its own start
// before the next one begins, so no segment ever joins two subpaths.
type EdgeIter struct {
	elems     []Element
	tolerance float64
	index     int

	start, current Point
	hasPoint       bool
	open           bool

	buf     []Point
	pending []Point
}

// NewEdgeIter returns an iterator over elems. A non-positive tolerance
// selects DefaultTolerance.
func NewEdgeIter(elems []Element, tolerance float64) *EdgeIter {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &EdgeIter{elems: elems, tolerance: tolerance}
}

// Next returns the next segment, or false when the path is exhausted.
// Zero-length segments are skipped.
func (it *EdgeIter) Next() (Segment, bool) {
	for {
		for len(it.pending) > 0 {
			p := it.pending[0]
			it.pending = it.pending[1:]
			if p == it.current {
				continue
			}
			s := Segment{P0: it.current, P1: p}
			it.current = p
			return s, true
		}

		if it.index >= len(it.elems) {
			return it.closeSubpath()
		}
		e := it.elems[it.index]
		it.index++

		switch e := e.(type) {
		case MoveTo:
			s, ok := it.closeSubpath()
			it.start, it.current = e.Point, e.Point
			it.hasPoint, it.open = true, true
			if ok {
				return s, true
			}
		case LineTo:
			it.begin(e.Point)
			it.pending = append(it.buf[:0], e.Point)
		case QuadTo:
			it.begin(e.Control)
			it.pending = flattenQuad(it.buf[:0], it.current, e.Control, e.Point, it.tolerance)
		case CubicTo:
			it.begin(e.Control1)
			it.pending = flattenCubic(it.buf[:0], it.current, e.Control1, e.Control2, e.Point, it.tolerance)
		case Close:
			if s, ok := it.closeSubpath(); ok {
				return s, true
			}
		}
		it.buf = it.pending[:0]
	}
}

// begin opens a subpath at the current point, or at p when there is
// none yet.
func (it *EdgeIter) begin(p Point) {
	if it.open {
		return
	}
	if !it.hasPoint {
		it.current, it.hasPoint = p, true
	}
	it.start, it.open = it.current, true
}

// closeSubpath returns the segment back to the subpath start, if any.
func (it *EdgeIter) closeSubpath() (Segment, bool) {
	if !it.open {
		return Segment{}, false
	}
	it.open = false
	if it.current == it.start {
		return Segment{}, false
	}
	s := Segment{P0: it.current, P1: it.start}
	it.current = it.start
	return s, true
}

// CollectEdges returns every segment of elems.
func CollectEdges(elems []Element, tolerance float64) []Segment {
	var out []Segment
	it := NewEdgeIter(elems, tolerance)
	for {
		s, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, s)
	}
}
