package path

import (
	"testing"
)

func TestEdgeIterSingleSubpath(t *testing.T) {
	p := New()
	p.MoveTo(0, 0)
	p.LineTo(100, 0)
	p.LineTo(50, 100)
	p.Close()

	edges := CollectEdges(p.Elements(), 0)

	expected := []Segment{
		{Point{0, 0}, Point{100, 0}},
		{Point{100, 0}, Point{50, 100}},
		{Point{50, 100}, Point{0, 0}},
	}
	if len(edges) != len(expected) {
		t.Fatalf("got %d edges, want %d", len(edges), len(expected))
	}
	for i, e := range edges {
		if e != expected[i] {
			t.Errorf("edge %d: got %v, want %v", i, e, expected[i])
		}
	}
}

func TestEdgeIterMultipleSubpaths(t *testing.T) {
	p := New()
	p.Rectangle(0, 0, 100, 50)
	p.Rectangle(10, 10, 80, 30)

	edges := CollectEdges(p.Elements(), 0)
	if len(edges) != 8 {
		t.Fatalf("got %d edges, want 8", len(edges))
	}

	// No segment may run from one rectangle to the other.
	for i, e := range edges[:4] {
		for _, q := range []Point{e.P0, e.P1} {
			if q.X != 0 && q.X != 100 {
				t.Errorf("edge %d of first rectangle leaves it: %v", i, e)
			}
		}
	}
	if edges[3].P1 != (Point{0, 0}) {
		t.Errorf("first rectangle closes to %v, want (0,0)", edges[3].P1)
	}
	if edges[4].P0 != (Point{10, 10}) {
		t.Errorf("second rectangle starts at %v, want (10,10)", edges[4].P0)
	}
}

func TestEdgeIterImplicitClose(t *testing.T) {
	tests := []struct {
		name  string
		elems []Element
		want  int
	}{
		{
			name:  "open triangle",
			elems: []Element{MoveTo{Point{0, 0}}, LineTo{Point{10, 0}}, LineTo{Point{0, 10}}},
			want:  3,
		},
		{
			name: "open then move",
			elems: []Element{
				MoveTo{Point{0, 0}}, LineTo{Point{10, 0}}, LineTo{Point{0, 10}},
				MoveTo{Point{20, 20}}, LineTo{Point{30, 20}}, LineTo{Point{20, 30}},
			},
			want: 6,
		},
		{
			name:  "already closed by a line",
			elems: []Element{MoveTo{Point{0, 0}}, LineTo{Point{10, 0}}, LineTo{Point{0, 10}}, LineTo{Point{0, 0}}},
			want:  3,
		},
		{
			name:  "lone move",
			elems: []Element{MoveTo{Point{5, 5}}},
			want:  0,
		},
		{
			name:  "line without move",
			elems: []Element{LineTo{Point{5, 5}}, LineTo{Point{10, 5}}, LineTo{Point{5, 10}}},
			want:  3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(CollectEdges(tt.elems, 0)); got != tt.want {
				t.Errorf("got %d edges, want %d", got, tt.want)
			}
		})
	}
}

func TestEdgeIterLineAfterClose(t *testing.T) {
	// A line after Close starts a new subpath at the closed one's start.
	elems := []Element{
		MoveTo{Point{0, 0}}, LineTo{Point{10, 0}}, LineTo{Point{10, 10}}, Close{},
		LineTo{Point{0, 10}}, LineTo{Point{-5, 5}},
	}
	edges := CollectEdges(elems, 0)
	if len(edges) != 6 {
		t.Fatalf("got %d edges, want 6", len(edges))
	}
	if edges[3].P0 != (Point{0, 0}) {
		t.Errorf("second subpath starts at %v, want (0,0)", edges[3].P0)
	}
	if edges[5].P1 != (Point{0, 0}) {
		t.Errorf("second subpath closes to %v, want (0,0)", edges[5].P1)
	}
}

func TestEdgeIterFlattensCurves(t *testing.T) {
	p := New()
	p.MoveTo(0, 0)
	p.CubicTo(0, 50, 100, 50, 100, 0)
	p.Close()

	edges := CollectEdges(p.Elements(), 0.05)
	if len(edges) < 8 {
		t.Fatalf("got %d edges, want a finely flattened curve", len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i].P0 != edges[i-1].P1 {
			t.Fatalf("edge %d does not continue edge %d", i, i-1)
		}
	}
	// Peak of the curve is at 0.75 * 50.
	peak := 0.0
	for _, e := range edges {
		peak = max(peak, e.P1.Y)
	}
	if peak < 37.5-0.05 || peak > 37.5 {
		t.Errorf("peak = %v, want within tolerance of 37.5", peak)
	}
}
