package path

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/raster"
)

func TestToPolygonRectangle(t *testing.T) {
	p := New()
	p.Rectangle(1, 2, 3, 4)
	poly := ToPolygon(p, 0)

	require.Len(t, poly.Edges, 2, "horizontal sides are dropped")
	assert.Equal(t, fixed.BoxFromInts(1, 2, 4, 6), poly.Bounds)
	assert.Equal(t, int32(1), poly.Edges[0].Dir)
	assert.Equal(t, int32(-1), poly.Edges[1].Dir)
}

func TestBoxes(t *testing.T) {
	tests := []struct {
		name  string
		build func(p *Path)
		want  []fixed.Box
		ok    bool
	}{
		{
			name:  "single",
			build: func(p *Path) { p.Rectangle(0, 0, 10, 10) },
			want:  []fixed.Box{fixed.BoxFromInts(0, 0, 10, 10)},
			ok:    true,
		},
		{
			name: "counter clockwise with explicit closing line",
			build: func(p *Path) {
				p.MoveTo(2, 2)
				p.LineTo(2, 8)
				p.LineTo(6, 8)
				p.LineTo(6, 2)
				p.LineTo(2, 2)
			},
			want: []fixed.Box{fixed.BoxFromInts(2, 2, 6, 8)},
			ok:   true,
		},
		{
			name: "fractional",
			build: func(p *Path) {
				p.Rectangle(0.5, 0.25, 2, 3)
			},
			want: []fixed.Box{{P1: fixed.PtF(0.5, 0.25), P2: fixed.PtF(2.5, 3.25)}},
			ok:   true,
		},
		{
			name: "disjoint",
			build: func(p *Path) {
				p.Rectangle(0, 0, 2, 2)
				p.Rectangle(4, 0, 2, 2)
			},
			want: []fixed.Box{fixed.BoxFromInts(0, 0, 2, 2), fixed.BoxFromInts(4, 0, 6, 2)},
			ok:   true,
		},
		{
			name:  "empty rectangle dropped",
			build: func(p *Path) { p.Rectangle(0, 0, 0, 5) },
			ok:    true,
		},
		{
			name: "overlapping",
			build: func(p *Path) {
				p.Rectangle(0, 0, 4, 4)
				p.Rectangle(2, 2, 4, 4)
			},
		},
		{
			name: "triangle",
			build: func(p *Path) {
				p.MoveTo(0, 0)
				p.LineTo(4, 0)
				p.LineTo(0, 4)
				p.Close()
			},
		},
		{
			name: "slanted quad",
			build: func(p *Path) {
				p.MoveTo(0, 0)
				p.LineTo(4, 1)
				p.LineTo(4, 5)
				p.LineTo(0, 4)
				p.Close()
			},
		},
		{
			name: "curve",
			build: func(p *Path) {
				p.MoveTo(0, 0)
				p.QuadTo(4, 0, 4, 4)
				p.Close()
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			tt.build(p)
			got, ok := Boxes(p.Elements())
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlatten(t *testing.T) {
	p := New()
	p.MoveTo(0, 0)
	p.QuadTo(10, 0, 10, 10)
	p.MoveTo(20, 0)
	p.LineTo(30, 0)

	subpaths := Flatten(p.Elements(), 0.1)
	require.Len(t, subpaths, 2)
	assert.Greater(t, len(subpaths[0]), 3)
	assert.Equal(t, Point{10, 10}, subpaths[0][len(subpaths[0])-1])
	assert.Equal(t, []Point{{20, 0}, {30, 0}}, subpaths[1])
}

func TestFlattenStopsOnNaN(t *testing.T) {
	nan := math.NaN()
	got := flattenCubic(nil, Point{0, 0}, Point{nan, 0}, Point{1, nan}, Point{2, 2}, 0.1)
	// NaN distances never compare as flat, so recursion runs to maxDepth.
	assert.Len(t, got, 1<<maxDepth)
}

type areaSum float64

func (a *areaSum) RenderRows(_, height int, spans []raster.Span) error {
	for i := 0; i+1 < len(spans); i++ {
		w := spans[i+1].X - spans[i].X
		*a += areaSum(float64(spans[i].Alpha()) / 255 * float64(w) * float64(height))
	}
	return nil
}

func TestCircleCoverage(t *testing.T) {
	// Four cubic arcs approximating a circle of radius 20 at (25, 25).
	const (
		r = 20.0
		c = 25.0
		k = 0.5522847498 * r
	)
	p := New()
	p.MoveTo(c+r, c)
	p.CubicTo(c+r, c+k, c+k, c+r, c, c+r)
	p.CubicTo(c-k, c+r, c-r, c+k, c-r, c)
	p.CubicTo(c-r, c-k, c-k, c-r, c, c-r)
	p.CubicTo(c+k, c-r, c+r, c-k, c+r, c)
	p.Close()

	conv := raster.NewConverter()
	require.NoError(t, conv.Reset(0, 0, 50, 50, raster.FillRuleNonZero, raster.AntialiasDefault))
	require.NoError(t, conv.AddPolygon(ToPolygon(p, 0.01)))
	var got areaSum
	require.NoError(t, conv.Render(&got))

	assert.InDelta(t, math.Pi*r*r, float64(got), 3)
}
