// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/status"
)

func TestMonoSquare(t *testing.T) {
	c := NewMonoConverter()
	rows := render(t, c, closedPolygon([2]float64{0, 0}, [2]float64{10, 0}, [2]float64{10, 10}, [2]float64{0, 10}),
		10, 10, FillRuleNonZero, AntialiasNone)

	want := []rowRecord{{y: 0, height: 10, spans: []Span{{X: 0, Coverage: 255}, {X: 10, Coverage: 0}}}}
	assert.Equal(t, want, rows)
	assert.Equal(t, 9, c.Stats().CoalescedRows)
}

func TestMonoSamplesPixelCentres(t *testing.T) {
	rows := render(t, NewMonoConverter(), closedPolygon([2]float64{0, 0}, [2]float64{10, 0}, [2]float64{0, 7}),
		12, 8, FillRuleNonZero, AntialiasNone)
	img := pixels(rows, 12, 8)

	for y := range 8 {
		for x := range 12 {
			inside := y < 7 && float64(x)+0.5 < 10-(float64(y)+0.5)*10/7
			want := uint8(0)
			if inside {
				want = 255
			}
			assert.Equal(t, want, img[y][x], "pixel (%d,%d)", x, y)
		}
	}
}

func TestMonoMatchesAliasedGridOnAlignedRects(t *testing.T) {
	shapes := map[string]func() *Polygon{
		"single": func() *Polygon {
			return closedPolygon([2]float64{2, 1}, [2]float64{7, 1}, [2]float64{7, 9}, [2]float64{2, 9})
		},
		"overlapping": func() *Polygon {
			p := closedPolygon([2]float64{0, 0}, [2]float64{6, 0}, [2]float64{6, 5}, [2]float64{0, 5})
			addOutline(p, [2]float64{3, 2}, [2]float64{11, 2}, [2]float64{11, 12}, [2]float64{3, 12})
			return p
		},
		"disjoint": func() *Polygon {
			p := closedPolygon([2]float64{1, 1}, [2]float64{3, 1}, [2]float64{3, 3}, [2]float64{1, 3})
			addOutline(p, [2]float64{5, 4}, [2]float64{9, 4}, [2]float64{9, 11}, [2]float64{5, 11})
			return p
		},
		"clipped": func() *Polygon {
			return closedPolygon([2]float64{-4, -3}, [2]float64{20, -3}, [2]float64{20, 5}, [2]float64{-4, 5})
		},
	}
	for name, shape := range shapes {
		for _, rule := range []FillRule{FillRuleNonZero, FillRuleEvenOdd} {
			t.Run(name+"/"+rule.String(), func(t *testing.T) {
				mono := pixels(render(t, NewMonoConverter(), shape(), 12, 12, rule, AntialiasNone), 12, 12)
				grid := pixels(render(t, NewConverter(), shape(), 12, 12, rule, AntialiasNone), 12, 12)
				assert.Equal(t, grid, mono)
			})
		}
	}
}

func TestMonoCentreTies(t *testing.T) {
	// Every edge of the rectangle runs through pixel centres.
	rows := render(t, NewMonoConverter(), closedPolygon([2]float64{2.5, 1.5}, [2]float64{6.5, 1.5}, [2]float64{6.5, 4.5}, [2]float64{2.5, 4.5}),
		10, 6, FillRuleNonZero, AntialiasNone)
	img := pixels(rows, 10, 6)
	for y := range 6 {
		for x := range 10 {
			want := uint8(0)
			if x >= 2 && x < 6 && y >= 1 && y < 4 {
				want = 255
			}
			assert.Equal(t, want, img[y][x], "pixel (%d,%d)", x, y)
		}
	}

	// The diagonals of the bowtie cross on the centre of (5,4). Sampled
	// just above it, the centre lies between the two lobes.
	bowtie := closedPolygon([2]float64{1.5, 0.5}, [2]float64{9.5, 8.5}, [2]float64{9.5, 0.5}, [2]float64{1.5, 8.5})
	for _, rule := range []FillRule{FillRuleNonZero, FillRuleEvenOdd} {
		img := pixels(render(t, NewMonoConverter(), bowtie, 10, 9, rule, AntialiasNone), 10, 9)
		assert.Equal(t, []uint8{0, 255, 255, 255, 255, 0, 255, 255, 255, 0}, img[4], rule.String())
	}
}

func TestMonoMergesRunsMeetingInOneColumn(t *testing.T) {
	p := closedPolygon([2]float64{1, 1}, [2]float64{4.25, 1}, [2]float64{4.25, 3}, [2]float64{1, 3})
	addOutline(p, [2]float64{4.25, 1}, [2]float64{7, 1}, [2]float64{7, 3}, [2]float64{4.25, 3})
	rows := render(t, NewMonoConverter(), p, 10, 4, FillRuleNonZero, AntialiasNone)

	want := []rowRecord{{y: 1, height: 2, spans: []Span{{X: 1, Coverage: 255}, {X: 7}}}}
	assert.Equal(t, want, rows)
}

func TestMonoEvenOddHole(t *testing.T) {
	p := closedPolygon([2]float64{0, 0}, [2]float64{8, 0}, [2]float64{8, 8}, [2]float64{0, 8})
	addOutline(p, [2]float64{2, 2}, [2]float64{6, 2}, [2]float64{6, 6}, [2]float64{2, 6})
	img := pixels(render(t, NewMonoConverter(), p, 8, 8, FillRuleEvenOdd, AntialiasNone), 8, 8)

	assert.Equal(t, []uint8{255, 255, 255, 255, 255, 255, 255, 255}, img[0])
	assert.Equal(t, []uint8{255, 255, 0, 0, 0, 0, 255, 255}, img[3])
}

func TestMonoMemoryLimitAndReuse(t *testing.T) {
	c := NewMonoConverter(WithMemoryLimit(1, 0))
	require.NoError(t, c.Reset(0, 0, 10, 10, FillRuleNonZero, AntialiasNone))
	err := c.AddPolygon(closedPolygon([2]float64{0, 0}, [2]float64{10, 0}, [2]float64{10, 10}, [2]float64{0, 10}))
	require.ErrorIs(t, err, status.ErrNoMemory)
	assert.ErrorIs(t, c.Render(&recorder{}), status.ErrNoMemory)

	c = NewMonoConverter()
	for range 3 {
		rows := render(t, c, closedPolygon([2]float64{1, 1}, [2]float64{4, 1}, [2]float64{1, 4}), 6, 6, FillRuleNonZero, AntialiasNone)
		assert.NotEmpty(t, rows)
	}
}

func TestNewPicksConverter(t *testing.T) {
	_, mono := New(AntialiasNone).(*MonoConverter)
	assert.True(t, mono)
	_, tor := New(AntialiasBest).(*Converter)
	assert.True(t, tor)
}

func TestLineEdge(t *testing.T) {
	p := &Polygon{}
	addOutline(p, [2]float64{0, 0}, [2]float64{4, 0}, [2]float64{4, 3})
	require.Len(t, p.Edges, 2, "horizontal segments are dropped")
	assert.Equal(t, int32(1), p.Edges[0].Dir)
	assert.Equal(t, int32(-1), p.Edges[1].Dir)
	assert.Less(t, p.Edges[1].Line.P1.Y, p.Edges[1].Line.P2.Y, "edges point downwards")
	assert.Equal(t, fixed.BoxFromInts(0, 0, 4, 3), p.Bounds)

	p.Reset()
	assert.True(t, p.IsEmpty())
}
