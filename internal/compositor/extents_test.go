// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glitter/internal/blend"
	"github.com/gogpu/glitter/internal/clip"
	"github.com/gogpu/glitter/internal/color"
	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/image"
	"github.com/gogpu/glitter/internal/status"
)

func TestIsNoop(t *testing.T) {
	cleared := newFilled(t, 2, 2, image.FormatARGB32, transparent)
	opaque := newFilled(t, 2, 2, image.FormatARGB32, blue)
	alpha := newFilled(t, 2, 2, image.FormatA8, white)

	tests := []struct {
		name string
		dst  *image.Buf
		op   blend.Operator
		src  *Pattern
		want bool
	}{
		{"over clear source", opaque, blend.OpOver, Solid(transparent), true},
		{"xor clear source", opaque, blend.OpXor, Solid(transparent), true},
		{"source clear source", opaque, blend.OpSource, Solid(transparent), false},
		{"source clear source on clear", cleared, blend.OpSource, Solid(transparent), true},
		{"dest", opaque, blend.OpDest, Solid(red), true},
		{"in on clear", cleared, blend.OpIn, Solid(red), true},
		{"dest out on clear", cleared, blend.OpDestOut, Solid(red), true},
		{"out on clear", cleared, blend.OpOut, Solid(red), false},
		{"atop on alpha", alpha, blend.OpAtop, Solid(red), true},
		{"over", opaque, blend.OpOver, Solid(red), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNoop(tt.dst, tt.op, tt.src))
		})
	}
}

func TestInitForPolygon(t *testing.T) {
	dst := newFilled(t, 10, 10, image.FormatARGB32, blue)
	poly := rectPoly(2.5, 3, 6, 7.25)

	t.Run("bounded", func(t *testing.T) {
		e, err := InitForPolygon(dst, blend.OpOver, Solid(red), poly, nil)
		require.NoError(t, err)
		assert.Equal(t, image.R(2, 3, 6, 8), e.Mask)
		assert.Equal(t, e.Mask, e.Bounded)
		assert.Equal(t, e.Bounded, e.Unbounded)
		assert.Equal(t, BoundByMask|BoundBySource, e.IsBounded)
		assert.Nil(t, e.Clip)
	})

	t.Run("unbounded", func(t *testing.T) {
		e, err := InitForPolygon(dst, blend.OpIn, Solid(red), poly, clip.FromRect(image.R(1, 1, 9, 9)))
		require.NoError(t, err)
		assert.Equal(t, image.R(2, 3, 6, 8), e.Bounded)
		assert.Equal(t, image.R(1, 1, 9, 9), e.Unbounded)
		assert.Equal(t, Bound(0), e.IsBounded)
		require.NotNil(t, e.Clip)
		assert.True(t, e.Clip.IsRegion())
	})

	t.Run("source bounded", func(t *testing.T) {
		img := newFilled(t, 2, 2, image.FormatARGB32, red)
		e, err := InitForPolygon(dst, blend.OpOver, SurfacePattern(img, 4, 4), poly, nil)
		require.NoError(t, err)
		assert.Equal(t, image.R(4, 4, 6, 6), e.Bounded)
		assert.Equal(t, e.Bounded, e.SourceSampleArea)
	})

	t.Run("mask bounded only", func(t *testing.T) {
		e, err := InitForPolygon(dst, blend.OpSource, Solid(red), poly, nil)
		require.NoError(t, err)
		assert.Equal(t, BoundByMask, e.IsBounded)
		assert.Equal(t, e.Mask, e.Unbounded)
	})
}

func TestExtentsNothingToDo(t *testing.T) {
	dst := newFilled(t, 10, 10, image.FormatARGB32, blue)
	img := newFilled(t, 2, 2, image.FormatARGB32, red)
	inside := rectPoly(1, 1, 3, 3)

	tests := []struct {
		name string
		init func() (*Extents, error)
	}{
		{"all clipped", func() (*Extents, error) {
			return InitForPaint(dst, blend.OpOver, Solid(red), clip.FromBoxes(nil))
		}},
		{"clip outside destination", func() (*Extents, error) {
			return InitForPaint(dst, blend.OpOver, Solid(red), clip.FromRect(image.R(20, 20, 30, 30)))
		}},
		{"source outside destination", func() (*Extents, error) {
			return InitForPaint(dst, blend.OpOver, SurfacePattern(img, 40, 40), nil)
		}},
		{"shape outside clip", func() (*Extents, error) {
			return InitForPolygon(dst, blend.OpOver, Solid(red), inside, clip.FromRect(image.R(5, 5, 9, 9)))
		}},
		{"shape misses source", func() (*Extents, error) {
			return InitForPolygon(dst, blend.OpOver, SurfacePattern(img, 6, 6), inside, nil)
		}},
		{"clear mask", func() (*Extents, error) {
			return InitForMask(dst, blend.OpOver, Solid(red), Solid(transparent), nil)
		}},
		{"no boxes", func() (*Extents, error) {
			return InitForBoxes(dst, blend.OpOver, Solid(red), nil, nil)
		}},
		{"no glyphs", func() (*Extents, error) {
			return InitForGlyphs(dst, blend.OpOver, Solid(red), nil, nil)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.init()
			assert.ErrorIs(t, err, status.ErrNothingToDo)
		})
	}
}

func TestInitUnboundedShapeOutsideClip(t *testing.T) {
	dst := newFilled(t, 10, 10, image.FormatARGB32, blue)

	e, err := InitForPolygon(dst, blend.OpIn, Solid(red), rectPoly(1, 1, 3, 3), clip.FromRect(image.R(5, 5, 9, 9)))
	require.NoError(t, err)
	assert.True(t, e.Bounded.IsEmpty())
	assert.Equal(t, image.R(5, 5, 9, 9), e.Unbounded)
}

func TestIntersectMaskExtents(t *testing.T) {
	dst := newFilled(t, 10, 10, image.FormatARGB32, blue)
	e, err := InitForPaint(dst, blend.OpOver, Solid(red), nil)
	require.NoError(t, err)

	require.NoError(t, e.IntersectMaskExtents(fixed.BoxFromInts(0, 0, 10, 10)))
	assert.Equal(t, dst.Bounds(), e.Bounded)

	require.NoError(t, e.IntersectMaskExtents(fixed.BoxFromInts(2, 2, 4, 5)))
	assert.Equal(t, image.R(2, 2, 4, 5), e.Mask)
	assert.Equal(t, image.R(2, 2, 4, 5), e.Bounded)
	assert.Equal(t, image.R(2, 2, 4, 5), e.Unbounded)

	err = e.IntersectMaskExtents(fixed.BoxFromInts(6, 6, 8, 8))
	assert.ErrorIs(t, err, status.ErrNothingToDo)
}

func TestCanReduceClip(t *testing.T) {
	dst := newFilled(t, 10, 10, image.FormatARGB32, blue)

	e, err := InitForPolygon(dst, blend.OpOver, Solid(red), rectPoly(2, 2, 4, 4), nil)
	require.NoError(t, err)
	assert.True(t, e.CanReduceClip(nil))
	assert.True(t, e.CanReduceClip(clip.FromRect(image.R(1, 1, 5, 5))))
	assert.False(t, e.CanReduceClip(clip.FromRect(image.R(3, 1, 5, 5))))
	assert.False(t, e.CanReduceClip(pathClip(image.R(0, 0, 10, 10), 0, 0, 10, 10)))

	e, err = InitForPolygon(dst, blend.OpIn, Solid(red), rectPoly(2, 2, 4, 4), nil)
	require.NoError(t, err)
	assert.False(t, e.CanReduceClip(clip.FromRect(image.R(1, 1, 5, 5))), "IN reaches the whole destination")
	assert.True(t, e.CanReduceClip(clip.FromRect(dst.Bounds())))
}

func TestBoundOf(t *testing.T) {
	tests := []struct {
		op   blend.Operator
		want Bound
	}{
		{blend.OpOver, BoundByMask | BoundBySource},
		{blend.OpSource, BoundByMask},
		{blend.OpClear, BoundByMask},
		{blend.OpIn, 0},
		{blend.OpDestIn, 0},
		{blend.OpDestAtop, 0},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, boundOf(tt.op))
		})
	}
	assert.True(t, (BoundByMask | BoundBySource).Full())
	assert.False(t, BoundByMask.Full())
}

func TestImageBackend(t *testing.T) {
	b := NewImageBackend()

	t.Run("solid mask becomes a buffer", func(t *testing.T) {
		dst := newFilled(t, 4, 4, image.FormatARGB32, transparent)
		p, dx, dy, err := b.PatternToSurface(dst, Solid(color.Pixel{A: 64}), true, image.R(1, 2, 3, 4))
		require.NoError(t, err)
		require.False(t, p.IsSolid())
		assert.Equal(t, -1, dx)
		assert.Equal(t, -2, dy)
		assert.Equal(t, 2, p.Buf().Width())
		assert.Equal(t, uint8(64), p.Buf().PixelAt(1, 1).A)
	})

	t.Run("surface offset", func(t *testing.T) {
		img := newFilled(t, 2, 2, image.FormatARGB32, red)
		p, dx, dy, err := b.PatternToSurface(nil, SurfacePattern(img, 3, 5), false, image.Rect{})
		require.NoError(t, err)
		assert.Same(t, img, p.Buf())
		assert.Equal(t, -3, dx)
		assert.Equal(t, -5, dy)
	})

	t.Run("unaligned boxes", func(t *testing.T) {
		dst := newFilled(t, 4, 4, image.FormatARGB32, transparent)
		boxes := []fixed.Box{{P1: fixed.PtF(0, 0), P2: fixed.PtF(1.5, 1)}}
		assert.ErrorIs(t, b.FillBoxes(dst, blend.OpOver, red, boxes), status.ErrUnsupported)
		assert.ErrorIs(t, b.CompositeBoxes(dst, blend.OpOver, nil, nil, 0, 0, 0, 0, 0, 0, boxes), status.ErrUnsupported)
		assert.True(t, dst.IsClear())
	})

	t.Run("composite boxes offsets", func(t *testing.T) {
		dst := newFilled(t, 4, 4, image.FormatARGB32, transparent)
		img := newFilled(t, 4, 4, image.FormatARGB32, transparent)
		img.SetPixel(0, 0, red)

		boxes := []fixed.Box{fixed.BoxFromInts(2, 2, 3, 3)}
		require.NoError(t, b.CompositeBoxes(dst, blend.OpSource, image.FromBuf(img), nil, -2, -2, 0, 0, 1, 0, boxes))
		assert.Equal(t, red, dst.PixelAt(3, 2))
		assert.Equal(t, 1, 16-count(dst, transparent))
	})

	t.Run("clip region", func(t *testing.T) {
		dst := newFilled(t, 4, 4, image.FormatARGB32, transparent)
		require.NoError(t, b.SetClipRegion(dst, []image.Rect{image.R(0, 0, 1, 1)}))
		require.NoError(t, b.FillRectangles(dst, blend.OpSource, red, []image.Rect{dst.Bounds()}))
		require.NoError(t, b.SetClipRegion(dst, nil))
		assert.Equal(t, 1, count(dst, red))
	})

	t.Run("acquire nil", func(t *testing.T) {
		assert.ErrorIs(t, b.Acquire(nil), status.ErrInvalidArgument)
	})
}
