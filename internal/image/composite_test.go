package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glitter/internal/blend"
	"github.com/gogpu/glitter/internal/color"
)

var (
	red  = color.Pixel{R: 255, A: 255}
	blue = color.Pixel{B: 255, A: 255}
)

func newFilled(t *testing.T, w, h int, f Format, p color.Pixel) *Buf {
	t.Helper()
	b, err := NewBuf(w, h, f)
	require.NoError(t, err)
	if p != (color.Pixel{}) {
		FillRects(b, blend.OpSource, p, []Rect{b.Bounds()})
	}
	return b
}

func TestCompositeSolidOver(t *testing.T) {
	dst := newFilled(t, 4, 4, FormatARGB32, blue)
	Composite(dst, blend.OpOver, Solid(red), nil, 0, 0, 0, 0, 1, 1, 2, 2)

	assert.Equal(t, blue, dst.PixelAt(0, 0))
	assert.Equal(t, red, dst.PixelAt(1, 1))
	assert.Equal(t, red, dst.PixelAt(2, 2))
	assert.Equal(t, blue, dst.PixelAt(3, 3))
}

func TestCompositeMask(t *testing.T) {
	dst := newFilled(t, 2, 1, FormatARGB32, color.Pixel{})
	mask := newFilled(t, 2, 1, FormatA8, color.Pixel{})
	mask.SetPixel(0, 0, color.Pixel{A: 128})

	Composite(dst, blend.OpOver, nil, mask, 0, 0, 0, 0, 0, 0, 2, 1)
	assert.Equal(t, color.Pixel{R: 128, G: 128, B: 128, A: 128}, dst.PixelAt(0, 0))
	assert.Equal(t, color.Pixel{}, dst.PixelAt(1, 0))
}

func TestCompositeUnboundedOperator(t *testing.T) {
	mask := newFilled(t, 2, 1, FormatA8, color.Pixel{})
	mask.SetPixel(0, 0, color.Pixel{A: 255})

	// IN clears the destination wherever the mask is empty.
	dst := newFilled(t, 2, 1, FormatARGB32, blue)
	Composite(dst, blend.OpIn, Solid(red), mask, 0, 0, 0, 0, 0, 0, 2, 1)
	assert.Equal(t, red, dst.PixelAt(0, 0))
	assert.Equal(t, color.Pixel{}, dst.PixelAt(1, 0))

	// The interpolating form leaves it alone.
	dst = newFilled(t, 2, 1, FormatARGB32, blue)
	LerpComposite(dst, blend.OpIn, Solid(red), mask, 0, 0, 0, 0, 0, 0, 2, 1)
	assert.Equal(t, red, dst.PixelAt(0, 0))
	assert.Equal(t, blue, dst.PixelAt(1, 0))
}

func TestCompositeSurfaceSource(t *testing.T) {
	src := newFilled(t, 2, 2, FormatARGB32, red)
	dst := newFilled(t, 4, 1, FormatARGB32, blue)

	// The source covers destination x in [1, 3); beyond it the source
	// is transparent.
	Composite(dst, blend.OpSource, FromBuf(src), nil, 0, 0, 0, 0, 1, 0, 3, 1)
	assert.Equal(t, blue, dst.PixelAt(0, 0))
	assert.Equal(t, red, dst.PixelAt(1, 0))
	assert.Equal(t, red, dst.PixelAt(2, 0))
	assert.Equal(t, color.Pixel{}, dst.PixelAt(3, 0))
}

func TestCompositeClipRegion(t *testing.T) {
	dst := newFilled(t, 4, 4, FormatARGB32, color.Pixel{})
	dst.SetClipRegion([]Rect{R(0, 0, 2, 2), R(3, 3, 4, 4)})
	FillRects(dst, blend.OpOver, red, []Rect{dst.Bounds()})

	count := 0
	for y := range 4 {
		for x := range 4 {
			if dst.PixelAt(x, y) == red {
				count++
			}
		}
	}
	assert.Equal(t, 5, count)
	assert.Equal(t, red, dst.PixelAt(3, 3))
	assert.Equal(t, color.Pixel{}, dst.PixelAt(2, 2))

	dst.SetClipRegion([]Rect{})
	FillRects(dst, blend.OpOver, blue, []Rect{dst.Bounds()})
	assert.Equal(t, red, dst.PixelAt(0, 0))
}

func TestCompositeFormats(t *testing.T) {
	half := color.Pixel{R: 128, A: 128}

	rgb := newFilled(t, 1, 1, FormatRGB24, color.Pixel{})
	Composite(rgb, blend.OpOver, Solid(half), nil, 0, 0, 0, 0, 0, 0, 1, 1)
	assert.Equal(t, color.Pixel{R: 128, A: 255}, rgb.PixelAt(0, 0))

	a8 := newFilled(t, 1, 1, FormatA8, color.Pixel{})
	Composite(a8, blend.OpOver, Solid(half), nil, 0, 0, 0, 0, 0, 0, 1, 1)
	assert.Equal(t, color.Pixel{A: 128}, a8.PixelAt(0, 0))
}

func TestCompositeCoverage(t *testing.T) {
	dst := newFilled(t, 3, 1, FormatA8, color.Pixel{})
	CompositeCoverage(dst, blend.OpAdd, nil, 0, 0, R(0, 0, 2, 1), 100)
	CompositeCoverage(dst, blend.OpAdd, nil, 0, 0, R(1, 0, 3, 1), 200)
	assert.Equal(t, byte(100), dst.PixelAt(0, 0).A)
	assert.Equal(t, byte(255), dst.PixelAt(1, 0).A)
	assert.Equal(t, byte(200), dst.PixelAt(2, 0).A)
}

func TestFillRectsClear(t *testing.T) {
	dst := newFilled(t, 4, 4, FormatARGB32, red)
	require.False(t, dst.IsClear())

	FillRects(dst, blend.OpClear, color.Pixel{}, []Rect{R(0, 0, 2, 4)})
	assert.Equal(t, color.Pixel{}, dst.PixelAt(1, 1))
	assert.Equal(t, red, dst.PixelAt(2, 1))
	assert.False(t, dst.IsClear())

	FillRects(dst, blend.OpClear, color.Pixel{}, []Rect{R(-1, -1, 5, 5)})
	assert.True(t, dst.IsClear())
}
