package text

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glitter/internal/image"
	"github.com/gogpu/glitter/internal/raster"
)

func TestGlyphCacheLookup(t *testing.T) {
	f := goRegular(t)
	c := NewGlyphCache(16)
	gid, _ := f.GlyphIndex('H')

	m, err := c.Lookup(f, gid, 16, 0)
	require.NoError(t, err)
	require.False(t, m.IsEmpty())
	assert.Equal(t, image.FormatA8, m.Buf.Format())
	assert.Negative(t, m.Y, "glyph ink sits above the baseline")
	assert.LessOrEqual(t, m.Y+m.Buf.Height(), 1)
	assert.Greater(t, m.Buf.Height(), 8)

	ink := 0
	for y := range m.Buf.Height() {
		for _, a := range m.Buf.Row(y) {
			if a == 255 {
				ink++
			}
		}
	}
	assert.Positive(t, ink)

	again, err := c.Lookup(f, gid, 16, 0)
	require.NoError(t, err)
	assert.Same(t, m, again)

	st := c.Stats()
	assert.Equal(t, uint64(1), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)
}

func TestGlyphCacheKeys(t *testing.T) {
	f := goRegular(t)
	c := NewGlyphCache(0)
	gid, _ := f.GlyphIndex('o')

	for _, sub := range []int{0, 1, 2, 3} {
		_, err := c.Lookup(f, gid, 12, sub)
		require.NoError(t, err)
	}
	_, err := c.Lookup(f, gid, 13, 0)
	require.NoError(t, err)
	_, err = c.Lookup(goRegular(t), gid, 12, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Len())

	// Out of range subpixel steps are clamped.
	_, err = c.Lookup(f, gid, 12, 9)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Len())
}

func TestGlyphCacheReset(t *testing.T) {
	f := goRegular(t)
	c := NewGlyphCache(16)
	gid, _ := f.GlyphIndex('g')

	first, err := c.Lookup(f, gid, 16, 0)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	c.Reset()
	assert.Equal(t, 0, c.Len())

	second, err := c.Lookup(f, gid, 16, 0)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, first.Buf.Data(), second.Buf.Data(), "rendering is deterministic")
	assert.Equal(t, uint64(2), c.Stats().Misses)
}

func TestGlyphCacheEviction(t *testing.T) {
	f := goRegular(t)
	c := NewGlyphCache(2)
	for _, r := range "abc" {
		gid, _ := f.GlyphIndex(r)
		_, err := c.Lookup(f, gid, 10, 0)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestGlyphCacheEmptyGlyph(t *testing.T) {
	f := goRegular(t)
	c := NewGlyphCache(16)
	gid, _ := f.GlyphIndex(' ')

	m, err := c.Lookup(f, gid, 16, 0)
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
}

func TestGlyphCacheErrors(t *testing.T) {
	f := goRegular(t)
	c := NewGlyphCache(16)

	_, err := c.Lookup(nil, 1, 16, 0)
	require.ErrorIs(t, err, ErrNilFont)

	for _, size := range []float64{0, -3} {
		_, err = c.Lookup(f, 1, size, 0)
		require.ErrorIs(t, err, ErrInvalidSize)
	}
	assert.Equal(t, 0, c.Len())
}

func TestGlyphCacheMono(t *testing.T) {
	f := goRegular(t)
	c := NewGlyphCache(16, WithAntialias(raster.AntialiasNone))
	gid, _ := f.GlyphIndex('S')

	m, err := c.Lookup(f, gid, 24, 0)
	require.NoError(t, err)
	require.False(t, m.IsEmpty())
	for y := range m.Buf.Height() {
		for _, a := range m.Buf.Row(y) {
			require.True(t, a == 0 || a == 255, "coverage %d", a)
		}
	}
}

func TestGlyphCacheConcurrent(t *testing.T) {
	f := goRegular(t)
	c := NewGlyphCache(64)
	gid, _ := f.GlyphIndex('W')

	var wg sync.WaitGroup
	masks := make([]*Mask, 8)
	for i := range masks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := c.Lookup(f, gid, 18, i%SubpixelSteps)
			assert.NoError(t, err)
			masks[i] = m
		}()
	}
	wg.Wait()

	assert.Equal(t, SubpixelSteps, c.Len())
	for i := SubpixelSteps; i < len(masks); i++ {
		assert.Same(t, masks[i-SubpixelSteps], masks[i])
	}
}

func TestSubpixel(t *testing.T) {
	tests := []struct {
		x     float64
		whole int
		step  int
	}{
		{0, 0, 0},
		{1.25, 1, 1},
		{2.99, 2, 3},
		{-0.5, -1, 2},
		{7.5, 7, 2},
	}
	for _, tt := range tests {
		whole, step := Subpixel(tt.x)
		assert.Equal(t, tt.whole, whole, "x=%v", tt.x)
		assert.Equal(t, tt.step, step, "x=%v", tt.x)
	}
}
