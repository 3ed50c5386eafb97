package text

import (
	"math"
	"sync"

	"github.com/gogpu/glitter/internal/cache"
	"github.com/gogpu/glitter/internal/image"
	"github.com/gogpu/glitter/internal/path"
	"github.com/gogpu/glitter/internal/raster"
)

// SubpixelSteps is the number of horizontal glyph positions rendered
// per pixel.
const SubpixelSteps = 4

// DefaultCacheSize is the glyph limit used for a non-positive limit.
const DefaultCacheSize = 4096

// Mask is a rasterized glyph. Buf is an A8 coverage buffer whose
// top-left pixel lies at (X, Y) relative to the whole-pixel glyph
// origin. Buf is nil for glyphs without ink, such as spaces.
//
// Masks are shared by every caller of the cache and must not be
// modified.
type Mask struct {
	Buf  *image.Buf
	X, Y int
}

// IsEmpty reports whether the glyph draws nothing.
func (m *Mask) IsEmpty() bool {
	return m == nil || m.Buf == nil
}

type glyphKey struct {
	font     uint64
	gid      GlyphID
	size     uint64
	subpixel uint8
}

// CacheOption configures a GlyphCache.
type CacheOption func(*GlyphCache)

// WithRasterOptions configures the scan converter glyphs are rendered
// with.
func WithRasterOptions(opts ...raster.Option) CacheOption {
	return func(c *GlyphCache) {
		c.rasterOpts = append(c.rasterOpts, opts...)
	}
}

// WithAntialias sets the glyph antialiasing. AntialiasNone renders
// bilevel masks.
func WithAntialias(aa raster.Antialias) CacheOption {
	return func(c *GlyphCache) {
		c.aa = aa
	}
}

// WithTolerance sets the curve flattening tolerance in pixels.
func WithTolerance(t float64) CacheOption {
	return func(c *GlyphCache) {
		if t > 0 {
			c.tolerance = t
		}
	}
}

// GlyphCache holds rasterized glyph masks, evicting the least recently
// used glyph beyond its limit. It is safe for concurrent use.
//
// A cache belongs to whoever created it. Renderers that share one see
// each other's glyphs; Reset drops them all.
type GlyphCache struct {
	entries *cache.Cache[glyphKey, *Mask]

	aa         raster.Antialias
	tolerance  float64
	rasterOpts []raster.Option

	mu   sync.Mutex
	conv raster.ScanConverter
	poly raster.Polygon
}

// NewGlyphCache returns a cache holding at most limit glyphs.
func NewGlyphCache(limit int, opts ...CacheOption) *GlyphCache {
	if limit <= 0 {
		limit = DefaultCacheSize
	}
	c := &GlyphCache{
		entries:   cache.New[glyphKey, *Mask](limit),
		aa:        raster.AntialiasDefault,
		tolerance: path.DefaultTolerance,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subpixel splits a horizontal pen position into a whole pixel and a
// subpixel step in [0, SubpixelSteps).
func Subpixel(x float64) (whole, step int) {
	fl := math.Floor(x)
	step = int((x - fl) * SubpixelSteps)
	if step >= SubpixelSteps {
		step = SubpixelSteps - 1
	}
	return int(fl), step
}

// Lookup returns the mask of gid at size pixels per em, rendered with
// its origin subpixel/SubpixelSteps of a pixel right of a pixel corner.
func (c *GlyphCache) Lookup(f *Font, gid GlyphID, size float64, subpixel int) (*Mask, error) {
	if f == nil {
		return nil, ErrNilFont
	}
	if err := validSize(size); err != nil {
		return nil, err
	}
	subpixel = min(max(subpixel, 0), SubpixelSteps-1)
	key := glyphKey{
		font:     f.id,
		gid:      gid,
		size:     math.Float64bits(size),
		subpixel: uint8(subpixel), //nolint:gosec // < SubpixelSteps
	}
	return c.entries.GetOrCreate(key, func() (*Mask, error) {
		return c.render(f, gid, size, float64(subpixel)/SubpixelSteps)
	})
}

// Reset drops every cached glyph. Statistics are kept.
func (c *GlyphCache) Reset() {
	c.entries.Clear()
}

// Len returns the number of cached glyphs.
func (c *GlyphCache) Len() int {
	return c.entries.Len()
}

// Stats returns the cache statistics.
func (c *GlyphCache) Stats() cache.Stats {
	return c.entries.Stats()
}

// render rasterizes one glyph with the cache's scan converter.
func (c *GlyphCache) render(f *Font, gid GlyphID, size, dx float64) (*Mask, error) {
	p, ok := f.Outline(gid, size, dx, 0)
	if !ok || p.IsEmpty() {
		return &Mask{}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.poly.Reset()
	path.AppendPolygon(&c.poly, p.Elements(), c.tolerance)
	if c.poly.IsEmpty() {
		return &Mask{}, nil
	}
	x, y, w, h := c.poly.Bounds.RoundOut()
	if w == 0 || h == 0 {
		return &Mask{}, nil
	}

	buf, err := image.NewBuf(w, h, image.FormatA8)
	if err != nil {
		return nil, &GlyphError{GID: gid, Err: err}
	}
	if c.conv == nil {
		c.conv = raster.New(c.aa, c.rasterOpts...)
	}
	if err := c.conv.Reset(x, y, x+w, y+h, raster.FillRuleNonZero, c.aa); err != nil {
		return nil, &GlyphError{GID: gid, Err: err}
	}
	if err := c.conv.AddPolygon(&c.poly); err != nil {
		return nil, &GlyphError{GID: gid, Err: err}
	}
	buf.MarkDirty()
	err = c.conv.Render(&raster.MaskRenderer{
		Data:   buf.Data(),
		Stride: buf.Stride(),
		X:      x,
		Y:      y,
	})
	if err != nil {
		return nil, &GlyphError{GID: gid, Err: err}
	}
	return &Mask{Buf: buf, X: x, Y: y}, nil
}
