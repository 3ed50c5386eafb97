package clip

import (
	"fmt"

	"github.com/gogpu/glitter/internal/blend"
	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/image"
	"github.com/gogpu/glitter/internal/raster"
	"github.com/gogpu/glitter/internal/status"
)

// Rasterize scan converts poly into dst, a clear A8 buffer whose
// top-left pixel is (x, y) in device space.
func Rasterize(dst *image.Buf, x, y int, poly *raster.Polygon,
	rule raster.FillRule, aa raster.Antialias, opts ...raster.Option,
) error {
	if dst.Format() != image.FormatA8 {
		return fmt.Errorf("clip: rasterize into %v: %w", dst.Format(), status.ErrInvalidFormat)
	}
	conv := raster.New(aa, opts...)
	if err := conv.Reset(x, y, x+dst.Width(), y+dst.Height(), rule, aa); err != nil {
		return err
	}
	if err := conv.AddPolygon(poly); err != nil {
		return err
	}
	dst.MarkDirty()
	return conv.Render(&raster.MaskRenderer{
		Data:   dst.Data(),
		Stride: dst.Stride(),
		X:      x,
		Y:      y,
	})
}

func getBuf(pool *image.Pool, w, h int) (*image.Buf, error) {
	if pool == nil {
		return image.NewBuf(w, h, image.FormatA8)
	}
	return pool.Get(w, h, image.FormatA8)
}

func putBuf(pool *image.Pool, b *image.Buf) {
	if pool != nil {
		pool.Put(b)
	}
}

// Surface renders the coverage of c over the device rectangle r into a
// new A8 buffer. Scratch buffers come from pool when it is not nil.
func (c *Clip) Surface(pool *image.Pool, r image.Rect, opts ...raster.Option) (*image.Buf, error) {
	buf, err := getBuf(pool, r.W, r.H)
	if err != nil {
		return nil, err
	}
	if c == nil {
		image.FillRects(buf, blend.OpSource, opaque, []image.Rect{buf.Bounds()})
		return buf, nil
	}
	if c.all {
		return buf, nil
	}

	paths := c.paths
	if len(paths) > 0 && c.boxesContain(r) {
		// The boxes add nothing; render the first path directly.
		p := paths[0]
		if err := Rasterize(buf, r.X, r.Y, p.Polygon, p.FillRule, p.Antialias, opts...); err != nil {
			putBuf(pool, buf)
			return nil, err
		}
		paths = paths[1:]
	} else {
		for _, b := range c.boxes {
			addBox(buf, b, r.X, r.Y)
		}
	}

	for _, p := range paths {
		if err := c.combinePath(buf, pool, p, r.X, r.Y, opts); err != nil {
			putBuf(pool, buf)
			return nil, err
		}
	}
	return buf, nil
}

// CombineWithSurface multiplies the A8 mask dst, whose top-left pixel
// is (dx, dy), by the clip paths. Boxes are not applied.
func (c *Clip) CombineWithSurface(dst *image.Buf, pool *image.Pool, dx, dy int, opts ...raster.Option) error {
	if c == nil {
		return nil
	}
	if c.all {
		dst.Clear()
		return nil
	}
	for _, p := range c.paths {
		if err := c.combinePath(dst, pool, p, dx, dy, opts); err != nil {
			return err
		}
	}
	return nil
}

func (c *Clip) combinePath(dst *image.Buf, pool *image.Pool, p Path, dx, dy int, opts []raster.Option) error {
	tmp, err := getBuf(pool, dst.Width(), dst.Height())
	if err != nil {
		return err
	}
	defer putBuf(pool, tmp)
	if err := Rasterize(tmp, dx, dy, p.Polygon, p.FillRule, p.Antialias, opts...); err != nil {
		return err
	}
	image.Composite(dst, blend.OpDestIn, image.FromBuf(tmp), nil,
		0, 0, 0, 0, 0, 0, dst.Width(), dst.Height())
	return nil
}

var opaque = image.White().Color()

// span is a run of pixels with the same fractional coverage, in 1/256.
type span struct {
	start, end int
	cover      int
}

// spans splits [lo, hi) into a partial first pixel, a run of whole
// pixels and a partial last pixel.
func spans(lo, hi fixed.Fixed, dst []span) []span {
	first, last := lo.Integer(), (hi - 1).Integer()
	if first == last {
		return append(dst, span{first, first + 1, int(hi - lo)})
	}
	if f := lo.Frac(); f != 0 {
		dst = append(dst, span{first, first + 1, int(fixed.One - f)})
		first++
	}
	end := hi.Integer()
	if end > first {
		dst = append(dst, span{first, end, int(fixed.One)})
	}
	if f := hi.Frac(); f != 0 {
		dst = append(dst, span{end, end + 1, int(f)})
	}
	return dst
}

// BoxCoverage calls fn for the pixel bands of b: a partial row or
// column at each fractional edge and the whole pixels between them,
// each with the exact fraction of a pixel the box covers.
func BoxCoverage(b fixed.Box, fn func(r image.Rect, coverage uint8)) {
	if b.IsEmpty() {
		return
	}
	var xs, ys [3]span
	for _, sy := range spans(b.P1.Y, b.P2.Y, ys[:0]) {
		for _, sx := range spans(b.P1.X, b.P2.X, xs[:0]) {
			a := (sx.cover*sy.cover*255 + 1<<15) >> 16
			fn(image.R(sx.start, sy.start, sx.end, sy.end), uint8(a)) //nolint:gosec // a <= 255
		}
	}
}

// addBox adds the exact area coverage of b to the A8 buffer dst whose
// top-left pixel is (ox, oy).
func addBox(dst *image.Buf, b fixed.Box, ox, oy int) {
	b = b.Intersect(fixed.BoxFromInts(ox, oy, ox+dst.Width(), oy+dst.Height()))
	BoxCoverage(b, func(r image.Rect, a uint8) {
		image.CompositeCoverage(dst, blend.OpAdd, nil, 0, 0, r.Translate(-ox, -oy), a)
	})
}
