// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"github.com/gogpu/glitter/internal/blend"
	"github.com/gogpu/glitter/internal/clip"
	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/image"
	"github.com/gogpu/glitter/internal/raster"
)

// source is a pattern resolved by the backend. A nil *source is opaque
// white.
type source struct {
	pat    *image.Pattern
	dx, dy int
}

// at returns the pattern and the pattern position of device (x, y).
func (s *source) at(x, y int) (*image.Pattern, int, int) {
	if s == nil {
		return nil, 0, 0
	}
	return s.pat, x + s.dx, y + s.dy
}

// drawFunc renders a shape with op over the device rectangle r into
// dst, whose top-left pixel is at device (dstX, dstY). Draw functions
// ignore the clip; the strategy applies it.
type drawFunc func(dst *image.Buf, op blend.Operator, src *source, dstX, dstY int, r image.Rect) error

// inPlace reports whether op may be applied span by span. Everything
// else is composited through a mask of the whole rectangle, so that
// pixels the shape misses see zero coverage.
func inPlace(op blend.Operator) bool {
	return op.BoundedByMask() && op != blend.OpSource && op != blend.OpClear
}

// spanRenderer composites each span of coverage straight into dst.
type spanRenderer struct {
	backend    Backend
	dst        *image.Buf
	op         blend.Operator
	src        *source
	dstX, dstY int
}

func (r *spanRenderer) RenderRows(y, height int, spans []raster.Span) error {
	for i := 0; i+1 < len(spans); i++ {
		a := spans[i].Alpha()
		if a == 0 {
			continue
		}
		x1, x2 := int(spans[i].X), int(spans[i+1].X)
		p, sx, sy := r.src.at(x1, y)
		band := image.Rect{X: x1 - r.dstX, Y: y - r.dstY, W: x2 - x1, H: height}
		r.backend.CompositeCoverage(r.dst, r.op, p, sx, sy, band, a)
	}
	return nil
}

// throughMask renders coverage into an A8 scratch covering r and
// composites src through it.
func (c *Compositor) throughMask(dst *image.Buf, op blend.Operator, src *source, dstX, dstY int,
	r image.Rect, render func(mask *image.Buf) error,
) error {
	mask, err := c.scratch(r.W, r.H, image.FormatA8)
	if err != nil {
		return err
	}
	defer c.pool.Put(mask)
	if err := render(mask); err != nil {
		return err
	}
	p, sx, sy := src.at(r.X, r.Y)
	c.backend.Composite(dst, op, p, mask, sx, sy, 0, 0, r.X-dstX, r.Y-dstY, r.W, r.H)
	return nil
}

func mul8(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255) //nolint:gosec // <= 255
}

// drawBoxes draws a union of disjoint boxes scaled by opacity. Edges
// that are not pixel aligned get their exact fractional coverage.
func (c *Compositor) drawBoxes(boxes []fixed.Box, opacity uint8) drawFunc {
	return func(dst *image.Buf, op blend.Operator, src *source, dstX, dstY int, r image.Rect) error {
		area := fixed.BoxFromInts(r.X, r.Y, r.Right(), r.Bottom())
		if inPlace(op) {
			for _, b := range boxes {
				clip.BoxCoverage(b.Intersect(area), func(band image.Rect, a uint8) {
					if a = mul8(a, opacity); a == 0 {
						return
					}
					p, sx, sy := src.at(band.X, band.Y)
					c.backend.CompositeCoverage(dst, op, p, sx, sy, band.Translate(-dstX, -dstY), a)
				})
			}
			return nil
		}
		return c.throughMask(dst, op, src, dstX, dstY, r, func(mask *image.Buf) error {
			for _, b := range boxes {
				clip.BoxCoverage(b.Intersect(area), func(band image.Rect, a uint8) {
					c.backend.CompositeCoverage(mask, blend.OpAdd, nil, 0, 0,
						band.Translate(-r.X, -r.Y), mul8(a, opacity))
				})
			}
			return nil
		})
	}
}

// drawPolygon scan converts poly.
func (c *Compositor) drawPolygon(poly *raster.Polygon, rule raster.FillRule, aa raster.Antialias) drawFunc {
	return func(dst *image.Buf, op blend.Operator, src *source, dstX, dstY int, r image.Rect) error {
		if inPlace(op) {
			return c.scan(poly, rule, aa, r, &spanRenderer{
				backend: c.backend,
				dst:     dst,
				op:      op,
				src:     src,
				dstX:    dstX,
				dstY:    dstY,
			})
		}
		return c.throughMask(dst, op, src, dstX, dstY, r, func(mask *image.Buf) error {
			mask.MarkDirty()
			return c.scan(poly, rule, aa, r, &raster.MaskRenderer{
				Data:   mask.Data(),
				Stride: mask.Stride(),
				X:      r.X,
				Y:      r.Y,
			})
		})
	}
}

// drawMask composites through the mask pattern of e.
func (c *Compositor) drawMask(e *Extents) drawFunc {
	return func(dst *image.Buf, op blend.Operator, src *source, dstX, dstY int, r image.Rect) error {
		m, mx, my, err := c.backend.PatternToSurface(dst, e.MaskPattern, true, r)
		if err != nil {
			return err
		}
		p, sx, sy := src.at(r.X, r.Y)
		c.backend.Composite(dst, op, p, m.Buf(), sx, sy, r.X+mx, r.Y+my, r.X-dstX, r.Y-dstY, r.W, r.H)
		return nil
	}
}

// scan renders poly clipped to r through rr, reusing the compositor's
// converters.
func (c *Compositor) scan(poly *raster.Polygon, rule raster.FillRule, aa raster.Antialias,
	r image.Rect, rr raster.RowRenderer,
) error {
	conv := c.converter(aa)
	if err := conv.Reset(r.X, r.Y, r.Right(), r.Bottom(), rule, aa); err != nil {
		return err
	}
	if err := conv.AddPolygon(poly); err != nil {
		return err
	}
	if err := conv.Render(rr); err != nil {
		return err
	}
	st := conv.Stats()
	c.logger.Debug("scan converted",
		"antialias", aa, "edges", st.Edges, "rows", st.Rows,
		"full_rows", st.FullRows, "subsampled_rows", st.SubsampledRows, "spans", st.Spans)
	return nil
}

func (c *Compositor) converter(aa raster.Antialias) raster.ScanConverter {
	if aa == raster.AntialiasNone {
		if c.mono == nil {
			c.mono = raster.NewMonoConverter(c.rasterOpts...)
		}
		return c.mono
	}
	if c.tor == nil {
		c.tor = raster.NewConverter(c.rasterOpts...)
	}
	return c.tor
}
