package image

import (
	"github.com/gogpu/glitter/internal/blend"
	"github.com/gogpu/glitter/internal/color"
)

// Pattern is a composite source: a solid pixel everywhere, or a buffer
// that is transparent outside its bounds.
type Pattern struct {
	buf   *Buf
	solid color.Pixel
}

// Solid returns a pattern of one premultiplied pixel.
func Solid(p color.Pixel) *Pattern {
	return &Pattern{solid: p}
}

// White is the opaque white pattern.
func White() *Pattern {
	return Solid(color.Pixel{R: 255, G: 255, B: 255, A: 255})
}

// FromBuf returns a pattern sampling b without repeat.
func FromBuf(b *Buf) *Pattern {
	return &Pattern{buf: b}
}

// IsSolid reports whether the pattern is a single color.
func (p *Pattern) IsSolid() bool { return p.buf == nil }

// Color returns the pixel of a solid pattern.
func (p *Pattern) Color() color.Pixel { return p.solid }

// Buf returns the buffer of a surface pattern, or nil.
func (p *Pattern) Buf() *Buf { return p.buf }

func (p *Pattern) at(x, y int) (r, g, b, a byte) {
	if p.buf == nil {
		return p.solid.R, p.solid.G, p.solid.B, p.solid.A
	}
	if x < 0 || y < 0 || x >= p.buf.width || y >= p.buf.height {
		return 0, 0, 0, 0
	}
	return p.buf.load(y*p.buf.stride + x*p.buf.format.BytesPerPixel())
}

// Composite combines src, scaled by mask, into the w×h rectangle of dst
// at (dstX, dstY): dst = op(src IN mask, dst). The source pixel for
// destination (dstX+i, dstY+j) is (srcX+i, srcY+j) and likewise for the
// mask. A nil src is opaque white; a nil mask is full coverage; the
// alpha of a color mask is used. Pixels outside a surface source or
// mask are transparent.
//
// Operators that are not bounded by their mask modify dst where the
// mask is zero.
func Composite(dst *Buf, op blend.Operator, src *Pattern, mask *Buf,
	srcX, srcY, maskX, maskY, dstX, dstY, w, h int,
) {
	composite(dst, op, blend.Masked, src, mask, srcX, srcY, maskX, maskY, dstX, dstY, w, h)
}

// LerpComposite is Composite that interpolates between dst and
// op(src, dst) by the mask: dst = lerp(dst, op(src, dst), mask). A zero
// mask pixel never modifies dst.
func LerpComposite(dst *Buf, op blend.Operator, src *Pattern, mask *Buf,
	srcX, srcY, maskX, maskY, dstX, dstY, w, h int,
) {
	composite(dst, op, blend.Lerp, src, mask, srcX, srcY, maskX, maskY, dstX, dstY, w, h)
}

type combiner func(f blend.Func, sr, sg, sb, sa, m, dr, dg, db, da byte) (byte, byte, byte, byte)

func composite(dst *Buf, op blend.Operator, combine combiner, src *Pattern, mask *Buf,
	srcX, srcY, maskX, maskY, dstX, dstY, w, h int,
) {
	if src == nil {
		src = White()
	}
	f := op.Func()
	sdx, sdy := srcX-dstX, srcY-dstY
	mdx, mdy := maskX-dstX, maskY-dstY
	bpp := dst.format.BytesPerPixel()

	dst.visible(Rect{X: dstX, Y: dstY, W: w, H: h}, func(r Rect) {
		for y := r.Y; y < r.Bottom(); y++ {
			off := y*dst.stride + r.X*bpp
			for x := r.X; x < r.Right(); x++ {
				m := byte(255)
				if mask != nil {
					m = mask.alphaAt(x+mdx, y+mdy)
				}
				sr, sg, sb, sa := src.at(x+sdx, y+sdy)
				dr, dg, db, da := dst.load(off)
				cr, cg, cb, ca := combine(f, sr, sg, sb, sa, m, dr, dg, db, da)
				dst.store(off, cr, cg, cb, ca)
				off += bpp
			}
		}
		dst.MarkDirty()
	})
}

// CompositeCoverage is Composite with a constant coverage in place of
// a mask.
func CompositeCoverage(dst *Buf, op blend.Operator, src *Pattern, srcX, srcY int, r Rect, coverage uint8) {
	if src == nil {
		src = White()
	}
	f := op.Func()
	sdx, sdy := srcX-r.X, srcY-r.Y
	bpp := dst.format.BytesPerPixel()

	dst.visible(r, func(v Rect) {
		for y := v.Y; y < v.Bottom(); y++ {
			off := y*dst.stride + v.X*bpp
			for x := v.X; x < v.Right(); x++ {
				sr, sg, sb, sa := src.at(x+sdx, y+sdy)
				dr, dg, db, da := dst.load(off)
				cr, cg, cb, ca := blend.Masked(f, sr, sg, sb, sa, coverage, dr, dg, db, da)
				dst.store(off, cr, cg, cb, ca)
				off += bpp
			}
		}
		dst.MarkDirty()
	})
}

// FillRects composites a solid pixel over each rectangle.
func FillRects(dst *Buf, op blend.Operator, p color.Pixel, rects []Rect) {
	if op == blend.OpClear || (op == blend.OpSource && p == color.Pixel{}) {
		for _, r := range rects {
			if !dst.clipSet && r.Contains(dst.Bounds()) {
				dst.Clear()
				continue
			}
			dst.visible(r, func(v Rect) { dst.zero(v) })
		}
		return
	}
	src := Solid(p)
	for _, r := range rects {
		CompositeCoverage(dst, op, src, 0, 0, r, 255)
	}
}

// zero clears r, which must lie inside the buffer.
func (b *Buf) zero(r Rect) {
	bpp := b.format.BytesPerPixel()
	for y := r.Y; y < r.Bottom(); y++ {
		off := y*b.stride + r.X*bpp
		clear(b.data[off : off+r.W*bpp])
	}
}
