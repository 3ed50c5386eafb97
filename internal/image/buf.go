package image

import (
	"fmt"
	"math"

	"github.com/gogpu/glitter/internal/color"
	"github.com/gogpu/glitter/internal/status"
)

// Buf is an image buffer. Pixel data is stored in a contiguous byte
// slice with a row stride.
//
// A Buf tracks whether it is known to be entirely clear; compositing
// uses this to pick cheaper strategies. Writing through Data requires a
// call to MarkDirty.
//
// A Buf is not safe for concurrent use.
type Buf struct {
	data   []byte
	width  int
	height int
	stride int
	format Format

	clear  bool
	parent *Buf

	clip    []Rect
	clipSet bool
}

func checkSize(width, height int, format Format) error {
	if !format.IsValid() {
		return fmt.Errorf("image: format %d: %w", format, status.ErrInvalidFormat)
	}
	if width < 0 || height < 0 ||
		int64(width)*int64(height)*int64(format.BytesPerPixel()) > math.MaxInt32 {
		return fmt.Errorf("image: size %dx%d: %w", width, height, status.ErrInvalidSize)
	}
	return nil
}

// NewBuf creates a clear image buffer with the given dimensions and
// format.
func NewBuf(width, height int, format Format) (*Buf, error) {
	if err := checkSize(width, height, format); err != nil {
		return nil, err
	}
	stride := format.RowBytes(width)
	return &Buf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
		clear:  true,
	}, nil
}

// FromRaw creates a Buf over existing data without copying. Stride must
// be at least format.RowBytes(width).
func FromRaw(data []byte, width, height int, format Format, stride int) (*Buf, error) {
	if err := checkSize(width, height, format); err != nil {
		return nil, err
	}
	if stride < format.RowBytes(width) {
		return nil, fmt.Errorf("image: stride %d for width %d: %w", stride, width, status.ErrInvalidSize)
	}
	need := stride * height
	if len(data) < need {
		return nil, fmt.Errorf("image: %d bytes for %dx%d: %w", len(data), width, height, status.ErrInvalidSize)
	}
	return &Buf{
		data:   data[:need],
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Clone creates a deep copy of the buffer without its clip region.
func (b *Buf) Clone() *Buf {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Buf{
		data:   data,
		width:  b.width,
		height: b.height,
		stride: b.stride,
		format: b.format,
		clear:  b.clear,
	}
}

// Width returns the image width in pixels.
func (b *Buf) Width() int { return b.width }

// Height returns the image height in pixels.
func (b *Buf) Height() int { return b.height }

// Stride returns the number of bytes per row.
func (b *Buf) Stride() int { return b.stride }

// Format returns the pixel format.
func (b *Buf) Format() Format { return b.format }

// Data returns the raw pixel data.
func (b *Buf) Data() []byte { return b.data }

// Bounds returns the buffer rectangle.
func (b *Buf) Bounds() Rect {
	return Rect{W: b.width, H: b.height}
}

// Row returns the pixel bytes of row y.
func (b *Buf) Row(y int) []byte {
	start := y * b.stride
	return b.data[start : start+b.format.RowBytes(b.width)]
}

// IsClear reports whether the buffer is known to hold only zero pixels.
func (b *Buf) IsClear() bool {
	return b.clear
}

// MarkDirty records that the buffer may hold non-zero pixels.
func (b *Buf) MarkDirty() {
	for p := b; p != nil; p = p.parent {
		p.clear = false
	}
}

// Clear zeroes every pixel.
func (b *Buf) Clear() {
	if b.parent == nil && b.stride == b.format.RowBytes(b.width) {
		clear(b.data)
	} else {
		for y := range b.height {
			clear(b.Row(y))
		}
	}
	b.clear = true
}

// PixelAt returns the premultiplied pixel at (x, y), or a transparent
// pixel outside the buffer.
func (b *Buf) PixelAt(x, y int) color.Pixel {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return color.Pixel{}
	}
	r, g, bl, a := b.load(y*b.stride + x*b.format.BytesPerPixel())
	return color.Pixel{R: r, G: g, B: bl, A: a}
}

// SetPixel stores p at (x, y), ignoring the clip region.
func (b *Buf) SetPixel(x, y int, p color.Pixel) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.store(y*b.stride+x*b.format.BytesPerPixel(), p.R, p.G, p.B, p.A)
	b.MarkDirty()
}

func (b *Buf) load(off int) (r, g, bl, a byte) {
	switch b.format {
	case FormatA8:
		return 0, 0, 0, b.data[off]
	case FormatRGB24:
		return b.data[off], b.data[off+1], b.data[off+2], 255
	default:
		return b.data[off], b.data[off+1], b.data[off+2], b.data[off+3]
	}
}

func (b *Buf) store(off int, r, g, bl, a byte) {
	switch b.format {
	case FormatA8:
		b.data[off] = a
	case FormatRGB24:
		b.data[off] = r
		b.data[off+1] = g
		b.data[off+2] = bl
		b.data[off+3] = 255
	default:
		b.data[off] = r
		b.data[off+1] = g
		b.data[off+2] = bl
		b.data[off+3] = a
	}
}

// alphaAt returns the alpha at (x, y), zero outside the buffer.
func (b *Buf) alphaAt(x, y int) byte {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0
	}
	switch b.format {
	case FormatA8:
		return b.data[y*b.stride+x]
	case FormatRGB24:
		return 255
	default:
		return b.data[y*b.stride+x*4+3]
	}
}

// Sub returns a view of the rectangle r, which must lie inside the
// buffer. Writes through the view are visible in b.
func (b *Buf) Sub(r Rect) (*Buf, error) {
	if r.IsEmpty() || !b.Bounds().Contains(r) {
		return nil, fmt.Errorf("image: sub-image %v of %v: %w", r, b.Bounds(), status.ErrInvalidSize)
	}
	bpp := b.format.BytesPerPixel()
	start := r.Y*b.stride + r.X*bpp
	end := (r.Bottom()-1)*b.stride + r.Right()*bpp
	return &Buf{
		data:   b.data[start:end:end],
		width:  r.W,
		height: r.H,
		stride: b.stride,
		format: b.format,
		clear:  b.clear,
		parent: b,
	}, nil
}

// SetClipRegion restricts every later composite and fill to the union
// of rects. A nil slice removes the restriction; an empty non-nil slice
// blocks all drawing.
func (b *Buf) SetClipRegion(rects []Rect) {
	if rects == nil {
		b.clip, b.clipSet = nil, false
		return
	}
	b.clip = append(b.clip[:0], rects...)
	b.clipSet = true
}

// ClipRegion returns the current clip region and whether one is set.
func (b *Buf) ClipRegion() ([]Rect, bool) {
	return b.clip, b.clipSet
}

// visible calls fn for every part of r, in buffer coordinates, that
// lies inside the buffer and its clip region.
func (b *Buf) visible(r Rect, fn func(Rect)) {
	r = r.Intersect(b.Bounds())
	if r.IsEmpty() {
		return
	}
	if !b.clipSet {
		fn(r)
		return
	}
	for _, c := range b.clip {
		if v := r.Intersect(c); !v.IsEmpty() {
			fn(v)
		}
	}
}
