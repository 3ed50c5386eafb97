package image

import (
	"bytes"
	"fmt"
	stdimage "image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"

	"github.com/gogpu/glitter/internal/blend"
	"github.com/gogpu/glitter/internal/status"
)

// FromImage copies any image into a new ARGB32 buffer.
func FromImage(img stdimage.Image) (*Buf, error) {
	rgba := clone.AsRGBA(img)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	buf, err := NewBuf(w, h, FormatARGB32)
	if err != nil {
		return nil, err
	}
	for y := range h {
		copy(buf.Row(y), rgba.Pix[y*rgba.Stride:y*rgba.Stride+w*4])
	}
	if w > 0 && h > 0 {
		buf.MarkDirty()
	}
	return buf, nil
}

// ToRGBA converts the buffer into a premultiplied *image.RGBA. A8
// buffers become black with their mask as alpha.
func (b *Buf) ToRGBA() *stdimage.RGBA {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, b.width, b.height))
	for y := range b.height {
		dst := img.Pix[y*img.Stride:]
		switch b.format {
		case FormatARGB32:
			copy(dst, b.Row(y))
		default:
			for x := range b.width {
				r, g, bl, a := b.load(y*b.stride + x*b.format.BytesPerPixel())
				dst[x*4], dst[x*4+1], dst[x*4+2], dst[x*4+3] = r, g, bl, a
			}
		}
	}
	return img
}

// ToAlpha returns the alpha channel as an *image.Alpha.
func (b *Buf) ToAlpha() *stdimage.Alpha {
	img := stdimage.NewAlpha(stdimage.Rect(0, 0, b.width, b.height))
	for y := range b.height {
		for x := range b.width {
			img.Pix[y*img.Stride+x] = b.alphaAt(x, y)
		}
	}
	return img
}

// Resize returns a copy of b scaled to w×h with bilinear filtering.
// The result has the format of b.
func (b *Buf) Resize(w, h int) (*Buf, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("image: resize to %dx%d: %w", w, h, status.ErrInvalidSize)
	}
	scaled, err := FromImage(transform.Resize(b.ToRGBA(), w, h, transform.Linear))
	if err != nil || b.format == FormatARGB32 {
		return scaled, err
	}
	out, err := NewBuf(w, h, b.format)
	if err != nil {
		return nil, err
	}
	Composite(out, blend.OpSource, FromBuf(scaled), nil, 0, 0, 0, 0, 0, 0, w, h)
	return out, nil
}

// Decode reads an image in any registered format.
func Decode(r io.Reader) (*Buf, error) {
	img, _, err := stdimage.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromImage(img)
}

// DecodePNG reads a PNG image.
func DecodePNG(r io.Reader) (*Buf, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode PNG: %w", err)
	}
	return FromImage(img)
}

// EncodePNG writes the buffer as PNG.
func (b *Buf) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.ToRGBA()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// PNG returns the PNG encoding of the buffer.
func (b *Buf) PNG() ([]byte, error) {
	var out bytes.Buffer
	if err := b.EncodePNG(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// SavePNG writes the buffer to a PNG file.
func (b *Buf) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	if err := b.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// LoadPNG reads a PNG file.
func LoadPNG(path string) (*Buf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return DecodePNG(f)
}
