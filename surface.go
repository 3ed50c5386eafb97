// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glitter

import (
	stdimage "image"
	"io"

	"github.com/gogpu/glitter/internal/color"
	"github.com/gogpu/glitter/internal/image"
)

// Surface is an image that operations draw into.
//
// A surface enters an error state when an operation on it fails for a
// reason other than a bad argument. From then on every operation
// targeting it returns the recorded *SurfaceError; see Err.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	buf *image.Buf
	err error
}

// NewSurface creates a transparent surface.
func NewSurface(width, height int, format Format) (*Surface, error) {
	buf, err := image.NewBuf(width, height, format)
	if err != nil {
		return nil, err
	}
	return &Surface{buf: buf}, nil
}

// SurfaceFromImage copies img into a new ARGB32 surface.
func SurfaceFromImage(img stdimage.Image) (*Surface, error) {
	buf, err := image.FromImage(img)
	if err != nil {
		return nil, err
	}
	return &Surface{buf: buf}, nil
}

// LoadPNG reads a PNG file into a new surface.
func LoadPNG(path string) (*Surface, error) {
	buf, err := image.LoadPNG(path)
	if err != nil {
		return nil, err
	}
	return &Surface{buf: buf}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.buf.Width() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.buf.Height() }

// Format returns the pixel format.
func (s *Surface) Format() Format { return s.buf.Format() }

// Err returns the error that put the surface into an error state, or
// nil.
func (s *Surface) Err() error { return s.err }

// setError records the first sticky failure.
func (s *Surface) setError(op string, err error) error {
	if s.err == nil {
		s.err = &SurfaceError{Op: op, Err: err}
	}
	return s.err
}

// ClearError takes the surface out of its error state without touching
// its pixels.
func (s *Surface) ClearError() {
	s.err = nil
}

// At returns the non-premultiplied color of the pixel at (x, y).
func (s *Surface) At(x, y int) Color {
	return color.FromPixel(s.buf.PixelAt(x, y))
}

// Clear makes every pixel transparent and clears the error state.
func (s *Surface) Clear() {
	s.buf.Clear()
	s.err = nil
}

// Image returns a copy of the surface as a premultiplied *image.RGBA.
func (s *Surface) Image() *stdimage.RGBA {
	return s.buf.ToRGBA()
}

// EncodePNG writes the surface as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	return s.buf.EncodePNG(w)
}

// SavePNG writes the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	return s.buf.SavePNG(path)
}
