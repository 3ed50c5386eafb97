// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"github.com/gogpu/glitter/internal/color"
	"github.com/gogpu/glitter/internal/image"
)

// Pattern is a source or mask: one premultiplied color everywhere, or
// an image placed with its top-left pixel at device position (X, Y).
// Image patterns are transparent outside the image.
type Pattern struct {
	Color   color.Pixel
	Surface *image.Buf
	X, Y    int
}

// Solid returns a pattern of one premultiplied pixel.
func Solid(p color.Pixel) *Pattern {
	return &Pattern{Color: p}
}

// SurfacePattern returns a pattern drawing b at device position (x, y).
func SurfacePattern(b *image.Buf, x, y int) *Pattern {
	return &Pattern{Surface: b, X: x, Y: y}
}

// IsSolid reports whether the pattern is a single color.
func (p *Pattern) IsSolid() bool { return p.Surface == nil }

// IsOpaque reports whether every pixel of the pattern is opaque.
func (p *Pattern) IsOpaque() bool {
	return p.IsSolid() && p.Color.A == 255
}

// IsClear reports whether the pattern is fully transparent.
func (p *Pattern) IsClear() bool {
	return p.IsSolid() && p.Color.A == 0
}

// unboundedRect stands for the infinite extents of a solid pattern.
var unboundedRect = image.R(-1<<30, -1<<30, 1<<30, 1<<30)

// extents returns the device area the pattern may be non-transparent in.
func (p *Pattern) extents() image.Rect {
	if p.IsSolid() {
		return unboundedRect
	}
	return image.Rect{X: p.X, Y: p.Y, W: p.Surface.Width(), H: p.Surface.Height()}
}
