// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glitter

import (
	"github.com/gogpu/glitter/internal/compositor"
)

// Pattern is the paint source of an operation: a solid color, or a
// surface placed with its top-left pixel at a device position.
// Surface patterns are transparent outside the surface.
type Pattern struct {
	color   Color
	surface *Surface
	x, y    int
}

// SolidPattern returns a pattern of one color.
func SolidPattern(c Color) Pattern {
	return Pattern{color: c}
}

// SurfacePattern returns a pattern drawing s at (x, y).
func SurfacePattern(s *Surface, x, y int) Pattern {
	return Pattern{surface: s, x: x, y: y}
}

// IsSolid reports whether the pattern is a single color.
func (p Pattern) IsSolid() bool {
	return p.surface == nil
}

func (p Pattern) resolve() *compositor.Pattern {
	if p.surface == nil {
		return compositor.Solid(p.color.Premul())
	}
	return compositor.SurfacePattern(p.surface.buf, p.x, p.y)
}
