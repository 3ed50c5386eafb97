// Package color provides the solid colors used by patterns and fills.
package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/glitter/internal/status"
)

// Color is a non-premultiplied color with float64 components in [0,1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Black       = Color{A: 1}
	White       = Color{R: 1, G: 1, B: 1, A: 1}
	Transparent = Color{}
)

// RGBA returns a color with every component clamped to [0,1].
func RGBA(r, g, b, a float64) Color {
	return Color{R: clamp01(r), G: clamp01(g), B: clamp01(b), A: clamp01(a)}
}

// Pixel is a premultiplied 8-bit color.
type Pixel struct {
	R, G, B, A uint8
}

// RGBA implements image/color.Color.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.R) * 0x101
	g = uint32(p.G) * 0x101
	b = uint32(p.B) * 0x101
	a = uint32(p.A) * 0x101
	return r, g, b, a
}

// short returns v scaled to 16 bits, the precision colors are compared at.
func short(v float64) uint16 {
	return uint16(clamp01(v)*0xffff + 0.5)
}

// IsClear reports whether the color has no visible alpha at 8-bit
// precision.
func (c Color) IsClear() bool {
	return short(c.A) < 0x0100
}

// IsOpaque reports whether the color is fully opaque at 8-bit precision.
func (c Color) IsOpaque() bool {
	return short(c.A) >= 0xff00
}

// Premul converts c to a premultiplied 8-bit pixel.
func (c Color) Premul() Pixel {
	a := clamp01(c.A)
	return Pixel{
		R: uint8(short(c.R*a) >> 8),
		G: uint8(short(c.G*a) >> 8),
		B: uint8(short(c.B*a) >> 8),
		A: uint8(short(a) >> 8),
	}
}

// FromPixel converts a premultiplied pixel back to a color.
func FromPixel(p Pixel) Color {
	if p.A == 0 {
		return Transparent
	}
	a := float64(p.A)
	return Color{
		R: float64(p.R) / a,
		G: float64(p.G) / a,
		B: float64(p.B) / a,
		A: a / 255,
	}
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("color: parse %q: %w", s, status.ErrInvalidArgument)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color: parse %q: %w", s, status.ErrInvalidArgument)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// String formats the color as "#rrggbbaa".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x",
		short(c.R)>>8, short(c.G)>>8, short(c.B)>>8, short(c.A)>>8)
}

func clamp01(v float64) float64 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 1
	default:
		return v
	}
}
