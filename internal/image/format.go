// Package image provides the pixel buffers that the compositor draws
// into, together with the native composite and fill primitives.
package image

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatARGB32 is premultiplied 32-bit color stored in R, G, B, A
	// byte order.
	FormatARGB32 Format = iota

	// FormatRGB24 is opaque 32-bit color. The alpha byte always reads as
	// 255.
	FormatRGB24

	// FormatA8 is an 8-bit alpha mask.
	FormatA8

	formatCount
)

var formatBytes = [formatCount]int{
	FormatARGB32: 4,
	FormatRGB24:  4,
	FormatA8:     1,
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	if !f.IsValid() {
		return 0
	}
	return formatBytes[f]
}

// HasAlpha reports whether pixels carry alpha.
func (f Format) HasAlpha() bool {
	return f == FormatARGB32 || f == FormatA8
}

// HasColor reports whether pixels carry color channels.
func (f Format) HasColor() bool {
	return f == FormatARGB32 || f == FormatRGB24
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatARGB32:
		return "ARGB32"
	case FormatRGB24:
		return "RGB24"
	case FormatA8:
		return "A8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes returns the number of bytes needed for a row of the given
// width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}
