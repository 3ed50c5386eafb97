package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned for a non-positive or non-finite size.
	ErrInvalidSize = errors.New("text: invalid font size")

	// ErrNilFont is returned when a lookup is made without a font.
	ErrNilFont = errors.New("text: nil font")
)

// GlyphError is returned when a glyph cannot be rasterized.
type GlyphError struct {
	GID GlyphID
	Err error
}

func (e *GlyphError) Error() string {
	return "text: glyph " + e.GID.String() + ": " + e.Err.Error()
}

func (e *GlyphError) Unwrap() error {
	return e.Err
}
