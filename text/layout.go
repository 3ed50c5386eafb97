package text

// Glyph is a glyph positioned on a baseline. (X, Y) is the glyph
// origin in device space.
type Glyph struct {
	ID   GlyphID
	Rune rune
	X, Y float64
}

// Layout places the glyphs of s along a baseline starting at (x, y),
// advancing by each glyph's advance. A newline moves to the start of
// the next line, one line height down. Runes the font lacks are laid
// out with the font's notdef glyph.
func Layout(f *Font, size float64, s string, x, y float64) []Glyph {
	if f == nil || validSize(size) != nil {
		return nil
	}
	lineHeight := f.Metrics(size).LineHeight()

	glyphs := make([]Glyph, 0, len(s))
	penX, penY := x, y
	for _, r := range s {
		if r == '\n' {
			penX = x
			penY += lineHeight
			continue
		}
		gid, _ := f.GlyphIndex(r)
		glyphs = append(glyphs, Glyph{ID: gid, Rune: r, X: penX, Y: penY})
		penX += f.Advance(gid, size)
	}
	return glyphs
}

// Measure returns the advance width of the longest line of s.
func Measure(f *Font, size float64, s string) float64 {
	if f == nil || validSize(size) != nil {
		return 0
	}
	var width, line float64
	for _, r := range s {
		if r == '\n' {
			width = max(width, line)
			line = 0
			continue
		}
		gid, _ := f.GlyphIndex(r)
		line += f.Advance(gid, size)
	}
	return max(width, line)
}
