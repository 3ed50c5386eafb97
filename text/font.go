package text

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glitter/internal/path"
)

// GlyphID is a glyph index within a font.
type GlyphID uint32

func (g GlyphID) String() string {
	return strconv.FormatUint(uint64(g), 10)
}

// Metrics holds font-level metrics at a specific size, in pixels.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font (positive).
	Descent float64

	// LineGap is the recommended gap between lines.
	LineGap float64
}

// LineHeight returns ascent + descent + line gap.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

var nextFontID atomic.Uint64

// Font is a parsed font. A Font is read-only after creation and safe
// for concurrent use.
type Font struct {
	face *font.Face
	upem float64
	id   uint64
}

// NewFont parses TrueType or OpenType data.
func NewFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	upem := float64(face.Upem())
	if upem == 0 {
		upem = 1000
	}
	return &Font{face: face, upem: upem, id: nextFontID.Add(1)}, nil
}

// GoRegular parses the Go Regular font bundled with golang.org/x/image.
func GoRegular() (*Font, error) {
	return NewFont(goregular.TTF)
}

// GlyphIndex returns the glyph for r. ok is false when the font has no
// glyph for it, in which case the returned glyph is the notdef glyph.
func (f *Font) GlyphIndex(r rune) (GlyphID, bool) {
	gid, ok := f.face.NominalGlyph(r)
	return GlyphID(gid), ok
}

// Advance returns the horizontal advance of gid at size pixels per em.
func (f *Font) Advance(gid GlyphID, size float64) float64 {
	return float64(f.face.HorizontalAdvance(font.GID(gid))) * size / f.upem
}

// Metrics returns the font metrics at size pixels per em.
func (f *Font) Metrics(size float64) Metrics {
	s := size / f.upem
	ext, ok := f.face.FontHExtents()
	if !ok {
		return Metrics{Ascent: 0.8 * size, Descent: 0.2 * size}
	}
	return Metrics{
		Ascent:  float64(ext.Ascender) * s,
		Descent: -float64(ext.Descender) * s,
		LineGap: float64(ext.LineGap) * s,
	}
}

// Outline returns the outline of gid at size pixels per em with its
// origin at (x, y), in device space (y down). ok is false for glyphs
// that have no vector outline, such as bitmap glyphs.
func (f *Font) Outline(gid GlyphID, size, x, y float64) (p *path.Path, ok bool) {
	outline, ok := f.face.GlyphData(font.GID(gid)).(font.GlyphOutline)
	if !ok {
		return nil, false
	}
	s := size / f.upem
	pt := func(sp opentype.SegmentPoint) (float64, float64) {
		return x + float64(sp.X)*s, y - float64(sp.Y)*s
	}

	p = path.New()
	for _, seg := range outline.Segments {
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			p.MoveTo(pt(seg.Args[0]))
		case opentype.SegmentOpLineTo:
			p.LineTo(pt(seg.Args[0]))
		case opentype.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			ex, ey := pt(seg.Args[1])
			p.QuadTo(cx, cy, ex, ey)
		case opentype.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			ex, ey := pt(seg.Args[2])
			p.CubicTo(c1x, c1y, c2x, c2y, ex, ey)
		}
	}
	return p, true
}

func validSize(size float64) error {
	if !(size > 0) || math.IsInf(size, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	return nil
}
