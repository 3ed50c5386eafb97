// Package text turns strings into glyph masks for the renderer.
//
// The pipeline has three parts:
//
//   - Font: a parsed TrueType or OpenType font (go-text/typesetting).
//   - GlyphCache: rasterized A8 glyph masks keyed by font, glyph, size
//     and subpixel offset. A cache is an ordinary value owned by its
//     caller; there is no process-wide cache.
//   - Layout: positions glyphs along a baseline by their advances.
//
// # Example usage
//
//	f, err := text.GoRegular()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache := text.NewGlyphCache(1024)
//	for _, g := range text.Layout(f, 16, "Hello", 10, 20) {
//	    m, err := cache.Lookup(f, g.ID, 16, g.X)
//	    ...
//	}
//
// Shaping, bidirectional text and hinting are not provided.
package text
