// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glitter

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/glitter/internal/clip"
	"github.com/gogpu/glitter/internal/compositor"
	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/path"
	"github.com/gogpu/glitter/internal/raster"
	"github.com/gogpu/glitter/internal/status"
	"github.com/gogpu/glitter/internal/stroke"
	"github.com/gogpu/glitter/text"
)

// Renderer draws into a target surface. It owns the scan converters,
// scratch buffers and clip stack its operations use, so a Renderer must
// not be shared between goroutines; give each goroutine its own.
//
// Operations return nil when they succeed or cannot change the target.
type Renderer struct {
	target *Surface
	clips  *clip.Stack
	comp   *compositor.Compositor
	glyphs *text.GlyphCache
	opts   options
	logger *slog.Logger

	poly raster.Polygon
	run  []compositor.Glyph
}

// New returns a renderer drawing into target.
func New(target *Surface, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = Logger()
	}

	copts := []compositor.Option{
		compositor.WithLogger(logger),
		compositor.WithRasterOptions(o.rasterOpts...),
	}
	if o.observer != nil {
		copts = append(copts, compositor.WithObserver(o.observer))
	}

	glyphs := o.glyphs
	if glyphs == nil {
		glyphs = text.NewGlyphCache(text.DefaultCacheSize,
			text.WithAntialias(o.antialias),
			text.WithTolerance(o.tolerance),
			text.WithRasterOptions(o.rasterOpts...))
	}

	r := &Renderer{
		comp:   compositor.New(compositor.NewImageBackend(), copts...),
		glyphs: glyphs,
		opts:   o,
		logger: logger,
	}
	r.SetTarget(target)
	return r
}

// SetTarget directs later operations to s and resets the clip.
func (r *Renderer) SetTarget(s *Surface) {
	r.target = s
	if s == nil {
		r.clips = nil
		return
	}
	if r.clips == nil {
		r.clips = clip.NewStack(s.buf.Bounds())
	} else {
		r.clips.Reset(s.buf.Bounds())
	}
}

// Target returns the surface being drawn into.
func (r *Renderer) Target() *Surface {
	return r.target
}

// GlyphCache returns the cache glyph masks are taken from.
func (r *Renderer) GlyphCache() *text.GlyphCache {
	return r.glyphs
}

// ClipRect intersects the clip with a rectangle. Fractional edges clip
// with partial coverage.
func (r *Renderer) ClipRect(x, y, w, h float64) {
	if r.clips == nil {
		return
	}
	x1, x2 := min(x, x+w), max(x, x+w)
	y1, y2 := min(y, y+h), max(y, y+h)
	r.clips.PushBox(fixed.Box{P1: fixed.PtF(x1, y1), P2: fixed.PtF(x2, y2)})
}

// ClipPath intersects the clip with the inside of p.
func (r *Renderer) ClipPath(p *Path, rule FillRule) {
	if r.clips == nil {
		return
	}
	r.clips.PushPath(clip.Path{
		Polygon:   path.ToPolygon(p, r.opts.tolerance),
		FillRule:  rule,
		Antialias: r.opts.antialias,
	})
}

// PopClip undoes the most recent ClipRect or ClipPath. It reports
// false when there is nothing to undo.
func (r *Renderer) PopClip() bool {
	return r.clips != nil && r.clips.Pop()
}

// ResetClip removes every clip.
func (r *Renderer) ResetClip() {
	if r.target != nil {
		r.clips.Reset(r.target.buf.Bounds())
	}
}

// activeClip returns the clip for the next operation; nil when
// unclipped.
func (r *Renderer) activeClip() *clip.Clip {
	if r.clips.Depth() == 0 {
		return nil
	}
	return r.clips.Current()
}

// begin validates the target before operation op.
func (r *Renderer) begin(op string) error {
	if r.target == nil {
		return fmt.Errorf("glitter: %s: no target: %w", op, ErrInvalidArgument)
	}
	return r.target.err
}

// finish translates the compositor outcome of op.
func (r *Renderer) finish(op string, err error) error {
	switch {
	case err == nil, errors.Is(err, status.ErrNothingToDo):
		return nil
	case isSticky(err):
		r.logger.Warn("surface error", "op", op, "err", err)
		return r.target.setError(op, err)
	default:
		return fmt.Errorf("glitter: %s: %w", op, err)
	}
}

// Paint composites src over the whole clip.
func (r *Renderer) Paint(op Operator, src Pattern) error {
	if err := r.begin("paint"); err != nil {
		return err
	}
	return r.finish("paint", r.comp.Paint(r.target.buf, op, src.resolve(), r.activeClip()))
}

// Mask composites src through the alpha of mask.
func (r *Renderer) Mask(op Operator, src, mask Pattern) error {
	if err := r.begin("mask"); err != nil {
		return err
	}
	return r.finish("mask", r.comp.Mask(r.target.buf, op, src.resolve(), mask.resolve(), r.activeClip()))
}

// Fill composites src through the inside of p.
//
// Paths made of disjoint axis-aligned rectangles skip scan conversion.
func (r *Renderer) Fill(op Operator, src Pattern, p *Path, rule FillRule) error {
	if err := r.begin("fill"); err != nil {
		return err
	}
	if p == nil {
		p = NewPath()
	}
	elems := p.Elements()
	if boxes, ok := path.Boxes(elems); ok && (r.opts.antialias != AntialiasNone || aligned(boxes)) {
		return r.finish("fill", r.comp.Boxes(r.target.buf, op, src.resolve(), boxes, r.activeClip()))
	}

	r.poly.Reset()
	path.AppendPolygon(&r.poly, elems, r.opts.tolerance)
	err := r.comp.Fill(r.target.buf, op, src.resolve(), &r.poly, rule, r.opts.antialias, r.activeClip())
	return r.finish("fill", err)
}

// Stroke composites src through the outline of p drawn with pen style.
func (r *Renderer) Stroke(op Operator, src Pattern, p *Path, style StrokeStyle) error {
	if err := r.begin("stroke"); err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	e := stroke.NewExpander(style)
	e.SetTolerance(r.opts.tolerance)
	return r.Fill(op, src, e.Expand(p.Elements()), FillRuleNonZero)
}

func aligned(boxes []fixed.Box) bool {
	for _, b := range boxes {
		if !b.IsPixelAligned() {
			return false
		}
	}
	return true
}

// ShowGlyphs composites src through the masks of a positioned glyph
// run rendered from f at size pixels per em.
func (r *Renderer) ShowGlyphs(op Operator, src Pattern, f *text.Font, size float64, glyphs []text.Glyph) error {
	if err := r.begin("show glyphs"); err != nil {
		return err
	}
	run := r.run[:0]
	for _, g := range glyphs {
		x, sub := text.Subpixel(g.X)
		m, err := r.glyphs.Lookup(f, g.ID, size, sub)
		if err != nil {
			return r.finish("show glyphs", err)
		}
		if m.IsEmpty() {
			continue
		}
		run = append(run, compositor.Glyph{
			Mask: m.Buf,
			X:    x + m.X,
			Y:    int(math.Floor(g.Y+0.5)) + m.Y,
		})
	}
	r.run = run
	return r.finish("show glyphs", r.comp.Glyphs(r.target.buf, op, src.resolve(), run, r.activeClip()))
}

// ShowText lays out s from the baseline origin (x, y) and shows it.
func (r *Renderer) ShowText(op Operator, src Pattern, f *text.Font, size float64, s string, x, y float64) error {
	return r.ShowGlyphs(op, src, f, size, text.Layout(f, size, s, x, y))
}
