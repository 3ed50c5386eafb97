// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package compositor decides how a drawing operation reaches the
// destination: which intermediate surfaces are needed, how the clip is
// applied and how operators that reach outside the drawn shape are
// fixed up.
//
// A Compositor is not safe for concurrent use; it reuses its scan
// converters between operations.
package compositor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/glitter/internal/blend"
	"github.com/gogpu/glitter/internal/clip"
	"github.com/gogpu/glitter/internal/color"
	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/image"
	"github.com/gogpu/glitter/internal/raster"
	"github.com/gogpu/glitter/internal/status"
)

// Strategy names one step the compositor took.
type Strategy uint8

const (
	// StrategyBoxes composites pixel-aligned boxes directly.
	StrategyBoxes Strategy = iota
	// StrategyDirect draws straight into the destination.
	StrategyDirect
	// StrategyWithMask renders shape and clip into one mask and
	// composites through it once.
	StrategyWithMask
	// StrategyCombine draws into a copy of the destination and blends
	// the copy back through the clip.
	StrategyCombine
	// StrategySource implements SOURCE as a punch-out followed by an ADD.
	StrategySource
	// StrategyFixup clears the unbounded area the shape missed.
	StrategyFixup
	// StrategyFixupMask clears it through the clip surface.
	StrategyFixupMask
)

var strategyNames = [...]string{
	StrategyBoxes:     "boxes",
	StrategyDirect:    "direct",
	StrategyWithMask:  "with-mask",
	StrategyCombine:   "combine",
	StrategySource:    "source",
	StrategyFixup:     "fixup",
	StrategyFixupMask: "fixup-mask",
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithLogger sets the logger. Strategy choices are logged at debug
// level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers fn to be called with every strategy taken.
func WithObserver(fn func(Strategy)) Option {
	return func(c *Compositor) {
		c.observer = fn
	}
}

// WithRasterOptions configures the scan converters.
func WithRasterOptions(opts ...raster.Option) Option {
	return func(c *Compositor) {
		c.rasterOpts = append(c.rasterOpts, opts...)
	}
}

// WithPool sets the pool scratch buffers are taken from.
func WithPool(p *image.Pool) Option {
	return func(c *Compositor) {
		if p != nil {
			c.pool = p
		}
	}
}

// Compositor executes paint, mask, fill and glyph operations.
type Compositor struct {
	backend    Backend
	logger     *slog.Logger
	observer   func(Strategy)
	rasterOpts []raster.Option
	pool       *image.Pool

	tor  *raster.Converter
	mono *raster.MonoConverter
}

// New returns a compositor over backend.
func New(backend Backend, opts ...Option) *Compositor {
	c := &Compositor{
		backend: backend,
		logger:  slog.New(slog.DiscardHandler),
		pool:    image.NewPool(4),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compositor) report(s Strategy, e *Extents) {
	c.logger.Debug("composite",
		"strategy", s, "op", e.Op, "bounded", e.Bounded, "unbounded", e.Unbounded)
	if c.observer != nil {
		c.observer(s)
	}
}

func (c *Compositor) scratch(w, h int, f image.Format) (*image.Buf, error) {
	return c.pool.Get(w, h, f)
}

// Paint composites src over the whole destination.
//
// Every entry point returns nil on success, status.ErrNothingToDo when
// the operation cannot change the destination, or a failure.
func (c *Compositor) Paint(dst *image.Buf, op blend.Operator, src *Pattern, cl *clip.Clip) error {
	e, err := InitForPaint(dst, op, src, cl)
	if err != nil {
		return err
	}
	if err := c.backend.CheckComposite(e); err != nil {
		return err
	}

	boxes := []fixed.Box{boxOf(e.Bounded)}
	if e.Clip != nil {
		boxes = clipBoxes(e.Clip, e.Bounded)
	}
	err = c.clipAndCompositeBoxes(e, boxes)
	if !errors.Is(err, status.ErrUnsupported) {
		return err
	}

	need := needUnboundedClip(e)
	if need&needClipSurface != 0 {
		// The clip surface applies the boxes.
		boxes = []fixed.Box{boxOf(e.Bounded)}
	}
	return c.done(c.clipAndComposite(e, c.drawBoxes(boxes, 255), need))
}

// Mask composites src through mask.
func (c *Compositor) Mask(dst *image.Buf, op blend.Operator, src, mask *Pattern, cl *clip.Clip) error {
	e, err := InitForMask(dst, op, src, mask, cl)
	if err != nil {
		return err
	}
	if err := c.backend.CheckComposite(e); err != nil {
		return err
	}

	if mask.IsSolid() && e.Clip.IsRegion() {
		boxes := []fixed.Box{boxOf(e.Bounded)}
		if e.Clip != nil {
			boxes = clipBoxes(e.Clip, e.Bounded)
		}
		return c.done(c.clipAndComposite(e, c.drawBoxes(boxes, mask.Color.A), needUnboundedClip(e)))
	}
	return c.done(c.clipAndComposite(e, c.drawMask(e), needBoundedClip(e)))
}

// Fill fills poly with src.
func (c *Compositor) Fill(dst *image.Buf, op blend.Operator, src *Pattern,
	poly *raster.Polygon, rule raster.FillRule, aa raster.Antialias, cl *clip.Clip,
) error {
	e, err := InitForPolygon(dst, op, src, poly, cl)
	if err != nil {
		return err
	}
	if err := c.backend.CheckComposite(e); err != nil {
		return err
	}
	if poly == nil {
		poly = &raster.Polygon{}
	}
	return c.done(c.clipAndComposite(e, c.drawPolygon(poly, rule, aa), needBoundedClip(e)))
}

// Boxes fills a union of disjoint boxes with src.
func (c *Compositor) Boxes(dst *image.Buf, op blend.Operator, src *Pattern, boxes []fixed.Box, cl *clip.Clip) error {
	e, err := InitForBoxes(dst, op, src, boxes, cl)
	if err != nil {
		return err
	}
	if err := c.backend.CheckComposite(e); err != nil {
		return err
	}

	clipped := boxes
	if e.Clip != nil {
		clipped = e.Clip.IntersectBoxes(boxes).Boxes()
	}
	err = c.clipAndCompositeBoxes(e, clipped)
	if !errors.Is(err, status.ErrUnsupported) {
		return err
	}
	return c.done(c.clipAndComposite(e, c.drawBoxes(boxes, 255), needBoundedClip(e)))
}

// Glyphs shows a glyph run: the glyph masks are summed into one mask
// over the bounded extents, which src is then composited through.
func (c *Compositor) Glyphs(dst *image.Buf, op blend.Operator, src *Pattern, glyphs []Glyph, cl *clip.Clip) error {
	e, err := InitForGlyphs(dst, op, src, glyphs, cl)
	if err != nil {
		return err
	}
	if err := c.backend.CheckComposite(e); err != nil {
		return err
	}

	b := e.Bounded
	mask, err := c.scratch(b.W, b.H, image.FormatA8)
	if err != nil {
		return err
	}
	defer c.pool.Put(mask)
	for _, g := range glyphs {
		if g.Mask == nil {
			continue
		}
		c.backend.Composite(mask, blend.OpAdd, image.FromBuf(g.Mask), nil,
			b.X-g.X, b.Y-g.Y, 0, 0, 0, 0, b.W, b.H)
	}
	return c.Mask(dst, op, src, SurfacePattern(mask, b.X, b.Y), e.Clip)
}

// done keeps the strategy signal from escaping to callers.
func (c *Compositor) done(err error) error {
	if errors.Is(err, status.ErrUnsupported) {
		return fmt.Errorf("compositor: no strategy applies: %w", status.ErrInvalidArgument)
	}
	return err
}

func boxOf(r image.Rect) fixed.Box {
	return fixed.BoxFromInts(r.X, r.Y, r.Right(), r.Bottom())
}

// clipBoxes returns the clip boxes inside r.
func clipBoxes(cl *clip.Clip, r image.Rect) []fixed.Box {
	area := boxOf(r)
	var out []fixed.Box
	for _, b := range cl.Boxes() {
		if i := b.Intersect(area); !i.IsEmpty() {
			out = append(out, i)
		}
	}
	return out
}

type clipNeed uint8

const (
	needClipRegion clipNeed = 1 << iota
	needClipSurface
)

// needBoundedClip is used when the drawn shape does not account for
// the clip.
func needBoundedClip(e *Extents) clipNeed {
	flags := needClipRegion
	if !e.Clip.IsRegion() {
		flags |= needClipSurface
	}
	return flags
}

// needUnboundedClip is used when the drawn shape already is the clip
// boxes, so only paths and unbounded operators need more.
func needUnboundedClip(e *Extents) clipNeed {
	var flags clipNeed
	if e.IsBounded == 0 {
		flags |= needClipRegion
		if !e.Clip.IsRegion() {
			flags |= needClipSurface
		}
	}
	if e.Clip.HasPaths() {
		flags |= needClipSurface
	}
	return flags
}

// reduceAlphaOp reports whether an opaque solid source over a clear
// alpha-only destination may be drawn as a plain ADD of the coverage.
func reduceAlphaOp(dst *image.Buf, op blend.Operator, src *Pattern) bool {
	return dst.IsClear() && dst.Format() == image.FormatA8 && src.IsOpaque() &&
		(op == blend.OpOver || op == blend.OpSource || op == blend.OpAdd)
}

func (c *Compositor) resolve(dst *image.Buf, p *Pattern, r image.Rect) (*source, error) {
	if p == nil {
		return nil, nil
	}
	pat, dx, dy, err := c.backend.PatternToSurface(dst, p, false, r)
	if err != nil {
		return nil, err
	}
	return &source{pat: pat, dx: dx, dy: dy}, nil
}

// clipAndComposite runs draw through the strategy the operator, the
// destination and the clip call for.
func (c *Compositor) clipAndComposite(e *Extents, draw drawFunc, need clipNeed) error {
	dst := e.Dst
	if err := c.backend.Acquire(dst); err != nil {
		return err
	}
	defer c.backend.Release(dst)

	if need&needClipRegion != 0 && e.Clip.IsRegion() && !e.CanReduceClip(e.Clip) {
		if err := c.backend.SetClipRegion(dst, e.Clip.Region()); err != nil {
			return err
		}
		defer c.backend.SetClipRegion(dst, nil) //nolint:errcheck // removing a region cannot fail
	}

	op, pattern := e.Op, e.SourcePattern
	if reduceAlphaOp(dst, op, pattern) {
		op, pattern = blend.OpAdd, nil
	}

	var err error
	switch {
	case e.Bounded.IsEmpty():
	case op == blend.OpSource:
		err = c.compositeSource(e, draw, pattern)
	default:
		if op == blend.OpClear {
			op, pattern = blend.OpDestOut, nil
		}
		switch {
		case need&needClipSurface == 0:
			err = c.compositeDirect(e, draw, op, pattern)
		case e.IsBounded != 0:
			err = c.compositeWithMask(e, draw, op, pattern)
		default:
			err = c.compositeCombine(e, draw, op, pattern)
		}
	}
	if err != nil || e.IsBounded != 0 {
		return err
	}
	if need&needClipSurface != 0 {
		return c.fixupUnboundedWithMask(e)
	}
	return c.fixupUnbounded(e)
}

func (c *Compositor) compositeDirect(e *Extents, draw drawFunc, op blend.Operator, pattern *Pattern) error {
	c.report(StrategyDirect, e)
	src, err := c.resolve(e.Dst, pattern, e.Bounded)
	if err != nil {
		return err
	}
	return draw(e.Dst, op, src, 0, 0, e.Bounded)
}

// compositeMask renders the shape ANDed with the clip into an A8
// scratch covering the bounded extents.
func (c *Compositor) compositeMask(e *Extents, draw drawFunc) (*image.Buf, error) {
	b := e.Bounded
	mask, err := c.scratch(b.W, b.H, image.FormatA8)
	if err != nil {
		return nil, err
	}
	if err := draw(mask, blend.OpAdd, nil, b.X, b.Y, b); err != nil {
		c.pool.Put(mask)
		return nil, err
	}
	if e.Clip != nil && !e.Clip.ContainsRect(b) {
		cs, err := e.Clip.Surface(c.pool, b, c.rasterOpts...)
		if err != nil {
			c.pool.Put(mask)
			return nil, err
		}
		c.backend.Composite(mask, blend.OpIn, image.FromBuf(cs), nil, 0, 0, 0, 0, 0, 0, b.W, b.H)
		c.pool.Put(cs)
	}
	return mask, nil
}

func (c *Compositor) compositeWithMask(e *Extents, draw drawFunc, op blend.Operator, pattern *Pattern) error {
	c.report(StrategyWithMask, e)
	mask, err := c.compositeMask(e, draw)
	if err != nil {
		return err
	}
	defer c.pool.Put(mask)
	src, err := c.resolve(e.Dst, pattern, e.Bounded)
	if err != nil {
		return err
	}
	b := e.Bounded
	p, sx, sy := src.at(b.X, b.Y)
	c.backend.Composite(e.Dst, op, p, mask, sx, sy, 0, 0, b.X, b.Y, b.W, b.H)
	return nil
}

// compositeCombine draws into a copy of the destination and
// interpolates the copy back in by the clip coverage.
func (c *Compositor) compositeCombine(e *Extents, draw drawFunc, op blend.Operator, pattern *Pattern) error {
	c.report(StrategyCombine, e)
	dst, b := e.Dst, e.Bounded

	tmp, err := c.scratch(b.W, b.H, dst.Format())
	if err != nil {
		return err
	}
	defer c.pool.Put(tmp)
	c.backend.Composite(tmp, blend.OpSource, image.FromBuf(dst), nil, b.X, b.Y, 0, 0, 0, 0, b.W, b.H)

	src, err := c.resolve(dst, pattern, b)
	if err != nil {
		return err
	}
	if err := draw(tmp, op, src, b.X, b.Y, b); err != nil {
		return err
	}

	cs, err := e.Clip.Surface(c.pool, b, c.rasterOpts...)
	if err != nil {
		return err
	}
	defer c.pool.Put(cs)

	if dst.IsClear() {
		c.backend.Composite(dst, blend.OpSource, image.FromBuf(tmp), cs, 0, 0, 0, 0, b.X, b.Y, b.W, b.H)
		return nil
	}
	c.backend.Composite(dst, blend.OpDestOut, nil, cs, 0, 0, 0, 0, b.X, b.Y, b.W, b.H)
	c.backend.Composite(dst, blend.OpAdd, image.FromBuf(tmp), cs, 0, 0, 0, 0, b.X, b.Y, b.W, b.H)
	return nil
}

// compositeSource computes (src IN shape) ADD (dst OUT shape), leaving
// the destination untouched where the shape and clip have no coverage.
func (c *Compositor) compositeSource(e *Extents, draw drawFunc, pattern *Pattern) error {
	c.report(StrategySource, e)
	mask, err := c.compositeMask(e, draw)
	if err != nil {
		return err
	}
	defer c.pool.Put(mask)
	src, err := c.resolve(e.Dst, pattern, e.Bounded)
	if err != nil {
		return err
	}
	dst, b := e.Dst, e.Bounded
	p, sx, sy := src.at(b.X, b.Y)
	if dst.IsClear() {
		c.backend.Composite(dst, blend.OpSource, p, mask, sx, sy, 0, 0, b.X, b.Y, b.W, b.H)
		return nil
	}
	c.backend.Composite(dst, blend.OpDestOut, nil, mask, 0, 0, 0, 0, b.X, b.Y, b.W, b.H)
	c.backend.Composite(dst, blend.OpAdd, p, mask, sx, sy, 0, 0, b.X, b.Y, b.W, b.H)
	return nil
}

// bands returns the parts of u outside b: full-width top and bottom
// bands and the left and right bands beside b. An empty b leaves u
// whole.
func bands(u, b image.Rect) []image.Rect {
	if b.IsEmpty() {
		return []image.Rect{u}
	}
	var out []image.Rect
	if b.Y > u.Y {
		out = append(out, image.R(u.X, u.Y, u.Right(), b.Y))
	}
	if b.X > u.X {
		out = append(out, image.R(u.X, b.Y, b.X, b.Bottom()))
	}
	if b.Right() < u.Right() {
		out = append(out, image.R(b.Right(), b.Y, u.Right(), b.Bottom()))
	}
	if b.Bottom() < u.Bottom() {
		out = append(out, image.R(u.X, b.Bottom(), u.Right(), u.Bottom()))
	}
	return out
}

// fixupUnbounded clears the unbounded area outside the bounded one.
// The clip region, if any, is still installed.
func (c *Compositor) fixupUnbounded(e *Extents) error {
	rects := bands(e.Unbounded, e.Bounded)
	if len(rects) == 0 {
		return nil
	}
	c.report(StrategyFixup, e)
	return c.backend.FillRectangles(e.Dst, blend.OpClear, color.Pixel{}, rects)
}

// fixupUnboundedWithMask clears the same area through the clip surface.
func (c *Compositor) fixupUnboundedWithMask(e *Extents) error {
	rects := bands(e.Unbounded, e.Bounded)
	if len(rects) == 0 {
		return nil
	}
	c.report(StrategyFixupMask, e)
	return c.clearThroughClip(e, e.Unbounded, rects)
}

// clearThroughClip removes the clip coverage from each rectangle, all
// of which lie inside area.
func (c *Compositor) clearThroughClip(e *Extents, area image.Rect, rects []image.Rect) error {
	cs, err := e.Clip.Surface(c.pool, area, c.rasterOpts...)
	if err != nil {
		return err
	}
	defer c.pool.Put(cs)
	src := image.FromBuf(cs)
	for _, r := range rects {
		c.backend.Composite(e.Dst, blend.OpDestOut, src, nil,
			r.X-area.X, r.Y-area.Y, 0, 0, r.X, r.Y, r.W, r.H)
	}
	return nil
}
