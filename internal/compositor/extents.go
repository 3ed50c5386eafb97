// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"fmt"

	"github.com/gogpu/glitter/internal/blend"
	"github.com/gogpu/glitter/internal/clip"
	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/image"
	"github.com/gogpu/glitter/internal/raster"
	"github.com/gogpu/glitter/internal/status"
)

// Bound records which inputs confine an operator's effect.
type Bound uint8

const (
	// BoundByMask: a zero mask pixel leaves the destination unchanged.
	BoundByMask Bound = 1 << iota
	// BoundBySource: a transparent source pixel leaves the destination
	// unchanged.
	BoundBySource
)

// Full reports whether both the mask and the source bound the operator.
func (b Bound) Full() bool {
	return b == BoundByMask|BoundBySource
}

func boundOf(op blend.Operator) Bound {
	var b Bound
	if op.BoundedByMask() {
		b |= BoundByMask
	}
	if op.BoundedBySource() {
		b |= BoundBySource
	}
	return b
}

// Extents are the rectangles of one composite operation, all in device
// space.
//
// Unbounded is the area the operation may modify: the destination
// limited by the clip and, for mask-bounded operators, by the mask.
// Bounded is the part of it the source and mask can actually reach.
// Pixels in Unbounded but outside Bounded are cleared by operators
// that are bounded by neither.
type Extents struct {
	Dst *image.Buf
	Op  blend.Operator

	Destination image.Rect
	Unbounded   image.Rect
	Bounded     image.Rect
	Source      image.Rect
	Mask        image.Rect

	SourceSampleArea image.Rect
	MaskSampleArea   image.Rect

	SourcePattern *Pattern
	MaskPattern   *Pattern

	// Clip is the clip reduced to the operation. Nil means unclipped.
	Clip      *clip.Clip
	IsBounded Bound
}

// Glyph is a rendered glyph mask with its top-left pixel at device
// position (X, Y).
type Glyph struct {
	Mask *image.Buf
	X, Y int
}

func nothingToDo() error {
	return status.ErrNothingToDo
}

// isNoop reports whether op leaves dst unchanged whatever the shape.
func isNoop(dst *image.Buf, op blend.Operator, src *Pattern) bool {
	if src.IsClear() {
		switch op {
		case blend.OpOver, blend.OpAdd, blend.OpDestOver, blend.OpAtop,
			blend.OpXor, blend.OpSaturate:
			return true
		case blend.OpSource:
			op = blend.OpClear
		}
	}
	if op == blend.OpDest {
		return true
	}
	if dst.IsClear() {
		switch op {
		case blend.OpClear, blend.OpIn, blend.OpDestIn, blend.OpDestOut:
			return true
		}
	}
	return op == blend.OpAtop && !dst.Format().HasColor()
}

func initExtents(dst *image.Buf, op blend.Operator, src *Pattern, c *clip.Clip) (*Extents, error) {
	if dst == nil || src == nil {
		return nil, fmt.Errorf("compositor: nil destination or source: %w", status.ErrInvalidArgument)
	}
	if !op.IsValid() {
		return nil, fmt.Errorf("compositor: %v: %w", op, status.ErrInvalidArgument)
	}
	if c.IsAllClipped() || isNoop(dst, op, src) {
		return nil, nothingToDo()
	}

	e := &Extents{
		Dst:           dst,
		Op:            op,
		Destination:   dst.Bounds(),
		SourcePattern: src,
		IsBounded:     boundOf(op),
	}
	e.Unbounded = e.Destination
	if ext, ok := c.Extents(); ok {
		e.Unbounded = e.Unbounded.Intersect(ext)
		if e.Unbounded.IsEmpty() {
			return nil, nothingToDo()
		}
	}
	e.Bounded = e.Unbounded

	e.Source = src.extents()
	if e.IsBounded&BoundBySource != 0 {
		e.Bounded = e.Bounded.Intersect(e.Source)
		if e.Bounded.IsEmpty() {
			return nil, nothingToDo()
		}
	}
	return e, nil
}

// InitForPaint computes the extents of painting src over the whole
// destination.
func InitForPaint(dst *image.Buf, op blend.Operator, src *Pattern, c *clip.Clip) (*Extents, error) {
	e, err := initExtents(dst, op, src, c)
	if err != nil {
		return nil, err
	}
	e.Mask = e.Destination

	e.Clip = e.reduceClip(c)
	if e.Clip.IsAllClipped() {
		return nil, nothingToDo()
	}
	if ext, ok := e.Clip.Extents(); ok {
		e.Unbounded = e.Unbounded.Intersect(ext)
		if e.Unbounded.IsEmpty() {
			return nil, nothingToDo()
		}
	}
	e.sampleAreas()
	return e, nil
}

// InitForMask computes the extents of compositing src through mask.
func InitForMask(dst *image.Buf, op blend.Operator, src, mask *Pattern, c *clip.Clip) (*Extents, error) {
	if mask == nil {
		return nil, fmt.Errorf("compositor: nil mask: %w", status.ErrInvalidArgument)
	}
	if mask.IsClear() && op.BoundedByMask() {
		return nil, nothingToDo()
	}
	e, err := initExtents(dst, op, src, c)
	if err != nil {
		return nil, err
	}
	e.MaskPattern = mask
	e.Mask = mask.extents()
	return e, e.intersect(c)
}

// InitForPolygon computes the extents of filling poly.
func InitForPolygon(dst *image.Buf, op blend.Operator, src *Pattern, poly *raster.Polygon, c *clip.Clip) (*Extents, error) {
	e, err := initExtents(dst, op, src, c)
	if err != nil {
		return nil, err
	}
	if poly != nil && !poly.IsEmpty() {
		e.Mask = roundOut(poly.Bounds)
	}
	return e, e.intersect(c)
}

// InitForBoxes computes the extents of filling a union of boxes.
func InitForBoxes(dst *image.Buf, op blend.Operator, src *Pattern, boxes []fixed.Box, c *clip.Clip) (*Extents, error) {
	e, err := initExtents(dst, op, src, c)
	if err != nil {
		return nil, err
	}
	for _, b := range boxes {
		if !b.IsEmpty() {
			e.Mask = e.Mask.Union(roundOut(b))
		}
	}
	return e, e.intersect(c)
}

// InitForGlyphs computes the extents of showing a glyph run.
func InitForGlyphs(dst *image.Buf, op blend.Operator, src *Pattern, glyphs []Glyph, c *clip.Clip) (*Extents, error) {
	e, err := initExtents(dst, op, src, c)
	if err != nil {
		return nil, err
	}
	for _, g := range glyphs {
		if g.Mask != nil {
			e.Mask = e.Mask.Union(image.Rect{X: g.X, Y: g.Y, W: g.Mask.Width(), H: g.Mask.Height()})
		}
	}
	return e, e.intersect(c)
}

func roundOut(b fixed.Box) image.Rect {
	x, y, w, h := b.RoundOut()
	return image.Rect{X: x, Y: y, W: w, H: h}
}

// reduceClip restricts c to the area the operation touches.
func (e *Extents) reduceClip(c *clip.Clip) *clip.Clip {
	if c == nil {
		return nil
	}
	if e.IsBounded != 0 {
		return c.ReduceToRect(e.Bounded)
	}
	return c.ReduceToRect(e.Unbounded)
}

// intersect narrows the extents by the mask rectangle and the clip.
func (e *Extents) intersect(c *clip.Clip) error {
	e.Bounded = e.Bounded.Intersect(e.Mask)
	if e.Bounded.IsEmpty() && e.IsBounded&BoundByMask != 0 {
		return nothingToDo()
	}
	if err := e.narrowUnbounded(); err != nil {
		return err
	}
	return e.applyClip(c)
}

func (e *Extents) narrowUnbounded() error {
	if e.IsBounded.Full() {
		e.Unbounded = e.Bounded
	} else if e.IsBounded&BoundByMask != 0 {
		e.Unbounded = e.Unbounded.Intersect(e.Mask)
		if e.Unbounded.IsEmpty() {
			return nothingToDo()
		}
	}
	return nil
}

func (e *Extents) applyClip(c *clip.Clip) error {
	e.Clip = e.reduceClip(c)
	if e.Clip.IsAllClipped() {
		return nothingToDo()
	}
	if ext, ok := e.Clip.Extents(); ok {
		e.Unbounded = e.Unbounded.Intersect(ext)
		if e.Unbounded.IsEmpty() {
			return nothingToDo()
		}
		e.Bounded = e.Bounded.Intersect(ext)
		if e.Bounded.IsEmpty() && e.IsBounded&BoundByMask != 0 {
			return nothingToDo()
		}
	}
	e.sampleAreas()
	if e.MaskPattern != nil && !e.MaskPattern.IsSolid() && e.MaskSampleArea.IsEmpty() {
		return nothingToDo()
	}
	return nil
}

// sampleAreas records the pattern pixels read for the bounded area.
// Patterns are only ever translated, so that is the bounded rectangle
// itself.
func (e *Extents) sampleAreas() {
	if !e.SourcePattern.IsSolid() {
		e.SourceSampleArea = e.Bounded
	}
	if e.MaskPattern != nil && !e.MaskPattern.IsSolid() {
		e.MaskSampleArea = e.Bounded
	}
}

// IntersectMaskExtents narrows the mask rectangle to the rounded-out
// box, recomputing the other rectangles and the reduced clip.
func (e *Extents) IntersectMaskExtents(b fixed.Box) error {
	m := roundOut(b)
	if m == e.Mask {
		return nil
	}
	e.Mask = e.Mask.Intersect(m)

	prev := e.Bounded
	e.Bounded = e.Bounded.Intersect(e.Mask)
	if e.Bounded.IsEmpty() && e.IsBounded&BoundByMask != 0 {
		return nothingToDo()
	}
	if prev.W == e.Bounded.W && prev.H == e.Bounded.H {
		return nil
	}
	if err := e.narrowUnbounded(); err != nil {
		return err
	}
	c := e.Clip
	e.Clip = e.reduceClip(c)
	if e.Clip.IsAllClipped() {
		return nothingToDo()
	}
	if ext, ok := e.Clip.Extents(); ok {
		e.Unbounded = e.Unbounded.Intersect(ext)
		if e.Unbounded.IsEmpty() {
			return nothingToDo()
		}
	}
	e.sampleAreas()
	return nil
}

// CanReduceClip reports whether c covers everything the operation can
// touch, so that compositing may ignore it.
func (e *Extents) CanReduceClip(c *clip.Clip) bool {
	if c == nil {
		return true
	}
	r := e.Destination
	if e.IsBounded&BoundBySource != 0 {
		r = r.Intersect(e.Source)
	}
	if e.IsBounded&BoundByMask != 0 {
		r = r.Intersect(e.Mask)
	}
	return c.ContainsRect(r)
}
