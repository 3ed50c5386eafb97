// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"errors"

	"github.com/gogpu/glitter/internal/blend"
	"github.com/gogpu/glitter/internal/color"
	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/image"
	"github.com/gogpu/glitter/internal/status"
)

// clipAndCompositeBoxes handles shapes that reduce to pixel-aligned
// boxes already intersected with the clip boxes. It fails with
// status.ErrUnsupported when the boxes need coverage.
func (c *Compositor) clipAndCompositeBoxes(e *Extents, boxes []fixed.Box) error {
	if len(boxes) == 0 {
		if e.IsBounded != 0 {
			return nil
		}
		return c.fixupUnboundedBoxes(e, nil)
	}
	for _, b := range boxes {
		if !b.IsPixelAligned() {
			return status.ErrUnsupported
		}
	}
	if err := e.IntersectMaskExtents(boxesExtents(boxes)); err != nil {
		return err
	}

	src := e.SourcePattern
	if !src.IsSolid() && !e.Clip.HasPaths() &&
		(e.Op == blend.OpSource ||
			(e.Dst.IsClear() && (e.Op == blend.OpOver || e.Op == blend.OpAdd))) {
		err := c.uploadBoxes(e, boxes)
		if !errors.Is(err, status.ErrUnsupported) {
			return err
		}
	}
	return c.compositeBoxes(e, boxes)
}

func boxesExtents(boxes []fixed.Box) fixed.Box {
	ext := boxes[0]
	for _, b := range boxes[1:] {
		ext.P1.X = min(ext.P1.X, b.P1.X)
		ext.P1.Y = min(ext.P1.Y, b.P1.Y)
		ext.P2.X = max(ext.P2.X, b.P2.X)
		ext.P2.Y = max(ext.P2.Y, b.P2.Y)
	}
	return ext
}

// uploadBoxes copies source pixels when the result is the source
// itself. The source must cover every box.
func (c *Compositor) uploadBoxes(e *Extents, boxes []fixed.Box) error {
	src := e.SourcePattern
	if !e.Source.Contains(e.Bounded) {
		return status.ErrUnsupported
	}
	if err := c.backend.Acquire(e.Dst); err != nil {
		return err
	}
	defer c.backend.Release(e.Dst)
	c.report(StrategyBoxes, e)
	return c.backend.DrawImageBoxes(e.Dst, src.Surface, boxes, src.X, src.Y)
}

func (c *Compositor) compositeBoxes(e *Extents, boxes []fixed.Box) error {
	dst, op := e.Dst, e.Op
	needClipMask := e.Clip.HasPaths()
	if needClipMask && (e.IsBounded == 0 || op == blend.OpSource) {
		return status.ErrUnsupported
	}
	if err := c.backend.Acquire(dst); err != nil {
		return err
	}
	defer c.backend.Release(dst)
	c.report(StrategyBoxes, e)

	pattern := e.SourcePattern
	if !needClipMask && pattern.IsSolid() {
		if err := c.backend.FillBoxes(dst, op, pattern.Color, boxes); err != nil {
			return err
		}
	} else {
		var (
			mask         *image.Buf
			maskX, maskY int
		)
		if needClipMask {
			cs, err := e.Clip.Surface(c.pool, e.Bounded, c.rasterOpts...)
			if err != nil {
				return err
			}
			defer c.pool.Put(cs)
			mask, maskX, maskY = cs, -e.Bounded.X, -e.Bounded.Y
			if op == blend.OpClear {
				op, pattern = blend.OpDestOut, nil
			}
		}
		src, err := c.resolve(dst, pattern, e.Bounded)
		if err != nil {
			return err
		}
		var (
			p      *image.Pattern
			sx, sy int
		)
		if src != nil {
			p, sx, sy = src.pat, src.dx, src.dy
		}
		if err := c.backend.CompositeBoxes(dst, op, p, mask, sx, sy, maskX, maskY, 0, 0, boxes); err != nil {
			return err
		}
	}

	if e.IsBounded == 0 {
		return c.fixupUnboundedBoxes(e, boxes)
	}
	return nil
}

// fixupUnboundedBoxes clears the part of the clipped unbounded area
// that no box covers.
func (c *Compositor) fixupUnboundedBoxes(e *Extents, boxes []fixed.Box) error {
	area := []image.Rect{e.Unbounded}
	if e.Clip != nil {
		area = area[:0]
		for _, r := range e.Clip.Region() {
			if r = r.Intersect(e.Unbounded); !r.IsEmpty() {
				area = append(area, r)
			}
		}
	}
	for _, b := range boxes {
		area = subtract(area, roundOut(b))
	}
	if len(area) == 0 {
		return nil
	}

	if !e.Clip.IsRegion() {
		c.report(StrategyFixupMask, e)
		return c.clearThroughClip(e, e.Unbounded, area)
	}
	c.report(StrategyFixup, e)
	return c.backend.FillRectangles(e.Dst, blend.OpClear, color.Pixel{}, area)
}

// subtract removes r from every rectangle of rs.
func subtract(rs []image.Rect, r image.Rect) []image.Rect {
	out := make([]image.Rect, 0, len(rs))
	for _, a := range rs {
		i := a.Intersect(r)
		if i.IsEmpty() {
			out = append(out, a)
			continue
		}
		out = append(out, bands(a, i)...)
	}
	return out
}
