// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"fmt"

	"github.com/gogpu/glitter/internal/blend"
	"github.com/gogpu/glitter/internal/color"
	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/image"
	"github.com/gogpu/glitter/internal/status"
)

// Backend is the set of pixel primitives the compositor is written
// against. Coordinates passed to Composite and CompositeCoverage are
// buffer coordinates; pattern coordinates are offset from them by the
// caller.
type Backend interface {
	// Acquire prepares dst for a sequence of primitives.
	Acquire(dst *image.Buf) error
	// Release ends the sequence started by Acquire.
	Release(dst *image.Buf)

	// SetClipRegion restricts later writes to dst to the union of
	// rects. A nil slice removes the restriction.
	SetClipRegion(dst *image.Buf, rects []image.Rect) error

	// PatternToSurface resolves p for sampling over the device area
	// extents. The returned offset maps device to pattern coordinates.
	// Masks always resolve to an image pattern.
	PatternToSurface(dst *image.Buf, p *Pattern, isMask bool, extents image.Rect) (src *image.Pattern, dx, dy int, err error)

	FillRectangles(dst *image.Buf, op blend.Operator, c color.Pixel, rects []image.Rect) error
	// FillBoxes fails with status.ErrUnsupported for boxes that are not
	// pixel aligned.
	FillBoxes(dst *image.Buf, op blend.Operator, c color.Pixel, boxes []fixed.Box) error

	// Composite has the semantics of image.Composite. A nil src is
	// opaque white and a nil mask is full coverage.
	Composite(dst *image.Buf, op blend.Operator, src *image.Pattern, mask *image.Buf,
		srcX, srcY, maskX, maskY, dstX, dstY, w, h int)
	CompositeCoverage(dst *image.Buf, op blend.Operator, src *image.Pattern, srcX, srcY int,
		r image.Rect, coverage uint8)
	// CompositeBoxes composites every pixel-aligned box. A box at device
	// position (x, y) reads the source at (x+srcX, y+srcY), the mask at
	// (x+maskX, y+maskY) and writes dst at (x+dstX, y+dstY).
	CompositeBoxes(dst *image.Buf, op blend.Operator, src *image.Pattern, mask *image.Buf,
		srcX, srcY, maskX, maskY, dstX, dstY int, boxes []fixed.Box) error
	// DrawImageBoxes copies img, whose top-left pixel is at device
	// position (dx, dy), into dst inside every box.
	DrawImageBoxes(dst, img *image.Buf, boxes []fixed.Box, dx, dy int) error

	// CheckComposite fails with status.ErrUnsupported or an argument
	// error when the backend cannot perform the operation at all.
	CheckComposite(e *Extents) error
}

// ImageBackend implements Backend over in-memory image buffers.
type ImageBackend struct{}

// NewImageBackend returns the image backend.
func NewImageBackend() *ImageBackend {
	return &ImageBackend{}
}

var _ Backend = (*ImageBackend)(nil)

// Acquire implements Backend.
func (*ImageBackend) Acquire(dst *image.Buf) error {
	if dst == nil {
		return fmt.Errorf("compositor: nil destination: %w", status.ErrInvalidArgument)
	}
	return nil
}

// Release implements Backend.
func (*ImageBackend) Release(*image.Buf) {}

// SetClipRegion implements Backend.
func (*ImageBackend) SetClipRegion(dst *image.Buf, rects []image.Rect) error {
	dst.SetClipRegion(rects)
	return nil
}

// PatternToSurface implements Backend. A solid mask becomes an A8
// buffer covering extents.
func (*ImageBackend) PatternToSurface(_ *image.Buf, p *Pattern, isMask bool, extents image.Rect) (*image.Pattern, int, int, error) {
	if !p.IsSolid() {
		return image.FromBuf(p.Surface), -p.X, -p.Y, nil
	}
	if !isMask {
		return image.Solid(p.Color), 0, 0, nil
	}
	buf, err := image.NewBuf(extents.W, extents.H, image.FormatA8)
	if err != nil {
		return nil, 0, 0, err
	}
	if p.Color.A != 0 {
		image.FillRects(buf, blend.OpSource, p.Color, []image.Rect{buf.Bounds()})
	}
	return image.FromBuf(buf), -extents.X, -extents.Y, nil
}

// FillRectangles implements Backend.
func (*ImageBackend) FillRectangles(dst *image.Buf, op blend.Operator, c color.Pixel, rects []image.Rect) error {
	image.FillRects(dst, op, c, rects)
	return nil
}

// FillBoxes implements Backend.
func (*ImageBackend) FillBoxes(dst *image.Buf, op blend.Operator, c color.Pixel, boxes []fixed.Box) error {
	rects, err := alignedRects(boxes)
	if err != nil {
		return err
	}
	image.FillRects(dst, op, c, rects)
	return nil
}

// Composite implements Backend.
func (*ImageBackend) Composite(dst *image.Buf, op blend.Operator, src *image.Pattern, mask *image.Buf,
	srcX, srcY, maskX, maskY, dstX, dstY, w, h int,
) {
	image.Composite(dst, op, src, mask, srcX, srcY, maskX, maskY, dstX, dstY, w, h)
}

// CompositeCoverage implements Backend.
func (*ImageBackend) CompositeCoverage(dst *image.Buf, op blend.Operator, src *image.Pattern,
	srcX, srcY int, r image.Rect, coverage uint8,
) {
	image.CompositeCoverage(dst, op, src, srcX, srcY, r, coverage)
}

// CompositeBoxes implements Backend.
func (*ImageBackend) CompositeBoxes(dst *image.Buf, op blend.Operator, src *image.Pattern, mask *image.Buf,
	srcX, srcY, maskX, maskY, dstX, dstY int, boxes []fixed.Box,
) error {
	rects, err := alignedRects(boxes)
	if err != nil {
		return err
	}
	for _, r := range rects {
		image.Composite(dst, op, src, mask,
			r.X+srcX, r.Y+srcY, r.X+maskX, r.Y+maskY, r.X+dstX, r.Y+dstY, r.W, r.H)
	}
	return nil
}

// DrawImageBoxes implements Backend.
func (*ImageBackend) DrawImageBoxes(dst, img *image.Buf, boxes []fixed.Box, dx, dy int) error {
	rects, err := alignedRects(boxes)
	if err != nil {
		return err
	}
	src := image.FromBuf(img)
	for _, r := range rects {
		image.Composite(dst, blend.OpSource, src, nil, r.X-dx, r.Y-dy, 0, 0, r.X, r.Y, r.W, r.H)
	}
	return nil
}

// CheckComposite implements Backend.
func (*ImageBackend) CheckComposite(e *Extents) error {
	if !e.Dst.Format().IsValid() {
		return fmt.Errorf("compositor: destination %v: %w", e.Dst.Format(), status.ErrInvalidFormat)
	}
	for _, p := range []*Pattern{e.SourcePattern, e.MaskPattern} {
		if p != nil && !p.IsSolid() && !p.Surface.Format().IsValid() {
			return fmt.Errorf("compositor: pattern %v: %w", p.Surface.Format(), status.ErrInvalidFormat)
		}
	}
	return nil
}

func alignedRects(boxes []fixed.Box) ([]image.Rect, error) {
	rects := make([]image.Rect, 0, len(boxes))
	for _, b := range boxes {
		if !b.IsPixelAligned() {
			return nil, status.ErrUnsupported
		}
		rects = append(rects, roundOut(b))
	}
	return rects, nil
}
