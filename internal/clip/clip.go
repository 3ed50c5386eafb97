// Package clip describes the region a drawing operation may touch: a
// union of disjoint fixed-point boxes, optionally intersected with
// antialiased path polygons.
//
// A nil *Clip means no clipping. Clips are immutable; every Intersect
// method returns a new value.
package clip

import (
	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/image"
	"github.com/gogpu/glitter/internal/raster"
)

// Path is a clip path in device space.
type Path struct {
	Polygon   *raster.Polygon
	FillRule  raster.FillRule
	Antialias raster.Antialias
}

// Clip is a clip region.
type Clip struct {
	boxes   []fixed.Box
	paths   []Path
	extents image.Rect
	all     bool
}

var allClipped = &Clip{all: true}

// FromRect returns a clip of the integer rectangle r.
func FromRect(r image.Rect) *Clip {
	return FromBoxes([]fixed.Box{boxOf(r)})
}

// FromBoxes returns a clip of the union of disjoint boxes. Empty boxes
// are ignored.
func FromBoxes(boxes []fixed.Box) *Clip {
	c := &Clip{}
	for _, b := range boxes {
		if !b.IsEmpty() {
			c.boxes = append(c.boxes, b)
		}
	}
	return c.settle()
}

func boxOf(r image.Rect) fixed.Box {
	return fixed.BoxFromInts(r.X, r.Y, r.Right(), r.Bottom())
}

func rectOf(b fixed.Box) image.Rect {
	x, y, w, h := b.RoundOut()
	return image.Rect{X: x, Y: y, W: w, H: h}
}

// settle recomputes the extents and collapses an empty clip.
func (c *Clip) settle() *Clip {
	if len(c.boxes) == 0 {
		return allClipped
	}
	var ext image.Rect
	for _, b := range c.boxes {
		ext = ext.Union(rectOf(b))
	}
	for _, p := range c.paths {
		ext = ext.Intersect(rectOf(p.Polygon.Bounds))
	}
	if ext.IsEmpty() {
		return allClipped
	}
	c.extents = ext
	return c
}

// IsAllClipped reports whether nothing can be drawn through c.
func (c *Clip) IsAllClipped() bool {
	return c != nil && c.all
}

// Extents returns the integer bounds of the clip. ok is false for a nil
// clip, which is unbounded.
func (c *Clip) Extents() (r image.Rect, ok bool) {
	if c == nil {
		return image.Rect{}, false
	}
	return c.extents, true
}

// Boxes returns the clip boxes. The slice must not be modified.
func (c *Clip) Boxes() []fixed.Box {
	if c == nil {
		return nil
	}
	return c.boxes
}

// Paths returns the clip paths. The slice must not be modified.
func (c *Clip) Paths() []Path {
	if c == nil {
		return nil
	}
	return c.paths
}

// HasPaths reports whether the clip has any path component.
func (c *Clip) HasPaths() bool {
	return c != nil && len(c.paths) > 0
}

// IsRegion reports whether the clip is exactly a set of whole pixels.
func (c *Clip) IsRegion() bool {
	if c == nil {
		return true
	}
	if c.all || len(c.paths) > 0 {
		return false
	}
	for _, b := range c.boxes {
		if !b.IsPixelAligned() {
			return false
		}
	}
	return true
}

// Region returns the pixel rectangles of a region clip.
func (c *Clip) Region() []image.Rect {
	if c == nil || c.all {
		return nil
	}
	rects := make([]image.Rect, 0, len(c.boxes))
	for _, b := range c.boxes {
		rects = append(rects, rectOf(b))
	}
	return rects
}

// ContainsRect reports whether every pixel of r is fully inside the
// clip.
func (c *Clip) ContainsRect(r image.Rect) bool {
	if c == nil {
		return true
	}
	return len(c.paths) == 0 && c.boxesContain(r)
}

// boxesContain reports whether a single box covers r.
func (c *Clip) boxesContain(r image.Rect) bool {
	if c.all {
		return false
	}
	if r.IsEmpty() {
		return true
	}
	want := boxOf(r)
	for _, b := range c.boxes {
		if b.P1.X <= want.P1.X && b.P1.Y <= want.P1.Y &&
			b.P2.X >= want.P2.X && b.P2.Y >= want.P2.Y {
			return true
		}
	}
	return false
}

// Copy returns a copy of c that shares no slices with it.
func (c *Clip) Copy() *Clip {
	if c == nil || c.all {
		return c
	}
	return &Clip{
		boxes:   append([]fixed.Box(nil), c.boxes...),
		paths:   append([]Path(nil), c.paths...),
		extents: c.extents,
	}
}

// IntersectRect returns c ∩ r.
func (c *Clip) IntersectRect(r image.Rect) *Clip {
	if r.IsEmpty() {
		return allClipped
	}
	return c.IntersectBoxes([]fixed.Box{boxOf(r)})
}

// IntersectBox returns c ∩ b.
func (c *Clip) IntersectBox(b fixed.Box) *Clip {
	return c.IntersectBoxes([]fixed.Box{b})
}

// IntersectBoxes returns the intersection of c with a union of disjoint
// boxes.
func (c *Clip) IntersectBoxes(boxes []fixed.Box) *Clip {
	if c.IsAllClipped() {
		return c
	}
	if c == nil {
		return FromBoxes(boxes)
	}
	out := &Clip{paths: c.paths}
	for _, a := range c.boxes {
		for _, b := range boxes {
			if i := a.Intersect(b); !i.IsEmpty() {
				out.boxes = append(out.boxes, i)
			}
		}
	}
	return out.settle()
}

// IntersectPath returns c ∩ p. A path without edges clips everything.
func (c *Clip) IntersectPath(p Path) *Clip {
	if c.IsAllClipped() || p.Polygon == nil || p.Polygon.IsEmpty() {
		return allClipped
	}
	if c == nil {
		c = FromRect(rectOf(p.Polygon.Bounds))
	}
	out := &Clip{boxes: c.boxes}
	out.paths = append(append(make([]Path, 0, len(c.paths)+1), c.paths...), p)
	return out.settle()
}

// Translate returns c moved by whole pixels.
func (c *Clip) Translate(dx, dy int) *Clip {
	if c == nil || c.all || (dx == 0 && dy == 0) {
		return c
	}
	fx, fy := fixed.FromInt(dx), fixed.FromInt(dy)
	out := &Clip{
		boxes:   make([]fixed.Box, len(c.boxes)),
		paths:   make([]Path, len(c.paths)),
		extents: c.extents.Translate(dx, dy),
	}
	for i, b := range c.boxes {
		out.boxes[i] = shiftBox(b, fx, fy)
	}
	for i, p := range c.paths {
		poly := &raster.Polygon{
			Edges:  make([]raster.Edge, len(p.Polygon.Edges)),
			Bounds: shiftBox(p.Polygon.Bounds, fx, fy),
		}
		for j, e := range p.Polygon.Edges {
			e.Line.P1.X += fx
			e.Line.P1.Y += fy
			e.Line.P2.X += fx
			e.Line.P2.Y += fy
			e.Top += fy
			e.Bottom += fy
			poly.Edges[j] = e
		}
		out.paths[i] = Path{Polygon: poly, FillRule: p.FillRule, Antialias: p.Antialias}
	}
	return out
}

func shiftBox(b fixed.Box, dx, dy fixed.Fixed) fixed.Box {
	b.P1.X += dx
	b.P1.Y += dy
	b.P2.X += dx
	b.P2.Y += dy
	return b
}

// ReduceToRect returns the clip restricted to r. A clip that fully
// contains r collapses to the plain rectangle.
func (c *Clip) ReduceToRect(r image.Rect) *Clip {
	if c.IsAllClipped() {
		return c
	}
	if c.ContainsRect(r) {
		return FromRect(r)
	}
	return c.IntersectRect(r)
}
