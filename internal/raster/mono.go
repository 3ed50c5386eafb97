// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"fmt"
	"math"

	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/pool"
	"github.com/gogpu/glitter/internal/status"
)

// monoEdge is an edge sampled once per pixel row. x is biased by -dy so
// that a step only has to test the sign of the remainder.
type monoEdge struct {
	next, prev pool.Ref
	x          fixed.QuoRem
	dxdy       fixed.QuoRem
	dy         int64
	heightLeft int32
	dir        int32
	vertical   bool
}

// MonoConverter is the aliased scan converter. Every pixel whose centre
// is inside the polygon gets full coverage; every other pixel none.
//
// Rows are sampled 1/256 pixel above the centre line. A centre exactly
// on an edge belongs to the run that edge opens, so left and top edges
// are inclusive and right and bottom edges exclusive. Runs that close
// and reopen in the same column come out as one span.
type MonoConverter struct {
	opts  options
	edges *pool.Pool[monoEdge]

	buckets    []pool.Ref
	head, tail pool.Ref
	isVertical bool
	numEdges   int

	xmin, xmax int32
	ymin, ymax int32
	rule       FillRule

	spans []Span
	stats Stats
	err   error
}

// NewMonoConverter returns an empty converter. Call Reset before adding
// edges. WithGridY and WithFullRowStepping have no effect.
func NewMonoConverter(opts ...Option) *MonoConverter {
	o := newOptions(opts)
	var popts []pool.Option
	if o.edgeLimit > 0 {
		popts = append(popts, pool.WithLimit(o.edgeLimit+2))
	}
	return &MonoConverter{
		opts:  o,
		edges: pool.New[monoEdge](edgesPerChunk, popts...),
		err:   fmt.Errorf("raster: converter used before Reset: %w", status.ErrInvalidArgument),
	}
}

func (c *MonoConverter) at(r pool.Ref) *monoEdge {
	return c.edges.Get(r)
}

// pixelOf returns the pixel column whose centre a coordinate falls on or
// right of.
func pixelOf(x int32) int32 {
	return int32(fixed.Fixed(x).RoundDown()) //nolint:gosec // 24.8 integer part fits
}

// Reset clears the converter for a run clipped to the pixel rectangle
// [xmin, xmax) x [ymin, ymax). aa is ignored.
func (c *MonoConverter) Reset(xmin, ymin, xmax, ymax int, rule FillRule, _ Antialias) error {
	c.err = nil
	c.stats = Stats{}
	c.rule = rule
	c.numEdges = 0
	c.xmin, c.xmax, c.ymin, c.ymax = 0, 0, 0, 0

	h := int64(ymax) - int64(ymin)
	if h < 0 || h > math.MaxInt32 {
		c.err = fmt.Errorf("raster: reset %dx%d: %w", xmax-xmin, ymax-ymin, status.ErrInvalidSize)
		return c.err
	}
	if cap(c.buckets) < int(h) {
		c.buckets = make([]pool.Ref, h)
	}
	c.buckets = c.buckets[:h]
	for i := range c.buckets {
		c.buckets[i] = pool.Nil
	}
	if xmax > xmin {
		if n := 2 * (xmax - xmin + 1); cap(c.spans) < n {
			c.spans = make([]Span, 0, n)
		}
	}

	c.edges.Reset()
	head, err := c.edges.Alloc()
	if err != nil {
		c.err = err
		return err
	}
	tail, err := c.edges.Alloc()
	if err != nil {
		c.err = err
		return err
	}
	hd, tl := c.at(head), c.at(tail)
	hd.vertical = true
	hd.heightLeft = math.MaxInt32
	hd.x.Quo = math.MinInt32 >> InputBits << InputBits
	hd.prev = pool.Nil
	hd.next = tail
	tl.vertical = true
	tl.heightLeft = math.MaxInt32
	tl.x.Quo = math.MaxInt32 >> InputBits << InputBits
	tl.prev = head
	tl.next = pool.Nil
	c.head, c.tail = head, tail
	c.isVertical = true

	c.xmin, c.xmax = clampInt32(xmin), clampInt32(xmax)
	c.ymin, c.ymax = clampInt32(ymin), clampInt32(ymax)
	return nil
}

// AddEdge adds one edge. Edges may be added in any order.
func (c *MonoConverter) AddEdge(in Edge) error {
	if c.err != nil {
		return c.err
	}
	if in.Dir == 0 {
		return nil
	}
	ytop := max(int32(in.Top.RoundDown()), c.ymin)    //nolint:gosec // 24.8 integer part fits
	ybot := min(int32(in.Bottom.RoundDown()), c.ymax) //nolint:gosec // 24.8 integer part fits
	if ybot <= ytop {
		return nil
	}

	r, err := c.edges.Alloc()
	if err != nil {
		c.err = fmt.Errorf("raster: add edge: %w", err)
		return c.err
	}
	e := c.at(r)
	e.heightLeft = ybot - ytop

	p1, p2 := in.Line.P1, in.Line.P2
	e.dir = in.Dir
	if p2.Y <= p1.Y {
		p1, p2 = p2, p1
		e.dir = -e.dir
	}
	dx := int32(p2.X - p1.X)
	dy := int32(p2.Y - p1.Y)

	if dx == 0 {
		e.vertical = true
		e.x = fixed.QuoRem{Quo: int32(p1.X)}
	} else {
		e.dxdy = fixed.FlooredMulDivRem(dx, int32(fixed.One), dy)
		e.dy = int64(dy)
		// Sample at the pixel centre of row ytop.
		e.x = fixed.FlooredMulDivRem(ytop*int32(fixed.One)+int32(fixed.FracMask)/2-int32(p1.Y), dx, dy)
		e.x.Quo += int32(p1.X)
	}
	e.x.Rem -= e.dy

	ix := ytop - c.ymin
	if b := c.buckets[ix]; b != pool.Nil {
		c.at(b).prev = r
	}
	e.next = c.buckets[ix]
	e.prev = pool.Nil
	c.buckets[ix] = r
	c.numEdges++
	return nil
}

// AddEdges adds every edge in edges.
func (c *MonoConverter) AddEdges(edges []Edge) error {
	for i := range edges {
		if err := c.AddEdge(edges[i]); err != nil {
			return err
		}
	}
	return nil
}

// AddPolygon adds the edges of p.
func (c *MonoConverter) AddPolygon(p *Polygon) error {
	return c.AddEdges(p.Edges)
}

// Stats returns counters for the last run.
func (c *MonoConverter) Stats() Stats {
	s := c.stats
	s.Edges = c.numEdges
	return s
}

func (c *MonoConverter) mergeSorted(x, y pool.Ref) pool.Ref {
	prev := c.at(x).prev
	head := x
	if c.at(x).x.Quo > c.at(y).x.Quo {
		head = y
		c.at(y).prev = prev
		x, y = y, x
	}
	for {
		bound := c.at(y).x.Quo
		for x != pool.Nil && c.at(x).x.Quo <= bound {
			prev = x
			x = c.at(x).next
		}
		c.at(y).prev = prev
		c.at(prev).next = y
		if x == pool.Nil {
			return head
		}
		x, y = y, x
	}
}

func (c *MonoConverter) sortEdges(list pool.Ref, level uint) (head, remaining pool.Ref) {
	e := c.at(list)
	other := e.next
	if other == pool.Nil {
		return list, pool.Nil
	}
	o := c.at(other)
	remaining = o.next
	if e.x.Quo <= o.x.Quo {
		head = list
		o.next = pool.Nil
	} else {
		head = other
		o.prev = e.prev
		o.next = list
		e.prev = other
		e.next = pool.Nil
	}
	for i := uint(0); i < level && remaining != pool.Nil; i++ {
		var sorted pool.Ref
		sorted, remaining = c.sortEdges(remaining, i)
		head = c.mergeSorted(head, sorted)
	}
	return head, remaining
}

func (c *MonoConverter) merge(edges pool.Ref) {
	for r := edges; c.isVertical && r != pool.Nil; r = c.at(r).next {
		c.isVertical = c.at(r).vertical
	}
	sorted, _ := c.sortEdges(edges, math.MaxUint)
	h := c.at(c.head)
	h.next = c.mergeSorted(h.next, sorted)
}

func (c *MonoConverter) unlink(e *monoEdge) {
	c.at(e.prev).next = e.next
	c.at(e.next).prev = e.prev
}

func (c *MonoConverter) addSpan(x1, x2 int32) {
	x1 = max(x1, c.xmin)
	x2 = min(x2, c.xmax)
	if x2 <= x1 {
		return
	}
	c.spans = append(c.spans, Span{X: x1, Coverage: 255}, Span{X: x2})
}

// row emits the spans of the current row and steps every edge down one
// pixel.
func (c *MonoConverter) row(mask int32) {
	r := c.at(c.head).next
	xstart, prevX := int32(math.MinInt32), int32(math.MinInt32)
	var winding int32

	c.spans = c.spans[:0]
	for r != c.tail {
		e := c.at(r)
		next := e.next
		xend := pixelOf(e.x.Quo)

		e.heightLeft--
		if e.heightLeft != 0 {
			if !e.vertical {
				e.x.Quo += e.dxdy.Quo
				e.x.Rem += e.dxdy.Rem
				if e.x.Rem >= 0 {
					e.x.Quo++
					e.x.Rem -= e.dy
				}
			}
			if e.x.Quo < prevX {
				pos := e.prev
				p := c.at(pos)
				p.next = next
				c.at(next).prev = pos
				for {
					pos = c.at(pos).prev
					if e.x.Quo >= c.at(pos).x.Quo {
						break
					}
				}
				p = c.at(pos)
				c.at(p.next).prev = r
				e.next = p.next
				e.prev = pos
				p.next = r
			} else {
				prevX = e.x.Quo
			}
		} else {
			c.unlink(e)
		}

		winding += e.dir
		if winding&mask == 0 {
			// Edges landing on the same pixel column continue the run.
			if pixelOf(c.at(next).x.Quo) > xend {
				c.addSpan(xstart, xend)
				xstart = math.MinInt32
			}
		} else if xstart == math.MinInt32 {
			xstart = xend
		}
		r = next
	}
}

func (c *MonoConverter) stepEdges(count int32) {
	for r := c.at(c.head).next; r != c.tail; {
		e := c.at(r)
		e.heightLeft -= count
		if e.heightLeft == 0 {
			c.unlink(e)
		}
		r = e.next
	}
}

// Render sweeps the added edges top to bottom and hands every row with
// coverage to r. A failure stops the sweep.
func (c *MonoConverter) Render(r RowRenderer) error {
	if c.err != nil {
		return c.err
	}
	mask := c.rule.windingMask()
	h := int32(len(c.buckets)) //nolint:gosec // bounded by Reset

	for i, j := int32(0), int32(0); i < h; i = j {
		j = i + 1

		if c.buckets[i] != pool.Nil {
			c.merge(c.buckets[i])
		}

		if c.isVertical {
			e := c.at(c.at(c.head).next)
			minHeight := e.heightLeft
			for r := c.at(c.head).next; r != c.tail; r = c.at(r).next {
				minHeight = min(minHeight, c.at(r).heightLeft)
			}
			for {
				minHeight--
				if minHeight < 1 || j >= h || c.buckets[j] != pool.Nil {
					break
				}
				j++
			}
			if j != i+1 {
				c.stepEdges(j - (i + 1))
				c.stats.CoalescedRows += int(j - (i + 1))
			}
		}

		c.row(mask)
		if len(c.spans) > 0 {
			c.stats.Rows++
			c.stats.Spans += len(c.spans)
			if err := r.RenderRows(int(c.ymin+i), int(j-i), c.spans); err != nil {
				c.err = err
				return err
			}
		} else if c.at(c.head).next == c.tail {
			c.stats.SkippedRows += int(j - i)
		}

		if c.at(c.head).next == c.tail {
			c.isVertical = true
		}
	}
	return nil
}
