// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"math"

	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/pool"
	"github.com/gogpu/glitter/internal/status"
)

// edgesPerChunk approximates an 8 KiB chunk of edges.
const edgesPerChunk = 128

// edge is the converter's working copy of an Edge.
//
// x is the exact position at the centre of the current sub-row, stored
// as x.Quo + x.Rem/dy grid units with x.Rem in [0, dy). dxdy advances it
// by one sub-row and dxdyFull by a whole pixel row. Vertical edges have
// dy == 0 and never move.
type edge struct {
	next, prev pool.Ref

	x        fixed.QuoRem
	dxdy     fixed.QuoRem
	dxdyFull fixed.QuoRem
	dy       int64

	ytop       int32
	heightLeft int32
	dir        int32

	// cell is x rounded to the nearest grid column, the sort key of the
	// active list.
	cell int32
}

func (e *edge) updateCell() {
	e.cell = e.x.Quo
	if e.x.Rem >= e.dy/2 {
		e.cell++
	}
}

// step advances e by one sub-row.
func (e *edge) step() {
	if e.dy == 0 {
		return
	}
	e.x = e.x.Step(e.dxdy, e.dy)
	e.updateCell()
}

// fullStep advances e by one pixel row.
func (e *edge) fullStep() {
	if e.dy == 0 {
		return
	}
	e.x = e.x.Step(e.dxdyFull, e.dy)
	e.updateCell()
}

// edgeTable buckets edges by the pixel row containing their first
// sub-row. It owns the edge arena shared with the active list.
type edgeTable struct {
	edges   *pool.Pool[edge]
	buckets []pool.Ref
	grid    int32
	// Vertical clip in grid units.
	ymin, ymax int32
	count      int
}

func (t *edgeTable) at(r pool.Ref) *edge {
	return t.edges.Get(r)
}

// reset empties the table and prepares it for edges clipped to
// [ymin, ymax) grid rows. The edge arena must already be reset.
func (t *edgeTable) reset(ymin, ymax, grid int32) error {
	t.grid = grid
	t.ymin, t.ymax = 0, 0
	t.count = 0
	h := int64(ymax) - int64(ymin)
	if h < 0 || h > math.MaxInt32-int64(grid) {
		return status.ErrInvalidSize
	}
	n := int((h + int64(grid) - 1) / int64(grid))
	if cap(t.buckets) < n {
		t.buckets = make([]pool.Ref, n)
	}
	t.buckets = t.buckets[:n]
	for i := range t.buckets {
		t.buckets[i] = pool.Nil
	}
	t.ymin, t.ymax = ymin, ymax
	return nil
}

// add clips in to the table's vertical window, computes its starting
// position and slopes, and inserts it into its bucket. Edges that clip
// to nothing or carry no winding are dropped.
func (t *edgeTable) add(in *Edge) error {
	if in.Dir == 0 {
		return nil
	}
	ytop := max(inputToGridY(in.Top, t.grid), t.ymin)
	ybot := min(inputToGridY(in.Bottom, t.grid), t.ymax)
	if ybot <= ytop {
		return nil
	}

	r, err := t.edges.Alloc()
	if err != nil {
		return err
	}
	e := t.at(r)
	e.ytop = ytop
	e.heightLeft = ybot - ytop

	p1, p2 := in.Line.P1, in.Line.P2
	e.dir = in.Dir
	if p2.Y <= p1.Y {
		p1, p2 = p2, p1
		e.dir = -e.dir
	}

	if p2.X == p1.X {
		e.x = fixed.QuoRem{Quo: int32(p1.X)}
		e.cell = int32(p1.X)
	} else {
		grid := int64(t.grid)
		ex := int64(p2.X-p1.X) * GridX
		ey := int64(p2.Y-p1.Y) * grid * (2 << InputBits)

		e.dxdy = fixed.QuoRem{
			Quo: int32(ex * (2 << InputBits) / ey), //nolint:gosec // slope per sub-row fits
			Rem: ex * (2 << InputBits) % ey,
		}

		// Sample at the centre of sub-row ytop.
		tmp := int64(2*ytop+1) << InputBits
		tmp -= int64(p1.Y) * grid * 2
		tmp *= ex
		e.x = fixed.QuoRem{Quo: int32(tmp/ey) + int32(p1.X), Rem: tmp % ey} //nolint:gosec // position fits
		if e.x.Rem < 0 {
			e.x.Quo--
			e.x.Rem += ey
		} else if e.x.Rem >= ey {
			e.x.Quo++
			e.x.Rem -= ey
		}

		if e.heightLeft >= t.grid {
			tmp = ex * (2 * grid << InputBits)
			e.dxdyFull = fixed.QuoRem{Quo: int32(tmp / ey), Rem: tmp % ey} //nolint:gosec // slope per row fits
		}
		e.dy = ey
		e.updateCell()
	}

	ix := (ytop - t.ymin) / t.grid
	e.next = t.buckets[ix]
	e.prev = pool.Nil
	t.buckets[ix] = r
	t.count++
	return nil
}
