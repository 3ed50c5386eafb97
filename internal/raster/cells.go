// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"math"
	"math/bits"

	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/pool"
)

const cellsPerChunk = 256

// cell accumulates the coverage deltas of one pixel column in the
// current row. coveredHeight counts signed sub-rows whose coverage
// continues into the columns to the right; uncoveredArea is the signed
// part of this column those sub-rows leave empty, in half grid units.
type cell struct {
	next          pool.Ref
	x             int32
	coveredHeight int32
	uncoveredArea int32
}

// cellList is an x-sorted list of cells between sentinels at minus and
// plus infinity. Lookups move a cursor forward; callers rewind it
// explicitly before looking up a smaller x.
type cellList struct {
	cells        *pool.Pool[cell]
	head, tail   pool.Ref
	cursor       pool.Ref
	rewindCursor pool.Ref
	grid         int32
}

func (l *cellList) at(r pool.Ref) *cell {
	return l.cells.Get(r)
}

// reset empties the list and recycles every cell.
func (l *cellList) reset() error {
	l.cells.Reset()
	head, err := l.cells.Alloc()
	if err != nil {
		return err
	}
	tail, err := l.cells.Alloc()
	if err != nil {
		return err
	}
	h, t := l.at(head), l.at(tail)
	h.x = math.MinInt32
	h.next = tail
	t.x = math.MaxInt32
	t.next = pool.Nil
	l.head, l.tail = head, tail
	l.cursor = head
	l.rewindCursor = head
	return nil
}

func (l *cellList) empty() bool {
	return l.at(l.head).next == l.tail
}

func (l *cellList) rewindToHead() {
	l.cursor = l.head
}

func (l *cellList) setRewind() {
	l.rewindCursor = l.cursor
}

// maybeRewind moves the cursor back far enough to find x.
func (l *cellList) maybeRewind(x int32) {
	if x < l.at(l.cursor).x {
		l.cursor = l.rewindCursor
		if x < l.at(l.cursor).x {
			l.cursor = l.head
		}
	}
}

func (l *cellList) alloc(after pool.Ref, x int32) (pool.Ref, error) {
	r, err := l.cells.Alloc()
	if err != nil {
		return pool.Nil, err
	}
	c, a := l.at(r), l.at(after)
	c.next = a.next
	c.x = x
	a.next = r
	return r, nil
}

// seek returns the cell at x, allocating it after from if needed. The
// cells between from and x must all lie at or before x.
func (l *cellList) seek(from pool.Ref, x int32) (pool.Ref, error) {
	t := from
	for {
		n := l.at(t).next
		if l.at(n).x > x {
			break
		}
		t = n
	}
	if l.at(t).x != x {
		return l.alloc(t, x)
	}
	return t, nil
}

// find returns the cell at x, which must not lie before the cursor.
func (l *cellList) find(x int32) (*cell, error) {
	if c := l.at(l.cursor); c.x == x {
		return c, nil
	}
	r, err := l.seek(l.cursor, x)
	if err != nil {
		return nil, err
	}
	l.cursor = r
	return l.at(r), nil
}

// findPair is find(x1) followed by find(x2).
func (l *cellList) findPair(x1, x2 int32) (*cell, *cell, error) {
	r1, err := l.seek(l.cursor, x1)
	if err != nil {
		return nil, nil, err
	}
	r2, err := l.seek(r1, x2)
	if err != nil {
		return nil, nil, err
	}
	l.cursor = r2
	return l.at(r1), l.at(r2), nil
}

// addSubspan adds one sub-row of coverage over [x1, x2) grid columns.
func (l *cellList) addSubspan(x1, x2 int32) error {
	if x1 == x2 {
		return nil
	}
	ix1, fx1 := x1>>GridXBits, x1&(GridX-1)
	ix2, fx2 := x2>>GridXBits, x2&(GridX-1)

	if ix1 != ix2 {
		c1, c2, err := l.findPair(ix1, ix2)
		if err != nil {
			return err
		}
		c1.uncoveredArea += 2 * fx1
		c1.coveredHeight++
		c2.uncoveredArea -= 2 * fx2
		c2.coveredHeight--
		return nil
	}

	c, err := l.find(ix1)
	if err != nil {
		return err
	}
	c.uncoveredArea += 2 * (fx1 - fx2)
	return nil
}

// halfStepBack moves x from the centre of the first sub-row back to the
// top of the pixel row.
func halfStepBack(x fixed.QuoRem, e *edge) fixed.QuoRem {
	return x.Step(fixed.QuoRem{Quo: -(e.dxdy.Quo / 2), Rem: -(e.dxdy.Rem / 2)}, e.dy)
}

// renderEdge adds the exact area e sweeps through the current pixel row
// and advances e to the next row. sign is +1 for the edge opening an
// inside run and -1 for the one closing it.
//
// Only valid when no edge on the active list starts, ends or crosses
// another inside the row, and when edges are rendered in list order.
func (l *cellList) renderEdge(e *edge, sign int32) error {
	grid := l.grid
	x1 := e.x
	e.fullStep()
	x2 := e.x

	if e.dy != 0 {
		x1 = halfStepBack(x1, e)
		x2 = halfStepBack(x2, e)
	}

	ix1, fx1 := x1.Quo>>GridXBits, x1.Quo&(GridX-1)
	ix2, fx2 := x2.Quo>>GridXBits, x2.Quo&(GridX-1)

	l.maybeRewind(min(ix1, ix2))

	if ix1 == ix2 {
		c, err := l.find(ix1)
		if err != nil {
			return err
		}
		c.coveredHeight += sign * grid
		c.uncoveredArea += sign * (fx1 + fx2) * grid
		return nil
	}

	// Orient left to right.
	if ix2 < ix1 {
		ix1, ix2 = ix2, ix1
		fx1, fx2 = fx2, fx1
		x1, x2 = x2, x1
	}

	dy := e.dy
	dx := int64(x2.Quo-x1.Quo)*dy + (x2.Rem - x1.Rem)

	// The edge leaves column ix1 at sub-row height yq + yr/dx. Heights
	// stay whole sub-rows and each column's area takes back the crossing
	// fractions.
	tmp := int64(ix1+1)*GridX*dy - (int64(x1.Quo)*dy + x1.Rem)
	tmp *= int64(grid)
	yq, yr := tmp/dx, tmp%dx

	c1, c2, err := l.findPair(ix1, ix1+1)
	if err != nil {
		return err
	}
	c1.uncoveredArea += sign * (int32(yq)*(GridX+fx1) - roundFrac(yr, GridX-fx1, dx)) //nolint:gosec // yq <= grid
	c1.coveredHeight += sign * int32(yq)                                              //nolint:gosec // yq <= grid
	yLast, rLast := yq, yr

	if ix1+1 < ix2 {
		full := int64(grid) * GridX * dy
		fq, fr := full/dx, full%dx

		c := c2
		ix1++
		for {
			yq += fq
			yr += fr
			if yr >= dx {
				yq++
				yr -= dx
			}
			d := int32(yq - yLast) //nolint:gosec // bounded by grid
			c.uncoveredArea += sign * (d*GridX - roundFrac(rLast+yr, GridX, dx))
			c.coveredHeight += sign * d
			yLast, rLast = yq, yr

			ix1++
			if c, err = l.find(ix1); err != nil {
				return err
			}
			if ix1 == ix2 {
				break
			}
		}
		c2 = c
	}

	rest := grid - int32(yLast) //nolint:gosec // yLast <= grid
	c2.uncoveredArea += sign * (rest*fx2 - roundFrac(rLast, fx2, dx))
	c2.coveredHeight += sign * rest
	return nil
}

// roundFrac returns r*scale/d rounded to nearest, for 0 <= r < 2d.
func roundFrac(r int64, scale int32, d int64) int32 {
	hi, lo := bits.Mul64(uint64(r), uint64(scale)) //nolint:gosec // both non-negative
	lo, carry := bits.Add64(lo, uint64(d)/2, 0)    //nolint:gosec // d > 0
	q, _ := bits.Div64(hi+carry, lo, uint64(d))    //nolint:gosec // d > 0
	return int32(q)                                //nolint:gosec // q <= 2*scale
}
