// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"math"

	"github.com/gogpu/glitter/internal/pool"
)

// activeList holds the edges crossing the current row, ordered by cell
// between sentinels at minus and plus infinity.
type activeList struct {
	edges      *pool.Pool[edge]
	head, tail pool.Ref

	// minHeight is the smallest heightLeft on the list, or <= 0 when it
	// must be recomputed.
	minHeight int32
	// isVertical is true when no edge on the list moves horizontally.
	isVertical bool
}

func (a *activeList) at(r pool.Ref) *edge {
	return a.edges.Get(r)
}

// reset allocates fresh sentinels. The edge arena must already be reset.
func (a *activeList) reset() error {
	head, err := a.edges.Alloc()
	if err != nil {
		return err
	}
	tail, err := a.edges.Alloc()
	if err != nil {
		return err
	}
	h, t := a.at(head), a.at(tail)
	h.heightLeft = math.MaxInt32
	h.cell = math.MinInt32
	h.prev = pool.Nil
	h.next = tail
	t.heightLeft = math.MaxInt32
	t.cell = math.MaxInt32
	t.prev = head
	t.next = pool.Nil

	a.head, a.tail = head, tail
	a.minHeight = 0
	a.isVertical = true
	return nil
}

func (a *activeList) empty() bool {
	return a.at(a.head).next == a.tail
}

func (a *activeList) unlink(e *edge) {
	a.at(e.prev).next = e.next
	a.at(e.next).prev = e.prev
}

// mergeSorted merges two cell-sorted lists and returns the new head.
// Runs of one list are walked until they pass the head of the other, so
// inserting a single edge degenerates into an insertion sort step.
func (a *activeList) mergeSorted(x, y pool.Ref) pool.Ref {
	prev := a.at(x).prev
	head := x
	if a.at(x).cell > a.at(y).cell {
		head = y
		a.at(y).prev = prev
		x, y = y, x
	}
	for {
		bound := a.at(y).cell
		for x != pool.Nil && a.at(x).cell <= bound {
			prev = x
			x = a.at(x).next
		}
		a.at(y).prev = prev
		a.at(prev).next = y
		if x == pool.Nil {
			return head
		}
		x, y = y, x
	}
}

// sortEdges sorts the first 2^(level+1) edges of list bottom-up and
// returns the sorted head together with the unprocessed remainder.
func (a *activeList) sortEdges(list pool.Ref, level uint) (head, remaining pool.Ref) {
	e := a.at(list)
	other := e.next
	if other == pool.Nil {
		return list, pool.Nil
	}

	o := a.at(other)
	remaining = o.next
	if e.cell <= o.cell {
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
		sorted, remaining = a.sortEdges(remaining, i)
		head = a.mergeSorted(head, sorted)
	}
	return head, remaining
}

// merge inserts the unsorted list edges into the active list.
func (a *activeList) merge(edges pool.Ref) {
	sorted, _ := a.sortEdges(edges, math.MaxUint)
	h := a.at(a.head)
	h.next = a.mergeSorted(h.next, sorted)
}

// refresh recomputes minHeight and isVertical after edges were dropped.
func (a *activeList) refresh() {
	if a.minHeight > 0 {
		return
	}
	minHeight := int32(math.MaxInt32)
	vertical := true
	for r := a.at(a.head).next; r != pool.Nil; {
		e := a.at(r)
		minHeight = min(minHeight, e.heightLeft)
		vertical = vertical && e.dy == 0
		r = e.next
	}
	a.minHeight = minHeight
	a.isVertical = vertical
}

// canDoFullRow reports whether every edge survives the next grid
// sub-rows and no two edges swap order over the row.
func (a *activeList) canDoFullRow(grid int32) bool {
	a.refresh()
	if a.minHeight < grid {
		return false
	}

	prevX := int32(math.MinInt32)
	for r := a.at(a.head).next; r != a.tail; {
		e := a.at(r)
		cell := e.cell
		if e.dy != 0 {
			n := *e
			n.fullStep()
			cell = n.cell
		}
		if cell < prevX {
			return false
		}
		prevX = cell
		r = e.next
	}
	return true
}

// fillBuckets distributes the edges starting in the row beginning at
// grid row y over the per-sub-row buckets and returns the largest
// sub-row index used.
func (a *activeList) fillBuckets(list pool.Ref, y int32, buckets []pool.Ref) int32 {
	minHeight := a.minHeight
	vertical := a.isVertical
	var maxSuby int32

	for list != pool.Nil {
		e := a.at(list)
		next := e.next
		suby := e.ytop - y
		if b := buckets[suby]; b != pool.Nil {
			a.at(b).prev = list
		}
		e.next = buckets[suby]
		e.prev = pool.Nil
		buckets[suby] = list

		minHeight = min(minHeight, e.heightLeft)
		vertical = vertical && e.dy == 0
		maxSuby = max(maxSuby, suby)
		list = next
	}

	a.minHeight = minHeight
	a.isVertical = vertical
	return maxSuby
}

// stepEdges advances every edge by rows whole pixel rows of grid
// sub-rows each, dropping the edges that end.
func (a *activeList) stepEdges(rows, grid int32) {
	count := rows * grid
	for r := a.at(a.head).next; r != a.tail; {
		e := a.at(r)
		e.heightLeft -= count
		if e.heightLeft == 0 {
			a.unlink(e)
			a.minHeight = -1
		}
		r = e.next
	}
}

// dec consumes h sub-rows of e, unlinking it when it ends.
func (a *activeList) dec(e *edge, h int32) {
	e.heightLeft -= h
	if e.heightLeft == 0 {
		a.unlink(e)
		a.minHeight = -1
	}
}

// subRow accumulates coverage for one sub-row into cells and steps every
// edge to the next sub-row. An edge that overtakes its left neighbour is
// moved back into place.
func (a *activeList) subRow(cells *cellList, mask int32) error {
	r := a.at(a.head).next
	xstart, prevX := int32(math.MinInt32), int32(math.MinInt32)
	var winding int32

	cells.rewindToHead()
	for r != a.tail {
		e := a.at(r)
		next := e.next
		xend := e.cell

		e.heightLeft--
		if e.heightLeft != 0 {
			e.step()
			if e.cell < prevX {
				pos := e.prev
				p := a.at(pos)
				p.next = next
				a.at(next).prev = pos
				for {
					pos = a.at(pos).prev
					if e.cell >= a.at(pos).cell {
						break
					}
				}
				p = a.at(pos)
				a.at(p.next).prev = r
				e.next = p.next
				e.prev = pos
				p.next = r
			} else {
				prevX = e.cell
			}
			a.minHeight = -1
		} else {
			a.unlink(e)
		}

		winding += e.dir
		if winding&mask == 0 {
			if a.at(next).cell != xend {
				if err := cells.addSubspan(xstart, xend); err != nil {
					return err
				}
				xstart = math.MinInt32
			}
		} else if xstart == math.MinInt32 {
			xstart = xend
		}
		r = next
	}
	return nil
}

// fullRow accumulates the analytic coverage of a whole pixel row into
// cells, pairing the edges that open and close each inside run, and
// steps every edge by one row.
func (a *activeList) fullRow(cells *cellList, mask, grid int32) error {
	left := a.at(a.head).next
	for left != a.tail {
		l := a.at(left)
		a.dec(l, grid)

		if l.next == a.tail {
			// Unbalanced input: nothing closes this edge.
			break
		}

		winding := l.dir
		right := l.next
		for {
			rt := a.at(right)
			a.dec(rt, grid)
			winding += rt.dir
			if rt.next == a.tail || (winding&mask == 0 && a.at(rt.next).cell != rt.cell) {
				break
			}
			rt.fullStep()
			right = rt.next
		}

		cells.setRewind()
		if err := cells.renderEdge(l, 1); err != nil {
			return err
		}
		rt := a.at(right)
		if err := cells.renderEdge(rt, -1); err != nil {
			return err
		}
		left = rt.next
	}
	return nil
}
