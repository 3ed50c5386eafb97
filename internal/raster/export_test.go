// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"fmt"

	"github.com/gogpu/glitter/internal/pool"
)

// CheckOrder verifies that the active list is linked consistently and
// sorted by cell.
func (c *Converter) CheckOrder() error {
	a := &c.act
	prev := a.head
	for r := a.at(a.head).next; r != pool.Nil; r = a.at(r).next {
		e := a.at(r)
		if e.prev != prev {
			return fmt.Errorf("edge %d: prev = %d, want %d", r, e.prev, prev)
		}
		if p := a.at(prev); e.cell < p.cell {
			return fmt.Errorf("edge %d: cell %d before %d", r, e.cell, p.cell)
		}
		prev = r
	}
	if prev != a.tail {
		return fmt.Errorf("list ends at %d, want tail %d", prev, a.tail)
	}
	return nil
}

// ActiveLen returns the number of edges on the active list.
func (c *Converter) ActiveLen() int {
	n := 0
	a := &c.act
	for r := a.at(a.head).next; r != a.tail; r = a.at(r).next {
		n++
	}
	return n
}

// CheckCells verifies that the cell list is sorted by x.
func (c *Converter) CheckCells() error {
	l := &c.cells
	last := l.at(l.head).x
	for r := l.at(l.head).next; r != pool.Nil; r = l.at(r).next {
		if x := l.at(r).x; x <= last {
			return fmt.Errorf("cell %d: x %d after %d", r, x, last)
		}
		last = l.at(r).x
	}
	return nil
}

// Alpha exposes the coverage mapping.
func Alpha(area, grid int32) uint8 {
	return areaToAlpha(area, grid)
}
