// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"fmt"

	"github.com/gogpu/glitter/internal/pool"
	"github.com/gogpu/glitter/internal/status"
)

// Converter is the antialiasing scan converter.
//
// Each pixel row is handled in one of three ways. Rows with no active
// edges are skipped. When every active edge spans the whole row and no
// two edges cross in it, the row is stepped analytically and, if all
// edges are vertical, repeated for as many following rows as stay
// unchanged. Otherwise the row is sampled on GridY sub-rows.
//
// A Converter is reusable: Reset, add edges, Render, repeat. Its arenas
// keep their chunks across runs. It is not safe for concurrent use.
type Converter struct {
	opts options

	edges *pool.Pool[edge]
	table edgeTable
	act   activeList
	cells cellList

	// grid is the sub-row count of the current run.
	grid int32
	// Clip window: x in pixels, y in grid units.
	xmin, xmax int32
	ymin, ymax int32

	rule FillRule
	aa   Antialias

	subBuckets []pool.Ref
	spans      []Span
	renderer   RowRenderer
	stats      Stats

	// err records the first failure since Reset; every later call
	// returns it until the next Reset.
	err error
}

// NewConverter returns an empty converter. Call Reset before adding
// edges.
func NewConverter(opts ...Option) *Converter {
	o := newOptions(opts)
	c := &Converter{opts: o}

	var edgeOpts, cellOpts []pool.Option
	if o.edgeLimit > 0 {
		// Two extra slots for the active list sentinels.
		edgeOpts = append(edgeOpts, pool.WithLimit(o.edgeLimit+2))
	}
	if o.cellLimit > 0 {
		cellOpts = append(cellOpts, pool.WithLimit(o.cellLimit+2))
	}
	c.edges = pool.New[edge](edgesPerChunk, edgeOpts...)
	c.table.edges = c.edges
	c.act.edges = c.edges
	c.cells.cells = pool.New[cell](cellsPerChunk, cellOpts...)
	c.err = fmt.Errorf("raster: converter used before Reset: %w", status.ErrInvalidArgument)
	return c
}

// Reset clears the converter for a run clipped to the pixel rectangle
// [xmin, xmax) x [ymin, ymax). aa selects the sub-row grid and, for
// AntialiasNone, thresholded output.
func (c *Converter) Reset(xmin, ymin, xmax, ymax int, rule FillRule, aa Antialias) error {
	c.err = nil
	c.stats = Stats{}
	c.rule = rule
	c.aa = aa
	c.grid = aa.gridY()
	if c.opts.gridY > 0 {
		c.grid = c.opts.gridY
	}
	c.xmin, c.xmax = 0, 0
	c.ymin, c.ymax = 0, 0

	if err := c.reset(xmin, ymin, xmax, ymax); err != nil {
		c.err = err
		return err
	}
	return nil
}

func (c *Converter) reset(xmin, ymin, xmax, ymax int) error {
	if xmax > xmin {
		if n := xmax - xmin + 2; cap(c.spans) < n {
			c.spans = make([]Span, 0, n)
		}
	}

	c.edges.Reset()
	if err := c.act.reset(); err != nil {
		return err
	}
	c.cells.grid = c.grid
	if err := c.cells.reset(); err != nil {
		return err
	}

	gymin := toGridScaled(ymin, c.grid)
	gymax := toGridScaled(ymax, c.grid)
	if err := c.table.reset(gymin, gymax, c.grid); err != nil {
		return fmt.Errorf("raster: reset %dx%d: %w", xmax-xmin, ymax-ymin, err)
	}

	if cap(c.subBuckets) < int(c.grid) {
		c.subBuckets = make([]pool.Ref, c.grid)
	}
	c.subBuckets = c.subBuckets[:c.grid]
	for i := range c.subBuckets {
		c.subBuckets[i] = pool.Nil
	}

	c.xmin, c.xmax = clampInt32(xmin), clampInt32(xmax)
	c.ymin, c.ymax = gymin, gymax
	return nil
}

// AddEdge adds one edge. Edges may be added in any order.
func (c *Converter) AddEdge(e Edge) error {
	if c.err != nil {
		return c.err
	}
	if err := c.table.add(&e); err != nil {
		c.err = fmt.Errorf("raster: add edge: %w", err)
		return c.err
	}
	return nil
}

// AddEdges adds every edge in edges.
func (c *Converter) AddEdges(edges []Edge) error {
	for i := range edges {
		if err := c.AddEdge(edges[i]); err != nil {
			return err
		}
	}
	return nil
}

// AddPolygon adds the edges of p.
func (c *Converter) AddPolygon(p *Polygon) error {
	return c.AddEdges(p.Edges)
}

// Stats returns counters for the last run.
func (c *Converter) Stats() Stats {
	s := c.stats
	s.Edges = c.table.count
	return s
}

// Fini releases the converter's arenas. The converter may be reused
// after a Reset.
func (c *Converter) Fini() {
	c.edges.Fini()
	c.cells.cells.Fini()
	c.table.buckets = nil
	c.spans = nil
	c.err = fmt.Errorf("raster: converter used after Fini: %w", status.ErrInvalidArgument)
}

// Render sweeps the added edges top to bottom and hands every non-empty
// row to r. A failure stops the sweep; no further rows are emitted and
// the converter must be Reset before reuse.
func (c *Converter) Render(r RowRenderer) error {
	if c.err != nil {
		return c.err
	}
	c.renderer = r
	defer func() { c.renderer = nil }()

	if err := c.render(); err != nil {
		c.err = err
		return err
	}
	return nil
}

func (c *Converter) render() error {
	grid := c.grid
	yminI := c.ymin / grid
	h := c.ymax/grid - yminI
	if c.xmin >= c.xmax {
		return nil
	}

	mask := c.rule.windingMask()
	buckets := c.table.buckets
	sub := c.subBuckets
	act := &c.act

	for i, j := int32(0), int32(0); i < h; i = j {
		j = i + 1
		fullRow := false

		if act.fillBuckets(buckets[i], (i+yminI)*grid, sub) == 0 {
			if sub[0] != pool.Nil {
				act.merge(sub[0])
				sub[0] = pool.Nil
			}

			if act.empty() {
				act.minHeight = maxHeight
				act.isVertical = true
				for j < h && buckets[j] == pool.Nil {
					j++
				}
				c.stats.SkippedRows += int(j - i)
				continue
			}

			fullRow = !c.opts.noFullRow && act.canDoFullRow(grid)
		}

		if fullRow {
			c.stats.FullRows++
			if err := act.fullRow(&c.cells, mask, grid); err != nil {
				return err
			}
			if act.isVertical {
				for j < h && buckets[j] == pool.Nil && act.minHeight >= 2*grid {
					act.minHeight -= grid
					j++
				}
				if j != i+1 {
					act.stepEdges(j-(i+1), grid)
					c.stats.CoalescedRows += int(j - (i + 1))
				}
			}
		} else {
			c.stats.SubsampledRows++
			for s := range sub {
				if sub[s] != pool.Nil {
					act.merge(sub[s])
					sub[s] = pool.Nil
				}
				if err := act.subRow(&c.cells, mask); err != nil {
					return err
				}
			}
		}

		if err := c.blit(i+yminI, j-i, c.aa == AntialiasNone); err != nil {
			return err
		}
		if err := c.cells.reset(); err != nil {
			return err
		}
		act.minHeight -= grid
	}
	return nil
}

const maxHeight = 1<<31 - 1
