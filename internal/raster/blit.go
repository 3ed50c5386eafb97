// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

// areaToAlpha maps a coverage area in [0, 2*GridX*grid] onto [0, 255].
func areaToAlpha(area, grid int32) uint8 {
	if grid == GridY {
		// 255/7680 ~= 17/512
		area = (area + area<<4 + 256) >> 9
	} else {
		unit := 2 * GridX * grid
		area = (area*255 + unit/2) / unit
	}
	return uint8(max(0, min(area, 255))) //nolint:gosec // clamped
}

// areaToA1 thresholds a coverage area for aliased output.
func areaToA1(area, grid int32) uint8 {
	if areaToAlpha(area, grid) > 127 {
		return 255
	}
	return 0
}

// blit turns the cell list of the current row into spans clipped to
// [xmin, xmax). Coverage is the running sum of coveredHeight from the
// left, less each column's uncovered area. A span is emitted whenever the
// mapped value changes; threshold selects aliased output.
func (c *Converter) blit(y, height int32, threshold bool) error {
	cells := &c.cells
	if cells.empty() {
		return nil
	}
	grid := c.grid
	toAlpha := areaToAlpha
	if threshold {
		toAlpha = areaToA1
	}

	r := cells.at(cells.head).next
	xmin, xmax := c.xmin, c.xmax

	var cover int32
	for {
		cl := cells.at(r)
		if cl.x >= xmin {
			break
		}
		cover += cl.coveredHeight
		r = cl.next
	}
	cover *= GridX * 2

	spans := c.spans[:0]
	prevX, lastX := xmin, int32(-1)
	var last uint8

	for {
		cl := cells.at(r)
		x := cl.x
		if x >= xmax {
			break
		}
		if a := toAlpha(cover, grid); x > prevX && a != last {
			spans = append(spans, Span{X: prevX, Coverage: a})
			last = a
			lastX = prevX
		}

		cover += cl.coveredHeight * GridX * 2
		if a := toAlpha(cover-cl.uncoveredArea, grid); a != last {
			spans = append(spans, Span{X: x, Coverage: a})
			last = a
			lastX = x
		}
		prevX = x + 1
		r = cl.next
	}

	if a := toAlpha(cover, grid); prevX <= xmax && a != last {
		spans = append(spans, Span{X: prevX, Coverage: a})
		last = a
		lastX = prevX
	}
	if lastX < xmax && last != 0 {
		spans = append(spans, Span{X: xmax})
	}
	c.spans = spans

	if threshold && len(spans) == 1 {
		return nil
	}
	if len(spans) == 0 {
		return nil
	}
	c.stats.Rows++
	c.stats.Spans += len(spans)
	return c.renderer.RenderRows(int(y), int(height), spans)
}
