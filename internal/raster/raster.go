// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster implements polygon scan conversion.
//
// Two converters are provided. Converter is an analytic/supersampling
// hybrid: every pixel row is either stepped in one shot, computing the
// exact trapezoid each edge sweeps through the row, or sampled on a grid
// of GridY sub-rows when edges start, end or cross inside the row.
// MonoConverter samples each row once at the pixel centre and is used for
// aliased rendering.
//
// Both consume Edges in 24.8 fixed point and emit coverage as run-length
// encoded rows of Spans through a RowRenderer.
package raster

import (
	"math"

	"github.com/gogpu/glitter/internal/fixed"
)

// Grid resolution. X positions keep the full 8 fractional input bits.
const (
	InputBits = fixed.FracBits
	GridXBits = 8
	GridX     = 1 << GridXBits

	// GridY is the number of sub-rows sampled per pixel row.
	GridY = 15

	// GridYFast is used for AntialiasFast.
	GridYFast = 4
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule uint8

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// String returns the rule name.
func (r FillRule) String() string {
	if r == FillRuleEvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// windingMask is ANDed with the running winding number; a zero result
// means outside.
func (r FillRule) windingMask() int32 {
	if r == FillRuleEvenOdd {
		return 1
	}
	return ^int32(0)
}

// Antialias selects the sampling quality.
type Antialias uint8

const (
	AntialiasDefault Antialias = iota
	AntialiasNone
	AntialiasGray
	AntialiasSubpixel
	AntialiasFast
	AntialiasGood
	AntialiasBest
)

var antialiasNames = [...]string{
	AntialiasDefault:  "default",
	AntialiasNone:     "none",
	AntialiasGray:     "gray",
	AntialiasSubpixel: "subpixel",
	AntialiasFast:     "fast",
	AntialiasGood:     "good",
	AntialiasBest:     "best",
}

// String returns the mode name.
func (a Antialias) String() string {
	if int(a) < len(antialiasNames) {
		return antialiasNames[a]
	}
	return "unknown"
}

// gridY returns the sub-row count used for a.
func (a Antialias) gridY() int32 {
	if a == AntialiasFast {
		return GridYFast
	}
	return GridY
}

// Edge is one polygon side. Line gives its direction and slope; Top and
// Bottom bound the part of it that is rasterized. Dir is +1 or -1 and is
// negated when Line points upwards.
type Edge struct {
	Line        fixed.Line
	Top, Bottom fixed.Fixed
	Dir         int32
}

// LineEdge returns the edge running from p1 to p2 over its full height,
// or false when the segment is horizontal.
func LineEdge(p1, p2 fixed.Point) (Edge, bool) {
	if p1.Y == p2.Y {
		return Edge{}, false
	}
	e := Edge{Line: fixed.Line{P1: p1, P2: p2}, Dir: 1}
	if p1.Y > p2.Y {
		e.Line.P1, e.Line.P2 = p2, p1
		e.Dir = -1
	}
	e.Top, e.Bottom = e.Line.P1.Y, e.Line.P2.Y
	return e, true
}

// Polygon is a set of edges together with their bounding box.
type Polygon struct {
	Edges  []Edge
	Bounds fixed.Box
}

// Add appends the line p1-p2, dropping horizontal segments.
func (p *Polygon) Add(p1, p2 fixed.Point) {
	e, ok := LineEdge(p1, p2)
	if !ok {
		return
	}
	if len(p.Edges) == 0 {
		p.Bounds = fixed.Box{P1: p1, P2: p1}
	}
	p.extend(p1)
	p.extend(p2)
	p.Edges = append(p.Edges, e)
}

func (p *Polygon) extend(pt fixed.Point) {
	p.Bounds.P1.X = min(p.Bounds.P1.X, pt.X)
	p.Bounds.P1.Y = min(p.Bounds.P1.Y, pt.Y)
	p.Bounds.P2.X = max(p.Bounds.P2.X, pt.X)
	p.Bounds.P2.Y = max(p.Bounds.P2.Y, pt.Y)
}

// Reset empties the polygon, keeping its capacity.
func (p *Polygon) Reset() {
	p.Edges = p.Edges[:0]
	p.Bounds = fixed.Box{}
}

// IsEmpty reports whether the polygon has no edges.
func (p *Polygon) IsEmpty() bool {
	return len(p.Edges) == 0
}

// Span starts a half-open run of constant coverage at X. The run ends
// where the next span of the row begins. Inverse runs apply the
// complement of Coverage; the converters never emit them.
type Span struct {
	X        int32
	Coverage uint8
	Inverse  bool
}

// Alpha returns the coverage the run applies.
func (s Span) Alpha() uint8 {
	if s.Inverse {
		return 255 - s.Coverage
	}
	return s.Coverage
}

// RowRenderer receives coverage rows. Spans lists the coverage changes of
// one row that repeats height times from y down. The slice is reused by
// the converter and must not be retained after RenderRows returns.
type RowRenderer interface {
	RenderRows(y, height int, spans []Span) error
}

// RowRendererFunc adapts a function to RowRenderer.
type RowRendererFunc func(y, height int, spans []Span) error

// RenderRows calls f.
func (f RowRendererFunc) RenderRows(y, height int, spans []Span) error {
	return f(y, height, spans)
}

// ScanConverter is the common surface of Converter and MonoConverter.
type ScanConverter interface {
	Reset(xmin, ymin, xmax, ymax int, rule FillRule, aa Antialias) error
	AddEdge(e Edge) error
	AddPolygon(p *Polygon) error
	Render(r RowRenderer) error
	Stats() Stats
}

// New returns the converter suited to aa: a MonoConverter for
// AntialiasNone and a Converter otherwise.
func New(aa Antialias, opts ...Option) ScanConverter {
	if aa == AntialiasNone {
		return NewMonoConverter(opts...)
	}
	return NewConverter(opts...)
}

// Stats counts the work done by the last Render.
type Stats struct {
	Edges          int // edges kept after vertical clipping
	Rows           int // RenderRows calls
	FullRows       int // rows stepped analytically
	SubsampledRows int // rows sampled sub-row by sub-row
	SkippedRows    int // rows with no active edges
	CoalescedRows  int // rows merged into the preceding row
	Spans          int // spans emitted
}

// Option configures a converter.
type Option func(*options)

type options struct {
	gridY     int32
	noFullRow bool
	edgeLimit int
	cellLimit int
}

// WithGridY fixes the number of sub-rows per pixel row, overriding the
// antialias mode's choice.
func WithGridY(n int) Option {
	return func(o *options) {
		if n > 0 && n <= math.MaxInt16 {
			o.gridY = int32(n)
		}
	}
}

// WithFullRowStepping enables or disables analytic row stepping. When
// disabled every non-empty row is sampled on the sub-row grid.
func WithFullRowStepping(enabled bool) Option {
	return func(o *options) {
		o.noFullRow = !enabled
	}
}

// WithMemoryLimit caps the number of edges and coverage cells the
// converter may hold. Exceeding a cap fails with status.ErrNoMemory.
// Zero leaves the corresponding arena unbounded.
func WithMemoryLimit(edges, cells int) Option {
	return func(o *options) {
		o.edgeLimit = edges
		o.cellLimit = cells
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// toGridScaled multiplies i by scale, clamping instead of overflowing.
func toGridScaled(i int, scale int32) int32 {
	s := int(scale)
	if i >= 0 {
		if i >= math.MaxInt32/s {
			i = math.MaxInt32 / s
		}
	} else if i <= math.MinInt32/s {
		i = math.MinInt32 / s
	}
	return int32(i * s) //nolint:gosec // clamped above
}

// inputToGridY maps a 24.8 y coordinate onto the sub-row grid, rounding
// to nearest.
func inputToGridY(v fixed.Fixed, grid int32) int32 {
	return int32((int64(grid)*int64(v) + 1<<(InputBits-1)) >> InputBits) //nolint:gosec // grid*v/256 fits
}

func clampInt32(v int) int32 {
	return int32(max(math.MinInt32, min(v, math.MaxInt32))) //nolint:gosec // clamped
}
