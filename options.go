// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glitter

import (
	"log/slog"

	"github.com/gogpu/glitter/internal/compositor"
	"github.com/gogpu/glitter/internal/path"
	"github.com/gogpu/glitter/internal/raster"
	"github.com/gogpu/glitter/text"
)

// Strategy names one step the compositor took for an operation.
type Strategy = compositor.Strategy

// Strategies reported to a strategy observer.
const (
	StrategyBoxes     = compositor.StrategyBoxes
	StrategyDirect    = compositor.StrategyDirect
	StrategyWithMask  = compositor.StrategyWithMask
	StrategyCombine   = compositor.StrategyCombine
	StrategySource    = compositor.StrategySource
	StrategyFixup     = compositor.StrategyFixup
	StrategyFixupMask = compositor.StrategyFixupMask
)

// Option configures a Renderer during creation.
//
// Example:
//
//	r := glitter.New(target,
//	    glitter.WithAntialias(glitter.AntialiasFast),
//	    glitter.WithTolerance(0.25),
//	)
type Option func(*options)

type options struct {
	tolerance  float64
	antialias  Antialias
	glyphs     *text.GlyphCache
	observer   func(Strategy)
	rasterOpts []raster.Option
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		tolerance: path.DefaultTolerance,
		antialias: AntialiasDefault,
	}
}

// WithTolerance sets the maximum distance, in pixels, between a curve
// and the lines it is flattened into. Non-positive values are ignored.
func WithTolerance(t float64) Option {
	return func(o *options) {
		if t > 0 {
			o.tolerance = t
		}
	}
}

// WithAntialias sets the antialiasing used for fills and clip paths.
func WithAntialias(aa Antialias) Option {
	return func(o *options) {
		o.antialias = aa
	}
}

// WithGlyphCache shares a glyph cache between renderers. By default
// each renderer owns a private cache.
func WithGlyphCache(c *text.GlyphCache) Option {
	return func(o *options) {
		o.glyphs = c
	}
}

// WithStrategyObserver registers fn to be called with every
// compositing strategy the renderer takes.
func WithStrategyObserver(fn func(Strategy)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// WithMemoryLimit caps the edges and coverage cells a single fill may
// allocate. Exceeding the limit fails the fill with ErrNoMemory.
func WithMemoryLimit(edges, cells int) Option {
	return func(o *options) {
		o.rasterOpts = append(o.rasterOpts, raster.WithMemoryLimit(edges, cells))
	}
}

// WithFullRowStepping enables or disables rendering whole pixel rows
// at once where no edge starts, ends or crosses inside the row.
func WithFullRowStepping(enabled bool) Option {
	return func(o *options) {
		o.rasterOpts = append(o.rasterOpts, raster.WithFullRowStepping(enabled))
	}
}

// WithLogger overrides the package logger for one renderer.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
