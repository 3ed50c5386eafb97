// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glitter

import (
	"fmt"
	"strings"

	"github.com/gogpu/glitter/internal/blend"
	"github.com/gogpu/glitter/internal/color"
	"github.com/gogpu/glitter/internal/image"
	"github.com/gogpu/glitter/internal/path"
	"github.com/gogpu/glitter/internal/raster"
	"github.com/gogpu/glitter/internal/stroke"
)

// Operator is a compositing operator.
type Operator = blend.Operator

// Porter-Duff operators.
const (
	OpClear    = blend.OpClear
	OpSource   = blend.OpSource
	OpOver     = blend.OpOver
	OpIn       = blend.OpIn
	OpOut      = blend.OpOut
	OpAtop     = blend.OpAtop
	OpDest     = blend.OpDest
	OpDestOver = blend.OpDestOver
	OpDestIn   = blend.OpDestIn
	OpDestOut  = blend.OpDestOut
	OpDestAtop = blend.OpDestAtop
	OpXor      = blend.OpXor
	OpAdd      = blend.OpAdd
	OpSaturate = blend.OpSaturate
)

// Blend modes.
const (
	OpMultiply      = blend.OpMultiply
	OpScreen        = blend.OpScreen
	OpOverlay       = blend.OpOverlay
	OpDarken        = blend.OpDarken
	OpLighten       = blend.OpLighten
	OpColorDodge    = blend.OpColorDodge
	OpColorBurn     = blend.OpColorBurn
	OpHardLight     = blend.OpHardLight
	OpSoftLight     = blend.OpSoftLight
	OpDifference    = blend.OpDifference
	OpExclusion     = blend.OpExclusion
	OpHSLHue        = blend.OpHSLHue
	OpHSLSaturation = blend.OpHSLSaturation
	OpHSLColor      = blend.OpHSLColor
	OpHSLLuminosity = blend.OpHSLLuminosity
)

// ParseOperator returns the operator with the given name, such as
// "over" or "dest-out".
func ParseOperator(name string) (Operator, error) {
	return blend.ParseOperator(name)
}

// FillRule decides which regions of a self-intersecting path are inside.
type FillRule = raster.FillRule

// Fill rules.
const (
	FillRuleNonZero = raster.FillRuleNonZero
	FillRuleEvenOdd = raster.FillRuleEvenOdd
)

// ParseFillRule returns the fill rule named "nonzero" or "evenodd".
func ParseFillRule(name string) (FillRule, error) {
	for _, r := range []FillRule{FillRuleNonZero, FillRuleEvenOdd} {
		if strings.EqualFold(r.String(), name) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("glitter: unknown fill rule %q: %w", name, ErrInvalidArgument)
}

// Antialias selects the sampling quality of fills and clip paths.
type Antialias = raster.Antialias

// Antialiasing modes. AntialiasNone samples pixel centers; AntialiasFast
// uses a coarser vertical grid than the others.
const (
	AntialiasDefault  = raster.AntialiasDefault
	AntialiasNone     = raster.AntialiasNone
	AntialiasGray     = raster.AntialiasGray
	AntialiasSubpixel = raster.AntialiasSubpixel
	AntialiasFast     = raster.AntialiasFast
	AntialiasGood     = raster.AntialiasGood
	AntialiasBest     = raster.AntialiasBest
)

// ParseAntialias returns the antialiasing mode with the given name,
// such as "none" or "best".
func ParseAntialias(name string) (Antialias, error) {
	for a := AntialiasDefault; a <= AntialiasBest; a++ {
		if strings.EqualFold(a.String(), name) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("glitter: unknown antialias mode %q: %w", name, ErrInvalidArgument)
}

// Format is a pixel storage format.
type Format = image.Format

// Pixel formats.
const (
	FormatARGB32 = image.FormatARGB32
	FormatRGB24  = image.FormatRGB24
	FormatA8     = image.FormatA8
)

// Color is a non-premultiplied color with components in [0, 1].
type Color = color.Color

// RGBA returns a color from its components.
func RGBA(r, g, b, a float64) Color {
	return color.RGBA(r, g, b, a)
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	return color.ParseHex(s)
}

// Path is a device-space path built from lines and Bézier curves.
type Path = path.Path

// NewPath returns an empty path.
func NewPath() *Path {
	return path.New()
}

// StrokeStyle is the pen paths are stroked with.
type StrokeStyle = stroke.Style

// LineCap is the shape of the ends of open subpaths.
type LineCap = stroke.LineCap

// Line caps.
const (
	LineCapButt   = stroke.LineCapButt
	LineCapRound  = stroke.LineCapRound
	LineCapSquare = stroke.LineCapSquare
)

// LineJoin is the shape of the corners of a stroke.
type LineJoin = stroke.LineJoin

// Line joins.
const (
	LineJoinMiter = stroke.LineJoinMiter
	LineJoinRound = stroke.LineJoinRound
	LineJoinBevel = stroke.LineJoinBevel
)

// DefaultStrokeStyle returns a one pixel wide pen with butt caps and
// miter joins.
func DefaultStrokeStyle() StrokeStyle {
	return stroke.DefaultStyle()
}
