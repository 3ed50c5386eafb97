// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package fixed provides the 24.8 fixed-point coordinate type used by the
// scan converters, together with exact floored division helpers.
//
// Coordinates are device-space pixels scaled by 256. Conversions from
// golang.org/x/image/math/fixed (26.6) are provided so glyph outlines and
// other x/image geometry can be fed to the rasterizer without going
// through float64.
package fixed

import (
	"math"

	xfixed "golang.org/x/image/math/fixed"
)

// FracBits is the number of fractional bits in a Fixed.
const FracBits = 8

// One is 1.0 in fixed point.
const One Fixed = 1 << FracBits

// FracMask selects the fractional part of a Fixed.
const FracMask Fixed = One - 1

// Fixed is a signed 24.8 fixed-point number.
type Fixed int32

// FromInt converts an integer to fixed point.
func FromInt(i int) Fixed {
	return Fixed(i << FracBits)
}

// FromFloat converts f to fixed point, rounding to nearest.
func FromFloat(f float64) Fixed {
	v := math.Round(f * float64(One))
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return Fixed(v)
}

// FromInt26_6 converts a 26.6 value from x/image to 24.8.
func FromInt26_6(v xfixed.Int26_6) Fixed {
	return Fixed(v) << (FracBits - 6)
}

// ToFloat returns f as a float64.
func (f Fixed) ToFloat() float64 {
	return float64(f) / float64(One)
}

// Integer returns the integer part of f, rounded towards negative infinity.
func (f Fixed) Integer() int {
	return int(f >> FracBits)
}

// Frac returns the fractional part of f in [0, One).
func (f Fixed) Frac() Fixed {
	return f & FracMask
}

// IsInteger reports whether f has no fractional part.
func (f Fixed) IsInteger() bool {
	return f&FracMask == 0
}

// RoundDown rounds to the nearest integer, with halves rounded down.
// Used to pick the pixel row whose centre a coordinate covers.
func (f Fixed) RoundDown() int {
	return int((f + One/2 - 1) >> FracBits)
}

// Round rounds to the nearest integer, with halves rounded up.
func (f Fixed) Round() int {
	return int((f + One/2) >> FracBits)
}

// Ceil returns the smallest integer not less than f.
func (f Fixed) Ceil() int {
	return int((f + FracMask) >> FracBits)
}

// Point is a fixed-point device-space position.
type Point struct {
	X, Y Fixed
}

// Pt builds a Point from integer pixel coordinates.
func Pt(x, y int) Point {
	return Point{X: FromInt(x), Y: FromInt(y)}
}

// PtF builds a Point from float coordinates.
func PtF(x, y float64) Point {
	return Point{X: FromFloat(x), Y: FromFloat(y)}
}

// PointFrom26_6 converts an x/image point.
func PointFrom26_6(p xfixed.Point26_6) Point {
	return Point{X: FromInt26_6(p.X), Y: FromInt26_6(p.Y)}
}

// Line is a directed segment between two points.
type Line struct {
	P1, P2 Point
}

// Box is an axis-aligned rectangle with P1 the top-left and P2 the
// bottom-right corner.
type Box struct {
	P1, P2 Point
}

// BoxFromInts builds a box from integer pixel bounds.
func BoxFromInts(x1, y1, x2, y2 int) Box {
	return Box{P1: Pt(x1, y1), P2: Pt(x2, y2)}
}

// IsEmpty reports whether the box has no area.
func (b Box) IsEmpty() bool {
	return b.P2.X <= b.P1.X || b.P2.Y <= b.P1.Y
}

// IsPixelAligned reports whether every corner lies on an integer pixel.
func (b Box) IsPixelAligned() bool {
	return b.P1.X.IsInteger() && b.P1.Y.IsInteger() &&
		b.P2.X.IsInteger() && b.P2.Y.IsInteger()
}

// Intersect returns the overlap of two boxes, which may be empty.
func (b Box) Intersect(o Box) Box {
	r := b
	r.P1.X = max(r.P1.X, o.P1.X)
	r.P1.Y = max(r.P1.Y, o.P1.Y)
	r.P2.X = min(r.P2.X, o.P2.X)
	r.P2.Y = min(r.P2.Y, o.P2.Y)
	return r
}

// RoundOut returns the smallest integer rectangle covering the box as
// (x, y, width, height).
func (b Box) RoundOut() (x, y, w, h int) {
	x = b.P1.X.Integer()
	y = b.P1.Y.Integer()
	w = b.P2.X.Ceil() - x
	h = b.P2.Y.Ceil() - y
	return x, y, w, h
}
