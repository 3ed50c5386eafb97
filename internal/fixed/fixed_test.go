// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fixed

import (
	"testing"

	xfixed "golang.org/x/image/math/fixed"
)

func TestFromFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want Fixed
	}{
		{"zero", 0, 0},
		{"one", 1, 256},
		{"half", 0.5, 128},
		{"negative", -1.5, -384},
		{"rounds", 1.0 / 512, 1},
		{"tiny", 0.001, 0},
		{"saturates", 1e12, 1<<31 - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromFloat(tt.in); got != tt.want {
				t.Errorf("FromFloat(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromInt26_6(t *testing.T) {
	if got := FromInt26_6(xfixed.I(3)); got != FromInt(3) {
		t.Errorf("FromInt26_6(I(3)) = %d, want %d", got, FromInt(3))
	}
	if got := FromInt26_6(xfixed.Int26_6(32)); got != 128 {
		t.Errorf("FromInt26_6(0.5) = %d, want 128", got)
	}
	p := PointFrom26_6(xfixed.P(2, -1))
	if p != Pt(2, -1) {
		t.Errorf("PointFrom26_6 = %+v, want %+v", p, Pt(2, -1))
	}
}

func TestRounding(t *testing.T) {
	tests := []struct {
		in                  Fixed
		integer, down, ceil int
	}{
		{0, 0, 0, 0},
		{128, 0, 0, 1},
		{129, 0, 1, 1},
		{256, 1, 1, 1},
		{-1, -1, 0, 0},
		{-128, -1, -1, 0},
		{-129, -1, -1, 0},
	}
	for _, tt := range tests {
		if got := tt.in.Integer(); got != tt.integer {
			t.Errorf("Integer(%d) = %d, want %d", tt.in, got, tt.integer)
		}
		if got := tt.in.RoundDown(); got != tt.down {
			t.Errorf("RoundDown(%d) = %d, want %d", tt.in, got, tt.down)
		}
		if got := tt.in.Ceil(); got != tt.ceil {
			t.Errorf("Ceil(%d) = %d, want %d", tt.in, got, tt.ceil)
		}
	}
}

func TestFlooredDivRem(t *testing.T) {
	tests := []struct {
		a, b     int32
		quo, rem int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{7, -2, -4, -1},
		{-7, -2, 3, -1},
		{6, 3, 2, 0},
		{-6, 3, -2, 0},
		{0, 5, 0, 0},
	}
	for _, tt := range tests {
		got := FlooredDivRem(tt.a, tt.b)
		if int64(got.Quo) != tt.quo || got.Rem != tt.rem {
			t.Errorf("FlooredDivRem(%d, %d) = (%d, %d), want (%d, %d)",
				tt.a, tt.b, got.Quo, got.Rem, tt.quo, tt.rem)
		}
		if int64(got.Quo)*int64(tt.b)+got.Rem != int64(tt.a) {
			t.Errorf("FlooredDivRem(%d, %d) breaks quo*b+rem == a", tt.a, tt.b)
		}
	}
}

func TestFlooredMulDivRemWide(t *testing.T) {
	// The product overflows 32 bits.
	x, a, b := int32(1<<20), int32(1<<20), int32(3)
	got := FlooredMulDivRem(x, a, b)
	xa := int64(x) * int64(a)
	if int64(got.Quo)*int64(b)+got.Rem != xa {
		t.Fatalf("FlooredMulDivRem lost precision: %+v", got)
	}
	if got.Rem < 0 || got.Rem >= int64(b) {
		t.Fatalf("remainder %d outside [0, %d)", got.Rem, b)
	}

	got = FlooredMulDivRem(-5, 7, 4)
	if got.Quo != -9 || got.Rem != 1 {
		t.Errorf("FlooredMulDivRem(-5, 7, 4) = %+v, want {-9 1}", got)
	}
}

// Stepping n times by a/dy must land exactly where the closed form does.
func TestStepMatchesClosedForm(t *testing.T) {
	cases := []struct{ a, dy int32 }{
		{1, 3},
		{-7, 5},
		{256, 15},
		{-1000, 7},
		{12345, 4096},
		{0, 9},
	}
	for _, c := range cases {
		step := FlooredDivRem(c.a, c.dy)
		var q QuoRem
		for n := int32(1); n <= 2000; n++ {
			q = q.Step(step, int64(c.dy))
			want := FlooredMulDivRem(n, c.a, c.dy)
			if q != want {
				t.Fatalf("a=%d dy=%d n=%d: stepped %+v, closed form %+v", c.a, c.dy, n, q, want)
			}
		}
	}
}

func TestBox(t *testing.T) {
	b := BoxFromInts(0, 0, 10, 10)
	if !b.IsPixelAligned() || b.IsEmpty() {
		t.Fatalf("unexpected box state %+v", b)
	}
	c := b.Intersect(Box{P1: PtF(2.5, 3), P2: PtF(20, 4.25)})
	if c.IsPixelAligned() {
		t.Errorf("intersection %+v should not be pixel aligned", c)
	}
	x, y, w, h := c.RoundOut()
	if x != 2 || y != 3 || w != 8 || h != 2 {
		t.Errorf("RoundOut = %d,%d %dx%d, want 2,3 8x2", x, y, w, h)
	}
	if !b.Intersect(BoxFromInts(20, 20, 30, 30)).IsEmpty() {
		t.Error("disjoint intersection should be empty")
	}
}
