// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fixed

// QuoRem is an exact rational value quo + rem/d for some implied
// denominator d. Edge positions are kept in this form so that stepping
// never accumulates rounding error.
type QuoRem struct {
	Quo int32
	Rem int64
}

// FlooredDivRem computes floor(a/b) and the matching remainder.
// The remainder has the sign of b, so for b > 0 it lies in [0, b).
func FlooredDivRem(a, b int32) QuoRem {
	qr := QuoRem{Quo: a / b, Rem: int64(a % b)}
	if (a^b) < 0 && qr.Rem != 0 {
		qr.Quo--
		qr.Rem += int64(b)
	}
	return qr
}

// FlooredMulDivRem computes floor(x*a/b) and the matching remainder
// using a 64-bit intermediate product.
func FlooredMulDivRem(x, a, b int32) QuoRem {
	xa := int64(x) * int64(a)
	qr := QuoRem{Quo: int32(xa / int64(b)), Rem: xa % int64(b)} //nolint:gosec // quotient fits for device coordinates
	if (xa >= 0) != (b >= 0) && qr.Rem != 0 {
		qr.Quo--
		qr.Rem += int64(b)
	}
	return qr
}

// Step advances q by d over denominator dy, renormalising the remainder
// into [0, dy). d.Rem must itself lie in (-dy, dy).
func (q QuoRem) Step(d QuoRem, dy int64) QuoRem {
	q.Quo += d.Quo
	q.Rem += d.Rem
	if q.Rem < 0 {
		q.Quo--
		q.Rem += dy
	} else if q.Rem >= dy {
		q.Quo++
		q.Rem -= dy
	}
	return q
}
