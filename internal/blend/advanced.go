package blend

import "github.com/chewxy/math32"

// separable applies a per-channel blend function B(Cb, Cs) on
// non-premultiplied channels in [0,1] and composites the result:
//
//	Result = (1 - Sa) * D + (1 - Da) * S + Sa * Da * B(Cb, Cs)
//	Ra     = Sa + Da - Sa * Da
func separable(sr, sg, sb, sa, dr, dg, db, da byte, blendChan func(cb, cs float32) float32) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	fsa, fda := unit(sa), unit(da)
	channel := func(s, d byte) byte {
		fs, fd := unit(s), unit(d)
		cs := min(fs/fsa, 1)
		cb := min(fd/fda, 1)
		return toByte((1-fsa)*fd + (1-fda)*fs + fsa*fda*blendChan(cb, cs))
	}
	return channel(sr, dr), channel(sg, dg), channel(sb, db), toByte(fsa + fda - fsa*fda)
}

// B(Cb, Cs) = Cb * Cs
func multiply(cb, cs float32) float32 { return cb * cs }

// B(Cb, Cs) = Cb + Cs - Cb * Cs
func screen(cb, cs float32) float32 { return cb + cs - cb*cs }

// B(Cb, Cs) = Multiply(Cb, 2*Cs) or Screen(Cb, 2*Cs - 1)
func hardLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return multiply(cb, 2*cs)
	}
	return screen(cb, 2*cs-1)
}

// B(Cb, Cs) = HardLight(Cs, Cb)
func overlay(cb, cs float32) float32 { return hardLight(cs, cb) }

func darken(cb, cs float32) float32  { return min(cb, cs) }
func lighten(cb, cs float32) float32 { return max(cb, cs) }

func colorDodge(cb, cs float32) float32 {
	switch {
	case cb == 0:
		return 0
	case cs >= 1:
		return 1
	}
	return min(1, cb/(1-cs))
}

func colorBurn(cb, cs float32) float32 {
	switch {
	case cb >= 1:
		return 1
	case cs <= 0:
		return 0
	}
	return 1 - min(1, (1-cb)/cs)
}

func softLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float32
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = math32.Sqrt(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}

func difference(cb, cs float32) float32 { return math32.Abs(cb - cs) }

func exclusion(cb, cs float32) float32 { return cb + cs - 2*cb*cs }

func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, multiply)
}

func blendScreen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, screen)
}

func blendOverlay(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, overlay)
}

func blendDarken(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, darken)
}

func blendLighten(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, lighten)
}

func blendColorDodge(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, colorDodge)
}

func blendColorBurn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, colorBurn)
}

func blendHardLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, hardLight)
}

func blendSoftLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, softLight)
}

func blendDifference(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, difference)
}

func blendExclusion(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separable(sr, sg, sb, sa, dr, dg, db, da, exclusion)
}
