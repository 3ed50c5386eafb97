package blend

// Non-separable blend modes operate on the whole RGB triplet.

// Lum returns the luminance of a color using BT.601 coefficients.
// Formula: Lum(r, g, b) = 0.30*r + 0.59*g + 0.11*b
func Lum(r, g, b float32) float32 {
	return 0.30*r + 0.59*g + 0.11*b
}

// Sat returns the saturation (max - min) of a color.
func Sat(r, g, b float32) float32 {
	return max(r, g, b) - min(r, g, b)
}

// ClipColor brings every component into [0,1] while preserving
// luminance.
func ClipColor(r, g, b float32) (float32, float32, float32) {
	l := Lum(r, g, b)
	n := min(r, g, b)
	x := max(r, g, b)

	if n < 0 && l > n {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 && x > l {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

// SetLum shifts a color to luminance l.
func SetLum(r, g, b, l float32) (float32, float32, float32) {
	d := l - Lum(r, g, b)
	return ClipColor(r+d, g+d, b+d)
}

// SetSat scales a color to saturation s, keeping its hue.
func SetSat(r, g, b, s float32) (float32, float32, float32) {
	lo, mid, hi := sortRGB(&r, &g, &b)
	if *hi > *lo {
		*mid = (*mid - *lo) * s / (*hi - *lo)
		*hi = s
	} else {
		*mid, *hi = 0, 0
	}
	*lo = 0
	return r, g, b
}

// sortRGB returns pointers to r, g, b ordered by value.
func sortRGB(r, g, b *float32) (lo, mid, hi *float32) {
	switch {
	case *r <= *g && *g <= *b:
		return r, g, b
	case *r <= *b && *b <= *g:
		return r, b, g
	case *b <= *r && *r <= *g:
		return b, r, g
	case *g <= *r && *r <= *b:
		return g, r, b
	case *g <= *b && *b <= *r:
		return g, b, r
	default:
		return b, g, r
	}
}

// B(Cb, Cs) = SetLum(SetSat(Cs, Sat(Cb)), Lum(Cb))
func hue(br, bg, bb, sr, sg, sb float32) (float32, float32, float32) {
	r, g, b := SetSat(sr, sg, sb, Sat(br, bg, bb))
	return SetLum(r, g, b, Lum(br, bg, bb))
}

// B(Cb, Cs) = SetLum(SetSat(Cb, Sat(Cs)), Lum(Cb))
func saturation(br, bg, bb, sr, sg, sb float32) (float32, float32, float32) {
	r, g, b := SetSat(br, bg, bb, Sat(sr, sg, sb))
	return SetLum(r, g, b, Lum(br, bg, bb))
}

// B(Cb, Cs) = SetLum(Cs, Lum(Cb))
func colorMode(br, bg, bb, sr, sg, sb float32) (float32, float32, float32) {
	return SetLum(sr, sg, sb, Lum(br, bg, bb))
}

// B(Cb, Cs) = SetLum(Cb, Lum(Cs))
func luminosity(br, bg, bb, sr, sg, sb float32) (float32, float32, float32) {
	return SetLum(br, bg, bb, Lum(sr, sg, sb))
}

func blendHue(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, hue)
}

func blendSaturation(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, saturation)
}

func blendColor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, colorMode)
}

func blendLuminosity(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparable(sr, sg, sb, sa, dr, dg, db, da, luminosity)
}

// nonSeparable is separable for blend functions of the whole triplet.
func nonSeparable(
	sr, sg, sb, sa, dr, dg, db, da byte,
	blendFunc func(br, bg, bb, sr, sg, sb float32) (float32, float32, float32),
) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	fsa, fda := unit(sa), unit(da)
	cr, cg, cb := blendFunc(
		min(unit(dr)/fda, 1), min(unit(dg)/fda, 1), min(unit(db)/fda, 1),
		min(unit(sr)/fsa, 1), min(unit(sg)/fsa, 1), min(unit(sb)/fsa, 1),
	)
	channel := func(s, d byte, c float32) byte {
		return toByte((1-fsa)*unit(d) + (1-fda)*unit(s) + fsa*fda*c)
	}
	return channel(sr, dr, cr), channel(sg, dg, cg), channel(sb, db, cb), toByte(fsa + fda - fsa*fda)
}
