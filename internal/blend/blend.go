package blend

// Func combines a premultiplied source pixel with a premultiplied
// destination pixel.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

var funcs = [numOperators]Func{
	OpClear:         blendClear,
	OpSource:        blendSource,
	OpOver:          blendOver,
	OpIn:            blendIn,
	OpOut:           blendOut,
	OpAtop:          blendAtop,
	OpDest:          blendDest,
	OpDestOver:      blendDestOver,
	OpDestIn:        blendDestIn,
	OpDestOut:       blendDestOut,
	OpDestAtop:      blendDestAtop,
	OpXor:           blendXor,
	OpAdd:           blendAdd,
	OpSaturate:      blendSaturate,
	OpMultiply:      blendMultiply,
	OpScreen:        blendScreen,
	OpOverlay:       blendOverlay,
	OpDarken:        blendDarken,
	OpLighten:       blendLighten,
	OpColorDodge:    blendColorDodge,
	OpColorBurn:     blendColorBurn,
	OpHardLight:     blendHardLight,
	OpSoftLight:     blendSoftLight,
	OpDifference:    blendDifference,
	OpExclusion:     blendExclusion,
	OpHSLHue:        blendHue,
	OpHSLSaturation: blendSaturation,
	OpHSLColor:      blendColor,
	OpHSLLuminosity: blendLuminosity,
}

// Func returns the pixel function of op, or OVER for an unknown
// operator.
func (op Operator) Func() Func {
	if op.IsValid() {
		return funcs[op]
	}
	return blendOver
}

// In scales a premultiplied pixel by the coverage m.
func In(r, g, b, a, m byte) (byte, byte, byte, byte) {
	switch m {
	case 255:
		return r, g, b, a
	case 0:
		return 0, 0, 0, 0
	}
	return mulDiv255(r, m), mulDiv255(g, m), mulDiv255(b, m), mulDiv255(a, m)
}

// Masked applies f to the source scaled by coverage m: f(S IN m, D).
// This is the masked composite of every operator; an unbounded operator
// therefore changes the destination even where m is zero.
func Masked(f Func, sr, sg, sb, sa, m, dr, dg, db, da byte) (byte, byte, byte, byte) {
	sr, sg, sb, sa = In(sr, sg, sb, sa, m)
	return f(sr, sg, sb, sa, dr, dg, db, da)
}

// Lerp returns D + (f(S, D) - D)*m, the destination interpolated
// towards the composite by coverage m.
func Lerp(f Func, sr, sg, sb, sa, m, dr, dg, db, da byte) (byte, byte, byte, byte) {
	if m == 0 {
		return dr, dg, db, da
	}
	r, g, b, a := f(sr, sg, sb, sa, dr, dg, db, da)
	if m == 255 {
		return r, g, b, a
	}
	return lerp(dr, r, m), lerp(dg, g, m), lerp(db, b, m), lerp(da, a, m)
}

func lerp(d, v, m byte) byte {
	return addClamp(mulDiv255(d, 255-m), mulDiv255(v, m))
}
