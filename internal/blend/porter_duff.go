package blend

// Porter-Duff implementations (premultiplied alpha)

func blendClear(_, _, _, _, _, _, _, _ byte) (byte, byte, byte, byte) {
	return 0, 0, 0, 0
}

func blendSource(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) {
	return sr, sg, sb, sa
}

func blendDest(_, _, _, _, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return dr, dg, db, da
}

// blendOver composites source over destination.
// Formula: S + D * (1 - Sa)
func blendOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	if sa == 255 {
		return sr, sg, sb, sa
	}
	invSa := 255 - sa
	return addClamp(sr, mulDiv255(dr, invSa)),
		addClamp(sg, mulDiv255(dg, invSa)),
		addClamp(sb, mulDiv255(db, invSa)),
		addClamp(sa, mulDiv255(da, invSa))
}

// blendDestOver composites destination over source.
// Formula: S * (1 - Da) + D
func blendDestOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return blendOver(dr, dg, db, da, sr, sg, sb, sa)
}

// blendIn shows source where destination is opaque.
// Formula: S * Da
func blendIn(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	return In(sr, sg, sb, sa, da)
}

// blendDestIn shows destination where source is opaque.
// Formula: D * Sa
func blendDestIn(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return In(dr, dg, db, da, sa)
}

// blendOut shows source where destination is transparent.
// Formula: S * (1 - Da)
func blendOut(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	return In(sr, sg, sb, sa, 255-da)
}

// blendDestOut shows destination where source is transparent.
// Formula: D * (1 - Sa)
func blendDestOut(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return In(dr, dg, db, da, 255-sa)
}

// blendAtop composites source over destination, keeping destination alpha.
// Formula: S * Da + D * (1 - Sa)
func blendAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addClamp(mulDiv255(sr, da), mulDiv255(dr, invSa)),
		addClamp(mulDiv255(sg, da), mulDiv255(dg, invSa)),
		addClamp(mulDiv255(sb, da), mulDiv255(db, invSa)),
		da
}

// blendDestAtop composites destination over source, keeping source alpha.
// Formula: S * (1 - Da) + D * Sa
func blendDestAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return blendAtop(dr, dg, db, da, sr, sg, sb, sa)
}

// blendXor keeps source and destination where they don't overlap.
// Formula: S * (1 - Da) + D * (1 - Sa)
func blendXor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	invSa := 255 - sa
	return addClamp(mulDiv255(sr, invDa), mulDiv255(dr, invSa)),
		addClamp(mulDiv255(sg, invDa), mulDiv255(dg, invSa)),
		addClamp(mulDiv255(sb, invDa), mulDiv255(db, invSa)),
		addClamp(mulDiv255(sa, invDa), mulDiv255(da, invSa))
}

// blendAdd adds source and destination.
// Formula: min(S + D, 1)
func blendAdd(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return addClamp(sr, dr), addClamp(sg, dg), addClamp(sb, db), addClamp(sa, da)
}

// blendSaturate adds as much of the source as still fits under the
// destination's remaining alpha.
// Formula: S * min(1, (1 - Da) / Sa) + D
func blendSaturate(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	if invDa := 255 - da; sa > invDa {
		sr, sg, sb, sa = In(sr, sg, sb, sa, divUn8(invDa, sa))
	}
	return blendAdd(sr, sg, sb, sa, dr, dg, db, da)
}
