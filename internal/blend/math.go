package blend

import "github.com/chewxy/math32"

// mulDiv255 returns round(a*b/255) without a division.
//
// Formula: t = a*b + 128; (t + (t >> 8)) >> 8
//
// This is exact for every pair of bytes.
func mulDiv255(a, b byte) byte {
	t := uint16(a)*uint16(b) + 128
	return byte((t + (t >> 8)) >> 8)
}

// divUn8 returns round(a*255/b) for a <= b, b > 0.
func divUn8(a, b byte) byte {
	return byte((uint16(a)*255 + uint16(b)/2) / uint16(b))
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// unit maps a byte to [0,1].
func unit(v byte) float32 {
	return float32(v) / 255
}

// toByte maps [0,1] to a byte with rounding and clamping.
func toByte(v float32) byte {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return byte(math32.Round(v * 255))
}
