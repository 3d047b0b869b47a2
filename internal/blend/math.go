// Package blend provides byte-level alpha compositing for straight
// (non-premultiplied) RGBA8 pixel rows.
//
// div255Round avoids integer division by using bit shifts and addition.
// MulDiv255 runs for every pixel of every composite, so it stays
// branch-free.
//
// References:
//   - Alpha blending without division: https://arxiv.org/abs/2202.02864
//   - Alvy Ray Smith's technical memos: http://alvyray.com/Memos/
package blend

// div255Round divides x by 255 rounding to nearest.
//
// Formula: ((x + 128) + ((x + 128) >> 8)) >> 8
func div255Round(x uint32) uint32 {
	t := x + 128
	return (t + (t >> 8)) >> 8
}

// MulDiv255 returns round(a*b/255).
func MulDiv255(a, b byte) byte {
	return byte(div255Round(uint32(a) * uint32(b)))
}

// SubClamp subtracts b from a, clamping to 0.
func SubClamp(a, b byte) byte {
	if b >= a {
		return 0
	}
	return a - b
}
