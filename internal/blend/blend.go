package blend

// Mode represents a compositing operator.
type Mode int

const (
	// ModeSourceOver is the default alpha blending mode.
	ModeSourceOver Mode = iota
	// ModeSourceCopy replaces the destination with the source.
	ModeSourceCopy
)

// String returns the operator name.
func (m Mode) String() string {
	switch m {
	case ModeSourceOver:
		return "source-over"
	case ModeSourceCopy:
		return "source-copy"
	default:
		return "unknown"
	}
}

// Row composites src onto dst in place. Both slices hold straight RGBA8
// pixels; only the common prefix of whole pixels is processed.
func Row(dst, src []byte, mode Mode) {
	n := min(len(dst), len(src)) &^ 3
	switch mode {
	case ModeSourceCopy:
		copy(dst[:n], src[:n])
	default:
		for i := 0; i < n; i += 4 {
			sourceOver(dst[i:i+4:i+4], src[i:i+4:i+4])
		}
	}
}

// Pixel composites one straight RGBA8 source pixel over dst.
func Pixel(dst []byte, r, g, b, a byte) {
	sourceOver(dst[:4:4], []byte{r, g, b, a})
}

// sourceOver blends one straight-alpha pixel over another.
//
//	outA = sa + da*(1-sa)
//	outC = (sc*sa + dc*da*(1-sa)) / outA
func sourceOver(dst, src []byte) {
	sa := uint32(src[3])
	switch sa {
	case 0:
		return
	case 255:
		copy(dst, src)
		return
	}
	da := uint32(dst[3])
	if da == 0 {
		copy(dst, src)
		return
	}

	// Work in 255*255 units to keep rounding in one place.
	dw := da * (255 - sa) // dst weight, scaled by 255
	sw := sa * 255        // src weight, same scale
	outA := sw + dw
	for c := 0; c < 3; c++ {
		num := uint32(src[c])*sw + uint32(dst[c])*dw
		dst[c] = byte((num + outA/2) / outA)
	}
	dst[3] = byte(div255Round(outA))
}
