package filter

// Dilate grows the support of a plane by one pixel per iteration: each
// output pixel is the maximum of its 3x3 neighbourhood. Pixels outside the
// plane count as 0. The square neighbourhood makes n iterations equal to a
// single (2n+1)x(2n+1) max filter.
func Dilate(src []uint8, width, height, iterations int) []uint8 {
	if iterations <= 0 {
		return append([]uint8(nil), src...)
	}
	return MaxFilter(src, width, height, 2*iterations+1)
}

// MaxFilter replaces every pixel with the maximum over a size x size
// square centred on it. Even sizes are rounded up to the next odd size.
// Pixels outside the plane count as 0.
func MaxFilter(src []uint8, width, height, size int) []uint8 {
	out := make([]uint8, len(src))
	if width <= 0 || height <= 0 {
		return out
	}
	radius := size / 2
	if radius <= 0 {
		copy(out, src)
		return out
	}

	// The square max is separable: rows first, then columns.
	tmp := make([]uint8, len(src))
	for y := 0; y < height; y++ {
		maxRun(src[y*width:(y+1)*width], tmp[y*width:(y+1)*width], 1, width, radius)
	}
	for x := 0; x < width; x++ {
		maxRun(tmp[x:], out[x:], width, height, radius)
	}
	return out
}

// maxRun computes a sliding window maximum of the given radius over n
// samples spaced stride apart.
func maxRun(src, dst []uint8, stride, n, radius int) {
	for i := 0; i < n; i++ {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		var m uint8
		for j := lo; j <= hi; j++ {
			if v := src[j*stride]; v > m {
				m = v
				if m == 255 {
					break
				}
			}
		}
		dst[i*stride] = m
	}
}
