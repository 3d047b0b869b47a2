package filter

import "sync"

// Blur applies a separable Gaussian blur to a single-channel plane.
// Samples outside the plane are clamped to the nearest edge pixel.
// A radius <= 0 returns a copy of src.
func Blur(src []uint8, width, height int, radius float64) []uint8 {
	dst := make([]uint8, len(src))
	if width <= 0 || height <= 0 {
		return dst
	}
	if radius <= 0 {
		copy(dst, src)
		return dst
	}

	kernel := CachedGaussianKernel(radius)

	temp := getTempBuffer(width * height)
	defer putTempBuffer(temp)

	blurHorizontal(src, temp, width, height, kernel)
	blurVertical(temp, dst, width, height, kernel)
	return dst
}

// blurHorizontal convolves each row of src into temp.
func blurHorizontal(src []uint8, temp []float32, width, height int, kernel []float32) {
	half := len(kernel) / 2
	for y := 0; y < height; y++ {
		row := src[y*width : (y+1)*width]
		out := temp[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			var acc float32
			for k, weight := range kernel {
				kx := clampInt(x+k-half, 0, width-1)
				acc += float32(row[kx]) * weight
			}
			out[x] = acc
		}
	}
}

// blurVertical convolves each column of temp into dst.
func blurVertical(temp []float32, dst []uint8, width, height int, kernel []float32) {
	half := len(kernel) / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var acc float32
			for k, weight := range kernel {
				ky := clampInt(y+k-half, 0, height-1)
				acc += temp[ky*width+x] * weight
			}
			dst[y*width+x] = clampUint8(acc)
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{data: make([]float32, 1024*1024)}
	},
}

// getTempBuffer retrieves a buffer with at least size elements.
// The returned elements are not cleared; callers overwrite every slot.
func getTempBuffer(size int) []float32 {
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}
	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []float32) {
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampInt clamps v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampUint8 rounds and clamps a float to [0, 255].
func clampUint8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
