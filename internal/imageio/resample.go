package imageio

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Lanczos is a three-lobe Lanczos resampling kernel.
var Lanczos = &draw.Kernel{Support: 3, At: lanczos3}

// lanczos3 evaluates sinc(t) * sinc(t/3) for |t| < 3.
func lanczos3(t float64) float64 {
	if t < 0 {
		t = -t
	}
	if t < 1e-9 {
		return 1
	}
	if t >= 3 {
		return 0
	}
	pt := math.Pi * t
	return 3 * math.Sin(pt) * math.Sin(pt/3) / (pt * pt)
}

// Resize resamples src to width x height with the Lanczos kernel. The
// aspect ratio is not preserved. A non-positive target size yields an
// empty image.
func Resize(src *image.NRGBA, width, height int) *image.NRGBA {
	if width <= 0 || height <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if src.Bounds().Empty() {
		return dst
	}
	if src.Bounds().Dx() == width && src.Bounds().Dy() == height {
		return ToNRGBA(src)
	}
	Lanczos.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
