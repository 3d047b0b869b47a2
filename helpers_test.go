package psdkit

import (
	"image"
	"image/color"
	"testing"
)

// solid returns a w x h buffer filled with c.
func solid(w, h int, c color.NRGBA) *RasterBuffer {
	r := NewRasterBuffer(w, h)
	r.Fill(c)
	return r
}

func rgba(r, g, b, a uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// gradient returns a w x h opaque buffer whose red channel encodes x and
// green channel encodes y, so flips and crops are easy to check.
func gradient(w, h int) *RasterBuffer {
	r := NewRasterBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.SetNRGBA(x, y, rgba(uint8(x), uint8(y), 7, 255))
		}
	}
	return r
}

// unfoldedTemplate returns an 80x70 template: a 40x30 view at (20,20)
// with 10px parts unfolded around it.
func unfoldedTemplate() *LayerSet {
	return NewLayerSet(80, 70,
		NewLayer("background", solid(80, 70, rgba(10, 10, 10, 255)), 0, 0),
		NewLayer("view", solid(40, 30, rgba(200, 200, 200, 255)), 20, 20),
		NewLayer("part1", gradient(10, 30), 10, 20),
		NewLayer("part2", gradient(40, 10), 20, 10),
		NewLayer("part3", gradient(10, 30), 60, 20),
		NewLayer("part4", gradient(40, 10), 20, 50),
	)
}

func mustLayer(t *testing.T, set *LayerSet, role Role) Layer {
	t.Helper()
	l, ok := set.Find(role)
	if !ok {
		t.Fatalf("layer %q not found", role)
	}
	return l
}

func alphaCount(r *RasterBuffer) int {
	return r.Alpha().Count()
}

func samePixels(a, b *RasterBuffer) bool {
	if a.Size() != b.Size() {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

var _ image.Image = (*RasterBuffer)(nil)
