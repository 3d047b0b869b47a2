package psdkit

import (
	"image"

	"github.com/gogpu/psdkit/internal/blend"
	"github.com/gogpu/psdkit/internal/filter"
)

// Mask is an 8-bit alpha mask. Values range from 0 (fully transparent)
// to 255 (fully opaque).
type Mask struct {
	width  int
	height int
	data   []uint8
}

// NewMask creates a new empty mask with the given dimensions.
func NewMask(width, height int) *Mask {
	width, height = max(width, 0), max(height, 0)
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// At returns the mask value at (x, y), 0 outside the mask.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Set sets the mask value at (x, y). Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int, value uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
}

// Fill fills the entire mask with a value.
func (m *Mask) Fill(value uint8) {
	for i := range m.data {
		m.data[i] = value
	}
}

// Clone creates a copy of the mask.
func (m *Mask) Clone() *Mask {
	clone := NewMask(m.width, m.height)
	copy(clone.data, m.data)
	return clone
}

// Data returns the underlying mask data slice.
func (m *Mask) Data() []uint8 {
	return m.data
}

// Count returns the number of non-zero pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// Equal reports whether two masks have the same size and values.
func (m *Mask) Equal(o *Mask) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Dilate returns the mask grown by n pixels with a 3x3 max filter applied
// n times.
func (m *Mask) Dilate(n int) *Mask {
	return &Mask{width: m.width, height: m.height, data: filter.Dilate(m.data, m.width, m.height, n)}
}

// sameSize fails with CodeGeometry unless all sizes match.
func sameSize(op string, sizes ...image.Point) error {
	for _, s := range sizes[1:] {
		if s != sizes[0] {
			return NewError(CodeGeometry, "%s: size mismatch %v vs %v", op, sizes[0], s)
		}
	}
	return nil
}

// Intersect returns round(a*b/255) per pixel. The support of the result
// is exactly the intersection of both supports: a product of two non-zero
// values that would round to 0 is kept at 1.
func Intersect(a, b *Mask) (*Mask, error) {
	if err := sameSize("intersect", a.Bounds().Size(), b.Bounds().Size()); err != nil {
		return nil, err
	}
	out := NewMask(a.width, a.height)
	for i, av := range a.data {
		bv := b.data[i]
		if av == 0 || bv == 0 {
			continue
		}
		out.data[i] = max(blend.MulDiv255(av, bv), 1)
	}
	return out, nil
}

// Binarize maps every value above threshold to 255 and the rest to 0.
func Binarize(m *Mask, threshold uint8) *Mask {
	out := NewMask(m.width, m.height)
	for i, v := range m.data {
		if v > threshold {
			out.data[i] = 255
		}
	}
	return out
}

// Subtract returns a - b per pixel, floored at 0.
func Subtract(a, b *Mask) (*Mask, error) {
	if err := sameSize("subtract", a.Bounds().Size(), b.Bounds().Size()); err != nil {
		return nil, err
	}
	out := NewMask(a.width, a.height)
	for i, av := range a.data {
		out.data[i] = blend.SubClamp(av, b.data[i])
	}
	return out, nil
}

// ExtractShape cuts colorSource with the silhouette of shape: where
// shape's alpha is non-zero the output takes colorSource's RGB and
// shape's alpha, elsewhere it is fully transparent. Both buffers must have
// the same size.
func ExtractShape(colorSource, shape *RasterBuffer) (*RasterBuffer, error) {
	if err := sameSize("extract shape", colorSource.Size(), shape.Size()); err != nil {
		return nil, err
	}
	out := NewRasterBuffer(shape.width, shape.height)
	for i := 0; i < len(out.data); i += 4 {
		a := shape.data[i+3]
		if a == 0 {
			continue
		}
		copy(out.data[i:i+3], colorSource.data[i:i+3])
		out.data[i+3] = a
	}
	return out, nil
}

// Colorize returns a buffer painted with c wherever m is non-zero, using
// m scaled by c's alpha as the pixel alpha.
func Colorize(m *Mask, r, g, b, a uint8) *RasterBuffer {
	out := NewRasterBuffer(m.width, m.height)
	for i, v := range m.data {
		if v == 0 {
			continue
		}
		p := out.data[i*4 : i*4+4]
		p[0], p[1], p[2], p[3] = r, g, b, blend.MulDiv255(v, a)
	}
	return out
}
