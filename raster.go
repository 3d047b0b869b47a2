package psdkit

import (
	"image"
	"image/color"

	"github.com/gogpu/psdkit/internal/blend"
	"github.com/gogpu/psdkit/internal/imageio"
)

// RasterBuffer is a width x height buffer of straight (non-premultiplied)
// RGBA8 pixels, row-major, 4 bytes per pixel.
type RasterBuffer struct {
	width  int
	height int
	data   []uint8
}

// NewRasterBuffer creates a fully transparent buffer. Negative sizes are
// treated as zero.
func NewRasterBuffer(width, height int) *RasterBuffer {
	width, height = max(width, 0), max(height, 0)
	return &RasterBuffer{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// NewRasterBufferFromPix wraps pix, which must hold width*height*4 bytes.
// The buffer takes ownership of pix.
func NewRasterBufferFromPix(width, height int, pix []uint8) (*RasterBuffer, error) {
	if width < 0 || height < 0 || len(pix) != width*height*4 {
		return nil, NewError(CodeGeometry, "pixel data holds %d bytes, want %d for %dx%d",
			len(pix), max(width, 0)*max(height, 0)*4, width, height)
	}
	return &RasterBuffer{width: width, height: height, data: pix}, nil
}

// FromImage copies any image into a new buffer.
func FromImage(img image.Image) *RasterBuffer {
	n := imageio.ToNRGBA(img)
	return &RasterBuffer{width: n.Rect.Dx(), height: n.Rect.Dy(), data: n.Pix}
}

// Width returns the width of the buffer.
func (r *RasterBuffer) Width() int { return r.width }

// Height returns the height of the buffer.
func (r *RasterBuffer) Height() int { return r.height }

// Size returns the buffer dimensions as a point.
func (r *RasterBuffer) Size() image.Point { return image.Pt(r.width, r.height) }

// Empty reports whether the buffer has zero area.
func (r *RasterBuffer) Empty() bool { return r.width == 0 || r.height == 0 }

// Data returns the raw pixel data (RGBA, straight alpha).
func (r *RasterBuffer) Data() []uint8 { return r.data }

// Clone returns a deep copy.
func (r *RasterBuffer) Clone() *RasterBuffer {
	c := NewRasterBuffer(r.width, r.height)
	copy(c.data, r.data)
	return c
}

// SetNRGBA sets a single pixel. Out-of-range coordinates are ignored.
func (r *RasterBuffer) SetNRGBA(x, y int, c color.NRGBA) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	i := (y*r.width + x) * 4
	r.data[i+0] = c.R
	r.data[i+1] = c.G
	r.data[i+2] = c.B
	r.data[i+3] = c.A
}

// NRGBAAt returns a single pixel, transparent outside the buffer.
func (r *RasterBuffer) NRGBAAt(x, y int) color.NRGBA {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return color.NRGBA{}
	}
	i := (y*r.width + x) * 4
	return color.NRGBA{R: r.data[i+0], G: r.data[i+1], B: r.data[i+2], A: r.data[i+3]}
}

// Fill sets every pixel to c.
func (r *RasterBuffer) Fill(c color.NRGBA) {
	for i := 0; i < len(r.data); i += 4 {
		r.data[i+0] = c.R
		r.data[i+1] = c.G
		r.data[i+2] = c.B
		r.data[i+3] = c.A
	}
}

// Crop returns a copy of the part of the buffer inside rect. The rect is
// clipped to the buffer bounds first. A rect lying entirely outside the
// buffer fails with CodeOutOfBounds; a clipped rect of zero area yields an
// empty 0x0 buffer.
func (r *RasterBuffer) Crop(rect image.Rectangle) (*RasterBuffer, error) {
	rect = rect.Canon()
	clipped := rect.Intersect(r.Bounds())
	if clipped.Empty() {
		if rect.Empty() || r.Empty() {
			return NewRasterBuffer(0, 0), nil
		}
		return nil, NewError(CodeOutOfBounds, "crop %v lies outside %dx%d buffer", rect, r.width, r.height)
	}

	out := NewRasterBuffer(clipped.Dx(), clipped.Dy())
	rowBytes := clipped.Dx() * 4
	for y := 0; y < clipped.Dy(); y++ {
		src := ((clipped.Min.Y+y)*r.width + clipped.Min.X) * 4
		copy(out.data[y*rowBytes:(y+1)*rowBytes], r.data[src:src+rowBytes])
	}
	return out, nil
}

// PasteOver composites src onto dst in place with src's top-left corner at
// at, clipping to dst bounds. With useSrcAlpha the source is alpha
// composited (source-over); otherwise source pixels replace the
// destination inside the clipped area.
func PasteOver(dst, src *RasterBuffer, at image.Point, useSrcAlpha bool) {
	mode := blend.ModeSourceOver
	if !useSrcAlpha {
		mode = blend.ModeSourceCopy
	}
	compose(dst, src, at, mode)
}

// compose applies mode row by row over the overlap of src (placed at at)
// and dst.
func compose(dst, src *RasterBuffer, at image.Point, mode blend.Mode) {
	area := src.Bounds().Add(at).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}
	rowBytes := area.Dx() * 4
	for y := area.Min.Y; y < area.Max.Y; y++ {
		d := (y*dst.width + area.Min.X) * 4
		s := ((y-at.Y)*src.width + area.Min.X - at.X) * 4
		blend.Row(dst.data[d:d+rowBytes], src.data[s:s+rowBytes], mode)
	}
}

// ResizeTo returns a copy resampled to width x height with a Lanczos
// filter. The aspect ratio is not preserved.
func (r *RasterBuffer) ResizeTo(width, height int) *RasterBuffer {
	return FromImage(imageio.Resize(r.NRGBA(), width, height))
}

// BoundingBox returns the smallest rectangle containing every pixel with
// alpha > 0. ok is false when the buffer is fully transparent.
func (r *RasterBuffer) BoundingBox() (rect image.Rectangle, ok bool) {
	minX, minY, maxX, maxY := r.width, r.height, -1, -1
	for y := 0; y < r.height; y++ {
		row := r.data[y*r.width*4 : (y+1)*r.width*4]
		for x := 0; x < r.width; x++ {
			if row[x*4+3] == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// FlipHorizontal returns a copy mirrored left to right.
func (r *RasterBuffer) FlipHorizontal() *RasterBuffer {
	out := NewRasterBuffer(r.width, r.height)
	for y := 0; y < r.height; y++ {
		row := y * r.width * 4
		for x := 0; x < r.width; x++ {
			copy(out.data[row+(r.width-1-x)*4:row+(r.width-x)*4], r.data[row+x*4:row+x*4+4])
		}
	}
	return out
}

// FlipVertical returns a copy flipped top to bottom.
func (r *RasterBuffer) FlipVertical() *RasterBuffer {
	out := NewRasterBuffer(r.width, r.height)
	rowBytes := r.width * 4
	for y := 0; y < r.height; y++ {
		copy(out.data[(r.height-1-y)*rowBytes:(r.height-y)*rowBytes], r.data[y*rowBytes:(y+1)*rowBytes])
	}
	return out
}

// Expand returns a copy with pad transparent pixels added on every side.
func (r *RasterBuffer) Expand(pad int) *RasterBuffer {
	if pad <= 0 {
		return r.Clone()
	}
	out := NewRasterBuffer(r.width+2*pad, r.height+2*pad)
	PasteOver(out, r, image.Pt(pad, pad), false)
	return out
}

// Alpha returns a copy of the alpha channel as a mask.
func (r *RasterBuffer) Alpha() *Mask {
	m := NewMask(r.width, r.height)
	for i := range m.data {
		m.data[i] = r.data[i*4+3]
	}
	return m
}

// NRGBA returns an *image.NRGBA sharing the buffer's pixels.
func (r *RasterBuffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.data,
		Stride: r.width * 4,
		Rect:   image.Rect(0, 0, r.width, r.height),
	}
}

// At implements the image.Image interface.
func (r *RasterBuffer) At(x, y int) color.Color {
	return r.NRGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (r *RasterBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// ColorModel implements the image.Image interface.
func (r *RasterBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
