package psdkit

import (
	"image"
	"image/color"

	"github.com/gogpu/psdkit/internal/filter"
)

// Preview colours.
var (
	previewGray   = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	referenceEdge = color.NRGBA{A: 128}
	referenceFill = color.NRGBA{R: 255, G: 255, B: 255, A: 128}
)

// referenceBorder is the max filter size of the reference outline.
const referenceBorder = 11

// TemplatePreview paints the union of the part layers in 50% gray,
// keeping their combined alpha, and trims the transparent margins. A set
// without part layers yields an opaque gray canvas of the full size.
func TemplatePreview(set *LayerSet) *RasterBuffer {
	union := NewRasterBuffer(set.Width, set.Height)
	parts := 0
	for _, l := range set.Layers {
		if !l.Role().IsPart() {
			continue
		}
		PasteOver(union, l.Raster, l.Position(), true)
		parts++
	}
	if parts == 0 {
		union.Fill(previewGray)
		return union
	}
	g := previewGray
	return TrimTransparentMargins(Colorize(union.Alpha(), g.R, g.G, g.B, 255))
}

// ReferenceImage draws every part layer as a white half-transparent fill
// with a half-transparent black border, composited in layer order on a
// canvas of the set's size.
func ReferenceImage(set *LayerSet) *RasterBuffer {
	out := NewRasterBuffer(set.Width, set.Height)
	for _, l := range set.Layers {
		if !l.Role().IsPart() {
			continue
		}
		placed := NewRasterBuffer(set.Width, set.Height)
		PasteOver(placed, l.Raster, l.Position(), true)
		alpha := placed.Alpha()
		border := filter.MaxFilter(alpha.data, alpha.width, alpha.height, referenceBorder)

		effect := NewRasterBuffer(set.Width, set.Height)
		for i := range alpha.data {
			c := color.NRGBA{}
			switch {
			case alpha.data[i] > 0:
				c = referenceFill
			case border[i] > 0:
				c = referenceEdge
			default:
				continue
			}
			p := effect.data[i*4 : i*4+4]
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
		}
		PasteOver(out, effect, image.Point{}, true)
	}
	return out
}

// FinalPreview flattens set with the view layer hidden and trims the
// transparent margins.
func FinalPreview(set *LayerSet) *RasterBuffer {
	return TrimTransparentMargins(Flatten(set, RoleView))
}
