package psdkit

import "github.com/gogpu/psdkit/internal/names"

// Flatten composites the visible layers of set bottom to top onto a
// transparent canvas of the set's size. Layers whose role is listed in
// hide are skipped as well; hide entries match names the way Find does.
func Flatten(set *LayerSet, hide ...Role) *RasterBuffer {
	canvas := NewRasterBuffer(set.Width, set.Height)
	for _, l := range set.Layers {
		if !l.Visible || l.Raster == nil || hidden(l, hide) {
			continue
		}
		PasteOver(canvas, l.Raster, l.Position(), true)
	}
	return canvas
}

func hidden(l Layer, hide []Role) bool {
	if len(hide) == 0 {
		return false
	}
	role := l.Role()
	for _, h := range hide {
		if role == Role(names.Key(string(h))) {
			return true
		}
	}
	return false
}

// TrimTransparentMargins crops r to the bounding box of its non-transparent
// pixels. A fully transparent buffer is returned unchanged.
func TrimTransparentMargins(r *RasterBuffer) *RasterBuffer {
	box, ok := r.BoundingBox()
	if !ok || box == r.Bounds() {
		return r
	}
	out, err := r.Crop(box)
	if err != nil {
		// box lies inside r by construction
		return r
	}
	return out
}

// RemoveIntersection returns a copy of b made transparent wherever both a
// and b have non-zero alpha. Colour channels are kept. Both buffers must
// have the same size.
func RemoveIntersection(a, b *RasterBuffer) (*RasterBuffer, error) {
	if err := sameSize("remove intersection", a.Size(), b.Size()); err != nil {
		return nil, err
	}
	out := b.Clone()
	removed := 0
	for i := 3; i < len(out.data); i += 4 {
		if a.data[i] != 0 && out.data[i] != 0 {
			out.data[i] = 0
			removed++
		}
	}
	Logger().Debug("psdkit: intersection removed", "pixels", removed)
	return out, nil
}
