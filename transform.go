package psdkit

import "image"

// DefaultPadding is the extra canvas space TransformOutward adds around
// the unfolded parts.
const DefaultPadding = 400

// flip mirrors a part raster along the axis it folds over: part1 and part3
// horizontally, part2 and part4 vertically.
func flip(role Role, r *RasterBuffer) *RasterBuffer {
	switch role {
	case RolePart1, RolePart3:
		return r.FlipHorizontal()
	case RolePart2, RolePart4:
		return r.FlipVertical()
	}
	return r
}

// foldOffset returns the move that folds a part of size w x h over the
// view. Unfolding moves by the negated offset.
func foldOffset(role Role, w, h int) image.Point {
	switch role {
	case RolePart1:
		return image.Pt(w, 0)
	case RolePart2:
		return image.Pt(0, h)
	case RolePart3:
		return image.Pt(-w, 0)
	case RolePart4:
		return image.Pt(0, -h)
	}
	return image.Point{}
}

// TransformInward folds the four parts over the view: part1 mirrored and
// moved right by its width, part2 flipped and moved down by its height,
// part3 mirrored and moved left, part4 flipped and moved up. Other layers
// and the canvas are unchanged. The set must pass Validate.
func TransformInward(set *LayerSet) (*LayerSet, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	layers := make([]Layer, len(set.Layers))
	for i, l := range set.Layers {
		role := l.Role()
		if !role.IsPart() {
			layers[i] = l
			continue
		}
		d := foldOffset(role, l.Width(), l.Height())
		layers[i] = l.moved(flip(role, l.Raster), l.X+d.X, l.Y+d.Y)
	}
	return set.withLayers(set.Width, set.Height, layers), nil
}

// TransformOutward unfolds the parts around the view on a larger canvas.
// The canvas becomes view.w+part1.w+part3.w+padding by
// view.h+part2.h+part4.h+padding, every layer is shifted to keep the old
// canvas centered, and the parts are flipped and moved outward (part1
// left, part2 up, part3 right, part4 down).
func TransformOutward(set *LayerSet, padding int) (*LayerSet, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	if padding < 0 {
		return nil, NewError(CodeValidation, "padding must not be negative, got %d", padding)
	}
	size := func(r Role) (int, int) {
		l, _ := set.Find(r)
		return l.Width(), l.Height()
	}
	vw, vh := size(RoleView)
	p1w, _ := size(RolePart1)
	_, p2h := size(RolePart2)
	p3w, _ := size(RolePart3)
	_, p4h := size(RolePart4)

	width := vw + p1w + p3w + padding
	height := vh + p2h + p4h + padding
	off := image.Pt(floorHalf(width-set.Width), floorHalf(height-set.Height))

	layers := make([]Layer, len(set.Layers))
	for i, l := range set.Layers {
		role := l.Role()
		pos := l.Position().Add(off)
		if !role.IsPart() {
			layers[i] = l.moved(l.Raster, pos.X, pos.Y)
			continue
		}
		pos = pos.Sub(foldOffset(role, l.Width(), l.Height()))
		layers[i] = l.moved(flip(role, l.Raster), pos.X, pos.Y)
	}
	Logger().Debug("psdkit: unfolded layer set",
		"from", set.Bounds().Size(), "to", image.Pt(width, height), "offset", off)
	return set.withLayers(width, height, layers), nil
}

// floorHalf divides n by two rounding toward negative infinity.
func floorHalf(n int) int {
	if n < 0 {
		return -((-n + 1) / 2)
	}
	return n / 2
}

// CropToReference re-frames every layer to the reference layer's box. For
// each other layer the output is a reference-sized raster carrying the
// other layer's colour and the intersection of both alphas. The result's
// canvas is the reference size, every layer sits at (0,0), and layers are
// ordered view, part1..part4, then the rest in their original order.
func CropToReference(set *LayerSet, reference Role) (*LayerSet, error) {
	ref, ok := set.Find(reference)
	if !ok {
		return nil, WrapError(CodeValidation, &MissingRolesError{Missing: []Role{reference}}, "crop to reference")
	}
	if ref.Raster.Empty() {
		return nil, NewError(CodeGeometry, "reference layer %q has zero area", ref.Name)
	}
	refAlpha := ref.Raster.Alpha()
	w, h := ref.Width(), ref.Height()

	refIndex := set.Index(reference)
	layers := make([]Layer, 0, len(set.Layers))
	for _, i := range cropOrder(set, refIndex) {
		l := set.Layers[i]
		if i == refIndex {
			layers = append(layers, l.moved(l.Raster, 0, 0))
			continue
		}
		aligned := NewRasterBuffer(w, h)
		PasteOver(aligned, l.Raster, l.Position().Sub(ref.Position()), false)
		alpha, err := Intersect(refAlpha, aligned.Alpha())
		if err != nil {
			return nil, err
		}
		for p, a := range alpha.data {
			aligned.data[p*4+3] = a
			if a == 0 {
				aligned.data[p*4], aligned.data[p*4+1], aligned.data[p*4+2] = 0, 0, 0
			}
		}
		layers = append(layers, l.moved(aligned, 0, 0))
	}
	return set.withLayers(w, h, layers), nil
}

// cropOrder lists layer indices with the reference first, then the role
// layers in role order, then everything else.
func cropOrder(set *LayerSet, refIndex int) []int {
	order := make([]int, 0, len(set.Layers))
	used := make([]bool, len(set.Layers))
	take := func(i int) {
		if i >= 0 && !used[i] {
			used[i] = true
			order = append(order, i)
		}
	}
	take(refIndex)
	for _, r := range RequiredRoles {
		take(set.Index(r))
	}
	for i := range set.Layers {
		take(i)
	}
	return order
}

// Restore rebuilds the flat design a template was unfolded from: the
// parts are folded inward and every layer is cropped to the view.
func Restore(set *LayerSet) (*LayerSet, error) {
	folded, err := TransformInward(set)
	if err != nil {
		return nil, err
	}
	return CropToReference(folded, RoleView)
}
