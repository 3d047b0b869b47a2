package psdkit

import "math"

// Align makes a layer set and a replacement image the same size. Equal
// sizes are returned unchanged. With forceResize the image is resampled
// to the canvas; otherwise the layer set is rescaled to the image with
// ScaleLayerSet.
func Align(set *LayerSet, img *RasterBuffer, forceResize bool) (*LayerSet, *RasterBuffer, error) {
	if img.Empty() {
		return nil, nil, NewError(CodeEmptyInput, "replacement image has zero area")
	}
	if img.Size() == set.Bounds().Size() {
		return set, img, nil
	}
	if forceResize {
		Logger().Info("psdkit: resizing image to canvas", "from", img.Size(), "to", set.Bounds().Size())
		return set, img.ResizeTo(set.Width, set.Height), nil
	}
	Logger().Info("psdkit: scaling layer set to image", "from", set.Bounds().Size(), "to", img.Size())
	scaled, err := ScaleLayerSet(set, img.Width(), img.Height())
	if err != nil {
		return nil, nil, err
	}
	return scaled, img, nil
}

// ScaleLayerSet resamples every layer raster and scales every position so
// the canvas becomes width x height. Each layer keeps at least one pixel
// in each direction.
func ScaleLayerSet(set *LayerSet, width, height int) (*LayerSet, error) {
	sx, sy, err := scaleFactors(set, width, height)
	if err != nil {
		return nil, err
	}
	layers := make([]Layer, len(set.Layers))
	for i, l := range set.Layers {
		x0, y0 := scale(l.X, sx), scale(l.Y, sy)
		w := max(1, scale(l.X+l.Width(), sx)-x0)
		h := max(1, scale(l.Y+l.Height(), sy)-y0)
		layers[i] = l.moved(l.Raster.ResizeTo(w, h), x0, y0)
	}
	return set.withLayers(width, height, layers), nil
}

// ScaleBounds rescales the canvas and the layer positions but leaves the
// pixel data untouched. It is a fast path for previews: layer rasters no
// longer match the scaled canvas density, so the result must not be used
// where pixels are cut or composited against the new canvas.
func ScaleBounds(set *LayerSet, width, height int) (*LayerSet, error) {
	sx, sy, err := scaleFactors(set, width, height)
	if err != nil {
		return nil, err
	}
	layers := make([]Layer, len(set.Layers))
	for i, l := range set.Layers {
		layers[i] = l.moved(l.Raster, scale(l.X, sx), scale(l.Y, sy))
	}
	return set.withLayers(width, height, layers), nil
}

func scaleFactors(set *LayerSet, width, height int) (float64, float64, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, NewError(CodeGeometry, "target size %dx%d must be positive", width, height)
	}
	if set.Width <= 0 || set.Height <= 0 {
		return 0, 0, NewError(CodeGeometry, "canvas %dx%d has zero area", set.Width, set.Height)
	}
	return float64(width) / float64(set.Width), float64(height) / float64(set.Height), nil
}

func scale(v int, f float64) int {
	return int(math.Round(float64(v) * f))
}

// AddWindow resamples component to the view layer's size and appends it
// as the top layer named "window" at the view's position.
func AddWindow(set *LayerSet, component *RasterBuffer) (*LayerSet, error) {
	view, ok := set.Find(RoleView)
	if !ok {
		return nil, WrapError(CodeValidation, &MissingRolesError{Missing: []Role{RoleView}}, "add window")
	}
	if component.Empty() {
		return nil, NewError(CodeEmptyInput, "window component has zero area")
	}
	resized := component
	if component.Size() != view.Raster.Size() {
		resized = component.ResizeTo(view.Width(), view.Height())
	}
	layers := make([]Layer, len(set.Layers), len(set.Layers)+1)
	copy(layers, set.Layers)
	layers = append(layers, NewLayer(string(RoleWindow), resized, view.X, view.Y))
	return set.withLayers(set.Width, set.Height, layers), nil
}
