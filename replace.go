package psdkit

// Replace fills every part layer with the matching region of source,
// keeping each part's silhouette. source is mirrored horizontally first
// and must have the canvas size. Non-part layers are kept as they are.
func Replace(set *LayerSet, source *RasterBuffer) (*LayerSet, error) {
	if source.Size() != set.Bounds().Size() {
		return nil, NewError(CodeValidation, "replacement image is %v, canvas is %v",
			source.Size(), set.Bounds().Size())
	}
	mirrored := source.FlipHorizontal()

	layers := make([]Layer, len(set.Layers))
	for i, l := range set.Layers {
		if !l.Role().IsPart() {
			layers[i] = l
			continue
		}
		region := NewRasterBuffer(l.Width(), l.Height())
		PasteOver(region, mirrored, l.Position().Mul(-1), false)
		cut, err := ExtractShape(region, l.Raster)
		if err != nil {
			return nil, err
		}
		layers[i] = l.moved(cut, l.X, l.Y)
	}
	return set.withLayers(set.Width, set.Height, layers), nil
}
