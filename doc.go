// Package psdkit builds layered "8BPS" documents for fold-out print
// templates.
//
// # Overview
//
// A template is a layered document with a view layer and four parts
// (part1 left, part2 top, part3 right, part4 bottom) unfolded around it.
// psdkit folds the parts over the view to restore the flat design,
// outlines them with precise or blurred strokes, fills them from a
// replacement image, and unfolds them again into the final document.
//
// # Quick Start
//
//	set, err := psdkit.Decode(f)
//	if err != nil {
//		return err
//	}
//	tpl, err := psdkit.PrepareTemplate(ctx, set, psdkit.WithStrokeWidths(2, 4))
//	if err != nil {
//		return err
//	}
//	res, err := psdkit.Generate(ctx, tpl.Restored, img)
//	if err != nil {
//		return err
//	}
//	data, err := psdkit.EncodeBytes(res.Final)
//
// # Pixels
//
// RasterBuffer holds straight (non-premultiplied) RGBA8 pixels. Layers
// own a raster the size of their bounding box and are placed on the
// canvas by their top-left corner, which may be negative. Rasters are
// treated as immutable once they belong to a Layer: every transform
// returns new layers and may share rasters it did not change.
//
// # Architecture
//
// The library is organized into:
//   - Public API: RasterBuffer, Mask, Layer, LayerSet, transforms, strokes,
//     previews, pipeline
//   - psd: the container encoder and reader
//   - Internal: blend (compositing), filter (dilation, blur), imageio
//     (decode, encode, Lanczos resampling), names (layer name rules)
//
// # Logging
//
// The library is silent by default. Use SetLogger to route diagnostics
// to a slog handler.
package psdkit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
