package psdkit

import (
	"bytes"
	"errors"
	"io"

	"github.com/gogpu/psdkit/psd"
)

// ToDocument converts set to the container model. Layer pixels are shared
// with the set; the composite is the flattened set. A nil resolution is
// written as 72 DPI.
func ToDocument(set *LayerSet) *psd.Document {
	res := set.Resolution
	if res == nil {
		def := psd.DefaultResolution()
		res = &def
	}
	doc := &psd.Document{
		Width:      set.Width,
		Height:     set.Height,
		Resolution: res,
		Layers:     make([]psd.Layer, len(set.Layers)),
		Composite:  Flatten(set).data,
	}
	for i, l := range set.Layers {
		doc.Layers[i] = psd.Layer{
			Name:    l.Name,
			Rect:    l.Rect(),
			Pix:     l.Raster.data,
			Visible: l.Visible,
		}
	}
	return doc
}

// FromDocument converts a decoded document to a layer set. Layer pixels
// are shared with doc.
func FromDocument(doc *psd.Document) (*LayerSet, error) {
	set := NewLayerSet(doc.Width, doc.Height)
	set.Resolution = doc.Resolution
	for _, l := range doc.Layers {
		r, err := NewRasterBufferFromPix(l.Rect.Dx(), l.Rect.Dy(), l.Pix)
		if err != nil {
			return nil, WrapError(CodeIO, err, "layer %q", l.Name)
		}
		set.Layers = append(set.Layers, Layer{
			Name:    l.Name,
			Raster:  r,
			X:       l.Rect.Min.X,
			Y:       l.Rect.Min.Y,
			Visible: l.Visible,
		})
	}
	return set, nil
}

// Encode writes set as a layered document to w.
func Encode(w io.Writer, set *LayerSet) error {
	data, err := EncodeBytes(set)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return WrapError(CodeIO, err, "write document")
	}
	return nil
}

// EncodeBytes serializes set as a layered document.
func EncodeBytes(set *LayerSet) ([]byte, error) {
	data, err := psd.EncodeToBytes(ToDocument(set), psd.WithLogger(Logger()))
	if err != nil {
		return nil, encodeError(err)
	}
	Logger().Debug("psdkit: encoded document",
		"width", set.Width, "height", set.Height, "layers", len(set.Layers), "bytes", len(data))
	return data, nil
}

func encodeError(err error) error {
	switch {
	case errors.Is(err, psd.ErrTooManyLayers), errors.Is(err, psd.ErrSectionTooLarge):
		return WrapError(CodeEncodingOverflow, err, "encode document")
	case errors.Is(err, psd.ErrInvalidDimensions), errors.Is(err, psd.ErrInvalidPixels):
		return WrapError(CodeGeometry, err, "encode document")
	}
	return WrapError(CodeIO, err, "encode document")
}

// Decode reads a layered document from r.
func Decode(r io.Reader) (*LayerSet, error) {
	doc, err := psd.Decode(r, psd.WithLogger(Logger()))
	if err != nil {
		return nil, WrapError(CodeIO, err, "decode document")
	}
	return FromDocument(doc)
}

// DecodeBytes parses a layered document held in memory.
func DecodeBytes(data []byte) (*LayerSet, error) {
	return Decode(bytes.NewReader(data))
}
