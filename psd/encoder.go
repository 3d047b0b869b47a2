package psd

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"

	"github.com/gogpu/psdkit/internal/names"
)

// Encode writes doc to w.
func Encode(w io.Writer, doc *Document, opts ...Option) error {
	data, err := EncodeToBytes(doc, opts...)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("psd: write: %w", err)
	}
	return nil
}

// EncodeToBytes serializes doc and returns the file contents.
func EncodeToBytes(doc *Document, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	if err := validate(doc); err != nil {
		return nil, err
	}

	w := &writer{buf: make([]byte, 0, estimateSize(doc))}
	writeHeader(w, doc)
	w.u32(0) // colour mode data
	writeResources(w, doc.Resolution)
	writeLayerAndMask(w, doc, o.logger)
	writeComposite(w, doc)

	if w.err != nil {
		return nil, w.err
	}
	return w.buf, nil
}

func validate(doc *Document) error {
	if doc.Width <= 0 || doc.Height <= 0 || doc.Width > MaxDimension || doc.Height > MaxDimension {
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidDimensions, doc.Width, doc.Height)
	}
	if len(doc.Layers) > MaxLayers {
		return fmt.Errorf("%w: %d layers, limit %d", ErrTooManyLayers, len(doc.Layers), MaxLayers)
	}
	for i, l := range doc.Layers {
		if want := l.Rect.Dx() * l.Rect.Dy() * 4; len(l.Pix) != want {
			return fmt.Errorf("%w: layer %d %q has %d bytes, want %d", ErrInvalidPixels, i, l.Name, len(l.Pix), want)
		}
	}
	if doc.Composite != nil && len(doc.Composite) != doc.Width*doc.Height*4 {
		return fmt.Errorf("%w: composite has %d bytes, want %d", ErrInvalidPixels, len(doc.Composite), doc.Width*doc.Height*4)
	}
	return nil
}

// estimateSize returns a capacity hint for the output buffer.
func estimateSize(doc *Document) int {
	n := 1024 + doc.Width*doc.Height*Channels
	for _, l := range doc.Layers {
		n += 128 + len(l.Pix)
	}
	return n
}

func writeHeader(w *writer, doc *Document) {
	w.str(Signature)
	w.u16(Version)
	w.zeros(6)
	w.u16(Channels)
	w.dim(doc.Height)
	w.dim(doc.Width)
	w.u16(Depth)
	w.u16(ColorMode)
}

func writeResources(w *writer, res *Resolution) {
	at := w.reserve()
	if res != nil {
		w.str(ResourceSignature)
		w.u16(ResourceResolution)
		w.u8(0) // empty Pascal name
		w.u8(0) // padded to even
		data := w.reserve()
		w.u32(fixed16(res.HRes))
		w.u16(res.HResUnit)
		w.u16(res.WidthUnit)
		w.u32(fixed16(res.VRes))
		w.u16(res.VResUnit)
		w.u16(res.HeightUnit)
		w.patch(data)
		w.padTo(at+4, 2)
	}
	w.patch(at)
}

// fixed16 converts v to Q16.16.
func fixed16(v float64) uint32 {
	f := math.Round(v * 65536)
	if f < 0 {
		return 0
	}
	if f > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(f)
}

// placement is a layer clipped to the canvas.
type placement struct {
	bounds image.Rectangle // canvas space, empty for off-canvas layers
	local  image.Rectangle // the same area in layer pixel coordinates
}

func place(l Layer, canvas image.Rectangle) placement {
	vis := l.Rect.Intersect(canvas)
	if vis.Empty() {
		return placement{}
	}
	return placement{bounds: vis, local: vis.Sub(l.Rect.Min)}
}

func writeLayerAndMask(w *writer, doc *Document, logger *slog.Logger) {
	section := w.reserve()
	if len(doc.Layers) == 0 {
		w.patch(section)
		return
	}

	canvas := image.Rect(0, 0, doc.Width, doc.Height)
	places := make([]placement, len(doc.Layers))
	for i, l := range doc.Layers {
		places[i] = place(l, canvas)
		switch {
		case places[i].bounds.Empty():
			logger.Warn("psd: layer outside canvas, writing empty record",
				"layer", l.Name, "rect", l.Rect.String(), "canvas", canvas.String())
		case places[i].bounds != l.Rect:
			logger.Debug("psd: layer clipped to canvas",
				"layer", l.Name, "rect", l.Rect.String(), "clipped", places[i].bounds.String())
		}
	}

	info := w.reserve()
	// A negative count tells readers the composite carries alpha.
	w.i16(int16(-len(doc.Layers)))
	for i, l := range doc.Layers {
		writeLayerRecord(w, l, places[i])
	}
	for i, l := range doc.Layers {
		writeChannelData(w, l, places[i])
	}
	w.padTo(info+4, 2)
	w.patch(info)

	w.u32(0) // global layer mask info
	w.patch(section)
}

func writeLayerRecord(w *writer, l Layer, p placement) {
	b := p.bounds
	w.dim(b.Min.Y)
	w.dim(b.Min.X)
	w.dim(b.Max.Y)
	w.dim(b.Max.X)

	size := b.Dx()*b.Dy() + 2
	w.u16(Channels)
	for _, id := range layerChannelIDs {
		w.i16(id)
		w.dim(size)
	}

	w.str(ResourceSignature)
	w.str(BlendModeNormal)
	w.u8(255) // opacity
	w.u8(0)   // clipping: base
	var flags uint8
	if !l.Visible {
		flags |= LayerFlagHidden
	}
	w.u8(flags)
	w.u8(0) // filler

	extra := w.reserve()
	w.u32(0) // layer mask data
	w.u32(0) // blending ranges
	name := names.ASCII(l.Name)
	start := len(w.buf)
	w.u8(uint8(len(name)))
	w.str(name)
	w.padTo(start, 4)
	w.patch(extra)
}

func writeChannelData(w *writer, l Layer, p placement) {
	lw := l.Rect.Dx()
	for _, off := range layerChannelOffsets {
		w.u16(CompressionRaw)
		for y := p.local.Min.Y; y < p.local.Max.Y; y++ {
			row := l.Pix[(y*lw+p.local.Min.X)*4 : (y*lw+p.local.Max.X)*4]
			for x := off; x < len(row); x += 4 {
				w.buf = append(w.buf, row[x])
			}
		}
	}
}

// writeComposite writes the flattened canvas as R, G, B, A planes.
func writeComposite(w *writer, doc *Document) {
	w.u16(CompressionRaw)
	n := doc.Width * doc.Height
	if doc.Composite == nil {
		w.zeros(n * Channels)
		return
	}
	for c := range Channels {
		for i := 0; i < n; i++ {
			w.buf = append(w.buf, doc.Composite[i*4+c])
		}
	}
}
