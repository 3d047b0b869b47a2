package psd

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"log/slog"
)

// Decode reads a whole document from r. Only 8-bit RGB documents with
// three or four channels are supported; layer channels other than alpha,
// red, green and blue (such as user masks) are skipped.
func Decode(rd io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("psd: read: %w", err)
	}
	return DecodeBytes(data, opts...)
}

// DecodeBytes parses a document held in memory.
func DecodeBytes(data []byte, opts ...Option) (*Document, error) {
	o := buildOptions(opts)
	r := &reader{b: data}
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	r.section() // colour mode data
	res := readResources(r.section())

	doc := &Document{Width: h.width, Height: h.height, Resolution: res}

	lm := r.section()
	if r.err != nil {
		return nil, r.err
	}
	if lm.remaining() > 0 {
		doc.Layers, err = readLayers(lm.section(), o.logger)
		if err != nil {
			return nil, err
		}
	}

	planes, err := readPlanes(r, h.width, h.height, h.channels)
	if err != nil {
		return nil, fmt.Errorf("psd: composite: %w", err)
	}
	doc.Composite = interleave(planes, h.width*h.height)
	return doc, nil
}

// ReadResolution reads only as far as the image resources and returns
// the ResolutionInfo block. When the document has none it returns
// DefaultResolution and ok == false.
func ReadResolution(rd io.Reader) (res Resolution, ok bool, err error) {
	head := make([]byte, 26)
	if _, err := io.ReadFull(rd, head); err != nil {
		return Resolution{}, false, fmt.Errorf("psd: read header: %w", err)
	}
	if _, err := readHeader(&reader{b: head}); err != nil {
		return Resolution{}, false, err
	}

	// Colour mode data is skipped; image resources follow it.
	if _, err := readSection(rd, io.Discard); err != nil {
		return Resolution{}, false, err
	}
	var body bytes.Buffer
	if _, err := readSection(rd, &body); err != nil {
		return Resolution{}, false, err
	}
	if r := readResources(&reader{b: body.Bytes()}); r != nil {
		return *r, true, nil
	}
	return DefaultResolution(), false, nil
}

// readSection copies one length-prefixed section from rd to dst.
func readSection(rd io.Reader, dst io.Writer) (int64, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(rd, lenBuf[:]); err != nil {
		return 0, fmt.Errorf("psd: read section length: %w", err)
	}
	n, err := io.CopyN(dst, rd, int64(binary.BigEndian.Uint32(lenBuf[:])))
	if err != nil {
		return n, fmt.Errorf("psd: read section: %w", ErrTruncated)
	}
	return n, nil
}

type header struct {
	width, height, channels int
}

func readHeader(r *reader) (header, error) {
	if string(r.take(4)) != Signature {
		if r.err != nil {
			return header{}, r.err
		}
		return header{}, ErrInvalidSignature
	}
	if v := r.u16(); v != Version && r.err == nil {
		return header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	r.skip(6)
	h := header{channels: int(r.u16())}
	h.height = int(r.u32())
	h.width = int(r.u32())
	depth, mode := r.u16(), r.u16()
	if r.err != nil {
		return header{}, r.err
	}
	if depth != Depth || mode != ColorMode || h.channels < 3 || h.channels > MaxChannels {
		return header{}, fmt.Errorf("%w: depth %d, mode %d, %d channels", ErrUnsupportedFormat, depth, mode, h.channels)
	}
	if h.width <= 0 || h.height <= 0 || h.width > MaxDimension || h.height > MaxDimension {
		return header{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, h.width, h.height)
	}
	return h, nil
}

// readResources scans image resource blocks for ResolutionInfo.
func readResources(r *reader) *Resolution {
	var res *Resolution
	for r.err == nil && r.remaining() >= 12 {
		r.take(4) // signature
		id := r.u16()
		r.pascal(2)
		block := r.section()
		if n := len(block.b); n%2 == 1 {
			r.skip(1)
		}
		if id == ResourceResolution && len(block.b) >= 16 {
			res = &Resolution{
				HRes:       float64(block.u32()) / 65536,
				HResUnit:   block.u16(),
				WidthUnit:  block.u16(),
				VRes:       float64(block.u32()) / 65536,
				VResUnit:   block.u16(),
				HeightUnit: block.u16(),
			}
		}
	}
	return res
}

type channelInfo struct {
	id   int16
	size int
}

type layerRecord struct {
	layer    Layer
	channels []channelInfo
}

func readLayers(r *reader, logger *slog.Logger) ([]Layer, error) {
	if r.err != nil {
		return nil, fmt.Errorf("psd: layer info: %w", r.err)
	}
	if r.remaining() == 0 {
		return nil, nil
	}
	count := int(r.i16())
	if count < 0 {
		count = -count
	}

	records := make([]layerRecord, count)
	for i := range records {
		rec, err := readLayerRecord(r)
		if err != nil {
			return nil, fmt.Errorf("psd: layer record %d: %w", i, err)
		}
		records[i] = rec
	}

	layers := make([]Layer, count)
	for i, rec := range records {
		l := rec.layer
		w, h := l.Rect.Dx(), l.Rect.Dy()
		if w > MaxDimension || h > MaxDimension {
			return nil, fmt.Errorf("%w: layer %q is %dx%d", ErrInvalidDimensions, l.Name, w, h)
		}

		// Every channel is sliced and checked before the pixels are
		// allocated, so declared bounds cannot outgrow the data.
		data := make([][]byte, len(rec.channels))
		for c, ch := range rec.channels {
			data[c] = r.take(ch.size)
			if r.err != nil {
				return nil, fmt.Errorf("psd: layer %q channel %d: %w", l.Name, ch.id, r.err)
			}
			if _, ok := channelOffset(ch.id); !ok || w*h == 0 {
				if !ok {
					logger.Debug("psd: skipping layer channel", "layer", l.Name, "channel", ch.id, "bytes", ch.size)
				}
				continue
			}
			if err := checkChannel(data[c], w, h); err != nil {
				return nil, fmt.Errorf("psd: layer %q channel %d: %w", l.Name, ch.id, err)
			}
		}

		l.Pix = make([]byte, w*h*4)
		hasAlpha := false
		for c, ch := range rec.channels {
			off, ok := channelOffset(ch.id)
			if !ok || w*h == 0 {
				continue
			}
			plane, err := readChannel(data[c], w, h)
			if err != nil {
				return nil, fmt.Errorf("psd: layer %q channel %d: %w", l.Name, ch.id, err)
			}
			for p, v := range plane {
				l.Pix[p*4+off] = v
			}
			hasAlpha = hasAlpha || ch.id == -1
		}
		if !hasAlpha {
			for p := 3; p < len(l.Pix); p += 4 {
				l.Pix[p] = 255
			}
		}
		layers[i] = l
	}
	return layers, nil
}

func channelOffset(id int16) (int, bool) {
	for i, cid := range layerChannelIDs {
		if cid == id {
			return layerChannelOffsets[i], true
		}
	}
	return 0, false
}

func readLayerRecord(r *reader) (layerRecord, error) {
	top, left, bottom, right := r.i32(), r.i32(), r.i32(), r.i32()
	rec := layerRecord{}
	rec.layer.Rect = image.Rect(int(left), int(top), int(right), int(bottom))

	nch := int(r.u16())
	rec.channels = make([]channelInfo, 0, min(nch, Channels+1))
	for range nch {
		id := r.i16()
		size := int(r.u32())
		rec.channels = append(rec.channels, channelInfo{id: id, size: size})
	}

	if string(r.take(4)) != ResourceSignature && r.err == nil {
		return rec, ErrInvalidSignature
	}
	r.take(4) // blend mode key
	r.u8()    // opacity
	r.u8()    // clipping
	flags := r.u8()
	r.u8() // filler
	rec.layer.Visible = flags&LayerFlagHidden == 0

	extra := r.section()
	extra.section() // layer mask data
	extra.section() // blending ranges
	rec.layer.Name = extra.pascal(4)
	if r.err != nil {
		return rec, r.err
	}
	if extra.err != nil {
		return rec, extra.err
	}
	return rec, nil
}

// interleave merges R, G, B[, A] planes into RGBA pixels. A missing alpha
// plane is treated as opaque.
func interleave(planes [][]byte, n int) []byte {
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		out[i*4+0] = planes[0][i]
		out[i*4+1] = planes[1][i]
		out[i*4+2] = planes[2][i]
		if len(planes) > 3 {
			out[i*4+3] = planes[3][i]
		} else {
			out[i*4+3] = 255
		}
	}
	return out
}
