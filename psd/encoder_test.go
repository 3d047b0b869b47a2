package psd

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"log/slog"
	"strings"
	"testing"
)

// be concatenates big-endian encodings of the given values.
func be(values ...any) []byte {
	var buf bytes.Buffer
	for _, v := range values {
		switch v := v.(type) {
		case string:
			buf.WriteString(v)
		case []byte:
			buf.Write(v)
		default:
			_ = binary.Write(&buf, binary.BigEndian, v)
		}
	}
	return buf.Bytes()
}

func TestEncodeExactLayout(t *testing.T) {
	doc := &Document{
		Width:  2,
		Height: 1,
		Layers: []Layer{{
			Name:    "a",
			Rect:    image.Rect(0, 0, 1, 1),
			Pix:     []byte{10, 20, 30, 40},
			Visible: true,
		}},
		Composite: []byte{1, 2, 3, 4, 5, 6, 7, 8},
	}

	record := be(
		uint32(0), uint32(0), uint32(1), uint32(1), // top, left, bottom, right
		uint16(4),
		int16(-1), uint32(3), int16(0), uint32(3), int16(1), uint32(3), int16(2), uint32(3),
		"8BIM", "norm",
		uint8(255), uint8(0), uint8(0), uint8(0),
		uint32(12),           // extra data length
		uint32(0), uint32(0), // mask, blending ranges
		uint8(1), "a", uint8(0), uint8(0),
	)
	channels := be(
		uint16(0), uint8(40),
		uint16(0), uint8(10),
		uint16(0), uint8(20),
		uint16(0), uint8(30),
	)
	layerInfo := be(int16(-1), record, channels)
	want := be(
		"8BPS", uint16(1), make([]byte, 6), uint16(4), uint32(1), uint32(2), uint16(8), uint16(3),
		uint32(0), // colour mode data
		uint32(0), // image resources
		uint32(4+len(layerInfo)+4),
		uint32(len(layerInfo)), layerInfo,
		uint32(0), // global mask
		uint16(0),
		[]byte{1, 5}, []byte{2, 6}, []byte{3, 7}, []byte{4, 8},
	)

	got, err := EncodeToBytes(doc)
	if err != nil {
		t.Fatalf("EncodeToBytes: %v", err)
	}
	if len(record) != 70 || len(layerInfo) != 84 {
		t.Fatalf("test fixture sizes changed: record %d, layer info %d", len(record), len(layerInfo))
	}
	if !bytes.Equal(got, want) {
		t.Errorf("encoded bytes differ\n got: % x\nwant: % x", got, want)
	}
}

func TestEncodeResolutionBlock(t *testing.T) {
	res := DefaultResolution()
	doc := &Document{Width: 1, Height: 1, Resolution: &res}

	got, err := EncodeToBytes(doc)
	if err != nil {
		t.Fatalf("EncodeToBytes: %v", err)
	}

	want := be(
		uint32(28),
		"8BIM", uint16(1005), uint8(0), uint8(0), uint32(16),
		uint32(72<<16), uint16(1), uint16(1),
		uint32(72<<16), uint16(1), uint16(1),
	)
	if section := got[30 : 30+len(want)]; !bytes.Equal(section, want) {
		t.Errorf("resource section\n got: % x\nwant: % x", section, want)
	}
}

func TestEncodeFixedPoint(t *testing.T) {
	tests := []struct {
		in   float64
		want uint32
	}{
		{72, 0x00480000},
		{300, 0x012C0000},
		{72.5, 0x00488000},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := fixed16(tt.in); got != tt.want {
			t.Errorf("fixed16(%v) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestEncodeClipsLayers(t *testing.T) {
	// 3x2 layer placed at (-1, 1) on a 4x2 canvas: only columns 1..2 and
	// row 0 of the layer are visible.
	pix := make([]byte, 3*2*4)
	for i := range 6 {
		pix[i*4+0] = byte(10 + i) // red encodes the pixel index
		pix[i*4+3] = 255
	}
	doc := &Document{
		Width:  4,
		Height: 2,
		Layers: []Layer{
			{Name: "clipped", Rect: image.Rect(-1, 1, 2, 3), Pix: pix, Visible: true},
			{Name: "outside", Rect: image.Rect(10, 10, 12, 12), Pix: make([]byte, 16), Visible: false},
		},
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	data, err := EncodeToBytes(doc, WithLogger(logger))
	if err != nil {
		t.Fatalf("EncodeToBytes: %v", err)
	}
	if !strings.Contains(logs.String(), "layer outside canvas") {
		t.Errorf("expected a warning for the off-canvas layer, got %q", logs.String())
	}

	got, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	if len(got.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(got.Layers))
	}

	clipped := got.Layers[0]
	if clipped.Rect != image.Rect(0, 1, 2, 2) {
		t.Errorf("expected clipped rect (0,1)-(2,2), got %v", clipped.Rect)
	}
	if clipped.Pix[0] != 11 || clipped.Pix[4] != 12 {
		t.Errorf("expected pixels 1 and 2 of the source row, got red %d and %d", clipped.Pix[0], clipped.Pix[4])
	}

	outside := got.Layers[1]
	if !outside.Rect.Empty() || len(outside.Pix) != 0 {
		t.Errorf("expected an empty record, got %v with %d bytes", outside.Rect, len(outside.Pix))
	}
	if outside.Visible {
		t.Error("expected the hidden flag to survive")
	}
	if outside.Name != "outside" {
		t.Errorf("expected name %q, got %q", "outside", outside.Name)
	}
}

func TestEncodeNames(t *testing.T) {
	long := strings.Repeat("n", 300)
	doc := &Document{
		Width:  1,
		Height: 1,
		Layers: []Layer{
			{Name: "view\x00", Rect: image.Rect(0, 0, 1, 1), Pix: make([]byte, 4)},
			{Name: "café", Rect: image.Rect(0, 0, 1, 1), Pix: make([]byte, 4)},
			{Name: long, Rect: image.Rect(0, 0, 1, 1), Pix: make([]byte, 4)},
			{Name: "", Rect: image.Rect(0, 0, 1, 1), Pix: make([]byte, 4)},
		},
	}
	data, err := EncodeToBytes(doc)
	if err != nil {
		t.Fatalf("EncodeToBytes: %v", err)
	}
	got, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}

	want := []string{"view", "cafe", long[:255], "unnamed_layer"}
	for i, w := range want {
		if got.Layers[i].Name != w {
			t.Errorf("layer %d: expected name %q, got %q", i, w, got.Layers[i].Name)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		want error
	}{
		{"zero canvas", &Document{Width: 0, Height: 5}, ErrInvalidDimensions},
		{"huge canvas", &Document{Width: MaxDimension + 1, Height: 5}, ErrInvalidDimensions},
		{"pixel mismatch", &Document{Width: 2, Height: 2, Layers: []Layer{{Rect: image.Rect(0, 0, 2, 2), Pix: make([]byte, 3)}}}, ErrInvalidPixels},
		{"composite mismatch", &Document{Width: 2, Height: 2, Composite: make([]byte, 4)}, ErrInvalidPixels},
		{"too many layers", &Document{Width: 1, Height: 1, Layers: make([]Layer, MaxLayers+1)}, ErrTooManyLayers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EncodeToBytes(tt.doc); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEncodeMaxLayers(t *testing.T) {
	layers := make([]Layer, MaxLayers)
	for i := range layers {
		layers[i] = Layer{Name: "l", Rect: image.Rect(0, 0, 0, 0), Visible: true}
	}
	data, err := EncodeToBytes(&Document{Width: 1, Height: 1, Layers: layers})
	if err != nil {
		t.Fatalf("expected %d layers to encode, got %v", MaxLayers, err)
	}
	if count := int16(binary.BigEndian.Uint16(data[42:44])); count != -MaxLayers {
		t.Errorf("expected count %d, got %d", -MaxLayers, count)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncodeWriteError(t *testing.T) {
	err := Encode(failingWriter{}, &Document{Width: 1, Height: 1})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected the write error, got %v", err)
	}
}
