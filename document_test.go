package psdkit

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/gogpu/psdkit/psd"
)

func TestDocumentRoundTrip(t *testing.T) {
	src := unfoldedTemplate()
	src.Layers[0].Visible = false
	src.Resolution = &psd.Resolution{HRes: 300, HResUnit: 1, WidthUnit: 1, VRes: 300, VResUnit: 1, HeightUnit: 1}

	var buf bytes.Buffer
	if err := Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if got.Width != src.Width || got.Height != src.Height {
		t.Fatalf("canvas = %dx%d", got.Width, got.Height)
	}
	if got.Resolution == nil || got.Resolution.HRes != 300 {
		t.Errorf("resolution = %+v", got.Resolution)
	}
	if len(got.Layers) != len(src.Layers) {
		t.Fatalf("layers = %d, want %d", len(got.Layers), len(src.Layers))
	}
	for i, l := range got.Layers {
		want := src.Layers[i]
		if l.Name != want.Name || l.Rect() != want.Rect() || l.Visible != want.Visible {
			t.Errorf("layer %d = %q %v visible=%v, want %q %v visible=%v",
				i, l.Name, l.Rect(), l.Visible, want.Name, want.Rect(), want.Visible)
		}
		if !samePixels(l.Raster, want.Raster) {
			t.Errorf("layer %q pixels differ", l.Name)
		}
	}
}

func TestDocumentDefaultResolution(t *testing.T) {
	data, err := EncodeBytes(NewLayerSet(2, 2, NewLayer("view", solid(2, 2, rgba(0, 0, 0, 255)), 0, 0)))
	if err != nil {
		t.Fatal(err)
	}
	res, ok, err := psd.ReadResolution(bytes.NewReader(data))
	if err != nil || !ok {
		t.Fatalf("ReadResolution: %v, ok=%v", err, ok)
	}
	if res != psd.DefaultResolution() {
		t.Errorf("resolution = %+v, want 72 DPI", res)
	}
}

func TestDocumentScenario(t *testing.T) {
	set := NewLayerSet(1000, 1000,
		NewLayer("view", solid(600, 600, rgba(1, 1, 1, 255)), 200, 200),
		NewLayer("part1", solid(200, 1000, rgba(2, 2, 2, 255)), 0, 0),
	)
	data, err := EncodeBytes(set)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != 1000 || got.Height != 1000 || len(got.Layers) != 2 {
		t.Fatalf("got %dx%d with %d layers", got.Width, got.Height, len(got.Layers))
	}
	want := []struct {
		name string
		rect image.Rectangle
	}{
		{"view", image.Rect(200, 200, 800, 800)},
		{"part1", image.Rect(0, 0, 200, 1000)},
	}
	for i, w := range want {
		if l := got.Layers[i]; l.Name != w.name || l.Rect() != w.rect {
			t.Errorf("layer %d = %q %v, want %q %v", i, l.Name, l.Rect(), w.name, w.rect)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	t.Run("too many layers", func(t *testing.T) {
		set := NewLayerSet(1, 1)
		px := solid(1, 1, rgba(0, 0, 0, 255))
		for range psd.MaxLayers + 1 {
			set.Layers = append(set.Layers, NewLayer("l", px, 0, 0))
		}
		_, err := EncodeBytes(set)
		if !IsCode(err, CodeEncodingOverflow) || !errors.Is(err, psd.ErrTooManyLayers) {
			t.Errorf("got %v, want encoding overflow wrapping ErrTooManyLayers", err)
		}
	})

	t.Run("empty canvas", func(t *testing.T) {
		if _, err := EncodeBytes(NewLayerSet(0, 5)); !IsCode(err, CodeGeometry) {
			t.Errorf("got %v, want geometry error", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := DecodeBytes([]byte("not a document")); !IsCode(err, CodeIO) {
			t.Errorf("got %v, want io error", err)
		}
	})
}
