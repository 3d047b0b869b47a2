package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func TestToNRGBAFromRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 4))
	rgba.Set(1, 2, color.RGBA{R: 100, G: 50, B: 0, A: 200})

	out := ToNRGBA(rgba)
	c := out.NRGBAAt(1, 2)
	if c.A != 200 {
		t.Errorf("expected alpha 200, got %d", c.A)
	}
	if c.R < 126 || c.R > 128 {
		t.Errorf("expected un-premultiplied red ~127, got %d", c.R)
	}
}

func TestToNRGBASubImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	src.SetNRGBA(5, 6, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	sub := src.SubImage(image.Rect(4, 4, 8, 8)).(*image.NRGBA)

	out := ToNRGBA(sub)
	if out.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("expected zero-origin bounds, got %v", out.Bounds())
	}
	if got := out.NRGBAAt(1, 2); got != (color.NRGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("expected copied pixel, got %v", got)
	}
}

func TestPNGRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	data, err := EncodePNGBytes(img)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := LoadBytes(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(got.Pix, img.Pix) {
		t.Error("pixels changed through PNG")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})

	if err := SavePNG(path, img); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.NRGBAAt(0, 0) != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("unexpected pixel %v", got.NRGBAAt(0, 0))
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := LoadBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
	if _, err := LoadBytes([]byte("not an image")); err == nil {
		t.Error("expected a decode error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected an open error")
	}
}
