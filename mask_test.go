package psdkit

import (
	"image"
	"testing"
)

// allValues returns a 16x16 mask holding every byte value once.
func allValues() *Mask {
	m := NewMask(16, 16)
	for i := range m.data {
		m.data[i] = uint8(i)
	}
	return m
}

func TestIntersectSelf(t *testing.T) {
	m := allValues()
	got, err := Intersect(m, m)
	if err != nil {
		t.Fatal(err)
	}
	if !Binarize(got, 0).Equal(Binarize(m, 0)) {
		t.Error("Binarize(Intersect(m, m)) != Binarize(m)")
	}

	bin := Binarize(m, 100)
	got, _ = Intersect(bin, bin)
	if !got.Equal(bin) {
		t.Error("Intersect of a binary mask with itself changed it")
	}
}

func TestIntersectValues(t *testing.T) {
	tests := []struct {
		a, b, want uint8
	}{
		{255, 255, 255},
		{255, 128, 128},
		{128, 128, 64},
		{0, 255, 0},
		{1, 1, 1}, // support kept
		{10, 0, 0},
	}
	for _, tt := range tests {
		a, b := NewMask(1, 1), NewMask(1, 1)
		a.Fill(tt.a)
		b.Fill(tt.b)
		got, err := Intersect(a, b)
		if err != nil {
			t.Fatal(err)
		}
		if v := got.At(0, 0); v != tt.want {
			t.Errorf("Intersect(%d, %d) = %d, want %d", tt.a, tt.b, v, tt.want)
		}
	}
}

func TestMaskSizeMismatch(t *testing.T) {
	a, b := NewMask(2, 2), NewMask(3, 2)
	if _, err := Intersect(a, b); !IsCode(err, CodeGeometry) {
		t.Errorf("Intersect: got %v, want geometry error", err)
	}
	if _, err := Subtract(a, b); !IsCode(err, CodeGeometry) {
		t.Errorf("Subtract: got %v, want geometry error", err)
	}
	if _, err := ExtractShape(NewRasterBuffer(2, 2), NewRasterBuffer(1, 1)); !IsCode(err, CodeGeometry) {
		t.Errorf("ExtractShape: got %v, want geometry error", err)
	}
}

func TestBinarize(t *testing.T) {
	got := Binarize(allValues(), 10)
	if n := got.Count(); n != 245 {
		t.Errorf("count above 10 = %d, want 245", n)
	}
	if got.At(0, 0) != 0 || got.At(11, 0) != 255 {
		t.Error("threshold is not exclusive")
	}
}

func TestSubtract(t *testing.T) {
	a, b := NewMask(2, 1), NewMask(2, 1)
	a.Set(0, 0, 200)
	a.Set(1, 0, 50)
	b.Fill(100)
	got, err := Subtract(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got.At(0, 0) != 100 || got.At(1, 0) != 0 {
		t.Errorf("got %d, %d; want 100, 0", got.At(0, 0), got.At(1, 0))
	}
}

func TestExtractShape(t *testing.T) {
	src := gradient(4, 4)
	shape := NewRasterBuffer(4, 4)
	shape.SetNRGBA(1, 2, rgba(0, 0, 0, 90))

	got, err := ExtractShape(src, shape)
	if err != nil {
		t.Fatal(err)
	}
	if c := got.NRGBAAt(1, 2); c != rgba(1, 2, 7, 90) {
		t.Errorf("shape pixel = %v, want source rgb with shape alpha", c)
	}
	if c := got.NRGBAAt(0, 0); c != rgba(0, 0, 0, 0) {
		t.Errorf("outside pixel = %v, want transparent", c)
	}
}

func TestMaskDilate(t *testing.T) {
	m := NewMask(9, 9)
	m.Set(4, 4, 255)
	got := m.Dilate(2)
	if n := got.Count(); n != 25 {
		t.Errorf("dilated count = %d, want 25", n)
	}
	if got.Bounds() != image.Rect(0, 0, 9, 9) {
		t.Errorf("bounds = %v", got.Bounds())
	}
}

func TestColorize(t *testing.T) {
	m := NewMask(2, 1)
	m.Set(0, 0, 255)
	m.Set(1, 0, 128)
	got := Colorize(m, 10, 20, 30, 128)
	if c := got.NRGBAAt(0, 0); c != rgba(10, 20, 30, 128) {
		t.Errorf("full pixel = %v", c)
	}
	if c := got.NRGBAAt(1, 0); c.A != 64 {
		t.Errorf("half pixel alpha = %d, want 64", c.A)
	}
}
