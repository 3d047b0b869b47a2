package filter

import "testing"

// square returns a w*h plane with an opaque n*n square at (x0, y0).
func square(w, h, x0, y0, n int) []uint8 {
	p := make([]uint8, w*h)
	for y := y0; y < y0+n; y++ {
		for x := x0; x < x0+n; x++ {
			p[y*w+x] = 255
		}
	}
	return p
}

func count(p []uint8) int {
	n := 0
	for _, v := range p {
		if v > 0 {
			n++
		}
	}
	return n
}

func TestDilateGrowsSquare(t *testing.T) {
	tests := []struct {
		name       string
		n, k       int
		wantPixels int
	}{
		{"no iterations", 10, 0, 100},
		{"one", 10, 1, 144},
		{"three", 10, 3, 256},
		{"single pixel", 1, 2, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const w, h = 40, 40
			src := square(w, h, 15, 15, tt.n)
			got := Dilate(src, w, h, tt.k)
			if c := count(got); c != tt.wantPixels {
				t.Errorf("expected %d pixels, got %d", tt.wantPixels, c)
			}
			if count(src) != tt.n*tt.n {
				t.Error("Dilate modified its input")
			}
		})
	}
}

func TestDilateClipsAtEdges(t *testing.T) {
	src := square(5, 5, 0, 0, 1)
	got := Dilate(src, 5, 5, 1)
	if c := count(got); c != 4 {
		t.Errorf("expected 4 pixels at the corner, got %d", c)
	}
}

func TestDilateKeepsMaximum(t *testing.T) {
	src := []uint8{
		0, 0, 0,
		0, 90, 0,
		0, 0, 200,
	}
	got := Dilate(src, 3, 3, 1)
	if got[0] != 90 {
		t.Errorf("expected 90 at (0,0), got %d", got[0])
	}
	if got[4] != 200 {
		t.Errorf("expected 200 at the center, got %d", got[4])
	}
}

func TestMaxFilterSize(t *testing.T) {
	const w, h = 30, 30
	src := square(w, h, 14, 14, 1)
	if c := count(MaxFilter(src, w, h, 11)); c != 121 {
		t.Errorf("expected 121 pixels for size 11, got %d", c)
	}
	if c := count(MaxFilter(src, w, h, 1)); c != 1 {
		t.Errorf("expected identity for size 1, got %d", c)
	}
	if c := count(MaxFilter(src, w, h, 4)); c != 25 {
		t.Errorf("expected size 4 to behave as 5, got %d", c)
	}
}
