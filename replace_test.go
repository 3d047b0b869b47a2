package psdkit

import "testing"

func TestReplace(t *testing.T) {
	shape := NewRasterBuffer(4, 4)
	shape.SetNRGBA(1, 1, rgba(0, 0, 0, 200))
	view := solid(20, 10, rgba(5, 5, 5, 255))
	set := NewLayerSet(20, 10,
		NewLayer("view", view, 0, 0),
		NewLayer("part1", shape, 2, 3),
	)

	got, err := Replace(set, gradient(20, 10))
	if err != nil {
		t.Fatal(err)
	}
	part := mustLayer(t, got, RolePart1)
	if part.X != 2 || part.Y != 3 {
		t.Errorf("part moved to (%d,%d)", part.X, part.Y)
	}
	// Canvas (3,4) in the mirrored source holds x = 19-3.
	if c := part.Raster.NRGBAAt(1, 1); c != rgba(16, 4, 7, 200) {
		t.Errorf("cut pixel = %v, want (16,4,7,200)", c)
	}
	if n := alphaCount(part.Raster); n != 1 {
		t.Errorf("silhouette grew to %d pixels", n)
	}
	if mustLayer(t, got, RoleView).Raster != view {
		t.Error("view layer was replaced")
	}
}

func TestReplaceSizeMismatch(t *testing.T) {
	set := NewLayerSet(20, 10)
	if _, err := Replace(set, gradient(10, 10)); !IsCode(err, CodeValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}
