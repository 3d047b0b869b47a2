package psdkit

import (
	"errors"
	"image"

	"github.com/gogpu/psdkit/internal/names"
	"github.com/gogpu/psdkit/psd"
)

// Role is a reserved layer name that drives transform rules.
type Role string

// Reserved roles.
const (
	RoleView  Role = "view"
	RolePart1 Role = "part1"
	RolePart2 Role = "part2"
	RolePart3 Role = "part3"
	RolePart4 Role = "part4"

	// RoleWindow names the component layer added on top of the final
	// document. It is not required.
	RoleWindow Role = "window"
)

// RequiredRoles lists the roles every template must carry.
var RequiredRoles = []Role{RoleView, RolePart1, RolePart2, RolePart3, RolePart4}

// PartRoles lists the four part roles in order.
var PartRoles = []Role{RolePart1, RolePart2, RolePart3, RolePart4}

// IsPart reports whether r is one of part1..part4.
func (r Role) IsPart() bool {
	switch r {
	case RolePart1, RolePart2, RolePart3, RolePart4:
		return true
	}
	return false
}

// Layer is a positioned raster. The raster is the layer's own bounding
// box; X and Y place its top-left corner in canvas space and may be
// negative. Transforms return new Layer values and never modify their
// inputs.
type Layer struct {
	Name    string
	Raster  *RasterBuffer
	X, Y    int
	Visible bool
}

// NewLayer returns a visible layer.
func NewLayer(name string, raster *RasterBuffer, x, y int) Layer {
	return Layer{Name: name, Raster: raster, X: x, Y: y, Visible: true}
}

// Role returns the sanitized, lower-cased name as a Role. Names that are
// not reserved come back unchanged in that form.
func (l Layer) Role() Role {
	return Role(names.Key(l.Name))
}

// Position returns the layer's top-left corner.
func (l Layer) Position() image.Point {
	return image.Pt(l.X, l.Y)
}

// Rect returns the layer's extent in canvas space.
func (l Layer) Rect() image.Rectangle {
	return l.Raster.Bounds().Add(l.Position())
}

// Width returns the raster width.
func (l Layer) Width() int { return l.Raster.Width() }

// Height returns the raster height.
func (l Layer) Height() int { return l.Raster.Height() }

// moved returns a copy of l with a different raster and position.
func (l Layer) moved(r *RasterBuffer, x, y int) Layer {
	l.Raster = r
	l.X, l.Y = x, y
	return l
}

// LayerSet is an ordered list of layers on a canvas. Order is paint
// order: the first layer is the bottom one.
type LayerSet struct {
	Width, Height int
	Layers        []Layer

	// Resolution is carried from source to output; nil means 72 DPI.
	Resolution *psd.Resolution
}

// NewLayerSet creates an empty set on a width x height canvas.
func NewLayerSet(width, height int, layers ...Layer) *LayerSet {
	return &LayerSet{Width: width, Height: height, Layers: layers}
}

// Bounds returns the canvas rectangle.
func (s *LayerSet) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// Find returns the first layer whose sanitized name matches role.
func (s *LayerSet) Find(role Role) (Layer, bool) {
	i := s.Index(role)
	if i < 0 {
		return Layer{}, false
	}
	return s.Layers[i], true
}

// Index returns the index of the first layer matching role, or -1.
func (s *LayerSet) Index(role Role) int {
	key := Role(names.Key(string(role)))
	for i, l := range s.Layers {
		if l.Role() == key {
			return i
		}
	}
	return -1
}

// Validate checks that every required role is present exactly once.
// Role names are compared sanitized and case-insensitively, so "view"
// and "VIEW " collide. The error is a CodeValidation *Error wrapping a
// *MissingRolesError and/or a *DuplicateRolesError.
func (s *LayerSet) Validate() error {
	var errs []error
	if missing := s.missing(RequiredRoles); len(missing) > 0 {
		errs = append(errs, &MissingRolesError{Missing: missing})
	}
	if dup := s.duplicated(RequiredRoles); len(dup) > 0 {
		errs = append(errs, &DuplicateRolesError{Duplicate: dup})
	}
	if len(errs) > 0 {
		return WrapError(CodeValidation, errors.Join(errs...), "layer set failed validation")
	}
	return nil
}

// Require checks that the given roles are present.
func (s *LayerSet) Require(roles ...Role) error {
	if missing := s.missing(roles); len(missing) > 0 {
		return WrapError(CodeValidation, &MissingRolesError{Missing: missing}, "layer set failed validation")
	}
	return nil
}

func (s *LayerSet) missing(roles []Role) []Role {
	var out []Role
	for _, r := range roles {
		if s.Index(r) < 0 {
			out = append(out, r)
		}
	}
	return out
}

func (s *LayerSet) duplicated(roles []Role) []Role {
	seen := make(map[Role]int, len(s.Layers))
	for _, l := range s.Layers {
		seen[l.Role()]++
	}
	var out []Role
	for _, r := range roles {
		if seen[Role(names.Key(string(r)))] > 1 {
			out = append(out, r)
		}
	}
	return out
}

// withLayers returns a shallow copy of s carrying layers.
func (s *LayerSet) withLayers(width, height int, layers []Layer) *LayerSet {
	return &LayerSet{Width: width, Height: height, Layers: layers, Resolution: s.Resolution}
}

// Clone returns a copy of s whose layer rasters are deep copies.
func (s *LayerSet) Clone() *LayerSet {
	layers := make([]Layer, len(s.Layers))
	for i, l := range s.Layers {
		layers[i] = l.moved(l.Raster.Clone(), l.X, l.Y)
	}
	return s.withLayers(s.Width, s.Height, layers)
}
