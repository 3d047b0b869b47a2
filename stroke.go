package psdkit

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/psdkit/internal/filter"
)

// Stroke width limits accepted by StrokeVersions.
const (
	MinStrokeWidth = 1
	MaxStrokeWidth = 10
)

// StrokeStyle selects the ring generator used by Stroke.
type StrokeStyle int

const (
	// StrokePrecise binarizes the alpha and dilates it with a 3x3 window.
	// The ring is exact and hard-edged.
	StrokePrecise StrokeStyle = iota

	// StrokeBlurred dilates, blurs and thresholds the alpha, giving a
	// rounder outline on curved shapes.
	StrokeBlurred
)

// String returns the configuration name of the style.
func (s StrokeStyle) String() string {
	switch s {
	case StrokePrecise:
		return "precise"
	case StrokeBlurred:
		return "blurred"
	default:
		return fmt.Sprintf("StrokeStyle(%d)", int(s))
	}
}

// ParseStrokeStyle parses "precise" or "blurred".
func ParseStrokeStyle(s string) (StrokeStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "precise":
		return StrokePrecise, nil
	case "blurred":
		return StrokeBlurred, nil
	}
	return 0, NewError(CodeValidation, "unknown stroke style %q", s)
}

// DefaultStrokeThreshold is the alpha above which a blurred ring pixel
// is painted.
const DefaultStrokeThreshold = 10

// StrokeSpec describes an outline.
type StrokeSpec struct {
	Width  int
	Color  color.NRGBA
	Style  StrokeStyle
	Smooth float64 // blur scale for StrokeBlurred

	// Threshold cuts the blurred ring; StrokePrecise ignores it.
	Threshold uint8
}

// DefaultStrokeSpec returns a 2px white precise stroke.
func DefaultStrokeSpec() StrokeSpec {
	return StrokeSpec{
		Width:     2,
		Color:     color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Style:     StrokePrecise,
		Smooth:    1,
		Threshold: DefaultStrokeThreshold,
	}
}

// Validate checks the width and smoothing factor.
func (s StrokeSpec) Validate() error {
	if s.Width <= 0 {
		return NewError(CodeValidation, "stroke width must be positive, got %d", s.Width)
	}
	if s.Smooth < 0 || math.IsNaN(s.Smooth) {
		return NewError(CodeValidation, "stroke smoothing must not be negative, got %v", s.Smooth)
	}
	return nil
}

// ringGenerator computes the outline ring of a shape. Both styles return
// a mask of the shape's size where non-zero pixels receive the stroke
// colour.
type ringGenerator interface {
	ring(shape *Mask, spec StrokeSpec) *Mask
}

type preciseRing struct{}

func (preciseRing) ring(shape *Mask, spec StrokeSpec) *Mask {
	bin := Binarize(shape, 0)
	ring, _ := Subtract(bin.Dilate(spec.Width), bin)
	return ring
}

type blurredRing struct{}

func (blurredRing) ring(shape *Mask, spec StrokeSpec) *Mask {
	grown := shape.Dilate(spec.Width)
	radius := max(0.5, float64(spec.Width)*spec.Smooth*0.5)
	soft := &Mask{
		width:  grown.width,
		height: grown.height,
		data:   filter.Blur(grown.data, grown.width, grown.height, radius),
	}
	diff, _ := Subtract(soft, shape)
	return Binarize(diff, spec.Threshold)
}

func (s StrokeStyle) generator() ringGenerator {
	if s == StrokeBlurred {
		return blurredRing{}
	}
	return preciseRing{}
}

// StrokeRing returns the mask of pixels that Stroke paints with the stroke
// colour. The ring never extends past the raster; use StrokeLayer to grow
// the canvas first.
func StrokeRing(r *RasterBuffer, spec StrokeSpec) (*Mask, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	shape := r.Alpha()
	if shape.Count() == 0 {
		return nil, NewError(CodeEmptyInput, "stroke of a fully transparent %dx%d raster", r.width, r.height)
	}
	return spec.Style.generator().ring(shape, spec), nil
}

// Stroke outlines the non-transparent shape of r: the ring is painted in
// the stroke colour and the original raster is composited on top. The
// result has r's size.
func Stroke(r *RasterBuffer, spec StrokeSpec) (*RasterBuffer, error) {
	ring, err := StrokeRing(r, spec)
	if err != nil {
		return nil, err
	}
	c := spec.Color
	out := Colorize(Binarize(ring, 0), c.R, c.G, c.B, c.A)
	PasteOver(out, r, image.Point{}, true)
	return out, nil
}

// StrokeLayer expands l's raster by the stroke width on every side, so the
// ring is not clipped, and strokes it. The layer moves up and left by the
// width so its content stays in place.
func StrokeLayer(l Layer, spec StrokeSpec) (Layer, error) {
	if err := spec.Validate(); err != nil {
		return Layer{}, err
	}
	stroked, err := Stroke(l.Raster.Expand(spec.Width), spec)
	if err != nil {
		return Layer{}, fmt.Errorf("stroke layer %q: %w", l.Name, err)
	}
	return l.moved(stroked, l.X-spec.Width, l.Y-spec.Width), nil
}

// StrokeVersion is one stroked copy of a layer set.
type StrokeVersion struct {
	Width int
	Name  string // stroke_{width}px
	Set   *LayerSet
}

// NormalizeStrokeWidths validates, deduplicates and sorts widths.
func NormalizeStrokeWidths(widths []int) ([]int, error) {
	if len(widths) == 0 {
		return nil, NewError(CodeValidation, "no stroke widths given")
	}
	out := make([]int, 0, len(widths))
	for _, w := range widths {
		if w < MinStrokeWidth || w > MaxStrokeWidth {
			return nil, NewError(CodeValidation, "stroke width %d outside %d..%d", w, MinStrokeWidth, MaxStrokeWidth)
		}
		out = append(out, w)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// StrokeVersions produces one stroked copy of set per width. In each copy
// the canvas grows by 2*width, every layer raster is padded by width on
// every side, and the part layers are stroked. Copies are built
// concurrently and each owns its buffers.
func StrokeVersions(ctx context.Context, set *LayerSet, widths []int, base StrokeSpec) ([]StrokeVersion, error) {
	widths, err := NormalizeStrokeWidths(widths)
	if err != nil {
		return nil, err
	}

	versions := make([]StrokeVersion, len(widths))
	g, ctx := errgroup.WithContext(ctx)
	for i, w := range widths {
		g.Go(func() error {
			spec := base
			spec.Width = w
			v, err := strokeVersion(ctx, set, spec)
			if err != nil {
				return err
			}
			versions[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return versions, nil
}

func strokeVersion(ctx context.Context, set *LayerSet, spec StrokeSpec) (StrokeVersion, error) {
	w := spec.Width
	layers := make([]Layer, len(set.Layers))
	for i, l := range set.Layers {
		if err := ctx.Err(); err != nil {
			return StrokeVersion{}, err
		}
		// The canvas shift (+w) and the padding (-w) cancel out.
		padded := l.moved(l.Raster.Expand(w), l.X, l.Y)
		if !l.Role().IsPart() {
			layers[i] = padded
			continue
		}
		stroked, err := Stroke(padded.Raster, spec)
		if IsCode(err, CodeEmptyInput) {
			Logger().Warn("psdkit: skipping stroke of empty layer", "layer", l.Name, "width", w)
			layers[i] = padded
			continue
		}
		if err != nil {
			return StrokeVersion{}, fmt.Errorf("stroke %dpx layer %q: %w", w, l.Name, err)
		}
		layers[i] = padded.moved(stroked, padded.X, padded.Y)
	}
	Logger().Debug("psdkit: stroke version built", "width", w, "layers", len(layers))
	return StrokeVersion{
		Width: w,
		Name:  fmt.Sprintf("stroke_%dpx", w),
		Set:   set.withLayers(set.Width+2*w, set.Height+2*w, layers),
	}, nil
}
