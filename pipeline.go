package psdkit

import (
	"context"
	"fmt"

	"github.com/gogpu/psdkit/internal/imageio"
)

// Artifact is a named pipeline output: either a layered document or a
// flat image. Callers decide where and whether to persist it.
type Artifact struct {
	Name  string
	Set   *LayerSet     // set for documents
	Image *RasterBuffer // set for images
}

// Ext returns the file extension matching Encode's output.
func (a Artifact) Ext() string {
	if a.Set != nil {
		return ".psd"
	}
	return ".png"
}

// Encode serializes the artifact as a layered document or a PNG.
func (a Artifact) Encode() ([]byte, error) {
	switch {
	case a.Set != nil:
		return EncodeBytes(a.Set)
	case a.Image != nil:
		data, err := imageio.EncodePNGBytes(a.Image.NRGBA())
		if err != nil {
			return nil, WrapError(CodeIO, err, "encode %s", a.Name)
		}
		return data, nil
	}
	return nil, NewError(CodeEmptyInput, "artifact %q has no content", a.Name)
}

// Template holds everything derived from an unfolded template document.
type Template struct {
	Source    *LayerSet // as loaded, parts unfolded around the view
	Restored  *LayerSet // parts folded over the view, cropped to it
	Preview   *RasterBuffer
	Reference *RasterBuffer
	Strokes   []StrokeVersion
}

// Artifacts lists the template outputs in a stable order.
func (t *Template) Artifacts() []Artifact {
	out := []Artifact{
		{Name: "restored", Set: t.Restored},
		{Name: "preview", Image: t.Preview},
		{Name: "reference", Image: t.Reference},
	}
	for _, v := range t.Strokes {
		out = append(out,
			Artifact{Name: v.Name, Set: v.Set},
			Artifact{Name: v.Name + "_reference", Image: ReferenceImage(v.Set)},
		)
	}
	return out
}

// Stroke returns the stroke version of the given width.
func (t *Template) Stroke(width int) (StrokeVersion, bool) {
	for _, v := range t.Strokes {
		if v.Width == width {
			return v, true
		}
	}
	return StrokeVersion{}, false
}

// PrepareTemplate validates an unfolded template and derives its restored
// document, previews and, with WithStrokeWidths, its stroke versions.
func PrepareTemplate(ctx context.Context, source *LayerSet, opts ...Option) (*Template, error) {
	o := buildOptions(opts)
	if err := source.Validate(); err != nil {
		return nil, err
	}
	log := Logger()

	t := &Template{Source: source, Preview: TemplatePreview(source)}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	restored, err := Restore(source)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	t.Restored = restored
	t.Reference = ReferenceImage(restored)
	log.Info("psdkit: template restored", "width", restored.Width, "height", restored.Height)

	if len(o.strokeWidths) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t.Strokes, err = StrokeVersions(ctx, restored, o.strokeWidths, o.stroke)
		if err != nil {
			return nil, fmt.Errorf("stroke versions: %w", err)
		}
		log.Info("psdkit: stroke versions built", "count", len(t.Strokes))
	}
	return t, nil
}

// Result is the output of Generate.
type Result struct {
	Final   *LayerSet
	Preview *RasterBuffer
}

// Artifacts lists the result outputs.
func (r *Result) Artifacts() []Artifact {
	return []Artifact{
		{Name: "final", Set: r.Final},
		{Name: "final_preview", Image: r.Preview},
	}
}

// Generate fills a restored (or stroked) template with img and unfolds it:
// the two are aligned, every part is cut from the mirrored image, the
// parts are unfolded around the view, and an optional window layer is
// added on top.
func Generate(ctx context.Context, restored *LayerSet, img *RasterBuffer, opts ...Option) (*Result, error) {
	o := buildOptions(opts)
	if err := restored.Validate(); err != nil {
		return nil, err
	}
	log := Logger()

	set, img, err := Align(restored, img, o.forceResize)
	if err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set, err = Replace(set, img)
	if err != nil {
		return nil, fmt.Errorf("replace: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set, err = TransformOutward(set, o.padding)
	if err != nil {
		return nil, fmt.Errorf("unfold: %w", err)
	}

	if o.window != nil {
		set, err = AddWindow(set, o.window)
		if err != nil {
			return nil, fmt.Errorf("window: %w", err)
		}
	}
	log.Info("psdkit: final document built", "width", set.Width, "height", set.Height, "layers", len(set.Layers))

	return &Result{Final: set, Preview: FinalPreview(set)}, nil
}
