package psdkit

// Option configures PrepareTemplate and Generate.
//
// Example:
//
//	res, err := psdkit.Generate(ctx, restored, img,
//		psdkit.WithPadding(200),
//		psdkit.WithWindow(component))
type Option func(*options)

type options struct {
	padding      int
	forceResize  bool
	window       *RasterBuffer
	stroke       StrokeSpec
	strokeWidths []int
}

func defaultOptions() options {
	return options{
		padding: DefaultPadding,
		stroke:  DefaultStrokeSpec(),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPadding sets the extra canvas space added by the outward transform.
func WithPadding(padding int) Option {
	return func(o *options) {
		o.padding = padding
	}
}

// WithForceResize resamples the replacement image to the template canvas
// instead of rescaling the template to the image.
func WithForceResize(force bool) Option {
	return func(o *options) {
		o.forceResize = force
	}
}

// WithWindow adds component as the top "window" layer of the final
// document, resized to the view layer.
func WithWindow(component *RasterBuffer) Option {
	return func(o *options) {
		o.window = component
	}
}

// WithStroke sets the colour, style and smoothing of stroke versions. The
// width of spec is ignored; widths come from WithStrokeWidths.
func WithStroke(spec StrokeSpec) Option {
	return func(o *options) {
		o.stroke = spec
	}
}

// WithStrokeWidths makes PrepareTemplate build one stroke version per
// width.
func WithStrokeWidths(widths ...int) Option {
	return func(o *options) {
		o.strokeWidths = widths
	}
}
