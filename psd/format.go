package psd

import (
	"errors"
	"image"
)

// Format constants.
const (
	Signature         = "8BPS"
	ResourceSignature = "8BIM"
	BlendModeNormal   = "norm"

	Version   = 1
	Channels  = 4
	Depth     = 8
	ColorMode = 3 // RGB; the fourth channel carries alpha

	// MaxLayers is the largest count the signed 16-bit layer count holds.
	MaxLayers = 32767

	// MaxDimension is the largest canvas or layer side the format allows.
	MaxDimension = 30000

	// MaxChannels is the largest channel count of the composite image.
	MaxChannels = 56

	// ResourceResolution is the image resource id of ResolutionInfo.
	ResourceResolution = 1005

	// Compression methods.
	CompressionRaw = 0
	CompressionRLE = 1

	// LayerFlagHidden is set in a layer record's flags for hidden layers.
	LayerFlagHidden = 0x02
)

// Channel ids in the order channel data is written for each layer.
var layerChannelIDs = [Channels]int16{-1, 0, 1, 2}

// layerChannelOffsets maps layerChannelIDs to RGBA byte offsets.
var layerChannelOffsets = [Channels]int{3, 0, 1, 2}

// Errors.
var (
	ErrInvalidSignature    = errors.New("psd: invalid signature")
	ErrUnsupportedVersion  = errors.New("psd: unsupported version")
	ErrUnsupportedFormat   = errors.New("psd: unsupported depth or colour mode")
	ErrUnsupportedCompress = errors.New("psd: unsupported compression")
	ErrTruncated           = errors.New("psd: truncated data")
	ErrInvalidDimensions   = errors.New("psd: invalid dimensions")
	ErrInvalidPixels       = errors.New("psd: pixel data does not match bounds")
	ErrTooManyLayers       = errors.New("psd: too many layers")
	ErrSectionTooLarge     = errors.New("psd: section exceeds 4 GiB")
)

// Resolution is the ResolutionInfo image resource.
type Resolution struct {
	HRes       float64 // horizontal pixels per unit
	HResUnit   uint16  // 1 = pixels per inch, 2 = pixels per cm
	WidthUnit  uint16  // 1 = inches
	VRes       float64
	VResUnit   uint16
	HeightUnit uint16
}

// DefaultDPI is the resolution used when a document carries none.
const DefaultDPI = 72

// DefaultResolution returns 72 DPI in both directions with inch units.
func DefaultResolution() Resolution {
	return Resolution{
		HRes: DefaultDPI, HResUnit: 1, WidthUnit: 1,
		VRes: DefaultDPI, VResUnit: 1, HeightUnit: 1,
	}
}

// Layer is one raster layer as stored in the document.
type Layer struct {
	Name string

	// Rect is the layer extent in canvas space. It may extend past the
	// canvas; the encoder clips it.
	Rect image.Rectangle

	// Pix holds straight RGBA8 pixels for Rect, row-major.
	Pix []byte

	Visible bool
}

// Document is a decoded or to-be-encoded file.
type Document struct {
	Width, Height int
	Layers        []Layer

	// Resolution is nil when the document has no ResolutionInfo resource.
	Resolution *Resolution

	// Composite holds the flattened canvas as straight RGBA8 pixels. The
	// encoder writes a transparent composite when it is nil.
	Composite []byte
}
