// Package filter provides single-channel (alpha plane) filters used by
// stroke generation and preview rendering:
//   - Gaussian blur (separable, kernel cached per radius)
//   - Morphological dilation (3x3 max, repeated)
//   - Square max filter of arbitrary odd size
//
// Planes are row-major []uint8 slices of width*height bytes. Filters
// never modify their input and always return a freshly allocated plane.
package filter
