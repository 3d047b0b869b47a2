// Package psd reads and writes the layered "8BPS" container format for
// 8-bit RGBA documents.
//
// The encoder always writes uncompressed channels with this layout
// (all integers big-endian):
//
//	header            "8BPS", version 1, 6 zero bytes, channels 4,
//	                  height, width, depth 8, colour mode 3
//	colour mode data  length 0
//	image resources   length, then an optional 8BIM/1005 resolution block
//	layer and mask    length, layer-info length, count (negative),
//	                  layer records, channel data (A,R,G,B per layer),
//	                  global mask length 0
//	composite         compression 0, then R, G, B, A canvas planes
//
// Every length is written as a placeholder and patched once the section
// is complete. The decoder additionally accepts PackBits (RLE)
// compressed channels so documents saved by other tools can be read.
package psd
