package psd

import (
	"encoding/binary"
	"fmt"
)

// unpackBits decodes PackBits data into exactly n bytes.
func unpackBits(src []byte, n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for i := 0; i < len(src) && len(out) < n; {
		h := int8(src[i])
		i++
		switch {
		case h >= 0:
			count := int(h) + 1
			if i+count > len(src) {
				return nil, fmt.Errorf("%w: literal run past end", ErrTruncated)
			}
			out = append(out, src[i:i+count]...)
			i += count
		case h != -128:
			if i >= len(src) {
				return nil, fmt.Errorf("%w: repeat run past end", ErrTruncated)
			}
			for range 1 - int(h) {
				out = append(out, src[i])
			}
			i++
		}
	}
	if len(out) < n {
		return nil, fmt.Errorf("%w: packbits row holds %d bytes, want %d", ErrTruncated, len(out), n)
	}
	return out[:n], nil
}

// readPlanes decodes count planes of width*height bytes that start with
// a shared compression marker, as in the composite image section.
func readPlanes(r *reader, width, height, count int) ([][]byte, error) {
	compression := r.u16()
	if r.err != nil {
		return nil, r.err
	}
	if err := checkPlanes(r.remaining(), compression, width, height, count); err != nil {
		return nil, err
	}
	planes := make([][]byte, count)
	switch compression {
	case CompressionRaw:
		for c := range planes {
			planes[c] = r.take(width * height)
		}
	case CompressionRLE:
		counts := make([]int, count*height)
		for i := range counts {
			counts[i] = int(r.u16())
		}
		for c := range planes {
			plane := make([]byte, 0, width*height)
			for y := 0; y < height; y++ {
				row, err := unpackBits(r.take(counts[c*height+y]), width)
				if r.err != nil {
					return nil, r.err
				}
				if err != nil {
					return nil, err
				}
				plane = append(plane, row...)
			}
			planes[c] = plane
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedCompress, compression)
	}
	if r.err != nil {
		return nil, r.err
	}
	return planes, nil
}

// maxPackBitsRatio bounds how many bytes PackBits can expand one input
// byte to: a two-byte repeat run yields 128 bytes.
const maxPackBitsRatio = 64

// checkPlanes rejects plane data of avail bytes that cannot hold count
// planes of width x height, before anything is allocated for them.
func checkPlanes(avail int, compression uint16, width, height, count int) error {
	n := width * height * count
	switch compression {
	case CompressionRaw:
		if avail < n {
			return fmt.Errorf("%w: raw data holds %d bytes, want %d", ErrTruncated, avail, n)
		}
	case CompressionRLE:
		if avail < 2*height*count || n > maxPackBitsRatio*avail {
			return fmt.Errorf("%w: %d packbits bytes cannot hold %d bytes", ErrTruncated, avail, n)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedCompress, compression)
	}
	return nil
}

// checkChannel validates one layer channel, compression marker included.
func checkChannel(data []byte, width, height int) error {
	if len(data) < 2 {
		return fmt.Errorf("%w: channel holds %d bytes", ErrTruncated, len(data))
	}
	return checkPlanes(len(data)-2, binary.BigEndian.Uint16(data), width, height, 1)
}

// readChannel decodes one layer channel of width*height bytes from data,
// which starts with its own compression marker.
func readChannel(data []byte, width, height int) ([]byte, error) {
	r := &reader{b: data}
	planes, err := readPlanes(r, width, height, 1)
	if err != nil {
		return nil, err
	}
	return planes[0], nil
}
