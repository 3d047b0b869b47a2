package psd

import "encoding/binary"

// reader walks an in-memory document. The first failure sticks in err and
// every later read returns zero values.
type reader struct {
	b   []byte
	off int
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.b) {
		r.err = ErrTruncated
		return nil
	}
	out := r.b[r.off : r.off+n]
	r.off += n
	return out
}

func (r *reader) u8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *reader) u16() uint16 {
	if b := r.take(2); b != nil {
		return binary.BigEndian.Uint16(b)
	}
	return 0
}

func (r *reader) i16() int16 { return int16(r.u16()) }

func (r *reader) u32() uint32 {
	if b := r.take(4); b != nil {
		return binary.BigEndian.Uint32(b)
	}
	return 0
}

func (r *reader) i32() int32 { return int32(r.u32()) }

func (r *reader) skip(n int) { r.take(n) }

// section reads a u32 length and returns a reader over that many bytes,
// advancing r past them.
func (r *reader) section() *reader {
	n := int(r.u32())
	return &reader{b: r.take(n), err: r.err}
}

// pascal reads a length-prefixed string padded so that the length byte
// plus the text is a multiple of pad.
func (r *reader) pascal(pad int) string {
	start := r.off
	n := int(r.u8())
	s := string(r.take(n))
	if rem := (r.off - start) % pad; rem != 0 {
		r.skip(pad - rem)
	}
	return s
}

func (r *reader) remaining() int { return len(r.b) - r.off }
