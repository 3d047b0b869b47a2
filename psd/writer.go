package psd

import (
	"encoding/binary"
	"math"
)

// writer accumulates a document in memory so section lengths can be
// back-patched. The first failure sticks in err.
type writer struct {
	buf []byte
	err error
}

func (w *writer) u8(v uint8)   { w.buf = append(w.buf, v) }
func (w *writer) u16(v uint16) { w.buf = binary.BigEndian.AppendUint16(w.buf, v) }
func (w *writer) i16(v int16)  { w.u16(uint16(v)) }
func (w *writer) u32(v uint32) { w.buf = binary.BigEndian.AppendUint32(w.buf, v) }
func (w *writer) str(s string) { w.buf = append(w.buf, s...) }
func (w *writer) raw(b []byte) { w.buf = append(w.buf, b...) }

func (w *writer) zeros(n int) {
	for range n {
		w.buf = append(w.buf, 0)
	}
}

// dim writes a non-negative size or coordinate as u32.
func (w *writer) dim(v int) {
	if v < 0 || int64(v) > math.MaxUint32 {
		w.fail(ErrInvalidDimensions)
		v = 0
	}
	w.u32(uint32(v))
}

// reserve writes a 4-byte length placeholder and returns its offset.
func (w *writer) reserve() int {
	at := len(w.buf)
	w.u32(0)
	return at
}

// patch stores the number of bytes written after the placeholder at
// offset at.
func (w *writer) patch(at int) {
	n := len(w.buf) - at - 4
	if int64(n) > math.MaxUint32 {
		w.fail(ErrSectionTooLarge)
		return
	}
	binary.BigEndian.PutUint32(w.buf[at:], uint32(n))
}

// padTo appends zero bytes until the length since start is a multiple of n.
func (w *writer) padTo(start, n int) {
	if r := (len(w.buf) - start) % n; r != 0 {
		w.zeros(n - r)
	}
}

func (w *writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}
