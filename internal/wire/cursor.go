package wire

import "encoding/binary"

// reader walks a byte slice left to right, refusing to read past the end.
// Every command decoder in this package is built on top of it so that a
// short buffer always surfaces as ErrTruncated rather than a panic.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) u8() (uint8, error) {
	if r.remaining() < 1 {
		return 0, ErrTruncated
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) u16() (uint16, error) {
	if r.remaining() < 2 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// bytes returns the next n bytes without copying and advances the cursor.
func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, ErrTruncated
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

// rest returns every remaining byte without advancing past the end.
func (r *reader) rest() []byte {
	v := r.data[r.pos:]
	r.pos = len(r.data)
	return v
}

// writer accumulates encoded bytes for a command body.
type writer struct {
	buf []byte
}

func (w *writer) u8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *writer) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *writer) bytes(v []byte) {
	w.buf = append(w.buf, v...)
}
