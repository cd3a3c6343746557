package pdr

import "encoding/binary"

// wireReader/wireWriter are the same length-checked, little-endian
// encode/decode primitives internal/wire uses for command bodies, kept as
// an unexported pair here because PDR payloads are pdr-package-internal
// and gain nothing from importing wire's request/response vocabulary.
type wireReader struct {
	data []byte
	pos  int
}

func newWireReader(data []byte) *wireReader {
	return &wireReader{data: data}
}

func (r *wireReader) remaining() int { return len(r.data) - r.pos }

func (r *wireReader) u8() (uint8, error) {
	if r.remaining() < 1 {
		return 0, ErrTruncated
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *wireReader) u16() (uint16, error) {
	if r.remaining() < 2 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *wireReader) u32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *wireReader) bytes(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, ErrTruncated
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v, nil
}

func (r *wireReader) rest() []byte {
	v := r.data[r.pos:]
	r.pos = len(r.data)
	return v
}

type wireWriter struct {
	buf []byte
}

func (w *wireWriter) u8(v uint8) { w.buf = append(w.buf, v) }

func (w *wireWriter) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *wireWriter) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *wireWriter) bytes(v []byte) { w.buf = append(w.buf, v...) }
