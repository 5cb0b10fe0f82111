// Package wire provides the fixed-width byte cursor shared by the point,
// challenge and proof codecs. Nothing on the wire carries a length prefix or
// a type tag, so every read states exactly how many bytes it needs.
package wire

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrShortRead is returned when fewer bytes remain than a field requires.
var ErrShortRead = errors.New("wire: short read")

// Reader consumes a byte slice front to back.
type Reader struct {
	buf    []byte
	offset int
}

// NewReader returns a reader positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// ReadExact returns the next n bytes. The returned slice is a copy, so
// callers may keep it after the underlying buffer is reused.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, errors.Wrapf(ErrShortRead, "need %d bytes at offset %d, have %d", n, r.offset, r.Remaining())
	}
	out := make([]byte, n)
	copy(out, r.buf[r.offset:r.offset+n])
	r.offset += n
	return out, nil
}

// ReadInto fills dst completely or fails without advancing.
func (r *Reader) ReadInto(dst []byte) error {
	if r.Remaining() < len(dst) {
		return errors.Wrapf(ErrShortRead, "need %d bytes at offset %d, have %d", len(dst), r.offset, r.Remaining())
	}
	copy(dst, r.buf[r.offset:])
	r.offset += len(dst)
	return nil
}

// ReadByte returns the next byte.
func (r *Reader) ReadByte() (byte, error) {
	if r.Remaining() < 1 {
		return 0, errors.Wrapf(ErrShortRead, "need 1 byte at offset %d", r.offset)
	}
	b := r.buf[r.offset]
	r.offset++
	return b, nil
}

// Remaining is the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.offset
}

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.offset
}

// Writer accumulates bytes. Writes to memory cannot fail.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// PutBytes appends p.
func (w *Writer) PutBytes(p []byte) {
	w.buf.Write(p)
}

// PutByte appends a single byte.
func (w *Writer) PutByte(b byte) {
	w.buf.WriteByte(b)
}

// PutUint16 appends v big-endian.
func (w *Writer) PutUint16(v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	w.buf.Write(tmp[:])
}

// Len is the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}
