package binmap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding/charmap"
)

// varuint encoding: base-128, 7 bits per byte, least significant group
// first, 0x80 continuation bit. A shift reaching 35 means more than five
// bytes, which no 32-bit value needs.
const maxVarintShift = 35

// reader decodes the primitive wire types from an in-memory buffer.
// Every read is bounds-checked up front so a truncated or corrupt buffer
// surfaces as ErrUnexpectedEOF with the offending offset.
type reader struct {
	buf  []byte
	off  int
	text *charmap.Charmap
}

func (r *reader) need(n int) error {
	if len(r.buf)-r.off < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEOF, n, r.off, len(r.buf)-r.off)
	}
	return nil
}

func (r *reader) u8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

func (r *reader) bool() (bool, error) {
	b, err := r.u8()
	return b != 0, err
}

func (r *reader) u16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

func (r *reader) i16() (int16, error) {
	v, err := r.u16()
	return int16(v), err
}

func (r *reader) u32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

func (r *reader) i64() (int64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return int64(v), nil
}

func (r *reader) f32() (float32, error) {
	v, err := r.u32()
	return math.Float32frombits(v), err
}

func (r *reader) f64() (float64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return math.Float64frombits(v), nil
}

func (r *reader) varuint() (uint32, error) {
	var v uint32
	for shift := uint(0); ; shift += 7 {
		if shift >= maxVarintShift {
			return 0, fmt.Errorf("%w: no terminator within 5 bytes at offset %d", ErrMalformedVarint, r.off)
		}
		b, err := r.u8()
		if err != nil {
			return 0, err
		}
		v |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
	}
}

// raw reads exactly n bytes.
func (r *reader) raw(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// rawstring reads a varuint byte length followed by that many single-byte
// characters in the configured text encoding.
func (r *reader) rawstring() (string, error) {
	n, err := r.varuint()
	if err != nil {
		return "", err
	}
	// Compare in the wide type: on 32-bit platforms a hostile length above
	// MaxInt32 would wrap negative through int and slip past need.
	if uint64(n) > uint64(len(r.buf)-r.off) {
		return "", fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEOF, n, r.off, len(r.buf)-r.off)
	}
	s := decodeText(r.text, r.buf[r.off:r.off+int(n)])
	r.off += int(n)
	return s, nil
}

// writer encodes the primitive wire types into an in-memory buffer.
type writer struct {
	buf  bytes.Buffer
	text *charmap.Charmap
}

func (w *writer) u8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *writer) bool(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *writer) u16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) i16(v int16) { w.u16(uint16(v)) }

func (w *writer) u32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *writer) i32(v int32) { w.u32(uint32(v)) }

func (w *writer) i64(v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	w.buf.Write(b[:])
}

func (w *writer) f32(v float32) { w.u32(math.Float32bits(v)) }

func (w *writer) f64(v float64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
	w.buf.Write(b[:])
}

func (w *writer) varuint(v uint32) {
	for v >= 0x80 {
		w.u8(byte(v) | 0x80)
		v >>= 7
	}
	w.u8(byte(v))
}

func (w *writer) rawstring(s string) error {
	b, err := encodeText(w.text, s)
	if err != nil {
		return err
	}
	w.varuint(uint32(len(b)))
	w.buf.Write(b)
	return nil
}

// decodeText maps single-byte character codes to a Go string.
func decodeText(cm *charmap.Charmap, b []byte) string {
	rs := make([]rune, len(b))
	for i, c := range b {
		rs[i] = cm.DecodeByte(c)
	}
	return string(rs)
}

// encodeText maps a Go string to single-byte character codes, one byte per
// rune. Runes outside the charmap fail rather than being silently replaced.
func encodeText(cm *charmap.Charmap, s string) ([]byte, error) {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		c, ok := cm.EncodeRune(r)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedRune, r)
		}
		b = append(b, c)
	}
	return b, nil
}
