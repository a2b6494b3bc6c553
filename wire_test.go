package binmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func newTestReader(b []byte) *reader {
	return &reader{buf: b, text: charmap.ISO8859_1}
}

func newTestWriter() *writer {
	return &writer{text: charmap.ISO8859_1}
}

func TestVarintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0x7f, 0x80, 300, 0x3fff, 0x4000, 11, 1 << 21, 1 << 28, math.MaxUint32}
	for _, v := range values {
		w := newTestWriter()
		w.varuint(v)
		require.LessOrEqual(t, w.buf.Len(), 5, "varuint(%d) must fit in 5 bytes", v)

		r := newTestReader(w.buf.Bytes())
		got, err := r.varuint()
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(r.buf), r.off, "varuint(%d) must consume all bytes", v)
	}
}

func TestVarintMalformed(t *testing.T) {
	// Six continuation bytes never terminate within the 35-bit bound.
	r := newTestReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80})
	_, err := r.varuint()
	require.ErrorIs(t, err, ErrMalformedVarint)
}

func TestVarintTruncated(t *testing.T) {
	r := newTestReader([]byte{0x80, 0x80})
	_, err := r.varuint()
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestFixedWidthLittleEndian(t *testing.T) {
	w := newTestWriter()
	w.u16(0x0102)
	w.i32(0x01020304)
	w.i64(0x0102030405060708)
	assert.Equal(t, []byte{
		0x02, 0x01,
		0x04, 0x03, 0x02, 0x01,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	}, w.buf.Bytes())
}

func TestPrimitiveRoundTrip(t *testing.T) {
	w := newTestWriter()
	w.u8(0xab)
	w.bool(true)
	w.bool(false)
	w.i16(-2)
	w.i32(-70000)
	w.i64(-1 << 40)
	w.f32(3.5)
	w.f64(-math.Pi)

	r := newTestReader(w.buf.Bytes())
	u, err := r.u8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xab), u)
	b, err := r.bool()
	require.NoError(t, err)
	assert.True(t, b)
	b, err = r.bool()
	require.NoError(t, err)
	assert.False(t, b)
	i16, err := r.i16()
	require.NoError(t, err)
	assert.Equal(t, int16(-2), i16)
	i32, err := r.i32()
	require.NoError(t, err)
	assert.Equal(t, int32(-70000), i32)
	i64, err := r.i64()
	require.NoError(t, err)
	assert.Equal(t, int64(-1<<40), i64)
	f32, err := r.f32()
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), f32)
	f64, err := r.f64()
	require.NoError(t, err)
	assert.Equal(t, -math.Pi, f64)
	assert.Equal(t, len(r.buf), r.off)
}

func TestBoolReadsAnyNonzeroAsTrue(t *testing.T) {
	r := newTestReader([]byte{0x02})
	b, err := r.bool()
	require.NoError(t, err)
	assert.True(t, b)
}

func TestRawStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "windPattern", "voilà"} {
		w := newTestWriter()
		require.NoError(t, w.rawstring(s))
		r := newTestReader(w.buf.Bytes())
		got, err := r.rawstring()
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestRawStringTruncated(t *testing.T) {
	// Declares 5 characters, provides 2.
	r := newTestReader([]byte{0x05, 'a', 'b'})
	_, err := r.rawstring()
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestRawStringHugeLength(t *testing.T) {
	// A declared length of 0xFFFFFFFF must fail cleanly even on platforms
	// where it wraps negative through int.
	r := newTestReader([]byte{0xff, 0xff, 0xff, 0xff, 0x0f})
	_, err := r.rawstring()
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestEncodeTextUnsupportedRune(t *testing.T) {
	_, err := encodeText(charmap.ISO8859_1, "日")
	require.ErrorIs(t, err, ErrUnsupportedRune)
}

func TestAlternateCharmap(t *testing.T) {
	// U+20AC is 0x80 in Windows-1252 and unmappable in Latin-1.
	w := &writer{text: charmap.Windows1252}
	require.NoError(t, w.rawstring("€"))
	assert.Equal(t, []byte{0x01, 0x80}, w.buf.Bytes())

	r := &reader{buf: w.buf.Bytes(), text: charmap.Windows1252}
	got, err := r.rawstring()
	require.NoError(t, err)
	assert.Equal(t, "€", got)
}
