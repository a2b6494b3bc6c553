package binmap

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the optional shell wrapped around a saved document.
// The shell is a storage convenience, not part of the document format:
// 4 magic bytes, one algorithm byte, a u64 uncompressed length, then the
// compressed document. Decode detects it by magic and unwraps first.
type Compression uint8

const (
	CompNone   Compression = 0
	CompZstd   Compression = 1
	CompLZ4    Compression = 2
	CompBrotli Compression = 3
)

var shellMagic = [4]byte{'B', 'M', 'Z', '1'}

const shellHeaderSize = 4 + 1 + 8

// Function variables for testing injection.
var (
	newZstdWriter = func() (*zstd.Encoder, error) { return zstd.NewWriter(nil) }
	newZstdReader = func() (*zstd.Decoder, error) { return zstd.NewReader(nil) }
	lz4Close      = func(w *lz4.Writer) error { return w.Close() }
	brotliClose   = func(w *brotli.Writer) error { return w.Close() }
	readAll       = io.ReadAll
)

// compressShell wraps doc bytes in the shell using the given algorithm.
func compressShell(comp Compression, doc []byte) ([]byte, error) {
	var compressed []byte
	var err error
	switch comp {
	case CompZstd:
		compressed, err = zstdCompress(doc)
	case CompLZ4:
		compressed, err = lz4Compress(doc)
	case CompBrotli:
		compressed, err = brotliCompress(doc)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidShell, comp)
	}
	if err != nil {
		return nil, err
	}
	out := make([]byte, shellHeaderSize, shellHeaderSize+len(compressed))
	copy(out[0:4], shellMagic[:])
	out[4] = byte(comp)
	binary.LittleEndian.PutUint64(out[5:13], uint64(len(doc)))
	return append(out, compressed...), nil
}

// hasShell reports whether data starts with the shell magic.
func hasShell(data []byte) bool {
	return len(data) >= len(shellMagic) && bytes.Equal(data[:len(shellMagic)], shellMagic[:])
}

// decompressShell unwraps a shelled payload, enforcing maxUncompressed
// against decompression bombs.
func decompressShell(data []byte, maxUncompressed uint64) ([]byte, error) {
	if len(data) < shellHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrInvalidShell, len(data), shellHeaderSize)
	}
	comp := Compression(data[4])
	uncompressedLen := binary.LittleEndian.Uint64(data[5:13])
	if uncompressedLen > maxUncompressed {
		return nil, fmt.Errorf("%w: uncompressed length %d exceeds limit %d", ErrLimitExceeded, uncompressedLen, maxUncompressed)
	}
	payload := data[shellHeaderSize:]

	var out []byte
	var err error
	switch comp {
	case CompZstd:
		out, err = zstdDecompress(payload, uncompressedLen)
	case CompLZ4:
		out, err = lz4Decompress(payload, uncompressedLen)
	case CompBrotli:
		out, err = brotliDecompress(payload, uncompressedLen)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidShell, comp)
	}
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) != uncompressedLen {
		return nil, fmt.Errorf("%w: decompressed length %d != declared %d", ErrInvalidShell, len(out), uncompressedLen)
	}
	return out, nil
}

// zstdCompress compresses in using the Zstandard algorithm.
func zstdCompress(in []byte) ([]byte, error) {
	enc, err := newZstdWriter()
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

// zstdDecompress decompresses Zstandard data, rejecting output beyond
// expected bytes.
func zstdDecompress(in []byte, expected uint64) ([]byte, error) {
	dec, err := newZstdReader()
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(in, nil)
	if err != nil {
		return nil, err
	}
	if uint64(len(out)) > expected {
		return nil, fmt.Errorf("%w: zstd expanded beyond declared size", ErrInvalidShell)
	}
	return out, nil
}

// lz4Compress compresses in using the LZ4 algorithm.
func lz4Compress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(in); err != nil {
		_ = lz4Close(zw)
		return nil, err
	}
	if err := lz4Close(zw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lz4Decompress decompresses LZ4 data behind a LimitReader so a hostile
// stream cannot expand past the declared size.
func lz4Decompress(in []byte, expected uint64) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(in))
	b, err := readAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > expected {
		return nil, fmt.Errorf("%w: lz4 expanded beyond declared size", ErrInvalidShell)
	}
	return b, nil
}

// brotliCompress compresses in using the Brotli algorithm.
func brotliCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	if _, err := bw.Write(in); err != nil {
		_ = brotliClose(bw)
		return nil, err
	}
	if err := brotliClose(bw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// brotliDecompress decompresses Brotli data behind a LimitReader.
func brotliDecompress(in []byte, expected uint64) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(in))
	b, err := readAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(b)) > expected {
		return nil, fmt.Errorf("%w: brotli expanded beyond declared size", ErrInvalidShell)
	}
	return b, nil
}
