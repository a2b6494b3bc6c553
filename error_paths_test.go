package binmap

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/klauspost/compress/zstd"
)

// Every strict prefix of a valid document must fail cleanly: typed error,
// no panic, no partial result.
func TestDecodeTruncationSweep(t *testing.T) {
	data, err := Save(sampleDoc())
	if err != nil {
		t.Fatal(err)
	}
	for n := 0; n < len(data); n++ {
		doc, err := Load(data[:n])
		if err == nil {
			t.Fatalf("prefix of %d/%d bytes decoded without error", n, len(data))
		}
		if doc != nil {
			t.Fatalf("prefix of %d bytes returned a partial document", n)
		}
	}
}

func TestDecodeCorruptValueTag(t *testing.T) {
	data, err := Save(sampleDoc())
	if err != nil {
		t.Fatal(err)
	}
	// Flipping every byte in turn must never panic; a decent share of the
	// flips surface as typed decode errors, the rest still parse (e.g. a
	// changed integer payload).
	for i := range data {
		corrupt := append([]byte(nil), data...)
		corrupt[i] ^= 0xff
		_, _ = Load(corrupt)
	}
}

func TestShellTooShort(t *testing.T) {
	_, err := Load(append([]byte(nil), shellMagic[:]...))
	if !errors.Is(err, ErrInvalidShell) {
		t.Fatalf("got %v, want ErrInvalidShell", err)
	}
}

func TestShellUnknownAlgorithm(t *testing.T) {
	shell := make([]byte, shellHeaderSize)
	copy(shell, shellMagic[:])
	shell[4] = 0x7e
	_, err := Load(shell)
	if !errors.Is(err, ErrInvalidShell) {
		t.Fatalf("got %v, want ErrInvalidShell", err)
	}
}

func TestShellDeclaredBomb(t *testing.T) {
	data, err := Save(sampleDoc(), WithCompression(CompZstd))
	if err != nil {
		t.Fatal(err)
	}
	// Inflate the declared uncompressed length past the limit.
	binary.LittleEndian.PutUint64(data[5:13], 1<<40)
	_, err = Load(data)
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("got %v, want ErrLimitExceeded", err)
	}
}

func TestShellLengthMismatch(t *testing.T) {
	data, err := Save(sampleDoc(), WithCompression(CompLZ4))
	if err != nil {
		t.Fatal(err)
	}
	// Understate the uncompressed length; the payload then expands past it.
	declared := binary.LittleEndian.Uint64(data[5:13])
	binary.LittleEndian.PutUint64(data[5:13], declared-1)
	_, err = Load(data)
	if !errors.Is(err, ErrInvalidShell) {
		t.Fatalf("got %v, want ErrInvalidShell", err)
	}
}

func TestShellGarbagePayload(t *testing.T) {
	for _, comp := range []Compression{CompZstd, CompLZ4, CompBrotli} {
		shell := make([]byte, shellHeaderSize, shellHeaderSize+4)
		copy(shell, shellMagic[:])
		shell[4] = byte(comp)
		binary.LittleEndian.PutUint64(shell[5:13], 64)
		shell = append(shell, 0xba, 0xdb, 0xad, 0x00)
		if _, err := Load(shell); err == nil {
			t.Fatalf("comp %d: garbage payload decoded without error", comp)
		}
	}
}

func TestShellEncodeUnknownAlgorithm(t *testing.T) {
	_, err := Save(sampleDoc(), WithCompression(Compression(0x7e)))
	if !errors.Is(err, ErrInvalidShell) {
		t.Fatalf("got %v, want ErrInvalidShell", err)
	}
}

func TestCompressHelpers_ErrorPaths(t *testing.T) {
	// zstd writer construction error via injection
	origW := newZstdWriter
	newZstdWriter = func() (*zstd.Encoder, error) { return nil, io.ErrClosedPipe }
	if _, err := Save(sampleDoc(), WithCompression(CompZstd)); err == nil {
		newZstdWriter = origW
		t.Fatal("expected error")
	}
	newZstdWriter = origW

	// zstd reader construction error via injection
	data, err := Save(sampleDoc(), WithCompression(CompZstd))
	if err != nil {
		t.Fatal(err)
	}
	origR := newZstdReader
	newZstdReader = func() (*zstd.Decoder, error) { return nil, io.ErrClosedPipe }
	if _, err := Load(data); err == nil {
		newZstdReader = origR
		t.Fatal("expected error")
	}
	newZstdReader = origR

	// readAll error while decompressing
	lzData, err := Save(sampleDoc(), WithCompression(CompLZ4))
	if err != nil {
		t.Fatal(err)
	}
	origReadAll := readAll
	readAll = func(io.Reader) ([]byte, error) { return nil, io.ErrClosedPipe }
	if _, err := Load(lzData); err == nil {
		readAll = origReadAll
		t.Fatal("expected error")
	}
	readAll = origReadAll
}

func TestEncodeUnsupportedRuneInTree(t *testing.T) {
	doc := sampleDoc()
	doc.Root.Children[0].SetAttr("wind", String("風"))
	_, err := Save(doc)
	if !errors.Is(err, ErrUnsupportedRune) {
		t.Fatalf("got %v, want ErrUnsupportedRune", err)
	}
}
