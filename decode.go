package binmap

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
)

// Decode reads a binmap document from r.
//
// The whole input is materialized first (the format is offset-dependent,
// so decoding streams piecemeal buys nothing), bounded by
// Limits.MaxInputLen. A compression shell, if present, is unwrapped before
// parsing. Parsing then proceeds: signature, title, lookup table, root
// element.
//
// By default Decode resolves lookup-reference values to String, tolerates
// root attributes (reading and discarding them) and expects
// DefaultSignature. Use ReadOption functions to customize:
//   - WithExpectedSignature(s): accept a different signature
//   - WithStrictRoot(true): fail on root attributes
//   - WithRawRefs(true): keep Ref values unresolved
//   - WithTextEncoding(cm): single-byte charmap for all strings
//   - WithReadLimits(l): override depth and size limits
//
// Errors carry the byte offset where decoding stopped. A failed decode
// returns no partial document: one corrupt byte invalidates every offset
// after it.
func Decode(r io.Reader, opts ...ReadOption) (*Document, error) {
	cfg := newReadConfig(opts)
	data, err := readAll(io.LimitReader(r, int64(cfg.limits.MaxInputLen)+1))
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) > cfg.limits.MaxInputLen {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrLimitExceeded, cfg.limits.MaxInputLen)
	}
	return load(data, &cfg)
}

// Load decodes a binmap document from an in-memory buffer.
func Load(data []byte, opts ...ReadOption) (*Document, error) {
	cfg := newReadConfig(opts)
	if uint64(len(data)) > cfg.limits.MaxInputLen {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrLimitExceeded, cfg.limits.MaxInputLen)
	}
	return load(data, &cfg)
}

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{
		limits:    defaultLimits(),
		signature: DefaultSignature,
		text:      charmap.ISO8859_1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

func load(data []byte, cfg *readConfig) (*Document, error) {
	if hasShell(data) {
		unwrapped, err := decompressShell(data, cfg.limits.MaxUncompressed)
		if err != nil {
			return nil, err
		}
		data = unwrapped
	}
	r := &reader{buf: data, text: cfg.text}

	// The signature is bare bytes, no length prefix: its length is fixed by
	// the expected constant, and the comparison happens before anything
	// else is parsed.
	want, err := encodeText(cfg.text, cfg.signature)
	if err != nil {
		return nil, err
	}
	sig, err := r.raw(len(want))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(sig, want) {
		return nil, fmt.Errorf("%w: expected %q, found %q", ErrBadSignature, cfg.signature, decodeText(cfg.text, sig))
	}
	title, err := r.rawstring()
	if err != nil {
		return nil, err
	}
	table, err := readLookupTable(r, cfg.limits)
	if err != nil {
		return nil, err
	}
	root, err := readElement(r, table, cfg, 0)
	if err != nil {
		return nil, err
	}
	// Trailing bytes after the root element are ignored, matching readers
	// in the wild.
	return &Document{Signature: cfg.signature, Package: title, Root: root}, nil
}
