package binmap

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/text/encoding/charmap"
)

// Encode writes doc to w in the binmap format.
//
// Encoding is two-pass: a collection pass walks the whole tree and builds
// the lookup table (element names, attribute names and, by default, every
// String attribute value, deduplicated in first-seen order), then the emit
// pass writes signature, title, table and root element. The table must be
// complete before the first element byte because elements reference it by
// index.
//
// By default Encode writes the bare document. Use WriteOption functions to
// customize:
//   - WithCompression(comp): wrap the output in a compression shell
//   - WithInlineStringValues(true): keep string values out of the table
//   - WithSignature(s): signature for documents that don't carry one
//   - WithWriteTextEncoding(cm): single-byte charmap for all strings
//   - WithWriteLimits(l): override depth and size limits
//
// Encode returns ErrTooManyEntries if the table, an attribute list or a
// child list outgrows its wire-width, ErrMaxDepthExceeded past
// Limits.MaxDepth, and ErrUnsupportedRune for strings the configured
// encoding cannot represent.
func Encode(w io.Writer, doc *Document, opts ...WriteOption) error {
	cfg := writeConfig{
		limits:    defaultLimits(),
		signature: DefaultSignature,
		text:      charmap.ISO8859_1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.Root == nil {
		return fmt.Errorf("%w: root element is nil", ErrInvalidDocument)
	}
	sig := doc.Signature
	if sig == "" {
		sig = cfg.signature
	}

	table := newLookupTable()
	if err := collectStrings(doc.Root, table, &cfg, 0); err != nil {
		return err
	}

	ww := &writer{text: cfg.text}
	// Bare signature bytes, no length prefix: a decoder knows the expected
	// constant's length up front.
	sigBytes, err := encodeText(cfg.text, sig)
	if err != nil {
		return err
	}
	ww.buf.Write(sigBytes)
	if err := ww.rawstring(doc.Package); err != nil {
		return err
	}
	if err := writeLookupTable(ww, table); err != nil {
		return err
	}
	if err := writeElement(ww, doc.Root, table, &cfg, 0); err != nil {
		return err
	}

	out := ww.buf.Bytes()
	if cfg.compression != CompNone {
		shelled, err := compressShell(cfg.compression, out)
		if err != nil {
			return err
		}
		out = shelled
	}
	_, err = w.Write(out)
	return err
}

// Save is Encode into a fresh byte slice.
func Save(doc *Document, opts ...WriteOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// collectStrings registers every table-bound string under e, in document
// order. Run-length values stay inline always; String values stay inline
// only under WithInlineStringValues.
func collectStrings(e *Element, t *lookupTable, cfg *writeConfig, depth int) error {
	if depth >= cfg.limits.MaxDepth {
		return fmt.Errorf("%w: depth %d at element %q", ErrMaxDepthExceeded, depth, e.Name)
	}
	if err := t.add(e.Name); err != nil {
		return err
	}
	for _, a := range e.Attrs {
		if err := t.add(a.Name); err != nil {
			return err
		}
		if s, ok := a.Value.(String); ok && !cfg.inlineStrings {
			if err := t.add(string(s)); err != nil {
				return err
			}
		}
	}
	for _, c := range e.Children {
		if err := collectStrings(c, t, cfg, depth+1); err != nil {
			return err
		}
	}
	return nil
}
