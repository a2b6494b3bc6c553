package binmap

import "golang.org/x/text/encoding/charmap"

type readConfig struct {
	limits     Limits
	signature  string
	text       *charmap.Charmap
	strictRoot bool
	rawRefs    bool
}

type ReadOption func(*readConfig)

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

// WithStrictRoot makes Decode fail with ErrUnexpectedRootAttributes when
// the root element declares attributes. The lenient default reads and
// discards them, which is what files in the wild require.
func WithStrictRoot(v bool) ReadOption {
	return func(c *readConfig) { c.strictRoot = v }
}

// WithRawRefs preserves lookup-reference values as Ref instead of
// resolving them to String. Intended for inspection tooling; ordinary
// consumers want the resolved form.
func WithRawRefs(v bool) ReadOption {
	return func(c *readConfig) { c.rawRefs = v }
}

// WithExpectedSignature overrides the signature Decode requires at the
// start of the document.
func WithExpectedSignature(s string) ReadOption {
	return func(c *readConfig) { c.signature = s }
}

// WithTextEncoding sets the single-byte character encoding used for every
// string in the document. The default is ISO 8859-1, under which byte
// values map straight to the first 256 Unicode code points.
func WithTextEncoding(cm *charmap.Charmap) ReadOption {
	return func(c *readConfig) { c.text = cm }
}

type writeConfig struct {
	limits        Limits
	signature     string
	text          *charmap.Charmap
	compression   Compression
	inlineStrings bool
}

type WriteOption func(*writeConfig)

func WithWriteLimits(l Limits) WriteOption {
	return func(c *writeConfig) { c.limits = l }
}

// WithSignature overrides the signature Encode writes when the document
// does not carry one of its own.
func WithSignature(s string) WriteOption {
	return func(c *writeConfig) { c.signature = s }
}

// WithWriteTextEncoding is the encode-side counterpart of WithTextEncoding.
func WithWriteTextEncoding(cm *charmap.Charmap) WriteOption {
	return func(c *writeConfig) { c.text = cm }
}

// WithCompression wraps the encoded document in a compression shell.
// CompNone (the default) writes the bare document.
func WithCompression(comp Compression) WriteOption {
	return func(c *writeConfig) { c.compression = comp }
}

// WithInlineStringValues writes String attribute values as literal strings
// (tag 6) instead of lookup references, keeping the table to names only.
func WithInlineStringValues(v bool) WriteOption {
	return func(c *writeConfig) { c.inlineStrings = v }
}
