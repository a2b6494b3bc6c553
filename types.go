package binmap

// DefaultSignature is the signature string written at the start of every
// document unless overridden with WithSignature.
const DefaultSignature = "BINMAP"

// Tag identifies the wire encoding of a Value. The numeric assignments are
// fixed by the format and must never change. Tags 10-255 are reserved.
type Tag uint8

const (
	TagBoolean   Tag = 0
	TagByte      Tag = 1
	TagShort     Tag = 2
	TagInt       Tag = 3
	TagFloat     Tag = 4
	TagLookupRef Tag = 5
	TagString    Tag = 6
	TagRunLength Tag = 7
	TagLong      Tag = 8
	TagDouble    Tag = 9
)

// Value is one attribute value: exactly one of the ten wire variants.
//
// String, RunLength and Ref all carry logical strings; they differ only in
// how the bytes are laid out. Decode resolves Ref values against the
// document's lookup table and hands back String (unless WithRawRefs), so
// consumers normally see only String and RunLength.
type Value interface {
	Tag() Tag
	isValue()
}

type (
	// Bool is a TagBoolean value.
	Bool bool
	// Byte is a TagByte value.
	Byte uint8
	// Short is a TagShort value.
	Short int16
	// Int is a TagInt value.
	Int int32
	// Float is a TagFloat value.
	Float float32
	// Ref is a TagLookupRef value: a zero-based index into the document's
	// lookup table.
	Ref uint16
	// String is a TagString value.
	String string
	// RunLength is a string that serializes with the run-length pair
	// encoding (TagRunLength). Use it for values dominated by runs of
	// repeated characters; for anything else it expands the output.
	RunLength string
	// Long is a TagLong value.
	Long int64
	// Double is a TagDouble value.
	Double float64
)

func (Bool) Tag() Tag      { return TagBoolean }
func (Byte) Tag() Tag      { return TagByte }
func (Short) Tag() Tag     { return TagShort }
func (Int) Tag() Tag       { return TagInt }
func (Float) Tag() Tag     { return TagFloat }
func (Ref) Tag() Tag       { return TagLookupRef }
func (String) Tag() Tag    { return TagString }
func (RunLength) Tag() Tag { return TagRunLength }
func (Long) Tag() Tag      { return TagLong }
func (Double) Tag() Tag    { return TagDouble }

func (Bool) isValue()      {}
func (Byte) isValue()      {}
func (Short) isValue()     {}
func (Int) isValue()       {}
func (Float) isValue()     {}
func (Ref) isValue()       {}
func (String) isValue()    {}
func (RunLength) isValue() {}
func (Long) isValue()      {}
func (Double) isValue()    {}

// Attr is one attribute of an Element.
type Attr struct {
	Name  string
	Value Value
}

// Element is a named tree node: an ordered attribute list and an ordered
// child list. Attribute order (and any duplicates a foreign encoder
// produced) is preserved exactly as decoded.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
}

// Attr returns the value of the first attribute with the given name.
func (e *Element) Attr(name string) (Value, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// AttrString returns the attribute's logical string regardless of whether
// it was stored inline, run-length encoded, or as a lookup reference that
// Decode already resolved.
func (e *Element) AttrString(name string) (string, bool) {
	v, ok := e.Attr(name)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case String:
		return string(s), true
	case RunLength:
		return string(s), true
	default:
		return "", false
	}
}

// SetAttr replaces the first attribute with the given name, or appends a
// new one.
func (e *Element) SetAttr(name string, v Value) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = v
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: v})
}

// Child returns the first child with the given name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all direct children with the given name, in order.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Document is a logical representation of a binmap file.
//
// Signature is filled in by Decode; Encode writes it when non-empty,
// falling back to the configured signature otherwise. Package is the
// free-form title string following the signature. Root MUST be present.
// The lookup table is per-pass codec state and is never part of the model.
type Document struct {
	Signature string
	Package   string
	Root      *Element
}
