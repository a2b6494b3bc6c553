// Package binmap implements the binmap binary element-tree document format.
//
// A binmap file is a self-describing, length-prefixed serialization of a
// tree of named elements, as used to store game level data. Each element
// carries an ordered attribute list (name to typed value) and an ordered
// child list. Strings are deduplicated through a per-document lookup table
// and referenced by index; values are a ten-variant tagged union covering
// booleans, integers of four widths, two float widths, and three string
// forms (inline, lookup reference, run-length encoded).
//
// # Wire Format
//
// All multi-byte fixed-width integers are little-endian:
//
//	Document  := Signature(fixed bytes, no prefix) Title(rawstring) LookupTable RootElement
//	LookupTable := Count:u16 Strings(Count × rawstring)
//	Element   := NameRef:varuint AttrCount:u8 Attrs(AttrCount × Attribute)
//	             ChildCount:u16 Children(ChildCount × Element)
//	Attribute := NameRef:varuint Value
//	Value     := Tag:u8 Payload(per tag)
//	rawstring := Len:varuint Bytes(Len × u8, one byte per character)
//	runlength := ByteCount:u16 Pairs(ByteCount/2 × (Repeat:u8 Char:u8))
//
// Value tags: 0 boolean (u8), 1 byte, 2 short (i16), 3 int (i32),
// 4 float (f32), 5 lookup reference (u16 index), 6 string (rawstring),
// 7 run-length string, 8 long (i64), 9 double (f64). Tags 10-255 are
// reserved and rejected.
//
// The varuint is the base-128 encoding: seven payload bits per byte,
// least significant group first, high bit set on every byte but the last,
// at most five bytes.
//
// A saved document may optionally be wrapped in a compression shell
// (Zstandard, LZ4 or Brotli); Decode detects and unwraps it transparently.
// See [WithCompression].
//
// # Basic Usage
//
// To build and save a document:
//
//	root := &binmap.Element{Name: "Map"}
//	level := &binmap.Element{Name: "level"}
//	level.SetAttr("name", binmap.String("1-forsaken"))
//	level.SetAttr("width", binmap.Int(320))
//	root.Children = append(root.Children, level)
//	data, err := binmap.Save(&binmap.Document{Package: "demo", Root: root})
//
// To load one:
//
//	doc, err := binmap.Load(data)
//	for _, lvl := range doc.Root.ChildrenNamed("level") {
//		name, _ := lvl.AttrString("name")
//		...
//	}
//
// # Security Considerations
//
// Decoding is hardened against hostile input: every read is bounds-checked
// (ErrUnexpectedEOF), element nesting is capped (ErrMaxDepthExceeded rather
// than stack exhaustion), table and input sizes are capped, and shell
// decompression enforces the declared uncompressed length. All knobs live
// on [Limits].
//
// The codec holds no shared state; concurrent Encode/Decode calls on
// independent documents need no synchronization.
package binmap
