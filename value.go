package binmap

import "fmt"

// readValue decodes one tag-prefixed value. LookupRef payloads resolve
// against table unless rawRefs is set, in which case the caller gets the
// Ref index untouched.
func readValue(r *reader, table *lookupTable, rawRefs bool) (Value, error) {
	start := r.off
	tag, err := r.u8()
	if err != nil {
		return nil, err
	}
	switch Tag(tag) {
	case TagBoolean:
		v, err := r.bool()
		return Bool(v), err
	case TagByte:
		v, err := r.u8()
		return Byte(v), err
	case TagShort:
		v, err := r.i16()
		return Short(v), err
	case TagInt:
		v, err := r.i32()
		return Int(v), err
	case TagFloat:
		v, err := r.f32()
		return Float(v), err
	case TagLookupRef:
		i, err := r.u16()
		if err != nil {
			return nil, err
		}
		if rawRefs {
			return Ref(i), nil
		}
		s, err := table.resolve(uint32(i))
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case TagString:
		v, err := r.rawstring()
		return String(v), err
	case TagRunLength:
		v, err := readRunLength(r)
		return RunLength(v), err
	case TagLong:
		v, err := r.i64()
		return Long(v), err
	case TagDouble:
		v, err := r.f64()
		return Double(v), err
	default:
		return nil, fmt.Errorf("%w: tag %d at offset %d", ErrUnknownValueTag, tag, start)
	}
}

// writeValue encodes one value as its tag byte plus payload. String values
// become lookup references when the string was tabled during collection;
// inlineStrings forces the literal tag 6 form instead.
func writeValue(w *writer, v Value, table *lookupTable, inlineStrings bool) error {
	switch v := v.(type) {
	case Bool:
		w.u8(uint8(TagBoolean))
		w.bool(bool(v))
	case Byte:
		w.u8(uint8(TagByte))
		w.u8(uint8(v))
	case Short:
		w.u8(uint8(TagShort))
		w.i16(int16(v))
	case Int:
		w.u8(uint8(TagInt))
		w.i32(int32(v))
	case Float:
		w.u8(uint8(TagFloat))
		w.f32(float32(v))
	case Ref:
		if uint32(v) >= uint32(len(table.entries)) {
			return fmt.Errorf("%w: ref %d, table holds %d strings", ErrIndexOutOfRange, v, len(table.entries))
		}
		w.u8(uint8(TagLookupRef))
		w.u16(uint16(v))
	case String:
		if !inlineStrings {
			if i, ok := table.indexOf(string(v)); ok {
				w.u8(uint8(TagLookupRef))
				w.u16(i)
				return nil
			}
		}
		w.u8(uint8(TagString))
		return w.rawstring(string(v))
	case RunLength:
		w.u8(uint8(TagRunLength))
		return writeRunLength(w, string(v))
	case Long:
		w.u8(uint8(TagLong))
		w.i64(int64(v))
	case Double:
		w.u8(uint8(TagDouble))
		w.f64(float64(v))
	case nil:
		return fmt.Errorf("%w: nil value", ErrUnknownValueTag)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownValueTag, v)
	}
	return nil
}
