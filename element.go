package binmap

import "fmt"

// Element wire layout: name ref (varuint table index), attribute count
// (u8), attributes (name ref + value each), child count (u16), children.
// Depth is the format's only unbounded dimension, so both directions carry
// an explicit counter checked against Limits.MaxDepth.

const (
	maxAttrs    = 1<<8 - 1  // hard 8-bit wire bound
	maxChildren = 1<<16 - 1 // hard 16-bit wire bound
)

func readElement(r *reader, table *lookupTable, cfg *readConfig, depth int) (*Element, error) {
	if depth >= cfg.limits.MaxDepth {
		return nil, fmt.Errorf("%w: depth %d at offset %d", ErrMaxDepthExceeded, depth, r.off)
	}
	nameRef, err := r.varuint()
	if err != nil {
		return nil, err
	}
	name, err := table.resolve(nameRef)
	if err != nil {
		return nil, err
	}
	e := &Element{Name: name}

	attrCount, err := r.u8()
	if err != nil {
		return nil, err
	}
	if depth == 0 && attrCount > 0 && cfg.strictRoot {
		return nil, fmt.Errorf("%w: root element %q declares %d attributes", ErrUnexpectedRootAttributes, name, attrCount)
	}
	if attrCount > 0 {
		e.Attrs = make([]Attr, 0, attrCount)
	}
	for i := 0; i < int(attrCount); i++ {
		aRef, err := r.varuint()
		if err != nil {
			return nil, err
		}
		aName, err := table.resolve(aRef)
		if err != nil {
			return nil, err
		}
		v, err := readValue(r, table, cfg.rawRefs)
		if err != nil {
			return nil, err
		}
		e.Attrs = append(e.Attrs, Attr{Name: aName, Value: v})
	}
	if depth == 0 {
		// Root attributes are tolerated but not kept in lenient mode.
		e.Attrs = nil
	}

	childCount, err := r.u16()
	if err != nil {
		return nil, err
	}
	if childCount > 0 {
		e.Children = make([]*Element, 0, childCount)
	}
	for i := 0; i < int(childCount); i++ {
		c, err := readElement(r, table, cfg, depth+1)
		if err != nil {
			return nil, err
		}
		e.Children = append(e.Children, c)
	}
	return e, nil
}

func writeElement(w *writer, e *Element, table *lookupTable, cfg *writeConfig, depth int) error {
	if depth >= cfg.limits.MaxDepth {
		return fmt.Errorf("%w: depth %d at element %q", ErrMaxDepthExceeded, depth, e.Name)
	}
	if err := writeNameRef(w, e.Name, table); err != nil {
		return err
	}
	if len(e.Attrs) > maxAttrs {
		return fmt.Errorf("%w: element %q has %d attributes, max %d", ErrTooManyEntries, e.Name, len(e.Attrs), maxAttrs)
	}
	w.u8(uint8(len(e.Attrs)))
	for _, a := range e.Attrs {
		if err := writeNameRef(w, a.Name, table); err != nil {
			return err
		}
		if err := writeValue(w, a.Value, table, cfg.inlineStrings); err != nil {
			return err
		}
	}
	if len(e.Children) > maxChildren {
		return fmt.Errorf("%w: element %q has %d children, max %d", ErrTooManyEntries, e.Name, len(e.Children), maxChildren)
	}
	w.u16(uint16(len(e.Children)))
	for _, c := range e.Children {
		if err := writeElement(w, c, table, cfg, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// writeNameRef emits a name as a varuint table index. Names are always
// indices on the wire; the collection pass in Encode guarantees membership.
func writeNameRef(w *writer, name string, table *lookupTable) error {
	i, ok := table.indexOf(name)
	if !ok {
		return fmt.Errorf("%w: name %q missing from lookup table", ErrIndexOutOfRange, name)
	}
	w.varuint(uint32(i))
	return nil
}
