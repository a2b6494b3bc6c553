package binmap

import "fmt"

const maxTableEntries = 1<<16 - 1 // hard 16-bit wire bound

// lookupTable is the per-document string registry. Entries keep their
// first-seen order; every name and (by default) every string value in the
// element tree is written as an index into it.
type lookupTable struct {
	entries []string
	index   map[string]uint16
}

func newLookupTable() *lookupTable {
	return &lookupTable{index: make(map[string]uint16)}
}

// add registers s, deduplicating against earlier entries.
func (t *lookupTable) add(s string) error {
	if _, ok := t.index[s]; ok {
		return nil
	}
	if len(t.entries) >= maxTableEntries {
		return fmt.Errorf("%w: lookup table is full at %d strings", ErrTooManyEntries, maxTableEntries)
	}
	t.index[s] = uint16(len(t.entries))
	t.entries = append(t.entries, s)
	return nil
}

// indexOf returns the table index of s. The table is built from a full
// pass over the document before any element is written, so a miss is a
// bug in the collection pass, not a caller error.
func (t *lookupTable) indexOf(s string) (uint16, bool) {
	i, ok := t.index[s]
	return i, ok
}

// resolve returns the entry at i.
func (t *lookupTable) resolve(i uint32) (string, error) {
	if i >= uint32(len(t.entries)) {
		return "", fmt.Errorf("%w: index %d, table holds %d strings", ErrIndexOutOfRange, i, len(t.entries))
	}
	return t.entries[i], nil
}

// readLookupTable reads the 16-bit entry count and that many raw strings.
func readLookupTable(r *reader, limits Limits) (*lookupTable, error) {
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	if int(n) > limits.MaxTableEntries {
		return nil, fmt.Errorf("%w: %d entries, limit %d", ErrTableTooLarge, n, limits.MaxTableEntries)
	}
	t := newLookupTable()
	for i := 0; i < int(n); i++ {
		s, err := r.rawstring()
		if err != nil {
			return nil, err
		}
		// Wire order is authoritative: indices must match positions even
		// if a foreign encoder emitted duplicates.
		if _, ok := t.index[s]; !ok {
			t.index[s] = uint16(len(t.entries))
		}
		t.entries = append(t.entries, s)
	}
	return t, nil
}

// writeLookupTable writes the 16-bit entry count and the entries in order.
func writeLookupTable(w *writer, t *lookupTable) error {
	if len(t.entries) > maxTableEntries {
		return fmt.Errorf("%w: %d lookup strings", ErrTooManyEntries, len(t.entries))
	}
	w.u16(uint16(len(t.entries)))
	for _, s := range t.entries {
		if err := w.rawstring(s); err != nil {
			return err
		}
	}
	return nil
}
