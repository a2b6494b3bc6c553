package binmap

// Limits bound allocations and recursion while decoding untrusted input.
// Zero fields take the corresponding default.
type Limits struct {
	MaxInputLen     uint64 // bytes accepted from the reader before parsing
	MaxUncompressed uint64 // decompressed document size under a compression shell
	MaxTableEntries int    // lookup table entries (wire caps this at 65535)
	MaxDepth        int    // element nesting, applied on read and write
}

func defaultLimits() Limits {
	return Limits{
		MaxInputLen:     256 << 20, // 256 MiB
		MaxUncompressed: 256 << 20,
		MaxTableEntries: maxTableEntries,
		MaxDepth:        1000,
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxInputLen == 0 {
		l.MaxInputLen = d.MaxInputLen
	}
	if l.MaxUncompressed == 0 {
		l.MaxUncompressed = d.MaxUncompressed
	}
	if l.MaxTableEntries == 0 {
		l.MaxTableEntries = d.MaxTableEntries
	}
	if l.MaxTableEntries > maxTableEntries {
		l.MaxTableEntries = maxTableEntries
	}
	if l.MaxDepth == 0 {
		l.MaxDepth = d.MaxDepth
	}
	return l
}
