package binmap

import "fmt"

// The run-length layout is a 16-bit count of the pair bytes that follow
// (not of logical characters), then (repeat, char) byte pairs. A repeat of
// zero never occurs in well-formed data.

// readRunLength decodes a run-length string from r.
func readRunLength(r *reader) (string, error) {
	start := r.off
	n, err := r.u16()
	if err != nil {
		return "", err
	}
	if n%2 != 0 {
		return "", fmt.Errorf("%w: odd byte count %d at offset %d", ErrMalformedRunLength, n, start)
	}
	if err := r.need(int(n)); err != nil {
		return "", err
	}
	pairs := r.buf[r.off : r.off+int(n)]
	r.off += int(n)

	var total int
	for i := 0; i < len(pairs); i += 2 {
		if pairs[i] == 0 {
			return "", fmt.Errorf("%w: zero-length run at offset %d", ErrMalformedRunLength, start+2+i)
		}
		total += int(pairs[i])
	}
	out := make([]byte, 0, total)
	for i := 0; i < len(pairs); i += 2 {
		repeat, char := pairs[i], pairs[i+1]
		for j := byte(0); j < repeat; j++ {
			out = append(out, char)
		}
	}
	return decodeText(r.text, out), nil
}

// writeRunLength encodes s with greedy run splitting: one pair per run of
// identical characters, runs longer than 255 split across pairs. Whether a
// given string benefits from this form is the caller's call; a string with
// no repeats doubles in size.
func writeRunLength(w *writer, s string) error {
	raw, err := encodeText(w.text, s)
	if err != nil {
		return err
	}
	pairs := make([]byte, 0, 2*len(raw))
	for i := 0; i < len(raw); {
		j := i + 1
		for j < len(raw) && raw[j] == raw[i] && j-i < 255 {
			j++
		}
		pairs = append(pairs, byte(j-i), raw[i])
		i = j
	}
	if len(pairs) > int(^uint16(0)) {
		return fmt.Errorf("%w: run-length body of %d bytes exceeds 16-bit count", ErrTooManyEntries, len(pairs))
	}
	w.u16(uint16(len(pairs)))
	w.buf.Write(pairs)
	return nil
}
