package cut

import "unicode/utf8"

// ExtractBytes selects raw bytes; a multi-byte character split by the list
// comes out split.
func ExtractBytes(line []byte, pos PositionList) []byte {
	var out []byte
	for _, r := range pos {
		start, end := r.clamp(len(line))
		out = append(out, line[start:end]...)
	}
	return out
}

func ExtractChars(line []byte, pos PositionList) []byte {
	// offsets[i] is the byte offset of character i; the extra entry marks the end.
	offsets := make([]int, 0, len(line)+1)
	for i := 0; i < len(line); {
		offsets = append(offsets, i)
		_, size := utf8.DecodeRune(line[i:])
		i += size
	}
	offsets = append(offsets, len(line))

	var out []byte
	for _, r := range pos {
		start, end := r.clamp(len(offsets) - 1)
		out = append(out, line[offsets[start]:offsets[end]]...)
	}
	return out
}

func ExtractFields(record []string, pos PositionList) []string {
	out := make([]string, 0, len(record))
	for _, r := range pos {
		start, end := r.clamp(len(record))
		out = append(out, record[start:end]...)
	}
	return out
}
