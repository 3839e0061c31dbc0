package tail

import (
	"bytes"
	"errors"
	"io"
)

const blockSize = 64 * 1024

type Totals struct {
	Lines int64
	Bytes int64
}

// CountTotals reads r to EOF and counts lines and bytes. A trailing line
// without a newline still counts as a line.
func CountTotals(r io.Reader) (Totals, error) {
	var t Totals
	buf := make([]byte, blockSize)
	var last byte
	for {
		n, err := r.Read(buf)
		if n > 0 {
			t.Bytes += int64(n)
			t.Lines += int64(bytes.Count(buf[:n], eol))
			last = buf[n-1]
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return t, err
		}
	}
	if t.Bytes > 0 && last != '\n' {
		t.Lines++
	}
	return t, nil
}

func (t Totals) of(bytesMode bool) int64 {
	if bytesMode {
		return t.Bytes
	}
	return t.Lines
}
