package tail

import (
	"bytes"
	"errors"
	"io"
)

var eol = []byte{'\n'}

// StreamBytes copies r to w starting at byte offset start. r must be positioned
// at its beginning. Seekable sources are seeked; anything else has the prefix
// read and discarded, so pipes work too. Bytes are copied verbatim.
func StreamBytes(w io.Writer, r io.Reader, start int64) (int64, error) {
	if start > 0 {
		if err := skipBytes(r, start); err != nil {
			return 0, err
		}
	}
	return io.Copy(w, r)
}

func skipBytes(r io.Reader, n int64) error {
	if s, ok := r.(io.Seeker); ok {
		if _, err := s.Seek(n, io.SeekStart); err == nil {
			return nil
		}
	}
	_, err := io.CopyN(io.Discard, r, n)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// StreamLines copies r to w starting at the first byte of line start
// (0-based). A final line without a newline is copied as well.
func StreamLines(w io.Writer, r io.Reader, start int64) (int64, error) {
	var written int64
	if start > 0 {
		rest, err := skipLines(r, start)
		if err != nil {
			return 0, err
		}
		if len(rest) > 0 {
			n, err := w.Write(rest)
			written += int64(n)
			if err != nil {
				return written, err
			}
		}
	}
	n, err := io.Copy(w, r)
	return written + n, err
}

// skipLines consumes n lines from r and returns whatever was read past the
// n-th newline.
func skipLines(r io.Reader, n int64) ([]byte, error) {
	buf := make([]byte, blockSize)
	var seen int64
	for {
		m, err := r.Read(buf)
		p := buf[:m]
		for len(p) > 0 {
			i := bytes.IndexByte(p, '\n')
			if i < 0 {
				break
			}
			p = p[i+1:]
			seen++
			if seen == n {
				return p, nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, err
		}
	}
}
