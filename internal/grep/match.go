package grep

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
)

var ErrInvalidPattern = errors.New("invalid pattern")

type patternError struct{ pattern string }

func (e *patternError) Error() string { return fmt.Sprintf("Invalid pattern %q", e.pattern) }
func (e *patternError) Unwrap() error { return ErrInvalidPattern }

func Compile(pattern string, insensitive bool) (*regexp.Regexp, error) {
	expr := pattern
	if insensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &patternError{pattern: pattern}
	}
	return re, nil
}

// FindLines returns the lines of r that match re, or that don't when invert
// is set. Lines keep their terminator; matching ignores it.
func FindLines(r io.Reader, re *regexp.Regexp, invert bool) ([][]byte, error) {
	var out [][]byte
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 && re.Match(trimEOL(line)) != invert {
			out = append(out, line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
	}
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	return bytes.TrimSuffix(line, []byte{'\r'})
}
