package cut

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidList = errors.New("invalid list")

// Range is a half-open, 0-based span of positions.
type Range struct {
	Start, End int
}

type PositionList []Range

var (
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
	rangeRe  = regexp.MustCompile(`^([0-9]+)-([0-9]+)$`)
)

type valueError struct {
	msg  string
	kind error
}

func (e *valueError) Error() string { return e.msg }
func (e *valueError) Unwrap() error { return e.kind }

func illegalValue(s string) error {
	return &valueError{msg: fmt.Sprintf("illegal list value: %q", s), kind: ErrInvalidList}
}

// parseIndex turns a 1-based position into a 0-based index. Zero, signs and
// anything that is not plain digits are rejected.
func parseIndex(s string) (int, error) {
	if !digitsRe.MatchString(s) {
		return 0, illegalValue(s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return 0, illegalValue(s)
	}
	return n - 1, nil
}

// ParsePositions parses a list like "1,3-5,8". Items keep their order and
// may repeat or overlap.
func ParsePositions(s string) (PositionList, error) {
	var out PositionList
	for _, item := range strings.Split(s, ",") {
		n, err := parseIndex(item)
		if err == nil {
			out = append(out, Range{Start: n, End: n + 1})
			continue
		}
		m := rangeRe.FindStringSubmatch(item)
		if m == nil {
			return nil, err
		}
		lo, err := parseIndex(m[1])
		if err != nil {
			return nil, err
		}
		hi, err := parseIndex(m[2])
		if err != nil {
			return nil, err
		}
		if lo > hi {
			return nil, &valueError{msg: fmt.Sprintf(
				"First number in range (%d) must be lower than second number (%d)", lo+1, hi+1),
				kind: ErrInvalidList}
		}
		out = append(out, Range{Start: lo, End: hi + 1})
	}
	return out, nil
}

func (r Range) clamp(n int) (int, int) {
	start, end := r.Start, r.End
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}
