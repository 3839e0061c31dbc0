package tail

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var ErrInvalidCount = errors.New("invalid count")

type Kind uint8

const (
	// Take counts N units from the end when N < 0, or starts at unit N when N > 0.
	Take Kind = iota
	// PlusZero is "+0": everything from the first unit onward.
	PlusZero
)

// Directive is a parsed -n/-c argument. It holds no file state and can be
// evaluated against any number of totals.
type Directive struct {
	Kind Kind
	N    int64
}

func Last(n int64) Directive { return Directive{Kind: Take, N: -n} }

func (d Directive) String() string {
	switch {
	case d.Kind == PlusZero:
		return "+0"
	case d.N > 0:
		return "+" + strconv.FormatInt(d.N, 10)
	default:
		return strconv.FormatInt(d.N, 10)
	}
}

var countRe = regexp.MustCompile(`^([+-])?([0-9]+)$`)

// ParseCount parses a count argument. A bare number counts from the end,
// exactly like an explicit "-".
func ParseCount(s string) (Directive, error) {
	m := countRe.FindStringSubmatch(s)
	if m == nil {
		return Directive{}, invalidCount(s)
	}
	sign := m[1]
	if sign == "" {
		sign = "-"
	}
	n, err := strconv.ParseInt(sign+m[2], 10, 64)
	if err != nil {
		return Directive{}, invalidCount(s)
	}
	if sign == "+" && n == 0 {
		return Directive{Kind: PlusZero}, nil
	}
	return Directive{Kind: Take, N: n}, nil
}

type countError struct{ val string }

func (e *countError) Error() string { return e.val }
func (e *countError) Unwrap() error { return ErrInvalidCount }

func invalidCount(s string) error { return &countError{val: s} }

// StartIndex returns the 0-based unit at which output begins for a source of
// total units. ok is false when nothing should be printed.
func StartIndex(d Directive, total int64) (start int64, ok bool) {
	if d.Kind == PlusZero {
		if total > 0 {
			return 0, true
		}
		return 0, false
	}
	n := d.N
	if n == 0 || total == 0 || n > total {
		return 0, false
	}
	if n > 0 {
		return n - 1, true
	}
	start = total + n
	if start < 0 {
		start = 0
	}
	return start, true
}

func (d Directive) GoString() string {
	if d.Kind == PlusZero {
		return "tail.Directive{PlusZero}"
	}
	return fmt.Sprintf("tail.Directive{Take %d}", d.N)
}
