package cut

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"unicode/utf8"
)

var ErrInvalidDelimiter = errors.New("invalid delimiter")

type Mode int

const (
	Fields Mode = iota + 1
	Bytes
	Chars
)

func (m Mode) String() string {
	switch m {
	case Fields:
		return "fields"
	case Bytes:
		return "bytes"
	case Chars:
		return "chars"
	default:
		return "unknown"
	}
}

type Options struct {
	Mode      Mode
	Positions PositionList
	Delimiter byte

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

type Result struct {
	Files  int
	Failed []string
}

// ParseDelimiter checks that d is one byte usable as a CSV separator.
func ParseDelimiter(d string) (byte, error) {
	if len(d) != 1 {
		return 0, &valueError{msg: fmt.Sprintf("--delim %q must be a single byte", d), kind: ErrInvalidDelimiter}
	}
	switch c := d[0]; {
	case c == 0, c == '"', c == '\r', c == '\n', c >= utf8.RuneSelf:
		return 0, &valueError{msg: fmt.Sprintf("--delim %q cannot separate fields", d), kind: ErrInvalidDelimiter}
	}
	return d[0], nil
}

// Run cuts each named file in order; "-" is standard input. Per-file errors
// are reported on opts.Stderr and do not stop the loop.
func Run(ctx context.Context, names []string, opts Options) (*Result, error) {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Mode == Fields && opts.Delimiter == 0 {
		opts.Delimiter = '\t'
	}

	res := &Result{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Files++
		if err := cutOne(name, opts); err != nil {
			var pe *fs.PathError
			if errors.As(err, &pe) {
				err = pe.Err
			}
			fmt.Fprintf(opts.Stderr, "%s: %v\n", name, err)
			res.Failed = append(res.Failed, name)
		}
	}
	return res, nil
}

func cutOne(name string, opts Options) error {
	r, closeFn, err := open(name, opts.Stdin)
	if err != nil {
		return err
	}
	defer closeFn()
	opts.Logger.Debug("cut file", "file", name, "mode", opts.Mode.String(), "ranges", len(opts.Positions))

	switch opts.Mode {
	case Fields:
		return cutFields(opts.Stdout, r, opts.Delimiter, opts.Positions)
	case Bytes:
		return cutLines(opts.Stdout, r, func(line []byte) []byte { return ExtractBytes(line, opts.Positions) })
	case Chars:
		return cutLines(opts.Stdout, r, func(line []byte) []byte { return ExtractChars(line, opts.Positions) })
	default:
		return fmt.Errorf("unknown mode %d", opts.Mode)
	}
}

func open(name string, stdin io.Reader) (io.Reader, func() error, error) {
	if name == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		return stdin, func() error { return nil }, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func cutFields(w io.Writer, r io.Reader, delim byte, pos PositionList) error {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comma = rune(delim)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	cw := csv.NewWriter(w)
	cw.Comma = rune(delim)
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			cw.Flush()
			return err
		}
		if err := cw.Write(ExtractFields(rec, pos)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func cutLines(w io.Writer, r io.Reader, extract func([]byte) []byte) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			line = bytes.TrimSuffix(line, []byte{'\n'})
			line = bytes.TrimSuffix(line, []byte{'\r'})
			if _, werr := bw.Write(extract(line)); werr != nil {
				return werr
			}
			if werr := bw.WriteByte('\n'); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			bw.Flush()
			return err
		}
	}
	return bw.Flush()
}
