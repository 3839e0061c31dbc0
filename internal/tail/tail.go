package tail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

// StdinName is the file argument that reads standard input.
const StdinName = "-"

type Options struct {
	Lines Directive
	// Bytes selects byte mode when non-nil.
	Bytes *Directive
	Quiet bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

type Result struct {
	Files  int
	Failed []string
}

// Run tails each named file in order. Per-file failures are written to
// opts.Stderr and recorded in the result; they never stop the loop. The
// returned error is non-nil only when ctx is done.
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
	headers := !opts.Quiet && len(names) > 1

	res := &Result{}
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Files++
		if err := tailOne(i, name, headers, opts); err != nil {
			fmt.Fprintf(opts.Stderr, "%s: %v\n", name, cause(err))
			opts.Logger.Debug("tail failed", "file", name, "err", err)
			res.Failed = append(res.Failed, name)
		}
	}
	return res, nil
}

func tailOne(i int, name string, headers bool, opts Options) error {
	src, err := openSource(name, opts.Stdin)
	if err != nil {
		return err
	}
	defer src.Close()

	if headers {
		sep := ""
		if i > 0 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(opts.Stdout, "%s==> %s <==\n", sep, name); err != nil {
			return err
		}
	}

	totals, err := src.count()
	if err != nil {
		return err
	}

	bytesMode := opts.Bytes != nil
	d := opts.Lines
	if bytesMode {
		d = *opts.Bytes
	}
	start, ok := StartIndex(d, totals.of(bytesMode))
	opts.Logger.Debug("tail totals",
		"file", name, "lines", totals.Lines, "bytes", totals.Bytes,
		"directive", d.String(), "start", start, "emit", ok)
	if !ok {
		return nil
	}

	var n int64
	if bytesMode {
		n, err = StreamBytes(opts.Stdout, src.r, start)
	} else {
		n, err = StreamLines(opts.Stdout, src.r, start)
	}
	opts.Logger.Debug("tail streamed", "file", name, "written", n)
	return err
}

// cause strips the op/path decoration from os errors; the caller already
// prefixes the file name.
func cause(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

type source struct {
	r       io.ReadSeeker
	pipe    io.Reader
	cleanup []func() error
}

func openSource(name string, stdin io.Reader) (*source, error) {
	if name != StdinName {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		st, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, err
		}
		if st.IsDir() {
			f.Close()
			return nil, errors.New("is a directory")
		}
		// Non-regular files (FIFOs and the like) may not seek; spool them like a pipe.
		if !st.Mode().IsRegular() {
			return &source{pipe: f, cleanup: []func() error{f.Close}}, nil
		}
		return &source{r: f, cleanup: []func() error{f.Close}}, nil
	}

	if stdin == nil {
		stdin = os.Stdin
	}
	if f, ok := stdin.(*os.File); ok {
		if st, err := f.Stat(); err == nil && st.Mode().IsRegular() {
			if _, err := f.Seek(0, io.SeekCurrent); err == nil {
				return &source{r: f}, nil
			}
		}
	}
	return &source{pipe: stdin}, nil
}

// count runs the counting pass and leaves the source rewound. Piped input is
// spooled to a temporary file during the same pass so it can be read again.
func (s *source) count() (Totals, error) {
	if s.pipe != nil {
		return s.spool()
	}
	pos, err := s.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return Totals{}, err
	}
	t, err := CountTotals(s.r)
	if err != nil {
		return t, err
	}
	if _, err := s.r.Seek(pos, io.SeekStart); err != nil {
		return t, err
	}
	if pos > 0 {
		s.r = &offsetReader{r: s.r, base: pos}
	}
	return t, nil
}

func (s *source) spool() (Totals, error) {
	tmp, err := os.CreateTemp("", "tailr-stdin-*")
	if err != nil {
		return Totals{}, fmt.Errorf("spool input: %w", err)
	}
	s.cleanup = append(s.cleanup, func() error { return os.Remove(tmp.Name()) }, tmp.Close)
	pipe := s.pipe
	s.pipe, s.r = nil, tmp

	t, err := CountTotals(io.TeeReader(pipe, tmp))
	if err != nil {
		return t, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return t, err
	}
	return t, nil
}

func (s *source) Close() error {
	var errs []error
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		errs = append(errs, s.cleanup[i]())
	}
	return errors.Join(errs...)
}

// offsetReader presents position base of r as offset 0, so that a stdin
// handle inherited mid-file seeks relative to where it started.
type offsetReader struct {
	r    io.ReadSeeker
	base int64
}

func (o *offsetReader) Read(p []byte) (int, error) { return o.r.Read(p) }

func (o *offsetReader) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekStart {
		offset += o.base
	}
	n, err := o.r.Seek(offset, whence)
	return n - o.base, err
}
