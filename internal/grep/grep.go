package grep

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	colorMatch = "\x1b[01;31m"
	colorFile  = "\x1b[35m"
	colorReset = "\x1b[m"
)

type Options struct {
	Pattern   *regexp.Regexp
	Recursive bool
	Count     bool
	Invert    bool
	Color     bool
	// Jobs bounds how many files are searched at once. Output order always
	// follows the input order.
	Jobs int

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

type Result struct {
	Files   int
	Matches int
	Failed  []string
}

type fileResult struct {
	out     bytes.Buffer
	matches int
	err     error
	done    chan struct{}
}

// Run searches every file named by paths and prints the selected lines (or
// per-file counts). Files are read concurrently but reported in order.
func Run(ctx context.Context, paths []string, opts Options) (*Result, error) {
	if opts.Pattern == nil {
		return nil, errors.New("grep: no pattern")
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}

	entries := FindFiles(paths, opts.Recursive)
	prefix := len(entries) > 1
	opts.Logger.Debug("grep inputs", "paths", len(paths), "entries", len(entries), "jobs", opts.Jobs)

	results := make([]*fileResult, len(entries))
	for i := range results {
		results[i] = &fileResult{done: make(chan struct{})}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)

	// A slot is held from launch until the entry is printed, so a slow entry
	// (stdin on a pipe) holds back at most Jobs buffered results.
	slots := make(chan struct{}, opts.Jobs)
	launched := make(chan struct{})
	var stdinMu sync.Mutex
	go func() {
		defer close(launched)
		for i, e := range entries {
			select {
			case slots <- struct{}{}:
			case <-gctx.Done():
				for _, fr := range results[i:] {
					fr.err = gctx.Err()
					close(fr.done)
				}
				return
			}
			fr := results[i]
			if e.Err != nil {
				fr.err = e.Err
				close(fr.done)
				continue
			}
			g.Go(func() error {
				defer close(fr.done)
				if e.Path == "-" {
					stdinMu.Lock()
					defer stdinMu.Unlock()
				}
				fr.matches, fr.err = search(gctx, &fr.out, e.Path, prefix, opts)
				return nil
			})
		}
	}()
	// stop cancels outstanding work and waits for every worker to exit.
	stop := func(err error) error {
		cancel()
		<-launched
		_ = g.Wait()
		return err
	}

	res := &Result{}
	for i, e := range entries {
		fr := results[i]
		<-fr.done
		res.Files++
		if fr.err != nil {
			if errors.Is(fr.err, context.Canceled) || errors.Is(fr.err, context.DeadlineExceeded) {
				return res, stop(fr.err)
			}
			fmt.Fprintln(opts.Stderr, fr.err)
			res.Failed = append(res.Failed, e.Path)
		} else {
			res.Matches += fr.matches
			if _, err := fr.out.WriteTo(opts.Stdout); err != nil {
				return res, stop(err)
			}
		}
		<-slots
	}
	<-launched
	return res, g.Wait()
}

func search(ctx context.Context, w *bytes.Buffer, name string, prefix bool, opts Options) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var r io.Reader = opts.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, cause(err))
		}
		defer f.Close()
		r = f
	}

	lines, err := FindLines(r, opts.Pattern, opts.Invert)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, cause(err))
	}
	opts.Logger.Debug("grep searched", "file", name, "matches", len(lines))

	label := ""
	if prefix {
		label = name + ":"
		if opts.Color {
			label = colorFile + name + colorReset + ":"
		}
	}
	if opts.Count {
		fmt.Fprintf(w, "%s%d\n", label, len(lines))
		return len(lines), nil
	}
	for _, line := range lines {
		w.WriteString(label)
		if opts.Color && !opts.Invert {
			line = highlight(opts.Pattern, line)
		}
		w.Write(line)
	}
	return len(lines), nil
}

// highlight wraps every non-empty match in the line body with color codes.
func highlight(re *regexp.Regexp, line []byte) []byte {
	body := trimEOL(line)
	eol := line[len(body):]
	locs := re.FindAllIndex(body, -1)
	if len(locs) == 0 {
		return line
	}
	var b bytes.Buffer
	last := 0
	for _, loc := range locs {
		if loc[0] == loc[1] {
			continue
		}
		b.Write(body[last:loc[0]])
		b.WriteString(colorMatch)
		b.Write(body[loc[0]:loc[1]])
		b.WriteString(colorReset)
		last = loc[1]
	}
	b.Write(body[last:])
	b.Write(eol)
	return b.Bytes()
}

func cause(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
