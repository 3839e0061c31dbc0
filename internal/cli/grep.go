package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/flip-z/textutils/internal/config"
	"github.com/flip-z/textutils/internal/grep"
)

const lineMatchNote = "PATTERN is matched against each line with its trailing \\n (and \\r) removed,\n" +
	"so $ anchors at the end of the text and a pattern containing \\n never matches."

func Grep(ctx context.Context, args []string, s Streams) int {
	s = s.withDefaults()
	cfg, logger, cfgErr := setup("grepr", s)

	fs := newFlagSet("grepr", s.Err)
	var insensitive, recursive, count, invert bool
	fs.BoolVar(&insensitive, "i", false, "case-insensitive")
	fs.BoolVar(&insensitive, "insensitive", false, "same as -i")
	fs.BoolVar(&recursive, "r", false, "search directories recursively")
	fs.BoolVar(&recursive, "recursive", false, "same as -r")
	fs.BoolVar(&count, "c", false, "print only a count of selected lines per file")
	fs.BoolVar(&count, "count", false, "same as -c")
	fs.BoolVar(&invert, "v", false, "select non-matching lines")
	fs.BoolVar(&invert, "invert-match", false, "same as -v")
	color := fs.String("color", string(cfg.Grep.Color), "highlight matches: auto|always|never")
	jobs := fs.Int("j", cfg.Grep.Jobs, "files searched concurrently")
	fs.Usage = func() {
		fmt.Fprintln(s.Err, "usage: grepr [-i] [-r] [-c] [-v] [--color WHEN] [-j N] PATTERN [FILE...]")
		fmt.Fprintln(s.Err, lineMatchNote)
		fs.PrintDefaults()
	}
	pos, err := parseArgs(fs, args)
	if err != nil {
		return usageExit(err)
	}
	if cfgErr != nil {
		return configFailed("grepr", s, cfgErr)
	}
	if len(pos) == 0 {
		fmt.Fprintln(s.Err, "grepr: PATTERN is required")
		return 2
	}
	c := config.Color(strings.ToLower(*color))
	if !c.Valid() {
		fmt.Fprintf(s.Err, "grepr: invalid --color %q\n", *color)
		return 2
	}

	re, err := grep.Compile(pos[0], insensitive)
	if err != nil {
		fmt.Fprintln(s.Err, err)
		return 1
	}
	files := pos[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}

	res, err := grep.Run(ctx, files, grep.Options{
		Pattern:   re,
		Recursive: recursive,
		Count:     count,
		Invert:    invert,
		Color:     c == config.ColorAlways || (c == config.ColorAuto && isTerminal(s.Out)),
		Jobs:      *jobs,
		Stdin:     s.In,
		Stdout:    s.Out,
		Stderr:    s.Err,
		Logger:    logger,
	})
	if err != nil {
		fmt.Fprintln(s.Err, err)
		return 1
	}
	logger.Debug("grepr done", "files", res.Files, "matches", res.Matches, "failed", len(res.Failed))
	return 0
}
