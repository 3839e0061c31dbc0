package cli

import (
	"context"
	"fmt"

	"github.com/flip-z/textutils/internal/tail"
)

func Tail(ctx context.Context, args []string, s Streams) int {
	s = s.withDefaults()
	cfg, logger, cfgErr := setup("tailr", s)

	fs := newFlagSet("tailr", s.Err)
	var lines, bytes string
	quiet := cfg.Tail.Quiet
	fs.StringVar(&lines, "n", cfg.Tail.Lines, "number of lines: N (last N), +N (from line N)")
	fs.StringVar(&lines, "lines", cfg.Tail.Lines, "same as -n")
	fs.StringVar(&bytes, "c", "", "number of bytes: N (last N), +N (from byte N)")
	fs.StringVar(&bytes, "bytes", "", "same as -c")
	fs.BoolVar(&quiet, "q", quiet, "never print file name headers")
	fs.BoolVar(&quiet, "quiet", quiet, "same as -q")
	files, err := parseArgs(fs, args)
	if err != nil {
		return usageExit(err)
	}
	if cfgErr != nil {
		return configFailed("tailr", s, cfgErr)
	}
	if len(files) == 0 {
		fmt.Fprintln(s.Err, "tailr: at least one FILE is required")
		return 2
	}
	set := setFlags(fs)
	byteMode := anySet(set, "c", "bytes")
	if byteMode && anySet(set, "n", "lines") {
		fmt.Fprintln(s.Err, "tailr: -n/--lines and -c/--bytes cannot be used together")
		return 2
	}

	opts := tail.Options{
		Quiet:  quiet,
		Stdin:  s.In,
		Stdout: s.Out,
		Stderr: s.Err,
		Logger: logger,
	}
	opts.Lines, err = tail.ParseCount(lines)
	if err != nil {
		fmt.Fprintf(s.Err, "illegal line count -- %v\n", err)
		return 1
	}
	if byteMode {
		d, err := tail.ParseCount(bytes)
		if err != nil {
			fmt.Fprintf(s.Err, "illegal byte count -- %v\n", err)
			return 1
		}
		opts.Bytes = &d
	}

	res, err := tail.Run(ctx, files, opts)
	if err != nil {
		fmt.Fprintln(s.Err, err)
		return 1
	}
	logger.Debug("tailr done", "files", res.Files, "failed", len(res.Failed))
	return 0
}
