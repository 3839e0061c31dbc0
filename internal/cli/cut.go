package cli

import (
	"context"
	"fmt"

	"github.com/flip-z/textutils/internal/cut"
)

func Cut(ctx context.Context, args []string, s Streams) int {
	s = s.withDefaults()
	cfg, logger, cfgErr := setup("cutr", s)

	fs := newFlagSet("cutr", s.Err)
	var delim, fields, bytes, chars string
	fs.StringVar(&delim, "d", cfg.Cut.Delimiter, "field delimiter (one byte)")
	fs.StringVar(&delim, "delim", cfg.Cut.Delimiter, "same as -d")
	fs.StringVar(&fields, "f", "", "selected fields, e.g. 1,3-5")
	fs.StringVar(&fields, "fields", "", "same as -f")
	fs.StringVar(&bytes, "b", "", "selected bytes")
	fs.StringVar(&bytes, "bytes", "", "same as -b")
	fs.StringVar(&chars, "c", "", "selected characters")
	fs.StringVar(&chars, "chars", "", "same as -c")
	files, err := parseArgs(fs, args)
	if err != nil {
		return usageExit(err)
	}
	if cfgErr != nil {
		return configFailed("cutr", s, cfgErr)
	}
	if len(files) == 0 {
		files = []string{"-"}
	}

	set := setFlags(fs)
	var mode cut.Mode
	var list string
	n := 0
	if anySet(set, "f", "fields") {
		mode, list = cut.Fields, fields
		n++
	}
	if anySet(set, "b", "bytes") {
		mode, list = cut.Bytes, bytes
		n++
	}
	if anySet(set, "c", "chars") {
		mode, list = cut.Chars, chars
		n++
	}
	if n != 1 {
		fmt.Fprintln(s.Err, "cutr: exactly one of -f/--fields, -b/--bytes or -c/--chars is required")
		return 2
	}

	d, err := cut.ParseDelimiter(delim)
	if err != nil {
		fmt.Fprintln(s.Err, err)
		return 1
	}
	pos, err := cut.ParsePositions(list)
	if err != nil {
		fmt.Fprintln(s.Err, err)
		return 1
	}

	res, err := cut.Run(ctx, files, cut.Options{
		Mode:      mode,
		Positions: pos,
		Delimiter: d,
		Stdin:     s.In,
		Stdout:    s.Out,
		Stderr:    s.Err,
		Logger:    logger,
	})
	if err != nil {
		fmt.Fprintln(s.Err, err)
		return 1
	}
	logger.Debug("cutr done", "files", res.Files, "failed", len(res.Failed))
	return 0
}
