package cli

import (
	"fmt"

	"github.com/flip-z/textutils/internal/config"
)

func Config(args []string, s Streams) int {
	s = s.withDefaults()
	if len(args) == 0 {
		fmt.Fprintln(s.Err, "usage: textutils config path|init [--force]")
		return 2
	}
	switch args[0] {
	case "path":
		p := config.Path(s.LookupEnv)
		if p == "" {
			fmt.Fprintln(s.Err, "config: no location; set TEXTUTILS_CONFIG or HOME")
			return 1
		}
		fmt.Fprintln(s.Out, p)
		return 0
	case "init":
		fs := newFlagSet("config init", s.Err)
		force := fs.Bool("force", false, "overwrite an existing config file")
		if _, err := parseArgs(fs, args[1:]); err != nil {
			return usageExit(err)
		}
		p := config.Path(s.LookupEnv)
		created, err := config.Init(p, *force)
		if err != nil {
			fmt.Fprintf(s.Err, "config: %v\n", err)
			return 1
		}
		if created {
			fmt.Fprintf(s.Out, "wrote %s\n", p)
		} else {
			fmt.Fprintf(s.Out, "%s exists (use --force to overwrite)\n", p)
		}
		return 0
	default:
		fmt.Fprintf(s.Err, "config: unknown subcommand %q\n", args[0])
		return 2
	}
}

func Doctor(s Streams) int {
	s = s.withDefaults()
	r := config.Doctor(s.LookupEnv)
	if r.Path != "" {
		fmt.Fprintf(s.Out, "config: %s\n", r.Path)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(s.Out, "warning: %s\n", w)
	}
	for _, p := range r.Problems {
		fmt.Fprintf(s.Out, "problem: %s\n", p)
	}
	if !r.OK() {
		return 1
	}
	fmt.Fprintln(s.Out, "ok")
	return 0
}
