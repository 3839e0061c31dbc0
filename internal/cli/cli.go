package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/flip-z/textutils/internal/config"
	"github.com/flip-z/textutils/internal/diag"
)

// Streams is the process environment a command runs against.
type Streams struct {
	In        io.Reader
	Out       io.Writer
	Err       io.Writer
	LookupEnv config.LookupFunc
}

func OSStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr, LookupEnv: os.LookupEnv}
}

// Run is the multi-call entry point: "textutils tail ...", "textutils cut ..."
// and "textutils grep ...".
func Run(ctx context.Context, args []string, s Streams) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(s.Out)
		return 0
	}

	cmd := args[0]
	switch cmd {
	case "tail", "tailr":
		return Tail(ctx, args[1:], s)
	case "cut", "cutr":
		return Cut(ctx, args[1:], s)
	case "grep", "grepr":
		return Grep(ctx, args[1:], s)
	case "config":
		return Config(args[1:], s)
	case "doctor":
		return Doctor(s)
	default:
		fmt.Fprintf(s.Err, "unknown command: %s\n\n", cmd)
		usage(s.Err)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "textutils - tail, cut and grep")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  textutils tail [-n N|+N] [-c N|+N] [-q] FILE...")
	fmt.Fprintln(w, "  textutils cut (-f LIST|-b LIST|-c LIST) [-d DELIM] [FILE...]")
	fmt.Fprintln(w, "  textutils grep [-i] [-r] [-c] [-v] PATTERN [FILE...]")
	fmt.Fprintln(w, "      (PATTERN sees each line without its trailing newline)")
	fmt.Fprintln(w, "  textutils config path|init [--force]")
	fmt.Fprintln(w, "  textutils doctor")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config:")
	fmt.Fprintln(w, "  $TEXTUTILS_CONFIG or $XDG_CONFIG_HOME/textutils/config.yaml")
	fmt.Fprintln(w)
}

func (s Streams) withDefaults() Streams {
	if s.In == nil {
		s.In = os.Stdin
	}
	if s.Out == nil {
		s.Out = io.Discard
	}
	if s.Err == nil {
		s.Err = io.Discard
	}
	if s.LookupEnv == nil {
		s.LookupEnv = func(string) (string, bool) { return "", false }
	}
	return s
}

// setup loads configuration and builds the diagnostic logger. A config error
// is returned next to the defaults so flag parsing (and --help) still works;
// callers report it once flags are parsed.
func setup(tool string, s Streams) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(s.LookupEnv)
	if err != nil {
		return cfg, nil, err
	}
	logger := diag.NewLogger(s.Err, tool, cfg.LogLevel)
	logger.Debug("config loaded", "path", config.Path(s.LookupEnv))
	return cfg, logger, nil
}

func configFailed(tool string, s Streams, err error) int {
	fmt.Fprintf(s.Err, "%s: config: %v\n", tool, err)
	return 1
}

func newFlagSet(name string, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	return fs
}

// parseArgs parses flags that may be interleaved with positional arguments.
// Everything after "--" is positional.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return pos, nil
		}
		consumed := args[:len(args)-len(rest)]
		if len(consumed) > 0 && consumed[len(consumed)-1] == "--" {
			return append(pos, rest...), nil
		}
		pos = append(pos, rest[0])
		args = rest[1:]
	}
}

func usageExit(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 2
}

func setFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func anySet(set map[string]bool, names ...string) bool {
	for _, n := range names {
		if set[n] {
			return true
		}
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	st, err := f.Stat()
	return err == nil && st.Mode()&os.ModeCharDevice != 0
}
