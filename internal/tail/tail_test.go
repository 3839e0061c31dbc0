package tail

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func mustParse(t *testing.T, s string) Directive {
	t.Helper()
	d, err := ParseCount(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func runTail(t *testing.T, names []string, opts Options) (string, string, *Result) {
	t.Helper()
	var out, errOut bytes.Buffer
	opts.Stdout, opts.Stderr = &out, &errOut
	res, err := Run(context.Background(), names, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String(), errOut.String(), res
}

func TestRunScenarios(t *testing.T) {
	dir := t.TempDir()
	five := writeFile(t, dir, "five.txt", "1\n2\n3\n4\n5\n")
	three := writeFile(t, dir, "three.txt", "a\nb\nc\n")
	empty := writeFile(t, dir, "empty.txt", "")
	hundred := writeFile(t, dir, "hundred.bin", strings.Repeat("0123456789", 10))

	cases := []struct {
		name  string
		file  string
		lines string
		bytes string
		want  string
	}{
		{"last two", five, "2", "", "4\n5\n"},
		{"from second", five, "+2", "", "2\n3\n4\n5\n"},
		{"empty last", empty, "10", "", ""},
		{"empty plus zero", empty, "+0", "", ""},
		{"empty from", empty, "+3", "", ""},
		{"last ten bytes", hundred, "10", "-10", "0123456789"},
		{"zero lines", three, "0", "", ""},
		{"plus zero", three, "+0", "", "a\nb\nc\n"},
		{"minus zero", three, "-0", "", ""},
		{"from beyond", three, "+4", "", ""},
		{"from last", three, "+3", "", "c\n"},
		{"more than file", three, "100", "", "a\nb\nc\n"},
		{"bytes from", three, "10", "+3", "b\nc\n"},
		{"bytes plus zero", three, "10", "+0", "a\nb\nc\n"},
		{"bytes zero", three, "10", "0", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := Options{Lines: mustParse(t, tc.lines)}
			if tc.bytes != "" {
				d := mustParse(t, tc.bytes)
				opts.Bytes = &d
			}
			out, errOut, res := runTail(t, []string{tc.file}, opts)
			if errOut != "" || len(res.Failed) != 0 {
				t.Fatalf("unexpected errors: %q %v", errOut, res.Failed)
			}
			if out != tc.want {
				t.Fatalf("got %q, want %q", out, tc.want)
			}
		})
	}
}

func TestRunRoundTrip(t *testing.T) {
	dir := t.TempDir()
	content := "alpha\nbeta\r\n\xff\xfegamma\n\ndelta"
	p := writeFile(t, dir, "mixed.txt", content)

	out, _, _ := runTail(t, []string{p}, Options{Lines: mustParse(t, "5")})
	if out != content {
		t.Fatalf("round trip mismatch: got %q, want %q", out, content)
	}

	d := mustParse(t, "-1000")
	out, _, _ = runTail(t, []string{p}, Options{Bytes: &d})
	if out != content {
		t.Fatalf("byte round trip mismatch: got %q", out)
	}
}

func TestRunUnterminatedLastLine(t *testing.T) {
	p := writeFile(t, t.TempDir(), "f", "x\ny\nz")
	out, _, _ := runTail(t, []string{p}, Options{Lines: mustParse(t, "1")})
	if out != "z" {
		t.Fatalf("got %q", out)
	}
}

func TestRunHeadersAndErrors(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a", "a1\na2\n")
	b := writeFile(t, dir, "b", "b1\n")
	missing := filepath.Join(dir, "missing")

	out, errOut, res := runTail(t, []string{a, missing, b}, Options{Lines: mustParse(t, "1")})
	want := "==> " + a + " <==\na2\n\n==> " + b + " <==\nb1\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
	if !strings.HasPrefix(errOut, missing+": ") || !strings.Contains(errOut, "no such file") {
		t.Fatalf("unexpected stderr: %q", errOut)
	}
	if res.Files != 3 || len(res.Failed) != 1 || res.Failed[0] != missing {
		t.Fatalf("unexpected result: %+v", res)
	}

	out, _, _ = runTail(t, []string{a, b}, Options{Lines: mustParse(t, "1"), Quiet: true})
	if out != "a2\nb1\n" {
		t.Fatalf("quiet: got %q", out)
	}
}

func TestRunFirstFileMissingStillSeparates(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b", "b1\n")
	out, _, _ := runTail(t, []string{filepath.Join(dir, "nope"), b}, Options{Lines: mustParse(t, "1")})
	if want := "\n==> " + b + " <==\nb1\n"; out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestRunDirectoryIsPerFileError(t *testing.T) {
	dir := t.TempDir()
	out, errOut, res := runTail(t, []string{dir}, Options{Lines: mustParse(t, "1")})
	if out != "" || len(res.Failed) != 1 || !strings.Contains(errOut, "is a directory") {
		t.Fatalf("unexpected: out=%q err=%q res=%+v", out, errOut, res)
	}
}

func TestRunStdinPipe(t *testing.T) {
	in := "l1\nl2\nl3\n"
	out, _, _ := runTail(t, []string{StdinName}, Options{
		Lines: mustParse(t, "2"),
		Stdin: pipeReader{strings.NewReader(in)},
	})
	if out != "l2\nl3\n" {
		t.Fatalf("lines: got %q", out)
	}

	d := mustParse(t, "+4")
	out, _, _ = runTail(t, []string{StdinName}, Options{
		Bytes: &d,
		Stdin: pipeReader{strings.NewReader(in)},
	})
	if out != "l2\nl3\n" {
		t.Fatalf("bytes: got %q", out)
	}
}

func TestRunStdinRegularFileMidway(t *testing.T) {
	p := writeFile(t, t.TempDir(), "in", "skip\nk1\nk2\n")
	f, err := os.Open(p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if _, err := f.Seek(5, 0); err != nil {
		t.Fatalf("seek: %v", err)
	}

	d := mustParse(t, "+2")
	out, _, _ := runTail(t, []string{StdinName}, Options{Bytes: &d, Stdin: f})
	if out != "1\nk2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	p := writeFile(t, t.TempDir(), "f", "x\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	res, err := Run(ctx, []string{p, p}, Options{Lines: mustParse(t, "1"), Stdout: &out})
	if err == nil {
		t.Fatalf("expected context error")
	}
	if res.Files != 0 || out.Len() != 0 {
		t.Fatalf("expected no work, got %+v %q", res, out.String())
	}
}
