package tail

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

// pipeReader hides any Seek method of the wrapped reader.
type pipeReader struct{ r io.Reader }

func (p pipeReader) Read(b []byte) (int, error) { return p.r.Read(b) }

func TestCountTotals(t *testing.T) {
	cases := []struct {
		in    string
		lines int64
	}{
		{"", 0},
		{"\n", 1},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\nb\n", 2},
		{"\n\n\n", 3},
		{"one\r\ntwo\r\n", 2},
	}
	for _, tc := range cases {
		got, err := CountTotals(strings.NewReader(tc.in))
		if err != nil {
			t.Fatalf("CountTotals(%q): %v", tc.in, err)
		}
		if got.Lines != tc.lines || got.Bytes != int64(len(tc.in)) {
			t.Fatalf("CountTotals(%q) = %+v, want lines=%d bytes=%d", tc.in, got, tc.lines, len(tc.in))
		}
	}
}

func TestCountTotalsAcrossBlocks(t *testing.T) {
	line := strings.Repeat("x", blockSize-1) + "\n"
	in := strings.Repeat(line, 3) + "tail"
	got, err := CountTotals(iotest.HalfReader(strings.NewReader(in)))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if got.Lines != 4 || got.Bytes != int64(len(in)) {
		t.Fatalf("unexpected totals: %+v", got)
	}
}

func TestCountTotalsReadError(t *testing.T) {
	_, err := CountTotals(iotest.TimeoutReader(strings.NewReader(strings.Repeat("a\n", blockSize))))
	if err == nil {
		t.Fatalf("expected read error")
	}
}

func TestStreamLines(t *testing.T) {
	const in = "one\ntwo\nthree\nfour\nfive"
	cases := []struct {
		start int64
		want  string
	}{
		{0, in},
		{1, "two\nthree\nfour\nfive"},
		{4, "five"},
		{5, ""},
		{9, ""},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		n, err := StreamLines(&out, iotest.OneByteReader(strings.NewReader(in)), tc.start)
		if err != nil {
			t.Fatalf("start=%d: %v", tc.start, err)
		}
		if out.String() != tc.want || n != int64(len(tc.want)) {
			t.Fatalf("start=%d: got %q (%d bytes), want %q", tc.start, out.String(), n, tc.want)
		}
	}
}

func TestStreamLinesLongLines(t *testing.T) {
	long := strings.Repeat("y", 3*blockSize)
	in := long + "\n" + long + "\nend\n"
	var out bytes.Buffer
	if _, err := StreamLines(&out, strings.NewReader(in), 1); err != nil {
		t.Fatalf("stream: %v", err)
	}
	if want := long + "\nend\n"; out.String() != want {
		t.Fatalf("unexpected output length %d, want %d", out.Len(), len(want))
	}
}

func TestStreamBytesSeekable(t *testing.T) {
	in := []byte("abc\xff\xfe\x00def")
	var out bytes.Buffer
	n, err := StreamBytes(&out, bytes.NewReader(in), 3)
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if !bytes.Equal(out.Bytes(), in[3:]) || n != int64(len(in)-3) {
		t.Fatalf("got %q, want %q", out.Bytes(), in[3:])
	}
}

func TestStreamBytesNonSeekableDiscardsPrefix(t *testing.T) {
	in := strings.Repeat("0123456789", 10)
	var out bytes.Buffer
	if _, err := StreamBytes(&out, pipeReader{strings.NewReader(in)}, 90); err != nil {
		t.Fatalf("stream: %v", err)
	}
	if out.String() != in[90:] {
		t.Fatalf("got %q, want %q", out.String(), in[90:])
	}

	out.Reset()
	if _, err := StreamBytes(&out, pipeReader{strings.NewReader("short")}, 50); err != nil {
		t.Fatalf("stream past end: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output past end, got %q", out.String())
	}
}

func TestStreamBytesZeroStart(t *testing.T) {
	var out bytes.Buffer
	if _, err := StreamBytes(&out, pipeReader{strings.NewReader("all of it")}, 0); err != nil {
		t.Fatalf("stream: %v", err)
	}
	if out.String() != "all of it" {
		t.Fatalf("got %q", out.String())
	}
}
