package suite

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"
)

const sampleSuite = `# standard positions
rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 20 ;D2 400 ;D3 8902

8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1 ;D2 191 ;D1 14
8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1 ;D1 6 ;D2 94
`

func writeSuite(t *testing.T, name string, compress func(io.Writer) io.WriteCloser) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	var w io.Writer = f
	var wc io.WriteCloser
	if compress != nil {
		wc = compress(f)
		w = wc
	}
	if _, err := io.WriteString(w, sampleSuite); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if wc != nil {
		if err := wc.Close(); err != nil {
			t.Fatalf("close compressor: %v", err)
		}
	}
	return path
}

func zstWriter(t *testing.T) func(io.Writer) io.WriteCloser {
	return func(w io.Writer) io.WriteCloser {
		enc, err := zstd.NewWriter(w)
		if err != nil {
			t.Fatalf("zstd writer: %v", err)
		}
		return enc
	}
}

func bz2Writer(t *testing.T) func(io.Writer) io.WriteCloser {
	return func(w io.Writer) io.WriteCloser {
		enc, err := bzip2.NewWriter(w, nil)
		if err != nil {
			t.Fatalf("bzip2 writer: %v", err)
		}
		return enc
	}
}

func TestParseLine(t *testing.T) {
	e, err := ParseLine("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1 ;D3 2812 ;D1 14")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	want := []Expectation{{Depth: 1, Nodes: 14}, {Depth: 3, Nodes: 2812}}
	if diff := cmp.Diff(want, e.Expected); diff != "" {
		t.Errorf("expectations mismatch (-want +got):\n%s", diff)
	}
	if e.MaxDepth() != 3 {
		t.Errorf("MaxDepth = %d, want 3", e.MaxDepth())
	}

	bad := []string{
		"not a fen ;D1 20",
		board8Kings + " ;D1 x",
		board8Kings + " ;X1 20",
		board8Kings + " ;D0 20",
		board8Kings + " ;D1 20 ;D1 21",
	}
	for _, line := range bad {
		if _, err := ParseLine(line); err == nil {
			t.Errorf("ParseLine(%q) succeeded, want error", line)
		}
	}
}

const board8Kings = "4k3/8/8/8/8/8/8/4K3 w - - 0 1"

func TestSources(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		compress func(io.Writer) io.WriteCloser
	}{
		{"plain", "suite.epd", nil},
		{"zst", "suite.epd.zst", zstWriter(t)},
		{"bz2", "suite.epd.bz2", bz2Writer(t)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSuite(t, tc.file, tc.compress)

			src, err := NewSource(path)
			if err != nil {
				t.Fatalf("NewSource: %v", err)
			}
			if err := src.Open(); err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer src.Close()

			r := NewReader(src)
			var lines []int
			for r.Scan() {
				lines = append(lines, r.Entry().Line)
			}
			if err := r.Err(); err != nil {
				t.Fatalf("reader error: %v", err)
			}
			if diff := cmp.Diff([]int{2, 4, 5}, lines); diff != "" {
				t.Errorf("entry lines mismatch (-want +got):\n%s", diff)
			}
			if got := uint64(src.BytesRead()); got != uint64(len(sampleSuite)) {
				t.Errorf("BytesRead = %d, want %d", got, len(sampleSuite))
			}
			if src.Size() == 0 {
				t.Error("Size is zero")
			}
		})
	}
}

func TestNewSourceRejectsUnknownExtension(t *testing.T) {
	if _, err := NewSource("games.pgn.gz"); err == nil {
		t.Error("expected error for .gz")
	}
}

func TestRun(t *testing.T) {
	path := writeSuite(t, "suite.epd", nil)
	src, err := NewSource(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := src.Open(); err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	var seen []string
	sum, err := Run(src, Options{
		MaxDepth: 2,
		OnResult: func(r Result) { seen = append(seen, r.String()) },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if sum.Positions != 3 || sum.Checks != 6 || sum.Failures != 0 {
		t.Errorf("summary = %+v, want 3 positions, 6 checks, 0 failures", sum)
	}
	if sum.Nodes != 20+400+14+191+6+94 {
		t.Errorf("nodes = %d", sum.Nodes)
	}
	for _, s := range seen {
		if !strings.Contains(s, " ok ") {
			t.Errorf("unexpected result %q", s)
		}
	}
}

func TestRunReportsFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrong.epd")
	if err := os.WriteFile(path, []byte(board8Kings+" ;D1 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	src, _ := NewSource(path)
	if err := src.Open(); err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	sum, err := Run(src, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The white king on e1 has five moves.
	if sum.Failures != 1 {
		t.Errorf("failures = %d, want 1", sum.Failures)
	}
}

func TestRunStopsOnMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.epd")
	content := board8Kings + " ;D1 5\n" + board8Kings + " ;D1 five\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	src, _ := NewSource(path)
	if err := src.Open(); err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	sum, err := Run(src, Options{})
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Run error = %v, want a line 2 error", err)
	}
	if sum.Positions != 1 {
		t.Errorf("positions = %d, want 1", sum.Positions)
	}
}
