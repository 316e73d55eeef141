// Package suite reads perft suites in EPD form and checks them against the
// move generator.
//
// Each line holds a position and its expected leaf counts:
//
//	rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 20 ;D2 400
//
// Blank lines and lines starting with '#' are skipped.
package suite

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hailam/chesscore/internal/board"
)

// Expectation is one ";Dn count" field.
type Expectation struct {
	Depth int
	Nodes uint64
}

// Entry is one parsed suite line.
type Entry struct {
	Line     int
	FEN      string
	Expected []Expectation // ascending depth
}

// MaxDepth returns the deepest expectation, or 0.
func (e Entry) MaxDepth() int {
	if len(e.Expected) == 0 {
		return 0
	}
	return e.Expected[len(e.Expected)-1].Depth
}

// ParseLine parses one suite line. The FEN is checked with board.ParseFEN.
func ParseLine(line string) (Entry, error) {
	fields := strings.Split(line, ";")
	fen := strings.TrimSpace(fields[0])
	if _, err := board.ParseFEN(fen); err != nil {
		return Entry{}, err
	}

	e := Entry{FEN: fen}
	seen := make(map[int]bool)
	for _, f := range fields[1:] {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		parts := strings.Fields(f)
		if len(parts) != 2 || len(parts[0]) < 2 || (parts[0][0] != 'D' && parts[0][0] != 'd') {
			return Entry{}, fmt.Errorf("bad expectation %q", f)
		}
		depth, err := strconv.Atoi(parts[0][1:])
		if err != nil || depth < 1 {
			return Entry{}, fmt.Errorf("bad depth in %q", f)
		}
		nodes, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return Entry{}, fmt.Errorf("bad node count in %q", f)
		}
		if seen[depth] {
			return Entry{}, fmt.Errorf("depth %d given twice", depth)
		}
		seen[depth] = true
		e.Expected = append(e.Expected, Expectation{Depth: depth, Nodes: nodes})
	}

	sort.Slice(e.Expected, func(i, j int) bool {
		return e.Expected[i].Depth < e.Expected[j].Depth
	})
	return e, nil
}

// Reader iterates over the entries of a Source.
type Reader struct {
	src   Source
	line  int
	entry Entry
	err   error
}

// NewReader wraps an opened Source.
func NewReader(src Source) *Reader {
	return &Reader{src: src}
}

// Scan advances to the next entry. It returns false at the end of input or
// on the first malformed line; Err tells the two apart.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	for r.src.Scan() {
		r.line++
		text := strings.TrimSpace(r.src.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		e, err := ParseLine(text)
		if err != nil {
			r.err = fmt.Errorf("line %d: %w", r.line, err)
			return false
		}
		e.Line = r.line
		r.entry = e
		return true
	}
	r.err = r.src.Err()
	return false
}

// Entry returns the entry read by the last successful Scan.
func (r *Reader) Entry() Entry {
	return r.entry
}

// Err returns the first error met, if any.
func (r *Reader) Err() error {
	return r.err
}
