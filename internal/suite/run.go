package suite

import (
	"fmt"
	"log"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/movegen"
)

// Result is the outcome of one expectation.
type Result struct {
	Entry    Entry
	Depth    int
	Expected uint64
	Got      uint64
	Elapsed  time.Duration
}

// OK reports whether the count matched.
func (r Result) OK() bool {
	return r.Got == r.Expected
}

func (r Result) String() string {
	status := "ok"
	if !r.OK() {
		status = "FAIL"
	}
	return fmt.Sprintf("line %d D%d: %d (want %d) %s in %v", r.Entry.Line, r.Depth, r.Got, r.Expected, status, r.Elapsed)
}

// Summary totals a suite run.
type Summary struct {
	Positions int
	Checks    int
	Failures  int
	Nodes     uint64
	Elapsed   time.Duration
}

// Options controls a suite run.
type Options struct {
	// MaxDepth skips expectations deeper than this. Zero means no limit.
	MaxDepth int
	// Cache, if set, is used through movegen.PerftCached.
	Cache movegen.Cache
	// OnResult is called after every expectation.
	OnResult func(Result)
}

// CheckEntry runs every expectation of e within opts.MaxDepth.
func CheckEntry(e Entry, opts Options) ([]Result, error) {
	b, err := board.ParseFEN(e.FEN)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, x := range e.Expected {
		if opts.MaxDepth > 0 && x.Depth > opts.MaxDepth {
			break
		}
		start := time.Now()
		got, err := movegen.PerftCached(b, x.Depth, opts.Cache)
		if err != nil {
			return results, err
		}
		r := Result{Entry: e, Depth: x.Depth, Expected: x.Nodes, Got: got, Elapsed: time.Since(start)}
		results = append(results, r)
		if opts.OnResult != nil {
			opts.OnResult(r)
		}
	}
	return results, nil
}

// Run checks every entry from src. src must already be open.
func Run(src Source, opts Options) (Summary, error) {
	var sum Summary
	start := time.Now()

	r := NewReader(src)
	for r.Scan() {
		e := r.Entry()
		results, err := CheckEntry(e, opts)
		if err != nil {
			return sum, fmt.Errorf("line %d: %w", e.Line, err)
		}
		sum.Positions++
		for _, res := range results {
			sum.Checks++
			sum.Nodes += res.Got
			if !res.OK() {
				sum.Failures++
				log.Printf("suite: %s [%s]", res, e.FEN)
			}
		}
	}
	sum.Elapsed = time.Since(start)

	if err := r.Err(); err != nil {
		return sum, err
	}
	return sum, nil
}
