package board

import (
	"fmt"
	"log"
	"runtime"
)

// Debug enables the invariant-checking layer: argument assertions in the
// primitives and a full Check() before and after every MakeMove/TakeMove.
// It defaults to the value of the chesscoredebug build tag.
var Debug = debugBuild

// InvariantError describes a broken internal invariant. It is raised with
// panic; recovering from it is only meaningful in tests.
type InvariantError struct {
	Cond     string
	Location string
	Detail   string
}

func (e *InvariantError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invariant violated: %s at %s", e.Cond, e.Location)
	}
	return fmt.Sprintf("invariant violated: %s at %s: %s", e.Cond, e.Location, e.Detail)
}

// fail panics with an InvariantError located at the caller of the caller.
func fail(cond, format string, args ...any) {
	loc := "unknown"
	if _, file, line, ok := runtime.Caller(2); ok {
		loc = fmt.Sprintf("%s:%d", file, line)
	}
	err := &InvariantError{Cond: cond, Location: loc, Detail: fmt.Sprintf(format, args...)}
	log.Printf("FATAL: %v", err)
	panic(err)
}

// assert is a no-op unless Debug is set.
func assert(ok bool, cond, format string, args ...any) {
	if Debug && !ok {
		fail(cond, format, args...)
	}
}

// mustCheck runs the auditor and panics on the first inconsistency.
func (b *Board) mustCheck(where string) {
	if err := b.Check(); err != nil {
		fail("board consistent", "%s: %v\n%s", where, err, b)
	}
}
