package movegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/google/go-cmp/cmp"

	"github.com/hailam/chesscore/internal/board"
)

// Mismatch describes the first node where the mailbox board and the
// reference generator disagree.
type Mismatch struct {
	FEN  string
	Path []string
	Diff string
}

func (m *Mismatch) Error() string {
	path := strings.Join(m.Path, " ")
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("reference mismatch at %s after %s:\n%s", m.FEN, path, m.Diff)
}

// CrossCheck walks the legal move tree of fen to the given depth on both the
// mailbox board and dragontoothmg. At every node it compares the sorted
// legal move lists and the resulting placement, side and castling fields.
// It returns the leaf count, or a *Mismatch at the first divergence.
func CrossCheck(fen string, depth int) (uint64, error) {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return 0, err
	}
	ref := dragontoothmg.ParseFen(fen)

	return crossCheck(b, &ref, depth, nil)
}

func crossCheck(b *board.Board, ref *dragontoothmg.Board, depth int, path []string) (uint64, error) {
	if err := b.Check(); err != nil {
		return 0, &Mismatch{FEN: b.ToFEN(), Path: path, Diff: err.Error()}
	}
	if diff := cmp.Diff(fenCore(ref.ToFen()), fenCore(b.ToFEN())); diff != "" {
		return 0, &Mismatch{FEN: b.ToFEN(), Path: path, Diff: diff}
	}
	if depth <= 0 {
		return 1, nil
	}

	ours := GenerateLegalMoves(b)
	oursText := make([]string, 0, ours.Len())
	for _, m := range ours.Slice() {
		oursText = append(oursText, m.String())
	}
	sort.Strings(oursText)

	refMoves := ref.GenerateLegalMoves()
	refByText := make(map[string]dragontoothmg.Move, len(refMoves))
	refText := make([]string, 0, len(refMoves))
	for _, rm := range refMoves {
		s := rm.String()
		refByText[s] = rm
		refText = append(refText, s)
	}
	sort.Strings(refText)

	if diff := cmp.Diff(refText, oursText); diff != "" {
		return 0, &Mismatch{FEN: b.ToFEN(), Path: path, Diff: diff}
	}

	var nodes uint64
	for _, m := range ours.Slice() {
		s := m.String()
		if !b.MakeMove(m) {
			b.TakeMove()
			return 0, &Mismatch{FEN: b.ToFEN(), Path: path, Diff: "legal move " + s + " rejected on replay"}
		}
		undo := ref.Apply(refByText[s])

		n, err := crossCheck(b, ref, depth-1, append(path, s))
		undo()
		b.TakeMove()
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// fenCore keeps placement, side and castling. Reference generators disagree
// on whether an uncapturable en passant square is printed, and on clocks.
func fenCore(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) > 3 {
		fields = fields[:3]
	}
	return strings.Join(fields, " ")
}
