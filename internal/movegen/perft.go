package movegen

import (
	"sort"
	"strings"

	"github.com/hailam/chesscore/internal/board"
)

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Every MakeMove is paired with a TakeMove, accepted or not. A depth of zero
// or less counts the position itself.
func Perft(b *board.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	ml := board.NewMoveList()
	GenerateAll(b, ml)

	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		if b.MakeMove(ml.Get(i)) {
			nodes += Perft(b, depth-1)
		}
		b.TakeMove()
	}
	return nodes
}

// DivideEntry is the subtree size below one root move.
type DivideEntry struct {
	Move  board.Move
	Nodes uint64
}

// Divide returns the perft count under each legal root move, sorted by the
// move's UCI text.
func Divide(b *board.Board, depth int) []DivideEntry {
	if depth < 1 {
		return nil
	}

	ml := board.NewMoveList()
	GenerateAll(b, ml)

	var out []DivideEntry
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if b.MakeMove(m) {
			out = append(out, DivideEntry{Move: m, Nodes: Perft(b, depth-1)})
		}
		b.TakeMove()
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Move.String() < out[j].Move.String()
	})
	return out
}

// Cache stores perft results keyed by position. The fen passed in carries
// placement, side, castling and en passant only. Implementations must treat
// a FEN mismatch on a hash hit as a miss.
type Cache interface {
	Get(hash uint64, depth int, fen string) (uint64, bool)
	Put(hash uint64, depth int, fen string, nodes uint64) error
}

// PerftCached is Perft with subtree results of depth >= 2 looked up in and
// written to c. A nil cache falls back to Perft.
func PerftCached(b *board.Board, depth int, c Cache) (uint64, error) {
	if c == nil || depth < 2 {
		return Perft(b, depth), nil
	}

	fen := positionFEN(b)
	if nodes, ok := c.Get(b.Hash(), depth, fen); ok {
		return nodes, nil
	}

	ml := board.NewMoveList()
	GenerateAll(b, ml)

	var nodes uint64
	for i := 0; i < ml.Len(); i++ {
		if b.MakeMove(ml.Get(i)) {
			n, err := PerftCached(b, depth-1, c)
			if err != nil {
				b.TakeMove()
				return 0, err
			}
			nodes += n
		}
		b.TakeMove()
	}

	if err := c.Put(b.Hash(), depth, fen, nodes); err != nil {
		return 0, err
	}
	return nodes, nil
}

// positionFEN is the FEN without the move counters, which do not change the
// move tree.
func positionFEN(b *board.Board) string {
	fields := strings.Fields(b.ToFEN())
	return strings.Join(fields[:4], " ")
}
