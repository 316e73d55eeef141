package movegen

import (
	"fmt"

	"github.com/hailam/chesscore/internal/board"
)

// ParseMove converts UCI text ("e2e4", "e7e8q") into the packed move the
// generator would produce on b. The result is pseudo-legal; MakeMove still
// decides whether it leaves the mover's king safe.
func ParseMove(b *board.Board, s string) (board.Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return board.NoMove, fmt.Errorf("%w: %q", board.ErrInvalidMove, s)
	}

	from, err := board.ParseSquare(s[0:2])
	if err != nil {
		return board.NoMove, fmt.Errorf("%w: %q", board.ErrInvalidMove, s)
	}
	to, err := board.ParseSquare(s[2:4])
	if err != nil {
		return board.NoMove, fmt.Errorf("%w: %q", board.ErrInvalidMove, s)
	}

	promo := board.Empty
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = board.WQ
		case 'r':
			promo = board.WR
		case 'b':
			promo = board.WB
		case 'n':
			promo = board.WN
		default:
			return board.NoMove, fmt.Errorf("%w: bad promotion in %q", board.ErrInvalidMove, s)
		}
		if b.SideToMove() == board.Black {
			promo += board.BP - board.WP
		}
	}

	ml := board.NewMoveList()
	GenerateAll(b, ml)
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if m.From() == from && m.To() == to && m.Promoted() == promo {
			return m, nil
		}
	}

	return board.NoMove, fmt.Errorf("%w: %s is not playable here", board.ErrInvalidMove, s)
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func HasLegalMoves(b *board.Board) bool {
	ml := board.NewMoveList()
	GenerateAll(b, ml)
	for i := 0; i < ml.Len(); i++ {
		ok := b.MakeMove(ml.Get(i))
		b.TakeMove()
		if ok {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the side to move is checkmated.
func IsCheckmate(b *board.Board) bool {
	return b.InCheck() && !HasLegalMoves(b)
}

// IsStalemate returns true if the side to move has no legal moves but is not in check.
func IsStalemate(b *board.Board) bool {
	return !b.InCheck() && !HasLegalMoves(b)
}
