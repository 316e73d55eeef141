package board

// Mailbox step offsets. A step that leaves the 8x8 area lands on an
// Offboard cell, which stops every walk.
var (
	KnightDirs = [8]int{-8, -19, -21, -12, 8, 19, 21, 12}
	RookDirs   = [4]int{-1, -10, 1, 10}
	BishopDirs = [4]int{-9, -11, 11, 9}
	KingDirs   = [8]int{-1, -10, 1, 10, -9, -11, 11, 9}
)

// IsSquareAttacked returns true if the square is attacked by the given color.
// Off-board squares are never attacked.
func (b *Board) IsSquareAttacked(sq Square, byColor Color) bool {
	if !sq.OnBoard() {
		return false
	}
	assert(byColor == White || byColor == Black, "color valid", "IsSquareAttacked(%s, %d)", sq, byColor)

	// Pawns
	if byColor == White {
		if b.cells[sq-11] == WP || b.cells[sq-9] == WP {
			return true
		}
	} else {
		if b.cells[sq+11] == BP || b.cells[sq+9] == BP {
			return true
		}
	}

	knight, bishop, rook, queen, king := WN, WB, WR, WQ, WK
	if byColor == Black {
		knight, bishop, rook, queen, king = BN, BB, BR, BQ, BK
	}

	// Knights
	for _, d := range KnightDirs {
		if b.cells[int(sq)+d] == knight {
			return true
		}
	}

	// Rooks, queens
	for _, d := range RookDirs {
		if p := b.firstPieceAlong(sq, d); p == rook || p == queen {
			return true
		}
	}

	// Bishops, queens
	for _, d := range BishopDirs {
		if p := b.firstPieceAlong(sq, d); p == bishop || p == queen {
			return true
		}
	}

	// Kings
	for _, d := range KingDirs {
		if b.cells[int(sq)+d] == king {
			return true
		}
	}

	return false
}

// firstPieceAlong walks from sq in direction d and returns the first
// non-empty cell (a piece or Offboard).
func (b *Board) firstPieceAlong(sq Square, d int) Piece {
	t := int(sq) + d
	for b.cells[t] == Empty {
		t += d
	}
	return b.cells[t]
}
