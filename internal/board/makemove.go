package board

import "log"

// castlePerm[sq] is the rights mask kept when a piece leaves or lands on sq.
// Only the king and rook home squares clear anything.
var castlePerm = [BoardCells]CastlingRights{
	15, 15, 15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15, 15, 15,
	15, 13, 15, 15, 15, 12, 15, 15, 14, 15,
	15, 15, 15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15, 15, 15,
	15, 7, 15, 15, 15, 3, 15, 15, 11, 15,
	15, 15, 15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15, 15, 15,
}

// castleRook maps the king's castling destination to the rook's move.
func castleRook(to Square) (from, dest Square, ok bool) {
	switch to {
	case C1:
		return A1, D1, true
	case C8:
		return A8, D8, true
	case G1:
		return H1, F1, true
	case G8:
		return H8, F8, true
	}
	return NoSquare, NoSquare, false
}

// epVictim returns the square of the pawn taken by an en-passant capture
// landing on to, for the given mover.
func epVictim(to Square, mover Color) Square {
	if mover == White {
		return to - 10
	}
	return to + 10
}

// MakeMove applies m for the side to move and reports whether the move was
// legal. On false the mover's king is attacked and the board is left in the
// mutated state: the caller must call TakeMove before doing anything else.
//
// m must come from a trusted generator; see ValidateMove for untrusted input.
func (b *Board) MakeMove(m Move) bool {
	if Debug {
		b.mustCheck("MakeMove entry")
	}

	from := m.From()
	to := m.To()
	side := b.side

	assert(from.OnBoard(), "from on board", "move %s", m)
	assert(to.OnBoard(), "to on board", "move %s", m)
	assert(side == White || side == Black, "side valid", "side %d", side)
	assert(b.cells[from].Valid() && b.cells[from].Color() == side, "mover owns from",
		"move %s: %s on %s, %s to move", m, b.cells[from], from, side)

	if b.historyPly >= MaxGameMoves {
		fail("history capacity", "MakeMove %s: %d half-moves recorded", m, b.historyPly)
	}

	undo := &b.history[b.historyPly]
	undo.Hash = b.hash

	if m.IsEnPassant() {
		b.clearPiece(epVictim(to, side))
	} else if m.IsCastle() {
		rookFrom, rookTo, ok := castleRook(to)
		if !ok {
			fail("castle target", "move %s lands on %s", m, to)
		}
		b.movePiece(rookFrom, rookTo)
	}

	if b.enPassant != NoSquare {
		b.hashEnPassant()
	}
	b.hashCastling()

	undo.Move = m
	undo.HalfMoveClock = b.halfMoveClock
	undo.EnPassant = b.enPassant
	undo.Castling = b.castling

	b.castling &= castlePerm[from]
	b.castling &= castlePerm[to]
	b.enPassant = NoSquare

	b.hashCastling()

	captured := m.Captured()
	b.halfMoveClock++

	if captured != Empty {
		assert(captured.Valid(), "captured valid", "move %s", m)
		assert(b.cells[to] == captured, "captured on to", "move %s: %s holds %s", m, to, b.cells[to])
		b.clearPiece(to)
		b.halfMoveClock = 0
	}

	b.historyPly++
	b.ply++

	if b.cells[from].IsPawn() {
		b.halfMoveClock = 0
		if m.IsPawnStart() {
			if side == White {
				b.enPassant = from + 10
				assert(b.enPassant.Rank() == Rank3, "ep on rank 3", "move %s", m)
			} else {
				b.enPassant = from - 10
				assert(b.enPassant.Rank() == Rank6, "ep on rank 6", "move %s", m)
			}
			b.hashEnPassant()
		}
	}

	b.movePiece(from, to)

	if promoted := m.Promoted(); promoted != Empty {
		assert(promoted.Valid() && !promoted.IsPawn() && !promoted.IsKing(), "promotion valid", "move %s", m)
		assert(promoted.Color() == side, "promotion color", "move %s", m)
		b.clearPiece(to)
		b.addPiece(to, promoted)
	}

	if b.cells[to].IsKing() {
		b.kingSquare[side] = to
	}

	if side == Black {
		b.fullMoveNumber++
	}

	b.side ^= 1
	b.hashSide()

	if Debug {
		b.mustCheck("MakeMove exit")
	}

	if b.IsSquareAttacked(b.kingSquare[side], b.side) {
		if Debug {
			log.Printf("MAKEMOVE ILLEGAL: %v left king on %v attacked by %v, move=%v hash=%016x",
				side, b.kingSquare[side], b.side, m, b.hash)
		}
		return false
	}

	return true
}

// TakeMove retracts the most recent MakeMove, whether it was accepted or
// rejected. Everything except piece-list order is restored exactly.
func (b *Board) TakeMove() {
	if Debug {
		b.mustCheck("TakeMove entry")
	}
	if b.historyPly == 0 {
		fail("history not empty", "TakeMove with no recorded move")
	}

	b.historyPly--
	b.ply--

	undo := b.history[b.historyPly]
	m := undo.Move
	from := m.From()
	to := m.To()

	assert(from.OnBoard(), "from on board", "move %s", m)
	assert(to.OnBoard(), "to on board", "move %s", m)

	b.side ^= 1
	side := b.side

	b.castling = undo.Castling
	b.enPassant = undo.EnPassant
	b.halfMoveClock = undo.HalfMoveClock
	if side == Black {
		b.fullMoveNumber--
	}

	if promoted := m.Promoted(); promoted != Empty {
		assert(promoted.Valid() && !promoted.IsPawn(), "promotion valid", "move %s", m)
		b.clearPiece(to)
		b.addPiece(to, PawnOf(side))
	}

	b.movePiece(to, from)

	if b.cells[from].IsKing() {
		b.kingSquare[side] = from
	}

	if captured := m.Captured(); captured != Empty {
		assert(captured.Valid(), "captured valid", "move %s", m)
		b.addPiece(to, captured)
	}

	if m.IsEnPassant() {
		b.addPiece(epVictim(to, side), PawnOf(side.Other()))
	} else if m.IsCastle() {
		rookFrom, rookTo, ok := castleRook(to)
		if !ok {
			fail("castle target", "move %s lands on %s", m, to)
		}
		b.movePiece(rookTo, rookFrom)
	}

	// The primitives above XORed piece keys; the saved key is authoritative.
	b.hash = undo.Hash

	if Debug {
		b.mustCheck("TakeMove exit")
	}
}

// MakeNullMove passes the turn. It is recorded in the history like a move and
// must be undone with TakeNullMove. Not valid while in check.
func (b *Board) MakeNullMove() {
	if Debug {
		b.mustCheck("MakeNullMove entry")
	}
	assert(!b.InCheck(), "not in check", "null move while in check")
	if b.historyPly >= MaxGameMoves {
		fail("history capacity", "MakeNullMove: %d half-moves recorded", b.historyPly)
	}

	b.ply++
	undo := &b.history[b.historyPly]
	undo.Hash = b.hash

	if b.enPassant != NoSquare {
		b.hashEnPassant()
	}

	undo.Move = NoMove
	undo.HalfMoveClock = b.halfMoveClock
	undo.EnPassant = b.enPassant
	undo.Castling = b.castling
	b.enPassant = NoSquare

	b.side ^= 1
	b.historyPly++
	b.hashSide()

	if Debug {
		b.mustCheck("MakeNullMove exit")
	}
}

// TakeNullMove undoes MakeNullMove.
func (b *Board) TakeNullMove() {
	if b.historyPly == 0 {
		fail("history not empty", "TakeNullMove with no recorded move")
	}

	b.historyPly--
	b.ply--

	undo := b.history[b.historyPly]
	assert(undo.Move == NoMove, "null move on top", "top of history is %s", undo.Move)

	b.castling = undo.Castling
	b.halfMoveClock = undo.HalfMoveClock
	b.enPassant = undo.EnPassant
	b.side ^= 1
	b.hash = undo.Hash

	if Debug {
		b.mustCheck("TakeNullMove exit")
	}
}
