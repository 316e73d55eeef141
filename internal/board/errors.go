package board

import (
	"errors"
	"fmt"
)

// Sentinel errors for input that comes from outside the engine.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidMove indicates a packed move that does not fit the position.
	ErrInvalidMove = errors.New("invalid move")

	// ErrHistoryFull indicates the game reached MaxGameMoves half-moves.
	ErrHistoryFull = errors.New("move history full")
)

// ValidateMove reports why m cannot be passed to MakeMove on this position.
// It covers exactly the conditions MakeMove would otherwise treat as a broken
// invariant, so untrusted moves can be rejected instead of crashing.
// It does not check pseudo-legality or king safety.
func (b *Board) ValidateMove(m Move) error {
	if b.historyPly >= MaxGameMoves {
		return fmt.Errorf("%w: %d half-moves", ErrHistoryFull, b.historyPly)
	}

	from, to := m.From(), m.To()
	if !from.OnBoard() || !to.OnBoard() || from == to {
		return fmt.Errorf("%w: squares %d-%d", ErrInvalidMove, from, to)
	}

	mover := b.cells[from]
	if !mover.Valid() {
		return fmt.Errorf("%w: no piece on %s", ErrInvalidMove, from)
	}
	if mover.Color() != b.side {
		return fmt.Errorf("%w: %s on %s does not belong to %s", ErrInvalidMove, mover, from, b.side)
	}

	captured := m.Captured()
	if captured != Empty {
		if !captured.Valid() || captured.IsKing() || captured.Color() == b.side {
			return fmt.Errorf("%w: cannot capture %s", ErrInvalidMove, captured)
		}
		if b.cells[to] != captured {
			return fmt.Errorf("%w: %s holds %s, move captures %s", ErrInvalidMove, to, b.cells[to], captured)
		}
	} else if b.cells[to] != Empty {
		return fmt.Errorf("%w: %s is occupied by %s", ErrInvalidMove, to, b.cells[to])
	}

	if promoted := m.Promoted(); promoted != Empty {
		if !mover.IsPawn() || !promoted.Valid() || promoted.IsPawn() || promoted.IsKing() || promoted.Color() != b.side {
			return fmt.Errorf("%w: bad promotion to %s", ErrInvalidMove, promoted)
		}
		if to.Rank() != Rank8 && to.Rank() != Rank1 {
			return fmt.Errorf("%w: promotion on %s", ErrInvalidMove, to)
		}
		if b.pieceCount[promoted] >= MaxPiecesPerKind {
			return fmt.Errorf("%w: already %d of %s on the board", ErrInvalidMove, b.pieceCount[promoted], promoted)
		}
	}

	if m.IsEnPassant() {
		if !mover.IsPawn() || to != b.enPassant || captured != Empty {
			return fmt.Errorf("%w: en passant to %s", ErrInvalidMove, to)
		}
		if b.cells[epVictim(to, b.side)] != PawnOf(b.side.Other()) {
			return fmt.Errorf("%w: no pawn to take en passant", ErrInvalidMove)
		}
	}

	if m.IsPawnStart() {
		target := from + 20
		if b.side == Black {
			target = from - 20
		}
		if !mover.IsPawn() || (b.side == White && from.Rank() != Rank2) || (b.side == Black && from.Rank() != Rank7) {
			return fmt.Errorf("%w: double step from %s", ErrInvalidMove, from)
		}
		if to != target || captured != Empty {
			return fmt.Errorf("%w: double step %s-%s", ErrInvalidMove, from, to)
		}
		if b.cells[(from+to)/2] != Empty {
			return fmt.Errorf("%w: double step blocked", ErrInvalidMove)
		}
	}

	if m.IsCastle() {
		rookFrom, rookTo, ok := castleRook(to)
		if !ok || !mover.IsKing() {
			return fmt.Errorf("%w: castling to %s", ErrInvalidMove, to)
		}
		if b.cells[rookFrom] != RookOf(b.side) || b.cells[rookTo] != Empty {
			return fmt.Errorf("%w: no rook to castle with", ErrInvalidMove)
		}
		if m.IsCapture() {
			return fmt.Errorf("%w: castling cannot capture", ErrInvalidMove)
		}
	}

	return nil
}
