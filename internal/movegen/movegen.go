// Package movegen produces packed pseudo-legal moves for a board.Board.
// King safety is left to the legality gate in board.MakeMove.
package movegen

import (
	"log"

	"github.com/hailam/chesscore/internal/board"
)

var (
	whiteSliders    = []board.Piece{board.WB, board.WR, board.WQ}
	blackSliders    = []board.Piece{board.BB, board.BR, board.BQ}
	whiteNonSliders = []board.Piece{board.WN, board.WK}
	blackNonSliders = []board.Piece{board.BN, board.BK}
)

// directions returns the step offsets for a non-pawn piece.
func directions(p board.Piece) []int {
	switch p {
	case board.WN, board.BN:
		return board.KnightDirs[:]
	case board.WB, board.BB:
		return board.BishopDirs[:]
	case board.WR, board.BR:
		return board.RookDirs[:]
	case board.WQ, board.BQ, board.WK, board.BK:
		return board.KingDirs[:]
	}
	return nil
}

// GenerateLegalMoves returns the pseudo-legal moves that pass the legality
// gate. The board is restored before returning.
func GenerateLegalMoves(b *board.Board) *board.MoveList {
	pseudo := board.NewMoveList()
	GenerateAll(b, pseudo)

	legal := board.NewMoveList()
	for _, m := range pseudo.Slice() {
		if b.MakeMove(m) {
			legal.Add(m)
		}
		b.TakeMove()
	}
	return legal
}

// GenerateAll appends every pseudo-legal move for the side to move.
func GenerateAll(b *board.Board, ml *board.MoveList) {
	generate(b, ml, false)
}

// GenerateCaptures appends pseudo-legal captures, en passant included.
// Quiet promotions are not captures and are left out.
func GenerateCaptures(b *board.Board, ml *board.MoveList) {
	generate(b, ml, true)
}

func generate(b *board.Board, ml *board.MoveList, capturesOnly bool) {
	us := b.SideToMove()

	if board.Debug && b.PieceCount(board.KingOf(us)) != 1 {
		log.Printf("MOVEGEN FATAL: %v has %d kings, hash=%016x", us, b.PieceCount(board.KingOf(us)), b.Hash())
	}

	generatePawnMoves(b, ml, us, capturesOnly)

	sliders, nonSliders := whiteSliders, whiteNonSliders
	if us == board.Black {
		sliders, nonSliders = blackSliders, blackNonSliders
	}

	for _, pce := range sliders {
		for i := 0; i < b.PieceCount(pce); i++ {
			from := b.PieceSquare(pce, i)
			for _, d := range directions(pce) {
				to := board.Square(int(from) + d)
				for b.PieceAt(to) == board.Empty {
					if !capturesOnly {
						ml.Add(board.NewMove(from, to, board.Empty, board.Empty, 0))
					}
					to = board.Square(int(to) + d)
				}
				addCapture(b, ml, us, from, to)
			}
		}
	}

	for _, pce := range nonSliders {
		for i := 0; i < b.PieceCount(pce); i++ {
			from := b.PieceSquare(pce, i)
			for _, d := range directions(pce) {
				to := board.Square(int(from) + d)
				if b.PieceAt(to) == board.Empty {
					if !capturesOnly {
						ml.Add(board.NewMove(from, to, board.Empty, board.Empty, 0))
					}
					continue
				}
				addCapture(b, ml, us, from, to)
			}
		}
	}

	if !capturesOnly {
		generateCastlingMoves(b, ml, us)
	}
}

// addCapture adds from->to if to holds an enemy piece.
func addCapture(b *board.Board, ml *board.MoveList, us board.Color, from, to board.Square) {
	target := b.PieceAt(to)
	if target.Valid() && target.Color() != us {
		ml.Add(board.NewMove(from, to, target, board.Empty, 0))
	}
}

// generatePawnMoves generates all pawn moves.
func generatePawnMoves(b *board.Board, ml *board.MoveList, us board.Color, capturesOnly bool) {
	pawn := board.PawnOf(us)
	push, startRank := 10, board.Rank2
	if us == board.Black {
		push, startRank = -10, board.Rank7
	}
	ep := b.EnPassant()

	for i := 0; i < b.PieceCount(pawn); i++ {
		from := b.PieceSquare(pawn, i)
		one := board.Square(int(from) + push)

		if !capturesOnly && b.PieceAt(one) == board.Empty {
			addPawnMove(ml, us, from, one, board.Empty)
			two := board.Square(int(one) + push)
			if from.Rank() == startRank && b.PieceAt(two) == board.Empty {
				ml.Add(board.NewMove(from, two, board.Empty, board.Empty, board.FlagPawnStart))
			}
		}

		for _, side := range [2]int{push - 1, push + 1} {
			to := board.Square(int(from) + side)
			target := b.PieceAt(to)
			if target.Valid() && target.Color() != us {
				addPawnMove(ml, us, from, to, target)
			}
			if ep != board.NoSquare && to == ep {
				ml.Add(board.NewMove(from, to, board.Empty, board.Empty, board.FlagEnPassant))
			}
		}
	}
}

// addPawnMove adds a pawn move, expanding it into four promotions on the
// last rank.
func addPawnMove(ml *board.MoveList, us board.Color, from, to board.Square, captured board.Piece) {
	lastRank := board.Rank8
	promos := [4]board.Piece{board.WQ, board.WR, board.WB, board.WN}
	if us == board.Black {
		lastRank = board.Rank1
		promos = [4]board.Piece{board.BQ, board.BR, board.BB, board.BN}
	}

	if to.Rank() != lastRank {
		ml.Add(board.NewMove(from, to, captured, board.Empty, 0))
		return
	}
	for _, p := range promos {
		ml.Add(board.NewMove(from, to, captured, p, 0))
	}
}

// generateCastlingMoves generates castling moves. The king may not start on
// or pass through an attacked square; the landing square is left to the gate.
func generateCastlingMoves(b *board.Board, ml *board.MoveList, us board.Color) {
	them := us.Other()
	cr := b.CastlingRights()

	kingSide, queenSide := board.WhiteKingSideCastle, board.WhiteQueenSideCastle
	e, f, g, d, c, bsq := board.E1, board.F1, board.G1, board.D1, board.C1, board.B1
	if us == board.Black {
		kingSide, queenSide = board.BlackKingSideCastle, board.BlackQueenSideCastle
		e, f, g, d, c, bsq = board.E8, board.F8, board.G8, board.D8, board.C8, board.B8
	}

	// Kingside (O-O)
	if cr&kingSide != 0 {
		if b.PieceAt(f) == board.Empty && b.PieceAt(g) == board.Empty {
			if !b.IsSquareAttacked(e, them) && !b.IsSquareAttacked(f, them) {
				ml.Add(board.NewMove(e, g, board.Empty, board.Empty, board.FlagCastle))
			}
		}
	}

	// Queenside (O-O-O)
	if cr&queenSide != 0 {
		if b.PieceAt(d) == board.Empty && b.PieceAt(c) == board.Empty && b.PieceAt(bsq) == board.Empty {
			if !b.IsSquareAttacked(e, them) && !b.IsSquareAttacked(d, them) {
				ml.Add(board.NewMove(e, c, board.Empty, board.Empty, board.FlagCastle))
			}
		}
	}
}
