package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string and returns a new Board.
func ParseFEN(fen string) (*Board, error) {
	b := &Board{}
	if err := b.SetFEN(fen); err != nil {
		return nil, err
	}
	return b, nil
}

// SetFEN resets the board and loads the position described by fen. On error
// the board is left reset (empty) and must not be used for moves.
func (b *Board) SetFEN(fen string) error {
	b.Reset()
	if err := b.loadFEN(fen); err != nil {
		b.Reset()
		return err
	}
	if Debug {
		b.mustCheck("SetFEN")
	}
	return nil
}

func (b *Board) loadFEN(fen string) error {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(parts))
	}

	// Parse piece placement (field 0)
	if err := b.parsePiecePlacement(parts[0]); err != nil {
		return err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		b.side = White
	case "b":
		b.side = Black
	default:
		return fmt.Errorf("%w: invalid side to move: %s", ErrInvalidFEN, parts[1])
	}

	// Parse castling rights (field 2)
	if err := b.parseCastlingRights(parts[2]); err != nil {
		return err
	}

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return fmt.Errorf("%w: invalid en passant square: %s", ErrInvalidFEN, parts[3])
		}
		if (b.side == White && sq.Rank() != Rank6) || (b.side == Black && sq.Rank() != Rank3) {
			return fmt.Errorf("%w: en passant square %s does not fit side to move", ErrInvalidFEN, sq)
		}
		if err := b.checkEnPassant(sq); err != nil {
			return err
		}
		b.enPassant = sq
	}

	// Parse half-move clock (field 4, optional)
	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return fmt.Errorf("%w: invalid half-move clock: %s", ErrInvalidFEN, parts[4])
		}
		b.halfMoveClock = hmc
	}

	// Parse full-move number (field 5, optional)
	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return fmt.Errorf("%w: invalid full-move number: %s", ErrInvalidFEN, parts[5])
		}
		b.fullMoveNumber = fmn
	}

	if err := b.validatePlacement(); err != nil {
		return err
	}

	b.castling &= b.homeCastling()
	b.startCastling = b.castling
	b.hash = b.ComputeHash()
	return nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func (b *Board) parsePiecePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := Rank8 - i // FEN starts from rank 8
		file := FileA

		for _, c := range rankStr {
			if file > FileH {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			pce := PieceFromChar(byte(c))
			if pce == Empty {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidFEN, c)
			}
			if b.pieceCount[pce] >= MaxPiecesPerKind {
				return fmt.Errorf("%w: more than %d of %s", ErrInvalidFEN, MaxPiecesPerKind, pce)
			}
			sq := NewSquare(file, rank)
			b.addPiece(sq, pce)
			if pce.IsKing() {
				b.kingSquare[pce.Color()] = sq
			}
			file++
		}

		if file != 8 {
			return fmt.Errorf("%w: invalid number of squares in rank %d: got %d", ErrInvalidFEN, rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func (b *Board) parseCastlingRights(castling string) error {
	if castling == "-" {
		return nil
	}

	for _, c := range castling {
		switch c {
		case 'K':
			b.castling |= WhiteKingSideCastle
		case 'Q':
			b.castling |= WhiteQueenSideCastle
		case 'k':
			b.castling |= BlackKingSideCastle
		case 'q':
			b.castling |= BlackQueenSideCastle
		default:
			return fmt.Errorf("%w: invalid castling character: %c", ErrInvalidFEN, c)
		}
	}

	return nil
}

// checkEnPassant requires sq to be the empty square a pawn of the side not
// to move just passed over: the pawn stands beyond it and its origin is empty.
func (b *Board) checkEnPassant(sq Square) error {
	victim, origin := sq-10, sq+10
	if b.side == Black {
		victim, origin = sq+10, sq-10
	}
	if b.cells[sq] != Empty {
		return fmt.Errorf("%w: en passant square %s is occupied", ErrInvalidFEN, sq)
	}
	if b.cells[victim] != PawnOf(b.side.Other()) {
		return fmt.Errorf("%w: no pawn on %s for en passant square %s", ErrInvalidFEN, victim, sq)
	}
	if b.cells[origin] != Empty {
		return fmt.Errorf("%w: en passant origin %s is occupied", ErrInvalidFEN, origin)
	}
	return nil
}

// validatePlacement rejects positions the move engine cannot work with.
func (b *Board) validatePlacement() error {
	if b.pieceCount[WK] != 1 {
		return fmt.Errorf("%w: white must have exactly one king", ErrInvalidFEN)
	}
	if b.pieceCount[BK] != 1 {
		return fmt.Errorf("%w: black must have exactly one king", ErrInvalidFEN)
	}

	for _, pawn := range []Piece{WP, BP} {
		for i := 0; i < b.pieceCount[pawn]; i++ {
			if r := b.pieceList[pawn][i].Rank(); r == Rank1 || r == Rank8 {
				return fmt.Errorf("%w: pawns cannot be on rank 1 or 8", ErrInvalidFEN)
			}
		}
	}

	if b.IsSquareAttacked(b.kingSquare[b.side.Other()], b.side) {
		return fmt.Errorf("%w: side not to move is in check", ErrInvalidFEN)
	}

	return nil
}

// homeCastling returns the rights whose king and rook stand on their home
// squares. Rights claimed by a FEN without them are dropped.
func (b *Board) homeCastling() CastlingRights {
	cr := NoCastling
	if b.cells[E1] == WK {
		if b.cells[H1] == WR {
			cr |= WhiteKingSideCastle
		}
		if b.cells[A1] == WR {
			cr |= WhiteQueenSideCastle
		}
	}
	if b.cells[E8] == BK {
		if b.cells[H8] == BR {
			cr |= BlackKingSideCastle
		}
		if b.cells[A8] == BR {
			cr |= BlackQueenSideCastle
		}
	}
	return cr
}

// ToFEN returns the FEN representation of the position.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	// Piece placement
	for rank := Rank8; rank >= Rank1; rank-- {
		empty := 0
		for file := FileA; file <= FileH; file++ {
			pce := b.cells[NewSquare(file, rank)]
			if pce == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pce.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > Rank1 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if b.side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(b.castling.String())

	// En passant
	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())

	// Half-move clock and full-move number
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullMoveNumber))

	return sb.String()
}
