package board

import (
	"fmt"
	"strings"
)

// MaxGameMoves bounds the history stack: the longest game, in half-moves,
// that a Board can record.
const MaxGameMoves = 2048

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// Undo stores what MakeMove cannot recompute when the move is taken back.
type Undo struct {
	Move          Move
	Castling      CastlingRights
	EnPassant     Square
	HalfMoveClock int
	Hash          uint64
}

// Board is a complete, mutable chess position.
//
// Every field is an index derived from cells. Only the primitives in
// pieces.go write cells; MakeMove and TakeMove orchestrate them.
type Board struct {
	cells [BoardCells]Piece

	// pawns[White], pawns[Black], pawns[Both]
	pawns [3]Bitboard

	bigCount   [2]int
	majorCount [2]int
	minorCount [2]int
	material   [2]int

	kingSquare [2]Square

	enPassant Square
	side      Color

	pieceCount [PieceKinds]int
	pieceList  [PieceKinds][MaxPiecesPerKind]Square

	hash uint64

	castling      CastlingRights
	startCastling CastlingRights

	halfMoveClock  int
	fullMoveNumber int

	ply        int
	historyPly int
	history    [MaxGameMoves]Undo
}

// NewBoard creates the starting position.
func NewBoard() *Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// Reset clears the board to an empty, border-marked state. The result holds
// no kings and is not a playable position until pieces are placed.
func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = Offboard
	}
	for i := 0; i < 64; i++ {
		b.cells[SquareFrom64(i)] = Empty
	}

	b.pawns = [3]Bitboard{}
	b.bigCount = [2]int{}
	b.majorCount = [2]int{}
	b.minorCount = [2]int{}
	b.material = [2]int{}
	b.kingSquare = [2]Square{NoSquare, NoSquare}
	b.pieceCount = [PieceKinds]int{}
	for i := range b.pieceList {
		for j := range b.pieceList[i] {
			b.pieceList[i][j] = NoSquare
		}
	}

	b.side = Both
	b.enPassant = NoSquare
	b.castling = NoCastling
	b.startCastling = NoCastling
	b.halfMoveClock = 0
	b.fullMoveNumber = 1
	b.ply = 0
	b.historyPly = 0
	b.hash = 0
}

// Copy creates an independent deep copy of the board, history included.
// Parallel searchers must each own a copy.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// PieceAt returns the cell contents: a piece, Empty, or Offboard.
func (b *Board) PieceAt(sq Square) Piece {
	if sq >= BoardCells {
		return Offboard
	}
	return b.cells[sq]
}

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.side }

// Hash returns the incrementally maintained Zobrist key.
func (b *Board) Hash() uint64 { return b.hash }

// CastlingRights returns the current castling mask.
func (b *Board) CastlingRights() CastlingRights { return b.castling }

// StartCastling returns the castling rights the board was initialised with.
func (b *Board) StartCastling() CastlingRights { return b.startCastling }

// EnPassant returns the en-passant target square or NoSquare.
func (b *Board) EnPassant() Square { return b.enPassant }

// HalfMoveClock returns the half-moves since the last pawn move or capture.
func (b *Board) HalfMoveClock() int { return b.halfMoveClock }

// FullMoveNumber returns the FEN full-move counter.
func (b *Board) FullMoveNumber() int { return b.fullMoveNumber }

// Ply returns the search depth since the last ResetPly.
func (b *Board) Ply() int { return b.ply }

// HistoryPly returns the number of half-moves recorded in the history.
func (b *Board) HistoryPly() int { return b.historyPly }

// ResetPly zeroes the search ply; the search layer calls it per iteration.
func (b *Board) ResetPly() { b.ply = 0 }

// HistoryAt returns the undo record pushed by the i-th recorded half-move.
func (b *Board) HistoryAt(i int) Undo { return b.history[i] }

// KingSquare returns the cached king location for the color.
func (b *Board) KingSquare(c Color) Square { return b.kingSquare[c] }

// Pawns returns the pawn bitboard for White, Black or Both.
func (b *Board) Pawns(c Color) Bitboard { return b.pawns[c] }

// BigCount returns the number of non-pawn pieces (kings included) of a color.
func (b *Board) BigCount(c Color) int { return b.bigCount[c] }

// MajorCount returns the number of rooks and queens of a color.
func (b *Board) MajorCount(c Color) int { return b.majorCount[c] }

// MinorCount returns the number of knights and bishops of a color.
func (b *Board) MinorCount(c Color) int { return b.minorCount[c] }

// Material returns the summed piece values of a color, king included.
func (b *Board) Material(c Color) int { return b.material[c] }

// PieceCount returns how many pieces of the kind are on the board.
func (b *Board) PieceCount(p Piece) int { return b.pieceCount[p] }

// PieceSquare returns the i-th entry of the piece list for kind p.
// The list is unordered; valid indices are [0, PieceCount(p)).
func (b *Board) PieceSquare(p Piece, i int) Square { return b.pieceList[p][i] }

// String returns a visual representation of the position.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := Rank8; rank >= Rank1; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := FileA; file <= FileH; file++ {
			sb.WriteString(b.cells[NewSquare(file, rank)].String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.side)
	fmt.Fprintf(&sb, "Castling: %s\n", b.castling)
	fmt.Fprintf(&sb, "En passant: %s\n", b.enPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", b.halfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", b.fullMoveNumber)
	fmt.Fprintf(&sb, "Hash: %016x\n", b.hash)
	return sb.String()
}

// InCheck returns true if the side to move is in check.
func (b *Board) InCheck() bool {
	return b.IsSquareAttacked(b.kingSquare[b.side], b.side.Other())
}

// IsRepetition reports whether the current position occurred earlier since
// the last pawn move or capture.
func (b *Board) IsRepetition() bool {
	start := b.historyPly - b.halfMoveClock
	if start < 0 {
		start = 0
	}
	for i := start; i < b.historyPly-1; i++ {
		if b.history[i].Hash == b.hash {
			return true
		}
	}
	return false
}

// HasNonPawnMaterial returns true if the side to move has a piece other than
// pawns and the king.
func (b *Board) HasNonPawnMaterial() bool {
	return b.bigCount[b.side] > 1
}
