// Package board implements the chess position core: a 10x12 mailbox with
// redundant indices (piece lists, pawn bitboards, material, king squares and a
// running Zobrist hash) kept in sync by make/take move.
package board

import "fmt"

// Square is an index into the padded 10x12 board (0-119).
// The playable 8x8 area starts at A1=21; every other cell is border.
type Square uint8

// BoardCells is the number of cells in the padded board.
const BoardCells = 120

// Playable square constants in mailbox numbering.
const (
	A1 Square = 21 + iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A2 Square = 31 + iota
	B2
	C2
	D2
	E2
	F2
	G2
	H2
)

const (
	A3 Square = 41 + iota
	B3
	C3
	D3
	E3
	F3
	G3
	H3
)

const (
	A4 Square = 51 + iota
	B4
	C4
	D4
	E4
	F4
	G4
	H4
)

const (
	A5 Square = 61 + iota
	B5
	C5
	D5
	E5
	F5
	G5
	H5
)

const (
	A6 Square = 71 + iota
	B6
	C6
	D6
	E6
	F6
	G6
	H6
)

const (
	A7 Square = 81 + iota
	B7
	C7
	D7
	E7
	F7
	G7
	H7
)

const (
	A8 Square = 91 + iota
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare
)

// Files and ranks. FileNone/RankNone mark border cells.
const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
	FileNone
)

const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	RankNone
)

// offboard64 marks a mailbox cell with no dense index.
const offboard64 = 65

// Square index tables, built once in init and never written again.
var (
	sq120To64 [BoardCells]uint8
	sq64To120 [64]Square
	filesBrd  [BoardCells]uint8
	ranksBrd  [BoardCells]uint8
)

func init() {
	initSquareTables()
}

func initSquareTables() {
	for i := range sq120To64 {
		sq120To64[i] = offboard64
		filesBrd[i] = FileNone
		ranksBrd[i] = RankNone
	}
	sq64 := 0
	for rank := Rank1; rank <= Rank8; rank++ {
		for file := FileA; file <= FileH; file++ {
			sq := NewSquare(file, rank)
			sq64To120[sq64] = sq
			sq120To64[sq] = uint8(sq64)
			filesBrd[sq] = uint8(file)
			ranksBrd[sq] = uint8(rank)
			sq64++
		}
	}
}

// NewSquare creates a mailbox square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(21 + file + rank*10)
}

// SquareFrom64 converts a dense 0-63 index (A1=0, H8=63) to a mailbox square.
func SquareFrom64(i int) Square {
	return sq64To120[i]
}

// To64 returns the dense 0-63 index for the square.
// Only meaningful for squares on the board.
func (sq Square) To64() int {
	return int(sq120To64[sq])
}

// OnBoard returns true if the square is one of the 64 playable cells.
func (sq Square) OnBoard() bool {
	return sq < BoardCells && sq120To64[sq] != offboard64
}

// File returns the file (0=a, 7=h) or FileNone for border cells.
func (sq Square) File() int {
	if sq >= BoardCells {
		return FileNone
	}
	return int(filesBrd[sq])
}

// Rank returns the rank (0=1, 7=8) or RankNone for border cells.
func (sq Square) Rank() int {
	if sq >= BoardCells {
		return RankNone
	}
	return int(ranksBrd[sq])
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.OnBoard() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return NewSquare(file, rank), nil
}
