package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit set of squares in dense numbering.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8.
type Bitboard uint64

// EmptyBB is the bitboard with no squares set.
const EmptyBB Bitboard = 0

// SquareBB returns a bitboard with only the given mailbox square set.
func SquareBB(sq Square) Bitboard {
	return 1 << uint(sq.To64())
}

// Set returns b with the square's bit set.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | SquareBB(sq)
}

// Clear returns b with the square's bit cleared.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ SquareBB(sq)
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest set square, or NoSquare if empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return SquareFrom64(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest set square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// String renders the bitboard as an 8x8 grid, rank 8 first.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := Rank8; rank >= Rank1; rank-- {
		for file := FileA; file <= FileH; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('-')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
