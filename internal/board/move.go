package board

// Move packs one half-move into 25 bits:
// bits 0-6:   from square (mailbox)
// bits 7-13:  to square (mailbox)
// bits 14-17: captured piece (Empty if none, also Empty for en passant)
// bit  18:    en-passant capture
// bit  19:    pawn double step
// bits 20-23: promoted piece (Empty if none)
// bit  24:    castling
type Move uint32

// Move flags
const (
	FlagEnPassant Move = 0x40000
	FlagPawnStart Move = 0x80000
	FlagCastle    Move = 0x1000000

	flagCaptureMask Move = 0x7C000 // captured piece bits plus en passant
	flagPromoMask   Move = 0xF00000
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove assembles a move. flags is any combination of FlagEnPassant,
// FlagPawnStart and FlagCastle.
func NewMove(from, to Square, captured, promoted Piece, flags Move) Move {
	return Move(from)&0x7F |
		(Move(to)&0x7F)<<7 |
		(Move(captured)&0xF)<<14 |
		(Move(promoted)&0xF)<<20 |
		flags
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x7F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 7) & 0x7F)
}

// Captured returns the piece taken on the destination square, or Empty.
// En-passant captures report Empty; see IsEnPassant.
func (m Move) Captured() Piece {
	return Piece((m >> 14) & 0xF)
}

// Promoted returns the piece the pawn becomes, or Empty.
func (m Move) Promoted() Piece {
	return Piece((m >> 20) & 0xF)
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m&FlagEnPassant != 0
}

// IsPawnStart returns true if this is a pawn double step.
func (m Move) IsPawnStart() bool {
	return m&FlagPawnStart != 0
}

// IsCastle returns true if this is a castling move (the king's movement).
func (m Move) IsCastle() bool {
	return m&FlagCastle != 0
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	return m&flagCaptureMask != 0
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m&flagPromoMask != 0
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	switch m.Promoted() {
	case WN, BN:
		s += "n"
	case WB, BB:
		s += "b"
	case WR, BR:
		s += "r"
	case WQ, BQ:
		s += "q"
	}

	return s
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
