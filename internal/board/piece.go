package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	Both
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "Both"
	}
}

// Piece is a colored piece kind as stored in a board cell.
// Empty and Offboard are sentinels; WP..BK are the twelve real kinds.
type Piece uint8

const (
	Empty Piece = iota
	WP
	WN
	WB
	WR
	WQ
	WK
	BP
	BN
	BB
	BR
	BQ
	BK
	Offboard
)

// PieceKinds is the number of piece-list slots (twelve kinds plus Empty).
const PieceKinds = 13

// MaxPiecesPerKind bounds each piece list: two originals plus eight promotions.
const MaxPiecesPerKind = 10

// Piece registry. Indexed by Piece; Offboard is deliberately out of range.
var (
	pieceBig   = [PieceKinds]bool{false, false, true, true, true, true, true, false, true, true, true, true, true}
	pieceMajor = [PieceKinds]bool{false, false, false, false, true, true, false, false, false, false, true, true, false}
	pieceMinor = [PieceKinds]bool{false, false, true, true, false, false, false, false, true, true, false, false, false}
	piecePawn  = [PieceKinds]bool{false, true, false, false, false, false, false, true, false, false, false, false, false}
	pieceKing  = [PieceKinds]bool{false, false, false, false, false, false, true, false, false, false, false, false, true}
	pieceValue = [PieceKinds]int{0, 100, 325, 325, 550, 1000, 50000, 100, 325, 325, 550, 1000, 50000}
	pieceColor = [PieceKinds]Color{Both, White, White, White, White, White, White, Black, Black, Black, Black, Black, Black}
)

// Valid reports whether p is one of the twelve real piece kinds.
func (p Piece) Valid() bool {
	return p >= WP && p <= BK
}

// ValidOrEmpty reports whether p is a real piece kind or Empty.
func (p Piece) ValidOrEmpty() bool {
	return p <= BK
}

// IsPawn reports whether p is a pawn of either color.
func (p Piece) IsPawn() bool { return p.ValidOrEmpty() && piecePawn[p] }

// IsKing reports whether p is a king of either color.
func (p Piece) IsKing() bool { return p.ValidOrEmpty() && pieceKing[p] }

// IsBig reports whether p is a non-pawn piece (kings included).
func (p Piece) IsBig() bool { return p.ValidOrEmpty() && pieceBig[p] }

// IsMajor reports whether p is a rook or queen.
func (p Piece) IsMajor() bool { return p.ValidOrEmpty() && pieceMajor[p] }

// IsMinor reports whether p is a knight or bishop.
func (p Piece) IsMinor() bool { return p.ValidOrEmpty() && pieceMinor[p] }

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	if !p.ValidOrEmpty() {
		return 0
	}
	return pieceValue[p]
}

// Color returns the owner of the piece, or Both for Empty and Offboard.
func (p Piece) Color() Color {
	if !p.ValidOrEmpty() {
		return Both
	}
	return pieceColor[p]
}

// IsSlider reports whether the piece attacks along rays.
func (p Piece) IsSlider() bool {
	switch p {
	case WB, WR, WQ, BB, BR, BQ:
		return true
	}
	return false
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	switch {
	case p == Empty:
		return "."
	case p.Valid():
		return string(".PNBRQKpnbrqk"[p])
	default:
		return "x"
	}
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WP
	case 'N':
		return WN
	case 'B':
		return WB
	case 'R':
		return WR
	case 'Q':
		return WQ
	case 'K':
		return WK
	case 'p':
		return BP
	case 'n':
		return BN
	case 'b':
		return BB
	case 'r':
		return BR
	case 'q':
		return BQ
	case 'k':
		return BK
	default:
		return Empty
	}
}

// PawnOf returns the pawn of the given color.
func PawnOf(c Color) Piece {
	if c == White {
		return WP
	}
	return BP
}

// RookOf returns the rook of the given color.
func RookOf(c Color) Piece {
	if c == White {
		return WR
	}
	return BR
}

// KingOf returns the king of the given color.
func KingOf(c Color) Piece {
	if c == White {
		return WK
	}
	return BK
}
