package board

// ZobristSeed is the fixed PRNG seed used for the process-wide key table.
const ZobristSeed uint64 = 0x98F107A2BEEF1234

// Keys is a complete Zobrist key table. A Keys value is built once and only
// read afterwards; boards share the package-level table.
type Keys struct {
	piece     [PieceKinds][BoardCells]uint64
	enPassant [BoardCells]uint64
	castling  [16]uint64
	side      uint64
}

// keys is the process-wide table used by every Board.
var keys = NewKeys(ZobristSeed)

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// NewKeys builds a key table from the given seed. Seed must be non-zero.
func NewKeys(seed uint64) *Keys {
	rng := newPRNG(seed)
	k := &Keys{}

	// Piece keys (the Empty row stays zero)
	for pce := WP; pce <= BK; pce++ {
		for sq := 0; sq < BoardCells; sq++ {
			k.piece[pce][sq] = rng.next()
		}
	}

	for sq := 0; sq < BoardCells; sq++ {
		k.enPassant[sq] = rng.next()
	}

	for i := range k.castling {
		k.castling[i] = rng.next()
	}

	k.side = rng.next()
	return k
}

// Piece returns the key for a piece on a square.
func (k *Keys) Piece(p Piece, sq Square) uint64 { return k.piece[p][sq] }

// EnPassant returns the key for an en-passant target square.
func (k *Keys) EnPassant(sq Square) uint64 { return k.enPassant[sq] }

// Castling returns the key for a castling-rights combination.
func (k *Keys) Castling(cr CastlingRights) uint64 { return k.castling[cr&AllCastling] }

// Side returns the key XORed in while black is to move.
func (k *Keys) Side() uint64 { return k.side }

// ZobristKeys returns the process-wide key table.
func ZobristKeys() *Keys {
	return keys
}

// ComputeHash builds the position hash from scratch. The hot make/take path
// never calls it; the auditor and tests compare it to the incremental hash.
func (b *Board) ComputeHash() uint64 {
	var hash uint64

	for sq := Square(0); sq < BoardCells; sq++ {
		pce := b.cells[sq]
		if pce.Valid() {
			hash ^= keys.piece[pce][sq]
		}
	}

	if b.side == Black {
		hash ^= keys.side
	}

	if b.enPassant != NoSquare {
		hash ^= keys.enPassant[b.enPassant]
	}

	hash ^= keys.castling[b.castling]

	return hash
}

func (b *Board) hashPiece(p Piece, sq Square) { b.hash ^= keys.piece[p][sq] }
func (b *Board) hashCastling()                { b.hash ^= keys.castling[b.castling] }
func (b *Board) hashSide()                    { b.hash ^= keys.side }
func (b *Board) hashEnPassant()               { b.hash ^= keys.enPassant[b.enPassant] }
