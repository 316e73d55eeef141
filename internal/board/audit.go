package board

import (
	"fmt"
	"strings"
)

// AuditError lists every inconsistency Check found.
type AuditError struct {
	Problems []string
}

func (e *AuditError) Error() string {
	return "board audit failed: " + strings.Join(e.Problems, "; ")
}

// Check recomputes every redundant index from the cells and compares it with
// the incrementally maintained value. It returns nil for a consistent board.
func (b *Board) Check() error {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	var (
		pieceCount [PieceKinds]int
		bigCount   [2]int
		majorCount [2]int
		minorCount [2]int
		material   [2]int
		pawns      [3]Bitboard
		kings      = [2]Square{NoSquare, NoSquare}
	)

	for sq := Square(0); sq < BoardCells; sq++ {
		pce := b.cells[sq]
		if !sq.OnBoard() {
			if pce != Offboard {
				report("border cell %d holds %s", sq, pce)
			}
			continue
		}
		if pce == Empty {
			continue
		}
		if !pce.Valid() {
			report("cell %s holds invalid piece %d", sq, pce)
			continue
		}

		col := pce.Color()
		pieceCount[pce]++
		material[col] += pce.Value()
		if pce.IsBig() {
			bigCount[col]++
			if pce.IsMajor() {
				majorCount[col]++
			} else if pce.IsMinor() {
				minorCount[col]++
			}
		} else {
			pawns[col] = pawns[col].Set(sq)
			pawns[Both] = pawns[Both].Set(sq)
		}
		if pce.IsKing() {
			kings[col] = sq
		}
	}

	// 1. pawn bitboards
	for c := White; c <= Both; c++ {
		if pawns[c] != b.pawns[c] {
			report("pawn bitboard %s is %016x, cells give %016x", c, uint64(b.pawns[c]), uint64(pawns[c]))
		}
	}

	// 2. piece counts and lists
	for pce := WP; pce <= BK; pce++ {
		if pieceCount[pce] != b.pieceCount[pce] {
			report("piece count %s is %d, cells give %d", pce, b.pieceCount[pce], pieceCount[pce])
			continue
		}
		var seen Bitboard
		for i := 0; i < b.pieceCount[pce]; i++ {
			sq := b.pieceList[pce][i]
			switch {
			case !sq.OnBoard():
				report("piece list %s[%d] holds off-board square %d", pce, i, sq)
			case b.cells[sq] != pce:
				report("piece list %s[%d] points at %s holding %s", pce, i, sq, b.cells[sq])
			case seen.IsSet(sq):
				report("piece list %s lists %s twice", pce, sq)
			default:
				seen = seen.Set(sq)
			}
		}
	}
	if b.pieceCount[Empty] != 0 {
		report("piece count for Empty is %d", b.pieceCount[Empty])
	}

	// 3. material, 4. big/major/minor
	for c := White; c <= Black; c++ {
		if material[c] != b.material[c] {
			report("material %s is %d, cells give %d", c, b.material[c], material[c])
		}
		if bigCount[c] != b.bigCount[c] {
			report("big count %s is %d, cells give %d", c, b.bigCount[c], bigCount[c])
		}
		if majorCount[c] != b.majorCount[c] {
			report("major count %s is %d, cells give %d", c, b.majorCount[c], majorCount[c])
		}
		if minorCount[c] != b.minorCount[c] {
			report("minor count %s is %d, cells give %d", c, b.minorCount[c], minorCount[c])
		}
		// 5. king squares
		if kings[c] != b.kingSquare[c] {
			report("king square %s is %s, cells give %s", c, b.kingSquare[c], kings[c])
		}
	}

	// 6. hash
	if want := b.ComputeHash(); want != b.hash {
		report("hash is %016x, recomputed %016x", b.hash, want)
	}

	// 7. castling rights never grow
	if b.castling&^b.startCastling != 0 {
		report("castling rights %s exceed initial %s", b.castling, b.startCastling)
	}

	// 8. history bounds
	if b.historyPly < 0 || b.historyPly > MaxGameMoves {
		report("history length %d outside [0, %d]", b.historyPly, MaxGameMoves)
	}

	if len(problems) > 0 {
		return &AuditError{Problems: problems}
	}
	return nil
}
