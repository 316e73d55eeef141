package board

// clearPiece removes the piece on sq and updates every index that mentions it.
// The piece-list entry is overwritten by the last entry of that kind, so list
// order is not preserved.
func (b *Board) clearPiece(sq Square) {
	assert(sq.OnBoard(), "sq on board", "clearPiece(%d)", sq)

	pce := b.cells[sq]
	assert(pce.Valid(), "piece valid", "clearPiece(%s): cell holds %d", sq, pce)

	col := pce.Color()

	b.hashPiece(pce, sq)

	b.cells[sq] = Empty
	b.material[col] -= pce.Value()

	if pce.IsBig() {
		b.bigCount[col]--
		if pce.IsMajor() {
			b.majorCount[col]--
		} else if pce.IsMinor() {
			b.minorCount[col]--
		}
	} else {
		b.pawns[col] = b.pawns[col].Clear(sq)
		b.pawns[Both] = b.pawns[Both].Clear(sq)
	}

	idx := -1
	for i := 0; i < b.pieceCount[pce]; i++ {
		if b.pieceList[pce][i] == sq {
			idx = i
			break
		}
	}
	if idx == -1 {
		fail("piece in list", "clearPiece: %s on %s missing from its piece list", pce, sq)
	}

	b.pieceCount[pce]--
	last := b.pieceCount[pce]
	b.pieceList[pce][idx] = b.pieceList[pce][last]
	b.pieceList[pce][last] = NoSquare
}

// addPiece puts pce on the empty square sq and updates every index.
func (b *Board) addPiece(sq Square, pce Piece) {
	assert(pce.Valid(), "piece valid", "addPiece(%s, %d)", sq, pce)
	assert(sq.OnBoard(), "sq on board", "addPiece(%d, %s)", sq, pce)
	assert(b.cells[sq] == Empty, "target empty", "addPiece(%s, %s): cell holds %s", sq, pce, b.cells[sq])

	col := pce.Color()

	if b.pieceCount[pce] >= MaxPiecesPerKind {
		fail("piece list capacity", "addPiece(%s, %s): %d already on board", sq, pce, b.pieceCount[pce])
	}

	b.hashPiece(pce, sq)

	b.cells[sq] = pce

	if pce.IsBig() {
		b.bigCount[col]++
		if pce.IsMajor() {
			b.majorCount[col]++
		} else if pce.IsMinor() {
			b.minorCount[col]++
		}
	} else {
		b.pawns[col] = b.pawns[col].Set(sq)
		b.pawns[Both] = b.pawns[Both].Set(sq)
	}

	b.material[col] += pce.Value()
	b.pieceList[pce][b.pieceCount[pce]] = sq
	b.pieceCount[pce]++
}

// movePiece relocates the piece on from to the empty square to. Counts and
// material are unchanged; the piece-list entry is rewritten in place.
func (b *Board) movePiece(from, to Square) {
	assert(from.OnBoard(), "from on board", "movePiece(%d, %d)", from, to)
	assert(to.OnBoard(), "to on board", "movePiece(%d, %d)", from, to)

	pce := b.cells[from]
	assert(pce.Valid(), "piece valid", "movePiece(%s, %s): from holds %d", from, to, pce)
	assert(b.cells[to] == Empty, "target empty", "movePiece(%s, %s): to holds %s", from, to, b.cells[to])

	col := pce.Color()

	b.hashPiece(pce, from)
	b.cells[from] = Empty

	b.hashPiece(pce, to)
	b.cells[to] = pce

	if !pce.IsBig() {
		b.pawns[col] = b.pawns[col].Clear(from).Set(to)
		b.pawns[Both] = b.pawns[Both].Clear(from).Set(to)
	}

	for i := 0; i < b.pieceCount[pce]; i++ {
		if b.pieceList[pce][i] == from {
			b.pieceList[pce][i] = to
			return
		}
	}
	fail("piece in list", "movePiece: %s on %s missing from its piece list", pce, from)
}
