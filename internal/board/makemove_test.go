package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPawnDoubleStep(t *testing.T) {
	b := NewBoard()
	before := b.Hash()

	if !b.MakeMove(NewMove(E2, E4, Empty, Empty, FlagPawnStart)) {
		t.Fatal("e2e4 rejected")
	}

	if b.EnPassant() != E3 {
		t.Errorf("en passant = %s, want e3", b.EnPassant())
	}
	if b.HalfMoveClock() != 0 {
		t.Errorf("half-move clock = %d, want 0", b.HalfMoveClock())
	}
	if b.SideToMove() != Black {
		t.Errorf("side = %s, want Black", b.SideToMove())
	}

	k := ZobristKeys()
	want := before ^ k.Piece(WP, E2) ^ k.Piece(WP, E4) ^ k.EnPassant(E3) ^ k.Side()
	if b.Hash() != want {
		t.Errorf("hash = %016x, want %016x", b.Hash(), want)
	}
	mustCheck(t, b)
}

func TestKingSideCastle(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 3 10")
	before := b.Hash()

	if !b.MakeMove(NewMove(E1, G1, Empty, Empty, FlagCastle)) {
		t.Fatal("O-O rejected")
	}

	if b.PieceAt(G1) != WK || b.PieceAt(F1) != WR || b.PieceAt(E1) != Empty || b.PieceAt(H1) != Empty {
		t.Errorf("pieces after O-O: e1=%s f1=%s g1=%s h1=%s", b.PieceAt(E1), b.PieceAt(F1), b.PieceAt(G1), b.PieceAt(H1))
	}
	if b.KingSquare(White) != G1 {
		t.Errorf("king square = %s, want g1", b.KingSquare(White))
	}
	if b.CastlingRights() != BlackKingSideCastle|BlackQueenSideCastle {
		t.Errorf("castling = %s, want kq", b.CastlingRights())
	}
	if b.HalfMoveClock() != 4 {
		t.Errorf("half-move clock = %d, want 4", b.HalfMoveClock())
	}

	k := ZobristKeys()
	want := before ^
		k.Piece(WK, E1) ^ k.Piece(WK, G1) ^
		k.Piece(WR, H1) ^ k.Piece(WR, F1) ^
		k.Castling(AllCastling) ^ k.Castling(BlackKingSideCastle|BlackQueenSideCastle) ^
		k.Side()
	if b.Hash() != want {
		t.Errorf("hash = %016x, want %016x", b.Hash(), want)
	}
	mustCheck(t, b)
}

func TestQueenSideCastleBlack(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	start := snapshot(b)

	if !b.MakeMove(NewMove(E8, C8, Empty, Empty, FlagCastle)) {
		t.Fatal("O-O-O rejected")
	}
	if b.PieceAt(C8) != BK || b.PieceAt(D8) != BR || b.PieceAt(A8) != Empty {
		t.Errorf("pieces after O-O-O: a8=%s c8=%s d8=%s", b.PieceAt(A8), b.PieceAt(C8), b.PieceAt(D8))
	}
	if b.CastlingRights() != WhiteKingSideCastle|WhiteQueenSideCastle {
		t.Errorf("castling = %s, want KQ", b.CastlingRights())
	}
	if b.FullMoveNumber() != 2 {
		t.Errorf("full move = %d, want 2", b.FullMoveNumber())
	}

	b.TakeMove()
	if diff := cmp.Diff(start, snapshot(b)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEnPassantCapture(t *testing.T) {
	b := mustParse(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 5 30")
	start := snapshot(b)

	if !b.MakeMove(NewMove(E5, D6, Empty, Empty, FlagEnPassant)) {
		t.Fatal("exd6 e.p. rejected")
	}

	if b.PieceAt(D5) != Empty {
		t.Errorf("victim on d5 not removed: %s", b.PieceAt(D5))
	}
	if b.PieceAt(D6) != WP {
		t.Errorf("d6 holds %s, want P", b.PieceAt(D6))
	}
	if b.PieceCount(BP) != 0 || b.Pawns(Black) != EmptyBB {
		t.Error("black pawn still indexed")
	}
	if b.HalfMoveClock() != 0 {
		t.Errorf("half-move clock = %d, want 0", b.HalfMoveClock())
	}
	if b.EnPassant() != NoSquare {
		t.Errorf("en passant = %s, want none", b.EnPassant())
	}
	mustCheck(t, b)

	b.TakeMove()
	if diff := cmp.Diff(start, snapshot(b)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestIllegalMoveNeedsRetraction(t *testing.T) {
	// The e2 knight is pinned by the rook on e8.
	b := mustParse(t, "4r1k1/8/8/8/8/8/4N3/4K3 w - - 0 1")
	start := snapshot(b)

	if b.MakeMove(NewMove(E2, C3, Empty, Empty, 0)) {
		t.Fatal("pinned knight move accepted")
	}

	// Without retraction the board is still the mutated one.
	got := snapshot(b)
	if got.Hash == start.Hash || got.Side == start.Side || got.HistoryPly != 1 || got.Cells[C3] != WN {
		t.Errorf("rejected move did not leave the mutated state: %+v", got)
	}
	if diff := cmp.Diff(start, got); diff == "" {
		t.Fatal("unretracted board is indistinguishable from the start")
	}

	b.TakeMove()
	if diff := cmp.Diff(start, snapshot(b)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMovingIntoCheckRejected(t *testing.T) {
	b := mustParse(t, "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1")
	if b.MakeMove(NewMove(E1, E2, Empty, Empty, 0)) {
		t.Error("Ke2 next to the d2 rook accepted")
	}
	b.TakeMove()
	if !b.MakeMove(NewMove(E1, D2, BR, Empty, 0)) {
		t.Error("Kxd2 rejected")
	}
	mustCheck(t, b)
}

func TestPromotionRoundTrip(t *testing.T) {
	b := mustParse(t, "1r2k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	start := snapshot(b)

	tests := []struct {
		m     Move
		piece Piece
	}{
		{NewMove(A7, A8, Empty, WQ, 0), WQ},
		{NewMove(A7, B8, BR, WN, 0), WN},
	}
	for _, tc := range tests {
		if !b.MakeMove(tc.m) {
			t.Fatalf("%s rejected", tc.m)
		}
		if b.PieceAt(tc.m.To()) != tc.piece || b.PieceCount(WP) != 0 || b.PieceCount(tc.piece) != 1 {
			t.Errorf("%s: %s on %s, %d pawns", tc.m, b.PieceAt(tc.m.To()), tc.m.To(), b.PieceCount(WP))
		}
		if b.Material(White) != 50000+tc.piece.Value() {
			t.Errorf("%s: material = %d", tc.m, b.Material(White))
		}
		mustCheck(t, b)

		b.TakeMove()
		if diff := cmp.Diff(start, snapshot(b)); diff != "" {
			t.Errorf("%s round trip mismatch (-want +got):\n%s", tc.m, diff)
		}
	}
}

func TestRookCaptureOnHomeSquareClearsRight(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/6B1/R3K2R w KQkq - 0 1")

	// Bishop g2 takes the rook on a8.
	if !b.MakeMove(NewMove(G2, A8, BR, Empty, 0)) {
		t.Fatal("Bxa8 rejected")
	}
	want := WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle
	if b.CastlingRights() != want {
		t.Errorf("castling = %s, want %s", b.CastlingRights(), want)
	}
	mustCheck(t, b)
}

func TestEnPassantScoping(t *testing.T) {
	b := NewBoard()
	seq := []struct {
		m  Move
		ep Square
	}{
		{NewMove(E2, E4, Empty, Empty, FlagPawnStart), E3},
		{NewMove(G8, F6, Empty, Empty, 0), NoSquare},
		{NewMove(D2, D4, Empty, Empty, FlagPawnStart), D3},
		{NewMove(C7, C5, Empty, Empty, FlagPawnStart), C6},
		{NewMove(D4, C5, BP, Empty, 0), NoSquare},
		{NewMove(B7, B5, Empty, Empty, FlagPawnStart), B6},
		{NewMove(C5, B6, Empty, Empty, FlagEnPassant), NoSquare},
	}
	for _, s := range seq {
		if !b.MakeMove(s.m) {
			t.Fatalf("%s rejected", s.m)
		}
		if b.EnPassant() != s.ep {
			t.Errorf("after %s: en passant = %s, want %s", s.m, b.EnPassant(), s.ep)
		}
	}
}

func TestCastlingRightsNeverGrow(t *testing.T) {
	b := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	moves := []Move{
		NewMove(H1, H2, Empty, Empty, 0), // loses K
		NewMove(A8, A7, Empty, Empty, 0), // loses q
		NewMove(H2, H1, Empty, Empty, 0), // rook back, K stays lost
		NewMove(A7, A8, Empty, Empty, 0),
		NewMove(E1, E2, Empty, Empty, 0), // loses Q
		NewMove(E8, E7, Empty, Empty, 0), // loses k
	}

	prev := b.CastlingRights()
	for _, m := range moves {
		if !b.MakeMove(m) {
			t.Fatalf("%s rejected", m)
		}
		cr := b.CastlingRights()
		if cr&^prev != 0 {
			t.Errorf("after %s rights grew from %s to %s", m, prev, cr)
		}
		prev = cr
	}
	if prev != NoCastling {
		t.Errorf("final rights = %s, want -", prev)
	}

	for range moves {
		b.TakeMove()
	}
	if b.CastlingRights() != AllCastling {
		t.Errorf("rights not restored: %s", b.CastlingRights())
	}
}

func TestHistoryOverflowIsFatal(t *testing.T) {
	b := mustParse(t, "4k3/8/8/8/8/8/8/N3K3 w - - 0 1")
	b.historyPly = MaxGameMoves
	expectInvariantPanic(t, "history capacity", func() {
		b.MakeMove(NewMove(A1, B3, Empty, Empty, 0))
	})
}

func TestTakeMoveOnEmptyHistoryIsFatal(t *testing.T) {
	b := NewBoard()
	expectInvariantPanic(t, "history not empty", b.TakeMove)
}
