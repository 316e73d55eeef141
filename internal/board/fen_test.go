package board

import (
	"errors"
	"testing"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
	}

	for _, fen := range fens {
		b := mustParse(t, fen)
		if got := b.ToFEN(); got != fen {
			t.Errorf("ToFEN() = %q, want %q", got, fen)
		}
		if b.Hash() != b.ComputeHash() {
			t.Errorf("%s: hash not computed", fen)
		}
		if b.StartCastling() != b.CastlingRights() {
			t.Errorf("%s: start castling %s, rights %s", fen, b.StartCastling(), b.CastlingRights())
		}
		mustCheck(t, b)
	}
}

func TestFENDefaults(t *testing.T) {
	b := mustParse(t, "4k3/8/8/8/8/8/8/4K3 b - -")
	if b.HalfMoveClock() != 0 || b.FullMoveNumber() != 1 {
		t.Errorf("clocks = %d/%d, want 0/1", b.HalfMoveClock(), b.FullMoveNumber())
	}
	if b.SideToMove() != Black {
		t.Errorf("side = %s, want Black", b.SideToMove())
	}
}

func TestFENDropsRightsWithoutPieces(t *testing.T) {
	// The h1 rook is missing and the black king has moved.
	b := mustParse(t, "r2k3r/8/8/8/8/8/8/R3K3 w KQkq - 0 1")
	if b.CastlingRights() != WhiteQueenSideCastle {
		t.Errorf("castling = %s, want Q", b.CastlingRights())
	}
	if b.Hash() != b.ComputeHash() {
		t.Error("hash disagrees after masking rights")
	}
}

func TestFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"too few fields", "8/8/8/8/8/8/8/8 w"},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1"},
		{"rank too long", "4k4/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"rank too short", "4k2/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"bad piece", "4k3/8/8/8/8/8/8/4K2X w - - 0 1"},
		{"bad side", "4k3/8/8/8/8/8/8/4K3 x - - 0 1"},
		{"bad castling", "4k3/8/8/8/8/8/8/4K3 w KX - 0 1"},
		{"bad ep square", "4k3/8/8/8/8/8/8/4K3 w - e9 0 1"},
		{"ep wrong rank", "4k3/8/8/8/8/8/8/4K3 w - e3 0 1"},
		{"negative clock", "4k3/8/8/8/8/8/8/4K3 w - - -1 1"},
		{"zero move number", "4k3/8/8/8/8/8/8/4K3 w - - 0 0"},
		{"no white king", "4k3/8/8/8/8/8/8/8 w - - 0 1"},
		{"two black kings", "3kk3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"pawn on rank 8", "P3k3/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"pawn on rank 1", "4k3/8/8/8/8/8/8/p3K3 w - - 0 1"},
		{"side not to move in check", "4k3/8/8/8/8/8/8/4K2r b - - 0 1"},
		{"eleven knights", "4k3/8/8/8/8/8/1NNNNNNN/NNNNK3 w - - 0 1"},
		{"ep square occupied", "4k3/8/4n3/3Pp3/8/8/8/4K3 w - e6 0 1"},
		{"ep without pawn", "4k3/8/8/3P4/8/8/8/4K3 w - e6 0 1"},
		{"ep own pawn", "4k3/8/8/3PP3/8/8/8/4K3 w - e6 0 1"},
		{"ep origin occupied", "4k3/4p3/8/3Pp3/8/8/8/4K3 w - e6 0 1"},
		{"black ep square occupied", "4k3/8/8/8/3pP3/4N3/8/4K3 b - e3 0 1"},
		{"black ep without pawn", "4k3/8/8/8/3p4/8/8/4K3 b - e3 0 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			if !errors.Is(err, ErrInvalidFEN) {
				t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidFEN", tc.fen, err)
			}
		})
	}
}

func TestSetFENReplacesPosition(t *testing.T) {
	b := NewBoard()
	b.MakeMove(NewMove(E2, E4, Empty, Empty, FlagPawnStart))

	if err := b.SetFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1"); err != nil {
		t.Fatalf("SetFEN: %v", err)
	}
	if b.HistoryPly() != 0 || b.PieceCount(WP) != 0 || b.Pawns(Both) != EmptyBB {
		t.Errorf("old state survived SetFEN: history=%d pawns=%d", b.HistoryPly(), b.PieceCount(WP))
	}
	mustCheck(t, b)
}

func TestSetFENErrorLeavesBoardReset(t *testing.T) {
	b := NewBoard()
	// Placement parses before the side field fails.
	if err := b.SetFEN("4k3/8/8/8/8/8/4P3/4K3 x - - 0 1"); !errors.Is(err, ErrInvalidFEN) {
		t.Fatalf("SetFEN error = %v, want ErrInvalidFEN", err)
	}
	if b.PieceCount(WK) != 0 || b.PieceCount(WP) != 0 || b.Pawns(Both) != EmptyBB {
		t.Errorf("pieces survived a failed SetFEN: kings=%d pawns=%d", b.PieceCount(WK), b.PieceCount(WP))
	}
	if b.SideToMove() != Both || b.Hash() != 0 || b.Material(White) != 0 {
		t.Errorf("state survived a failed SetFEN: side=%s hash=%016x", b.SideToMove(), b.Hash())
	}

	if err := b.SetFEN("4k3/8/8/3P4/8/8/8/4K3 w - e6 0 1"); !errors.Is(err, ErrInvalidFEN) {
		t.Fatalf("SetFEN error = %v, want ErrInvalidFEN", err)
	}
	if b.EnPassant() != NoSquare || b.PieceCount(WP) != 0 {
		t.Errorf("en passant %s and %d pawns survived a failed SetFEN", b.EnPassant(), b.PieceCount(WP))
	}
}
