package board

import (
	"errors"
	"testing"
)

func TestValidateMove(t *testing.T) {
	const fen = "r3k2r/1P6/8/3pP3/8/8/4P3/R3K2R w KQkq d6 0 1"

	tests := []struct {
		name string
		m    Move
		ok   bool
	}{
		{"quiet", NewMove(E1, F1, Empty, Empty, 0), true},
		{"double step", NewMove(E2, E4, Empty, Empty, FlagPawnStart), true},
		{"en passant", NewMove(E5, D6, Empty, Empty, FlagEnPassant), true},
		{"castle", NewMove(E1, G1, Empty, Empty, FlagCastle), true},
		{"promotion capture", NewMove(B7, A8, BR, WQ, 0), true},

		{"off board", NewMove(Square(5), E4, Empty, Empty, 0), false},
		{"null", NoMove, false},
		{"empty origin", NewMove(E4, E5, Empty, Empty, 0), false},
		{"enemy piece", NewMove(D5, D4, Empty, Empty, 0), false},
		{"capture mismatch", NewMove(A1, A8, BQ, Empty, 0), false},
		{"capture own", NewMove(A1, E1, WK, Empty, 0), false},
		{"capture king", NewMove(H1, H8, BK, Empty, 0), false},
		{"quiet onto piece", NewMove(A1, A8, Empty, Empty, 0), false},
		{"promote to king", NewMove(B7, B8, Empty, WK, 0), false},
		{"promote wrong color", NewMove(B7, B8, Empty, BQ, 0), false},
		{"promote off last rank", NewMove(E2, E3, Empty, WQ, 0), false},
		{"promote non-pawn", NewMove(A1, A2, Empty, WQ, 0), false},
		{"en passant wrong square", NewMove(E5, E6, Empty, Empty, FlagEnPassant), false},
		{"double step from rank 3", NewMove(E5, E7, Empty, Empty, FlagPawnStart), false},
		{"flagged single push", NewMove(E2, E3, Empty, Empty, FlagPawnStart), false},
		{"double step diagonal", NewMove(E2, F4, Empty, Empty, FlagPawnStart), false},
		{"castle to f1", NewMove(E1, F1, Empty, Empty, FlagCastle), false},
		{"castle with rook", NewMove(H1, G1, Empty, Empty, FlagCastle), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustParse(t, fen)
			err := b.ValidateMove(tc.m)
			if tc.ok && err != nil {
				t.Errorf("ValidateMove(%s) = %v, want nil", tc.m, err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidMove) {
				t.Errorf("ValidateMove(%s) = %v, want ErrInvalidMove", tc.m, err)
			}
		})
	}
}

func TestValidateMoveHistoryFull(t *testing.T) {
	b := NewBoard()
	b.historyPly = MaxGameMoves
	if err := b.ValidateMove(NewMove(E2, E4, Empty, Empty, FlagPawnStart)); !errors.Is(err, ErrHistoryFull) {
		t.Errorf("ValidateMove = %v, want ErrHistoryFull", err)
	}
}

func TestValidateMoveBlockedDoubleStep(t *testing.T) {
	b := mustParse(t, "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1")
	if err := b.ValidateMove(NewMove(E2, E4, Empty, Empty, FlagPawnStart)); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("ValidateMove = %v, want ErrInvalidMove", err)
	}
}

func TestValidateMoveBlackDoubleStep(t *testing.T) {
	b := mustParse(t, "4k3/3p4/8/8/8/8/8/4K3 b - - 0 1")

	tests := []struct {
		name string
		m    Move
		ok   bool
	}{
		{"two squares down", NewMove(D7, D5, Empty, Empty, FlagPawnStart), true},
		{"one square down", NewMove(D7, D6, Empty, Empty, FlagPawnStart), false},
		{"off file", NewMove(D7, C5, Empty, Empty, FlagPawnStart), false},
	}
	for _, tc := range tests {
		err := b.ValidateMove(tc.m)
		if tc.ok && err != nil {
			t.Errorf("%s: ValidateMove = %v, want nil", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidMove) {
			t.Errorf("%s: ValidateMove = %v, want ErrInvalidMove", tc.name, err)
		}
	}
}

func TestValidateMovePromotionCapacity(t *testing.T) {
	// Ten white queens already on the board.
	b := mustParse(t, "7k/P5pp/8/8/8/QQQQQQ2/QQQQ4/4K3 w - - 0 1")
	if b.PieceCount(WQ) != MaxPiecesPerKind {
		t.Fatalf("setup has %d queens", b.PieceCount(WQ))
	}

	if err := b.ValidateMove(NewMove(A7, A8, Empty, WQ, 0)); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("queen promotion: ValidateMove = %v, want ErrInvalidMove", err)
	}
	if err := b.ValidateMove(NewMove(A7, A8, Empty, WR, 0)); err != nil {
		t.Errorf("rook promotion: ValidateMove = %v, want nil", err)
	}
}
