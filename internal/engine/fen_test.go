package engine

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func TestFEN_RoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/8/8/8/8/8/8/4K2k b - - 12 40",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			g := mustGame(t, fen)
			testutil.AssertEqual(t, g.FEN(), fen)
		})
	}
}

func TestFEN_Defaults(t *testing.T) {
	g := mustGame(t, "8/8/8/8/8/8/8/4K2k")
	testutil.AssertEqual(t, g.FEN(), "8/8/8/8/8/8/8/4K2k w - - 0 1")
}

func TestFEN_EnPassantNeedsCapturer(t *testing.T) {
	g := mustGame(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	_, ok := g.EnPassantTarget()
	testutil.AssertFalse(t, ok, "no black pawn can take e4")
	testutil.AssertEqual(t, g.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
}

func TestFEN_EnPassantTarget(t *testing.T) {
	g := mustGame(t, "rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3")
	target, ok := g.EnPassantTarget()
	testutil.AssertTrue(t, ok, "target from FEN")
	testutil.AssertEqual(t, target, chess.Pos(5, 5))
}

func TestFEN_Invalid(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w - - 0 1"},
		{"short rank", "rnbqkbn/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"},
		{"long rank", "rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"},
		{"bad piece", "rnbqkbnx/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x - - 0 1"},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KX - 0 1"},
		{"bad en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - z9 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGameFromFEN(tt.fen)
			if !errors.Is(err, errors.ErrInvalidFEN) {
				t.Errorf("NewGameFromFEN(%q) error = %v; want ErrInvalidFEN", tt.fen, err)
			}
		})
	}
}

func TestFEN_Options(t *testing.T) {
	g := mustGame(t, InitialFEN, WithTerminalRules(StandardTerminals))
	testutil.AssertEqual(t, g.Rules(), StandardTerminals)
	g.SetRules(LegacyTerminals)
	testutil.AssertEqual(t, g.Rules(), LegacyTerminals)
}

func TestClocks(t *testing.T) {
	g := mustGame(t, "8/8/8/8/8/8/8/4K2k b - - 12 40")
	half, num := g.Clocks()
	testutil.AssertEqual(t, half, 12)
	testutil.AssertEqual(t, num, 40)

	g.SetClocks(-3, 0)
	half, num = g.Clocks()
	testutil.AssertEqual(t, half, 0)
	testutil.AssertEqual(t, num, 1)

	g.SetClocks(7, 22)
	testutil.AssertEqual(t, g.FEN(), "8/8/8/8/8/8/8/4K2k b - - 7 22")
}
