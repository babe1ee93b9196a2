package serial

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func playMoves(t *testing.T, g *engine.Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		if err := g.MakeMove(testutil.MustParseMove(t, s)); err != nil {
			t.Fatalf("MakeMove(%s) error: %v", s, err)
		}
	}
}

// position drops the FEN clocks, which the wire format does not carry.
func position(fen string) string {
	fields := strings.Fields(fen)
	return strings.Join(fields[:4], " ")
}

func TestMinimalFormatShape(t *testing.T) {
	data, err := Marshal(engine.NewGame(), MinimalFormat)
	testutil.AssertNoError(t, err)

	var raw map[string]json.RawMessage
	testutil.AssertNoError(t, json.Unmarshal(data, &raw))
	testutil.AssertEqual(t, len(raw), 2, "top-level keys in %s", data)
	testutil.AssertEqual(t, string(raw["teamTurn"]), `"WHITE"`)

	var board struct {
		Board [][]*JSONPiece `json:"board"`
	}
	testutil.AssertNoError(t, json.Unmarshal(raw["board"], &board))
	testutil.AssertEqual(t, len(board.Board), 8)
	testutil.AssertEqual(t, board.Board[0][0], &JSONPiece{PieceColor: "WHITE", Type: "ROOK"})
	testutil.AssertEqual(t, board.Board[0][4], &JSONPiece{PieceColor: "WHITE", Type: "KING"})
	testutil.AssertEqual(t, board.Board[7][3], &JSONPiece{PieceColor: "BLACK", Type: "QUEEN"})
	testutil.AssertNil(t, board.Board[3][3])
}

func TestExtendedRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
	}{
		{"initial", nil},
		{"en passant pending", []string{"e2e4", "a7a6", "e4e5", "d7d5"}},
		{"castled", []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6", "e1g1"}},
		{"rook moved and returned", []string{"g1f3", "g8f6", "h1g1", "h8g8", "g1h1", "g8h8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := engine.NewGame()
			playMoves(t, g, tt.moves...)

			data, err := Marshal(g, ExtendedFormat)
			testutil.AssertNoError(t, err)
			got, err := Unmarshal(data)
			testutil.AssertNoError(t, err)

			testutil.AssertEqual(t, position(got.FEN()), position(g.FEN()))
			testutil.AssertEqual(t, got.CastlingRights(), g.CastlingRights())
			for _, colour := range []chess.Colour{chess.White, chess.Black} {
				testutil.AssertEqual(t,
					testutil.MoveStrings(got.AllLegalMoves(colour)),
					testutil.MoveStrings(g.AllLegalMoves(colour)),
					"%v legal moves", colour)
			}
		})
	}
}

func TestMinimalFormatIsLossy(t *testing.T) {
	t.Run("en passant lost", func(t *testing.T) {
		g := engine.NewGame()
		playMoves(t, g, "e2e4", "a7a6", "e4e5", "d7d5")

		data, err := Marshal(g, MinimalFormat)
		testutil.AssertNoError(t, err)
		got, err := Unmarshal(data)
		testutil.AssertNoError(t, err)

		_, ok := got.EnPassantTarget()
		testutil.AssertFalse(t, ok, "en passant target after minimal reload")
		testutil.AssertEqual(t, got.Board().Squares, g.Board().Squares)
		testutil.AssertEqual(t, got.Turn(), chess.White)
	})

	t.Run("castling re-derived from the board", func(t *testing.T) {
		g := engine.NewGame()
		playMoves(t, g, "g1f3", "g8f6", "h1g1", "h8g8", "g1h1", "g8h8")
		testutil.AssertFalse(t, g.CastlingEligible(chess.Pos(1, 8)), "h1 before reload")

		data, err := Marshal(g, MinimalFormat)
		testutil.AssertNoError(t, err)
		got, err := Unmarshal(data)
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, got.CastlingEligible(chess.Pos(1, 8)), "h1 after minimal reload")
	})
}

func TestJSONToGameCastlingList(t *testing.T) {
	data, err := Marshal(engine.NewGame(), ExtendedFormat)
	testutil.AssertNoError(t, err)

	var ext JSONExtendedGame
	testutil.AssertNoError(t, json.Unmarshal(data, &ext))
	testutil.AssertEqual(t, len(ext.Castling), 6)

	ext.Castling = []string{}
	got, err := JSONToGame(&ext)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(got.CastlingRights()), 0, "explicit empty list")

	ext.Castling = nil
	got, err = JSONToGame(&ext)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(got.CastlingRights()), 6, "missing list")
}

func TestUnmarshalOptions(t *testing.T) {
	data, err := Marshal(engine.NewGame(), ExtendedFormat)
	testutil.AssertNoError(t, err)
	got, err := Unmarshal(data, engine.WithTerminalRules(engine.StandardTerminals))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.Rules(), engine.StandardTerminals)
}

func TestUnmarshalInvalid(t *testing.T) {
	row := `[null,null,null,null,null,null,null,null]`
	rows := func(n int) string {
		return "[" + strings.TrimSuffix(strings.Repeat(row+",", n), ",") + "]"
	}

	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"teamTurn":`},
		{"missing board", `{"teamTurn":"WHITE"}`},
		{"seven rows", `{"teamTurn":"WHITE","board":{"board":` + rows(7) + `}}`},
		{"short row", `{"teamTurn":"WHITE","board":{"board":[[null]` + strings.Repeat(","+row, 7) + `]}}`},
		{"bad turn", `{"teamTurn":"RED","board":{"board":` + rows(8) + `}}`},
		{"bad piece type", `{"teamTurn":"WHITE","board":{"board":[[{"pieceColor":"WHITE","type":"DRAGON"},null,null,null,null,null,null,null]` + strings.Repeat(","+row, 7) + `]}}`},
		{"bad castling square", `{"teamTurn":"WHITE","board":{"board":` + rows(8) + `},"castling":["z9"]}`},
		{"bad en passant square", `{"teamTurn":"WHITE","board":{"board":` + rows(8) + `},"enPassant":"e"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			if !errors.Is(err, errors.ErrInvalidBoard) {
				t.Errorf("Unmarshal() error = %v; want ErrInvalidBoard", err)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	testutil.AssertNoError(t, Write(&buf, engine.NewGame(), ExtendedFormat))
	testutil.AssertContains(t, buf.String(), `"teamTurn": "WHITE"`)
	testutil.AssertContains(t, buf.String(), `"castling": [`)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"extended", ExtendedFormat, false},
		{"", ExtendedFormat, false},
		{"MINIMAL", MinimalFormat, false},
		{"xml", ExtendedFormat, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
	testutil.AssertEqual(t, MinimalFormat.String(), "minimal")
}
