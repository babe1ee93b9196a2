// Package serial converts games to and from the JSON wire format used by
// persistence and transport. The board is a rank-ordered 8x8 array of
// squares; index [0][0] is a1.
package serial

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Format selects which fields are written.
type Format int

const (
	// ExtendedFormat also carries the en-passant target and the castling
	// registry, so a reload reproduces the game exactly.
	ExtendedFormat Format = iota
	// MinimalFormat carries only the board and the side to move. Castling
	// eligibility is re-derived from the board on load and en passant is lost.
	MinimalFormat
)

// String returns the flag form of the format.
func (f Format) String() string {
	if f == MinimalFormat {
		return "minimal"
	}
	return "extended"
}

// ParseFormat parses "extended" or "minimal".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "extended", "":
		return ExtendedFormat, nil
	case "minimal":
		return MinimalFormat, nil
	}
	return ExtendedFormat, fmt.Errorf("unknown wire format %q", s)
}

// JSONPiece is an occupied square.
type JSONPiece struct {
	PieceColor string `json:"pieceColor"` // "WHITE" or "BLACK"
	Type       string `json:"type"`       // "KING", "QUEEN", ...
}

// JSONBoard wraps the square array. Board[row][col] with row 0 = rank 1;
// nil marks an empty square.
type JSONBoard struct {
	Board [][]*JSONPiece `json:"board"`
}

// JSONGame is the minimal wire representation.
type JSONGame struct {
	TeamTurn string    `json:"teamTurn"`
	Board    JSONBoard `json:"board"`
}

// JSONExtendedGame adds the state a bare board cannot express.
// EnPassant names the square of the pawn that may be taken en passant.
// Castling lists the squares still in the castling registry; a missing
// list means "derive from the board".
type JSONExtendedGame struct {
	JSONGame
	EnPassant string   `json:"enPassant,omitempty"`
	Castling  []string `json:"castling"`
}

// GameToJSON converts a game to its wire representation.
func GameToJSON(g *engine.Game, f Format) interface{} {
	jg := JSONGame{
		TeamTurn: colourName(g.Turn()),
		Board:    boardToJSON(g.Board()),
	}
	if f == MinimalFormat {
		return &jg
	}

	ext := &JSONExtendedGame{JSONGame: jg, Castling: []string{}}
	if pos, ok := g.EnPassantTarget(); ok {
		ext.EnPassant = pos.String()
	}
	for _, pos := range g.CastlingRights() {
		ext.Castling = append(ext.Castling, pos.String())
	}
	return ext
}

// Marshal encodes a game.
func Marshal(g *engine.Game, f Format) ([]byte, error) {
	return json.Marshal(GameToJSON(g, f))
}

// Write encodes a game to w as indented JSON.
func Write(w io.Writer, g *engine.Game, f Format) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(GameToJSON(g, f))
}

// Unmarshal decodes either format into a new game.
func Unmarshal(data []byte, opts ...engine.Option) (*engine.Game, error) {
	var ext JSONExtendedGame
	if err := json.Unmarshal(data, &ext); err != nil {
		return nil, fmt.Errorf("decoding game: %v: %w", err, errors.ErrInvalidBoard)
	}
	return JSONToGame(&ext, opts...)
}

// JSONToGame rebuilds a game from its wire representation.
func JSONToGame(ext *JSONExtendedGame, opts ...engine.Option) (*engine.Game, error) {
	board, err := jsonToBoard(ext.Board)
	if err != nil {
		return nil, err
	}
	turn, err := parseColourName(ext.TeamTurn)
	if err != nil {
		return nil, err
	}

	g := engine.NewGame(opts...)
	g.SetBoard(board)
	g.SetTurn(turn)

	if ext.Castling != nil {
		squares := make([]chess.Position, 0, len(ext.Castling))
		for _, s := range ext.Castling {
			pos, err := chess.ParsePosition(s)
			if err != nil {
				return nil, fmt.Errorf("castling square %q: %w", s, errors.ErrInvalidBoard)
			}
			squares = append(squares, pos)
		}
		g.SetCastlingRights(squares)
	}

	if ext.EnPassant != "" {
		pos, err := chess.ParsePosition(ext.EnPassant)
		if err != nil {
			return nil, fmt.Errorf("en passant square %q: %w", ext.EnPassant, errors.ErrInvalidBoard)
		}
		g.SetEnPassantTarget(pos)
	}
	return g, nil
}

func boardToJSON(board *chess.Board) JSONBoard {
	rows := make([][]*JSONPiece, chess.BoardSize)
	for row := chess.FirstRow; row <= chess.LastRow; row++ {
		rows[row-1] = make([]*JSONPiece, chess.BoardSize)
		for col := chess.FirstCol; col <= chess.LastCol; col++ {
			p := board.Get(chess.Pos(row, col))
			if p.IsEmpty() {
				continue
			}
			rows[row-1][col-1] = &JSONPiece{
				PieceColor: colourName(p.Colour),
				Type:       strings.ToUpper(p.Kind.String()),
			}
		}
	}
	return JSONBoard{Board: rows}
}

func jsonToBoard(jb JSONBoard) (*chess.Board, error) {
	if len(jb.Board) != chess.BoardSize {
		return nil, fmt.Errorf("want %d rows, got %d: %w", chess.BoardSize, len(jb.Board), errors.ErrInvalidBoard)
	}
	board := chess.NewBoard()
	for r, squares := range jb.Board {
		if len(squares) != chess.BoardSize {
			return nil, fmt.Errorf("row %d has %d squares: %w", r, len(squares), errors.ErrInvalidBoard)
		}
		for c, jp := range squares {
			if jp == nil {
				continue
			}
			piece, err := jsonToPiece(jp)
			if err != nil {
				return nil, err
			}
			board.Set(chess.Pos(r+1, c+1), piece)
		}
	}
	return board, nil
}

func jsonToPiece(jp *JSONPiece) (chess.Piece, error) {
	colour, err := parseColourName(jp.PieceColor)
	if err != nil {
		return chess.NoPiece, err
	}
	kind, ok := kindNames[jp.Type]
	if !ok {
		return chess.NoPiece, fmt.Errorf("piece type %q: %w", jp.Type, errors.ErrInvalidBoard)
	}
	return chess.Piece{Colour: colour, Kind: kind}, nil
}

var kindNames = map[string]chess.Kind{
	"KING":   chess.King,
	"QUEEN":  chess.Queen,
	"ROOK":   chess.Rook,
	"BISHOP": chess.Bishop,
	"KNIGHT": chess.Knight,
	"PAWN":   chess.Pawn,
}

func colourName(c chess.Colour) string {
	return strings.ToUpper(c.String())
}

func parseColourName(s string) (chess.Colour, error) {
	switch s {
	case "WHITE":
		return chess.White, nil
	case "BLACK":
		return chess.Black, nil
	}
	return chess.White, fmt.Errorf("colour %q: %w", s, errors.ErrInvalidBoard)
}
