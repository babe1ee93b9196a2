package engine

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// TerminalRules selects how checkmate and stalemate are decided.
type TerminalRules int

const (
	// LegacyTerminals uses the simplified predicates: checkmate when no
	// attacker can be captured by a non-king piece, stalemate when every
	// king destination is covered.
	LegacyTerminals TerminalRules = iota
	// StandardTerminals uses the usual definitions based on whether the
	// side has any legal move.
	StandardTerminals
)

// String returns the flag form of the rules ("legacy" or "standard").
func (r TerminalRules) String() string {
	if r == StandardTerminals {
		return "standard"
	}
	return "legacy"
}

// ParseTerminalRules parses "legacy" or "standard".
func ParseTerminalRules(s string) (TerminalRules, error) {
	switch strings.ToLower(s) {
	case "legacy", "":
		return LegacyTerminals, nil
	case "standard":
		return StandardTerminals, nil
	}
	return LegacyTerminals, fmt.Errorf("unknown terminal rules %q", s)
}

// Game holds a board together with the state the board alone cannot
// express: the side to move, the en-passant target and the castling
// registry. A Game is not safe for concurrent use; callers serialize
// access per game.
type Game struct {
	board *chess.Board
	turn  chess.Colour

	// enPassant is the square of a pawn that has just advanced two squares
	// beside an enemy pawn. Valid only when hasEnPassant is set.
	enPassant    chess.Position
	hasEnPassant bool

	// castling maps a king or rook start square to the piece registered
	// there. Entries only ever disappear during play.
	castling map[chess.Position]chess.Piece

	rules TerminalRules

	halfmoveClock int
	moveNumber    int
}

// Option configures a Game.
type Option func(*Game)

// WithTerminalRules selects the checkmate and stalemate definitions.
func WithTerminalRules(rules TerminalRules) Option {
	return func(g *Game) {
		g.rules = rules
	}
}

// NewGame creates a game in the standard starting position with White to
// move and full castling eligibility.
func NewGame(opts ...Option) *Game {
	g := &Game{
		board:      chess.NewInitialBoard(),
		turn:       chess.White,
		moveNumber: 1,
	}
	g.rebuildCastling()
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Board returns a snapshot of the board. Changing it does not affect the game.
func (g *Game) Board() *chess.Board {
	return g.board.Copy()
}

// SetBoard installs a copy of board. Registry entries survive only where
// the registered piece still stands; entries are never added back, so a
// fresh game from NewGame is the way to derive eligibility for a cold
// board. The en-passant target is kept only when the board is unchanged.
func (g *Game) SetBoard(board *chess.Board) {
	if !g.board.Equal(board) {
		g.hasEnPassant = false
	}
	g.board = board.Copy()
	for pos, piece := range g.castling {
		if g.board.Get(pos) != piece {
			delete(g.castling, pos)
		}
	}
}

// Turn returns the colour to move.
func (g *Game) Turn() chess.Colour {
	return g.turn
}

// SetTurn sets the colour to move. It is meant for restoring saved state;
// MakeMove flips the turn itself.
func (g *Game) SetTurn(colour chess.Colour) {
	g.turn = colour
}

// Rules returns the terminal rules in effect.
func (g *Game) Rules() TerminalRules {
	return g.rules
}

// SetRules changes the terminal rules.
func (g *Game) SetRules(rules TerminalRules) {
	g.rules = rules
}

// Clocks returns the halfmove clock and the fullmove number.
func (g *Game) Clocks() (halfmove, moveNumber int) {
	return g.halfmoveClock, g.moveNumber
}

// SetClocks restores the halfmove clock and fullmove number. Values
// below their minimum (0 and 1) are clamped.
func (g *Game) SetClocks(halfmove, moveNumber int) {
	g.halfmoveClock = max(halfmove, 0)
	g.moveNumber = max(moveNumber, 1)
}

// EnPassantTarget returns the square of the pawn that may be captured en
// passant on this ply.
func (g *Game) EnPassantTarget() (chess.Position, bool) {
	return g.enPassant, g.hasEnPassant
}

// SetEnPassantTarget marks the pawn on pos as capturable en passant. It is
// refused (and the target cleared) unless pos holds a pawn that could just
// have advanced two squares and an enemy pawn stands beside it.
func (g *Game) SetEnPassantTarget(pos chess.Position) bool {
	g.hasEnPassant = false
	pawn := g.board.Get(pos)
	if pawn.Kind != chess.Pawn || pawn.Colour == g.turn {
		return false
	}
	dir := chess.ColourOffset(pawn.Colour)
	if pos.Row != chess.PawnRow(pawn.Colour)+2*dir {
		return false
	}
	if !g.board.IsEmpty(pos.Offset(-dir, 0)) || !g.board.IsEmpty(pos.Offset(-2*dir, 0)) {
		return false
	}
	if !hasAdjacentEnemyPawn(g.board, pos, pawn.Colour) {
		return false
	}
	g.enPassant, g.hasEnPassant = pos, true
	return true
}

// CastlingEligible reports whether the piece registered on pos has never
// left it.
func (g *Game) CastlingEligible(pos chess.Position) bool {
	_, ok := g.castling[pos]
	return ok
}

// CastlingRights lists the registered squares ordered by rank then file.
func (g *Game) CastlingRights() []chess.Position {
	squares := maps.Keys(g.castling)
	sort.Slice(squares, func(i, j int) bool {
		if squares[i].Row != squares[j].Row {
			return squares[i].Row < squares[j].Row
		}
		return squares[i].Col < squares[j].Col
	})
	return squares
}

// SetCastlingRights rebuilds the registry from the board and then keeps
// only the listed squares.
func (g *Game) SetCastlingRights(squares []chess.Position) {
	g.rebuildCastling()
	for pos := range g.castling {
		if !slices.Contains(squares, pos) {
			delete(g.castling, pos)
		}
	}
}

// Clone returns an independent copy of the game.
func (g *Game) Clone() *Game {
	c := *g
	c.board = g.board.Copy()
	c.castling = maps.Clone(g.castling)
	return &c
}

// castlingSquares are the canonical king and rook start columns.
var castlingSquares = [...]struct {
	col  int
	kind chess.Kind
}{
	{5, chess.King},
	{chess.FirstCol, chess.Rook},
	{chess.LastCol, chess.Rook},
}

// rebuildCastling registers every king or rook found on its canonical
// start square.
func (g *Game) rebuildCastling() {
	g.castling = make(map[chess.Position]chess.Piece)
	for _, colour := range [...]chess.Colour{chess.White, chess.Black} {
		row := chess.HomeRow(colour)
		for _, sq := range castlingSquares {
			pos := chess.Pos(row, sq.col)
			piece := chess.Piece{Colour: colour, Kind: sq.kind}
			if g.board.Get(pos) == piece {
				g.castling[pos] = piece
			}
		}
	}
}
