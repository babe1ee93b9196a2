package engine

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// MakeMove validates m against the legal moves of its start square and
// plays it. The move must match a legal move exactly, promotion included.
// On failure the game is left unchanged and the error wraps
// errors.ErrIllegalMove.
func (g *Game) MakeMove(m chess.Move) error {
	piece := g.board.Get(m.Start)
	if piece.IsEmpty() {
		return errors.Empty(m.String())
	}
	if piece.Colour != g.turn {
		return errors.Illegal(m.String(), fmt.Sprintf("%s to move", g.turn))
	}
	if !slices.Contains(g.LegalMoves(m.Start), m) {
		return errors.Illegal(m.String(), "destination not legal")
	}

	saved := g.board.SaveState()
	captured := g.board.Get(m.End)
	kind := place(g.board, m)

	// Re-check on the real board; LegalMoves already filtered this.
	if isInCheck(g.board, piece.Colour) {
		g.board.RestoreState(saved)
		return errors.Illegal(m.String(), "king left in check")
	}

	g.updateEnPassant(piece, m)
	g.updateCastling(m, kind)
	g.updateClocks(piece, captured, kind)
	g.turn = g.turn.Opposite()
	return nil
}

// updateEnPassant sets the target after a double step beside an enemy pawn
// and clears it after any other move.
func (g *Game) updateEnPassant(piece chess.Piece, m chess.Move) {
	g.hasEnPassant = false
	if isDoubleStep(piece, m) && hasAdjacentEnemyPawn(g.board, m.End, piece.Colour) {
		g.enPassant, g.hasEnPassant = m.End, true
	}
}

// updateCastling drops the registry entries of every square a registered
// piece has left: the start square, the destination (its occupant was
// captured) and a castling rook's origin.
func (g *Game) updateCastling(m chess.Move, kind moveKind) {
	delete(g.castling, m.Start)
	delete(g.castling, m.End)
	if kind == castleMove {
		rookFrom, _ := castleRookSquares(m)
		delete(g.castling, rookFrom)
	}
}

// updateClocks maintains the FEN halfmove clock and move number.
func (g *Game) updateClocks(piece, captured chess.Piece, kind moveKind) {
	if piece.Kind == chess.Pawn || !captured.IsEmpty() || kind == enPassantMove {
		g.halfmoveClock = 0
	} else {
		g.halfmoveClock++
	}
	if piece.Colour == chess.Black {
		g.moveNumber++
	}
}
