package engine

import (
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// IsInCheck returns true if some enemy piece's raw moves reach colour's
// king. A side without a king is never in check.
func (g *Game) IsInCheck(colour chess.Colour) bool {
	return isInCheck(g.board, colour)
}

// isInCheck is the board-level check test shared by move filtering,
// castling and the terminal predicates.
func isInCheck(board *chess.Board, colour chess.Colour) bool {
	king, ok := findKing(board, colour)
	if !ok {
		return false
	}
	for _, from := range board.Occupied(colour.Opposite()) {
		if reaches(board, from, king) {
			return true
		}
	}
	return false
}

// findKing finds the king of the given colour on the board.
func findKing(board *chess.Board, colour chess.Colour) (chess.Position, bool) {
	return board.Find(chess.Piece{Colour: colour, Kind: chess.King})
}

// attackers returns the squares of byColour pieces whose raw moves reach target.
func attackers(board *chess.Board, target chess.Position, byColour chess.Colour) []chess.Position {
	var found []chess.Position
	for _, from := range board.Occupied(byColour) {
		if reaches(board, from, target) {
			found = append(found, from)
		}
	}
	return found
}

// reaches reports whether the piece on from has a raw move ending on target.
func reaches(board *chess.Board, from, target chess.Position) bool {
	return slices.IndexFunc(RawMoves(board, from), func(m chess.Move) bool {
		return m.End == target
	}) >= 0
}

// covered reports whether any byColour piece's raw moves end on target.
func covered(board *chess.Board, target chess.Position, byColour chess.Colour) bool {
	return len(attackers(board, target, byColour)) > 0
}
