package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// pawnMoves generates single and double pushes and diagonal captures.
// A move onto the far back rank is emitted once per promotion kind.
func pawnMoves(board *chess.Board, colour chess.Colour, from chess.Position) []chess.Move {
	var moves []chess.Move
	dir := chess.ColourOffset(colour)

	one := from.Offset(dir, 0)
	if one.Valid() && board.IsEmpty(one) {
		moves = appendPawnMove(moves, colour, from, one)
		two := from.Offset(2*dir, 0)
		if from.Row == chess.PawnRow(colour) && board.IsEmpty(two) {
			moves = append(moves, chess.NewMove(from, two))
		}
	}

	for _, dCol := range sideCols {
		to := from.Offset(dir, dCol)
		target := board.Get(to)
		if !target.IsEmpty() && target.Colour != colour {
			moves = appendPawnMove(moves, colour, from, to)
		}
	}
	return moves
}

// appendPawnMove appends a plain move, or the four promotion moves when to
// is on the opponent's back rank.
func appendPawnMove(moves []chess.Move, colour chess.Colour, from, to chess.Position) []chess.Move {
	if to.Row != chess.HomeRow(colour.Opposite()) {
		return append(moves, chess.NewMove(from, to))
	}
	for _, kind := range chess.PromotionKinds {
		moves = append(moves, chess.Move{Start: from, End: to, Promotion: kind})
	}
	return moves
}

// hasAdjacentEnemyPawn reports whether a pawn of the opposite colour stands
// directly beside pos on the same rank.
func hasAdjacentEnemyPawn(board *chess.Board, pos chess.Position, colour chess.Colour) bool {
	enemy := chess.Piece{Colour: colour.Opposite(), Kind: chess.Pawn}
	for _, dCol := range sideCols {
		if board.Get(pos.Offset(0, dCol)) == enemy {
			return true
		}
	}
	return false
}

// enPassantMove returns the en-passant capture available to the pawn on
// from, if the current target allows one.
func (g *Game) enPassantMove(from chess.Position, pawn chess.Piece) (chess.Move, bool) {
	if !g.hasEnPassant || pawn.Kind != chess.Pawn {
		return chess.Move{}, false
	}
	target := g.enPassant
	victim := g.board.Get(target)
	if victim.Kind != chess.Pawn || victim.Colour == pawn.Colour {
		return chess.Move{}, false
	}
	if from.Row != target.Row || abs(from.Col-target.Col) != 1 {
		return chess.Move{}, false
	}
	to := target.Offset(chess.ColourOffset(pawn.Colour), 0)
	if !to.Valid() || !g.board.IsEmpty(to) {
		return chess.Move{}, false
	}
	return chess.NewMove(from, to), true
}

// isDoubleStep reports whether a pawn moved two squares.
func isDoubleStep(piece chess.Piece, m chess.Move) bool {
	return piece.Kind == chess.Pawn && m.Start.Col == m.End.Col && abs(m.End.Row-m.Start.Row) == 2
}
