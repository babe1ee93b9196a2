package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// castlingMoves returns the castling moves open to the king on from. The
// king must still be registered on its start square.
func (g *Game) castlingMoves(from chess.Position, king chess.Piece) []chess.Move {
	if king.Kind != chess.King || g.castling[from] != king {
		return nil
	}
	var moves []chess.Move
	for _, rookCol := range [...]int{chess.LastCol, chess.FirstCol} {
		if m, ok := g.castleToward(from, king, rookCol); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

// castleToward checks one side: the rook is registered and still there,
// the squares between are empty, and the king is not attacked on its
// start square or on either square it steps onto.
func (g *Game) castleToward(from chess.Position, king chess.Piece, rookCol int) (chess.Move, bool) {
	rookSq := chess.Pos(from.Row, rookCol)
	rook := chess.Piece{Colour: king.Colour, Kind: chess.Rook}
	if g.castling[rookSq] != rook || g.board.Get(rookSq) != rook {
		return chess.Move{}, false
	}

	dir := sign(rookCol - from.Col)
	if abs(rookCol-from.Col) < 3 {
		return chess.Move{}, false
	}
	for col := from.Col + dir; col != rookCol; col += dir {
		if !g.board.IsEmpty(chess.Pos(from.Row, col)) {
			return chess.Move{}, false
		}
	}

	if isInCheck(g.board, king.Colour) {
		return chess.Move{}, false
	}
	for step := 1; step <= 2; step++ {
		if !g.kingSafeOn(from, from.Offset(0, step*dir), king.Colour) {
			return chess.Move{}, false
		}
	}
	return chess.NewMove(from, from.Offset(0, 2*dir)), true
}

// kingSafeOn reports whether the king on from would be out of check if it
// stood on to instead.
func (g *Game) kingSafeOn(from, to chess.Position, colour chess.Colour) bool {
	return g.simulate(func() bool {
		g.board.Set(to, g.board.Get(from))
		g.board.Set(from, chess.NoPiece)
		return !isInCheck(g.board, colour)
	})
}

// castleRookSquares returns where the rook starts and ends for a castling
// king move.
func castleRookSquares(m chess.Move) (from, to chess.Position) {
	if m.End.Col > m.Start.Col {
		return chess.Pos(m.Start.Row, chess.LastCol), m.End.Offset(0, -1)
	}
	return chess.Pos(m.Start.Row, chess.FirstCol), m.End.Offset(0, 1)
}

// isCastle reports whether a king move is a castling move.
func isCastle(piece chess.Piece, m chess.Move) bool {
	return piece.Kind == chess.King && m.Start.Row == m.End.Row && abs(m.End.Col-m.Start.Col) == 2
}
