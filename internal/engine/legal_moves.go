package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// LegalMoves returns the legal moves of the piece on from, including
// castling and en passant. It returns nil if the square is empty.
func (g *Game) LegalMoves(from chess.Position) []chess.Move {
	piece := g.board.Get(from)
	if piece.IsEmpty() {
		return nil
	}

	raw := RawMoves(g.board, from)
	legal := make([]chess.Move, 0, len(raw))
	for _, m := range raw {
		if g.leavesKingSafe(m, piece.Colour) {
			legal = append(legal, m)
		}
	}

	legal = append(legal, g.castlingMoves(from, piece)...)

	if m, ok := g.enPassantMove(from, piece); ok && g.leavesKingSafe(m, piece.Colour) {
		legal = append(legal, m)
	}
	return legal
}

// AllLegalMoves returns the legal moves of every piece of the given colour.
func (g *Game) AllLegalMoves(colour chess.Colour) []chess.Move {
	var moves []chess.Move
	for _, from := range g.board.Occupied(colour) {
		moves = append(moves, g.LegalMoves(from)...)
	}
	return moves
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func (g *Game) HasLegalMoves(colour chess.Colour) bool {
	for _, from := range g.board.Occupied(colour) {
		if len(g.LegalMoves(from)) > 0 {
			return true
		}
	}
	return false
}

// leavesKingSafe plays m on the board and reports whether colour's king is
// out of check afterwards. The board is restored before returning.
func (g *Game) leavesKingSafe(m chess.Move, colour chess.Colour) bool {
	return g.simulate(func() bool {
		place(g.board, m)
		return !isInCheck(g.board, colour)
	})
}

// simulate runs fn against the live board and restores the board contents
// afterwards, whichever way fn returns.
func (g *Game) simulate(fn func() bool) bool {
	saved := g.board.SaveState()
	defer g.board.RestoreState(saved)
	return fn()
}

// moveKind distinguishes moves that touch more than two squares.
type moveKind int

const (
	plainMove moveKind = iota
	castleMove
	enPassantMove
)

// classify determines the kind of m for the piece about to make it.
func classify(board *chess.Board, piece chess.Piece, m chess.Move) moveKind {
	switch {
	case isCastle(piece, m):
		return castleMove
	case piece.Kind == chess.Pawn && m.Start.Col != m.End.Col && board.IsEmpty(m.End):
		return enPassantMove
	}
	return plainMove
}

// place applies m to the board without any legality checks: the moving
// piece (or its promotion) lands on End, any occupant is captured, an
// en-passant victim is removed and a castling rook is relocated.
func place(board *chess.Board, m chess.Move) moveKind {
	piece := board.Get(m.Start)
	kind := classify(board, piece, m)

	landed := piece
	if m.IsPromotion() {
		landed = chess.Piece{Colour: piece.Colour, Kind: m.Promotion}
	}
	board.Set(m.Start, chess.NoPiece)
	board.Set(m.End, landed)

	switch kind {
	case enPassantMove:
		board.Set(chess.Pos(m.Start.Row, m.End.Col), chess.NoPiece)
	case castleMove:
		rookFrom, rookTo := castleRookSquares(m)
		board.Set(rookTo, board.Get(rookFrom))
		board.Set(rookFrom, chess.NoPiece)
	}
	return kind
}
