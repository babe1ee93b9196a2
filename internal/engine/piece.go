package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// calculator produces the raw moves of a piece of the given colour standing
// on from. Raw moves ignore king safety, castling and en passant. Each call
// returns a freshly allocated slice.
type calculator func(board *chess.Board, colour chess.Colour, from chess.Position) []chess.Move

// calculators dispatches on piece kind.
var calculators = [...]calculator{
	chess.Empty:  func(*chess.Board, chess.Colour, chess.Position) []chess.Move { return nil },
	chess.King:   kingMoves,
	chess.Queen:  queenMoves,
	chess.Rook:   rookMoves,
	chess.Bishop: bishopMoves,
	chess.Knight: knightMoves,
	chess.Pawn:   pawnMoves,
}

// RawMoves returns the geometrically reachable moves of the piece on from,
// or nil if the square is empty.
func RawMoves(board *chess.Board, from chess.Position) []chess.Move {
	piece := board.Get(from)
	if piece.IsEmpty() || int(piece.Kind) >= len(calculators) {
		return nil
	}
	return calculators[piece.Kind](board, piece.Colour, from)
}

func rookMoves(board *chess.Board, colour chess.Colour, from chess.Position) []chess.Move {
	return slide(board, colour, from, straightDirs)
}

func bishopMoves(board *chess.Board, colour chess.Colour, from chess.Position) []chess.Move {
	return slide(board, colour, from, diagonalDirs)
}

// queenMoves is the union of the rook and bishop rays.
func queenMoves(board *chess.Board, colour chess.Colour, from chess.Position) []chess.Move {
	return append(rookMoves(board, colour, from), bishopMoves(board, colour, from)...)
}

func knightMoves(board *chess.Board, colour chess.Colour, from chess.Position) []chess.Move {
	return leap(board, colour, from, knightOffsets)
}

func kingMoves(board *chess.Board, colour chess.Colour, from chess.Position) []chess.Move {
	return leap(board, colour, from, kingOffsets)
}
