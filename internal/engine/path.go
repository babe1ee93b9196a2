package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Direction and offset sets as (row, col) deltas.
var (
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// slide walks each direction from the start square until the board edge,
// a friendly piece (excluded) or an enemy piece (included as a capture).
func slide(board *chess.Board, colour chess.Colour, from chess.Position, dirs [][2]int) []chess.Move {
	var moves []chess.Move
	for _, dir := range dirs {
		to := from.Offset(dir[0], dir[1])
		for to.Valid() {
			target := board.Get(to)
			if !target.IsEmpty() {
				if target.Colour != colour {
					moves = append(moves, chess.NewMove(from, to))
				}
				break // Blocked
			}
			moves = append(moves, chess.NewMove(from, to))
			to = to.Offset(dir[0], dir[1])
		}
	}
	return moves
}

// leap tries each fixed offset once, keeping on-board squares that are
// empty or hold an enemy piece.
func leap(board *chess.Board, colour chess.Colour, from chess.Position, offsets [][2]int) []chess.Move {
	var moves []chess.Move
	for _, off := range offsets {
		to := from.Offset(off[0], off[1])
		if !to.Valid() {
			continue
		}
		target := board.Get(to)
		if target.IsEmpty() || target.Colour != colour {
			moves = append(moves, chess.NewMove(from, to))
		}
	}
	return moves
}
