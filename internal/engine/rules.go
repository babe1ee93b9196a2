package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// IsInCheckmate reports checkmate for colour under the game's terminal rules.
//
// With LegacyTerminals the test is: colour is in check and none of the
// checking pieces can be captured by a non-king piece of colour in one raw
// move. Blocking and king escapes are not considered.
// With StandardTerminals it is: in check and no legal move.
func (g *Game) IsInCheckmate(colour chess.Colour) bool {
	if g.rules == StandardTerminals {
		return g.IsInCheck(colour) && !g.HasLegalMoves(colour)
	}
	return legacyCheckmate(g.board, colour)
}

// IsInStalemate reports stalemate for colour under the game's terminal rules.
//
// With LegacyTerminals the test is: colour is not in check, its king has at
// least one raw destination, and every such destination is reached by some
// enemy raw move. Other pieces are ignored.
// With StandardTerminals it is: not in check and no legal move. A side
// without a king is never stalemated.
func (g *Game) IsInStalemate(colour chess.Colour) bool {
	if g.rules == StandardTerminals {
		if _, ok := findKing(g.board, colour); !ok {
			return false
		}
		return !g.IsInCheck(colour) && !g.HasLegalMoves(colour)
	}
	return legacyStalemate(g.board, colour)
}

func legacyCheckmate(board *chess.Board, colour chess.Colour) bool {
	king, ok := findKing(board, colour)
	if !ok {
		return false
	}
	checkers := attackers(board, king, colour.Opposite())
	if len(checkers) == 0 {
		return false
	}
	for _, checker := range checkers {
		for _, from := range board.Occupied(colour) {
			if board.Get(from).Kind == chess.King {
				continue
			}
			if reaches(board, from, checker) {
				return false
			}
		}
	}
	return true
}

func legacyStalemate(board *chess.Board, colour chess.Colour) bool {
	king, ok := findKing(board, colour)
	if !ok || isInCheck(board, colour) {
		return false
	}
	dests := RawMoves(board, king)
	if len(dests) == 0 {
		return false
	}
	for _, m := range dests {
		if !covered(board, m.End, colour.Opposite()) {
			return false
		}
	}
	return true
}

// Status summarizes the terminal predicates for one colour.
type Status struct {
	Check     bool
	Checkmate bool
	Stalemate bool
}

// StatusOf evaluates all three terminal predicates for colour.
func (g *Game) StatusOf(colour chess.Colour) Status {
	return Status{
		Check:     g.IsInCheck(colour),
		Checkmate: g.IsInCheckmate(colour),
		Stalemate: g.IsInStalemate(colour),
	}
}

// StandardStatusOf evaluates the predicates for colour with the standard
// definitions, whatever the game's terminal rules. A side without a king is
// neither checkmated nor stalemated.
func (g *Game) StandardStatusOf(colour chess.Colour) Status {
	check := g.IsInCheck(colour)
	if _, ok := findKing(g.board, colour); !ok || g.HasLegalMoves(colour) {
		return Status{Check: check}
	}
	return Status{Check: check, Checkmate: check, Stalemate: !check}
}

// Over reports whether the status ends the game.
func (s Status) Over() bool {
	return s.Checkmate || s.Stalemate
}
