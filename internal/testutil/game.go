// Package testutil provides shared test utilities for the chess-rules-go project.
// These utilities reduce code duplication across test files and provide
// consistent test setup helpers.
package testutil

import (
	"sort"
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// ParseTestMoves parses coordinate moves such as "e2e4" or "e7e8q".
// It returns nil if any move fails to parse.
func ParseTestMoves(texts ...string) []chess.Move {
	moves := make([]chess.Move, 0, len(texts))
	for _, s := range texts {
		m, err := chess.ParseMove(s)
		if err != nil {
			return nil
		}
		moves = append(moves, m)
	}
	return moves
}

// MustParseMove parses a coordinate move.
// It calls t.Fatal if the move does not parse.
func MustParseMove(t *testing.T, s string) chess.Move {
	t.Helper()
	m, err := chess.ParseMove(s)
	if err != nil {
		t.Fatalf("failed to parse test move %q: %v", s, err)
	}
	return m
}

// MustParsePosition parses a square such as "e4".
// It calls t.Fatal if the square does not parse.
func MustParsePosition(t *testing.T, s string) chess.Position {
	t.Helper()
	p, err := chess.ParsePosition(s)
	if err != nil {
		t.Fatalf("failed to parse test square %q: %v", s, err)
	}
	return p
}

// MoveStrings renders moves in coordinate notation, sorted, so that move
// sets can be compared with AssertEqual regardless of generation order.
func MoveStrings(moves []chess.Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

// Destinations returns the sorted end squares of moves, one per distinct
// square.
func Destinations(moves []chess.Move) []string {
	seen := make(map[chess.Position]bool)
	var out []string
	for _, m := range moves {
		if !seen[m.End] {
			seen[m.End] = true
			out = append(out, m.End.String())
		}
	}
	sort.Strings(out)
	return out
}
