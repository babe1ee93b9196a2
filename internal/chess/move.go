package chess

import "fmt"

// Position is a board square addressed by row (rank, 1-8) and column
// (file, 1-8). Positions outside that range are a caller error; use Valid
// to check values that come from outside the engine.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Valid returns true if the position lies on the board.
func (p Position) Valid() bool {
	return p.Row >= FirstRow && p.Row <= LastRow && p.Col >= FirstCol && p.Col <= LastCol
}

// Offset returns the position shifted by the given row and column deltas.
// The result may be off the board.
func (p Position) Offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// String returns algebraic notation for the square (e.g. "e4").
func (p Position) String() string {
	if !p.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+p.Col-1, '0'+p.Row)
}

// ParsePosition parses algebraic notation (e.g. "e4") into a Position.
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("invalid square: %q", s)
	}
	p := Position{Row: int(s[1]-'1') + 1, Col: int(s[0]-'a') + 1}
	if s[0] < 'a' || s[1] < '1' || !p.Valid() {
		return Position{}, fmt.Errorf("invalid square: %q", s)
	}
	return p, nil
}

// Move is a request to move the piece on Start to End. Promotion is Empty
// unless a pawn move lands on the far back rank.
type Move struct {
	Start     Position
	End       Position
	Promotion Kind
}

// NewMove creates a non-promoting move.
func NewMove(start, end Position) Move {
	return Move{Start: start, End: end}
}

// IsPromotion returns true if this move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promotion != Empty
}

// String returns the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.Start.String() + m.End.String()
	if m.IsPromotion() {
		s += string(rune(m.Promotion.Letter() + ('a' - 'A')))
	}
	return s
}

// ParseMove parses coordinate notation such as "e2e4" or "a7a8q".
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move: %q", s)
	}
	start, err := ParsePosition(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	end, err := ParsePosition(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	m := NewMove(start, end)
	if len(s) == 5 {
		m.Promotion = KindFromLetter(s[4])
		switch m.Promotion {
		case Queen, Rook, Bishop, Knight:
		default:
			return Move{}, fmt.Errorf("invalid promotion in move %q", s)
		}
	}
	return m, nil
}
