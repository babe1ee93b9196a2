// Package chess provides core chess types and operations.
package chess

import "fmt"

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// ParseColour converts "white"/"black" (any case, or w/b) into a Colour.
func ParseColour(s string) (Colour, error) {
	switch s {
	case "w", "W", "white", "White", "WHITE":
		return White, nil
	case "b", "B", "black", "Black", "BLACK":
		return Black, nil
	}
	return Black, fmt.Errorf("unknown colour %q", s)
}

// Kind is the kind of a chess piece. The zero value Empty means no piece.
type Kind int

const (
	Empty Kind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"Empty", "King", "Queen", "Rook", "Bishop", "Knight", "Pawn"}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'K', 'Q', 'R', 'B', 'N', 'P'}
	if int(k) >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter converts a piece letter (either case) to a Kind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	case 'P', 'p':
		return Pawn
	default:
		return Empty
	}
}

// PromotionKinds lists the kinds a pawn may promote to, in the order
// promotion moves are generated.
var PromotionKinds = [...]Kind{Rook, Knight, Bishop, Queen}

// Piece is an immutable coloured piece. The zero value is NoPiece.
type Piece struct {
	Colour Colour
	Kind   Kind
}

// NoPiece marks an empty square.
var NoPiece = Piece{}

// W creates a white piece.
func W(kind Kind) Piece {
	return Piece{Colour: White, Kind: kind}
}

// B creates a black piece.
func B(kind Kind) Piece {
	return Piece{Colour: Black, Kind: kind}
}

// IsEmpty returns true if p represents an empty square.
func (p Piece) IsEmpty() bool {
	return p.Kind == Empty
}

// Letter returns the FEN letter of the piece: uppercase for white,
// lowercase for black, '.' for an empty square.
func (p Piece) Letter() byte {
	if p.IsEmpty() {
		return '.'
	}
	l := p.Kind.Letter()
	if p.Colour == Black {
		l += 'a' - 'A'
	}
	return l
}

// String returns a readable name such as "White Knight".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Kind.String()
}

// PieceFromLetter converts a FEN letter into a coloured piece.
func PieceFromLetter(c byte) Piece {
	kind := KindFromLetter(c)
	if kind == Empty {
		return NoPiece
	}
	if c >= 'a' && c <= 'z' {
		return B(kind)
	}
	return W(kind)
}

// Constants for board dimensions.
const (
	BoardSize = 8
	FirstRow  = 1
	LastRow   = BoardSize
	FirstCol  = 1
	LastCol   = BoardSize
)

// HomeRow returns the back rank of the given colour.
func HomeRow(colour Colour) int {
	if colour == White {
		return FirstRow
	}
	return LastRow
}

// PawnRow returns the starting rank of the given colour's pawns.
func PawnRow(colour Colour) int {
	if colour == White {
		return FirstRow + 1
	}
	return LastRow - 1
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}
