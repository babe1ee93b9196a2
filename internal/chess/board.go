package chess

import "strings"

// Board is the 8x8 grid of optional pieces. It holds no game state
// (turn, castling, en passant); that lives with the engine's Game.
type Board struct {
	// Squares[row-1][col-1]; row 1 is White's back rank.
	Squares [BoardSize][BoardSize]Piece
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewInitialBoard creates a board holding the standard starting position.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.Reset()
	return b
}

// backRank is the piece order on both back ranks, files a-h.
var backRank = [BoardSize]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Reset installs the standard chess starting position.
func (b *Board) Reset() {
	b.Clear()
	for col := FirstCol; col <= LastCol; col++ {
		b.Set(Pos(FirstRow, col), W(backRank[col-1]))
		b.Set(Pos(FirstRow+1, col), W(Pawn))
		b.Set(Pos(LastRow-1, col), B(Pawn))
		b.Set(Pos(LastRow, col), B(backRank[col-1]))
	}
}

// Clear removes every piece from the board.
func (b *Board) Clear() {
	b.Squares = [BoardSize][BoardSize]Piece{}
}

// Get returns the piece at pos, or NoPiece when the square is empty or
// off the board.
func (b *Board) Get(pos Position) Piece {
	if !pos.Valid() {
		return NoPiece
	}
	return b.Squares[pos.Row-1][pos.Col-1]
}

// Set places a piece at pos, overwriting any occupant. Setting NoPiece
// empties the square. Off-board positions are ignored.
func (b *Board) Set(pos Position, piece Piece) {
	if !pos.Valid() {
		return
	}
	b.Squares[pos.Row-1][pos.Col-1] = piece
}

// IsEmpty returns true if there is no piece at pos.
func (b *Board) IsEmpty(pos Position) bool {
	return b.Get(pos).IsEmpty()
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// Equal returns true if both boards hold the same pieces on the same squares.
func (b *Board) Equal(other *Board) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Squares == other.Squares
}

// BoardState captures the board contents for save/restore operations.
// This is cheaper than Copy() when the board is temporarily modified and
// then put back (e.g. king-safety simulation).
type BoardState struct {
	Squares [BoardSize][BoardSize]Piece
}

// SaveState captures the current board contents for later restoration.
func (b *Board) SaveState() BoardState {
	return BoardState{Squares: b.Squares}
}

// RestoreState restores the board to a previously saved state.
func (b *Board) RestoreState(s BoardState) {
	b.Squares = s.Squares
}

// Find returns the position of the first piece equal to piece, scanning
// rank 1 to 8 and file a to h.
func (b *Board) Find(piece Piece) (Position, bool) {
	for row := FirstRow; row <= LastRow; row++ {
		for col := FirstCol; col <= LastCol; col++ {
			if b.Squares[row-1][col-1] == piece {
				return Pos(row, col), true
			}
		}
	}
	return Position{}, false
}

// Occupied returns the positions holding a piece of the given colour.
func (b *Board) Occupied(colour Colour) []Position {
	var positions []Position
	for row := FirstRow; row <= LastRow; row++ {
		for col := FirstCol; col <= LastCol; col++ {
			p := b.Squares[row-1][col-1]
			if !p.IsEmpty() && p.Colour == colour {
				positions = append(positions, Pos(row, col))
			}
		}
	}
	return positions
}

// String renders the board with rank 8 at the top, using FEN letters and
// '.' for empty squares.
func (b *Board) String() string {
	var sb strings.Builder
	for row := LastRow; row >= FirstRow; row-- {
		sb.WriteByte(byte('0' + row))
		sb.WriteByte(' ')
		for col := FirstCol; col <= LastCol; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(b.Get(Pos(row, col)).Letter())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a b c d e f g h\n")
	return sb.String()
}
