package chess

import (
	"strings"
	"testing"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	t.Run("all squares empty", func(t *testing.T) {
		for row := FirstRow; row <= LastRow; row++ {
			for col := FirstCol; col <= LastCol; col++ {
				if got := b.Get(Pos(row, col)); got != NoPiece {
					t.Errorf("Get(%v) = %v; want Empty", Pos(row, col), got)
				}
			}
		}
	})
}

func TestReset(t *testing.T) {
	b := NewBoard()
	b.Set(Pos(4, 4), W(Queen))
	b.Reset()

	tests := []struct {
		name  string
		sq    string
		piece Piece
	}{
		// White back rank
		{"white rook a1", "a1", W(Rook)},
		{"white knight b1", "b1", W(Knight)},
		{"white bishop c1", "c1", W(Bishop)},
		{"white queen d1", "d1", W(Queen)},
		{"white king e1", "e1", W(King)},
		{"white bishop f1", "f1", W(Bishop)},
		{"white knight g1", "g1", W(Knight)},
		{"white rook h1", "h1", W(Rook)},
		// Pawns
		{"white pawn a2", "a2", W(Pawn)},
		{"white pawn e2", "e2", W(Pawn)},
		{"black pawn e7", "e7", B(Pawn)},
		{"black pawn h7", "h7", B(Pawn)},
		// Black back rank
		{"black rook a8", "a8", B(Rook)},
		{"black queen d8", "d8", B(Queen)},
		{"black king e8", "e8", B(King)},
		{"black knight g8", "g8", B(Knight)},
		// Empty squares
		{"empty d4", "d4", NoPiece},
		{"empty e3", "e3", NoPiece},
		{"empty c6", "c6", NoPiece},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := ParsePosition(tt.sq)
			if err != nil {
				t.Fatalf("ParsePosition(%q) error: %v", tt.sq, err)
			}
			if got := b.Get(pos); got != tt.piece {
				t.Errorf("Get(%s) = %v; want %v", tt.sq, got, tt.piece)
			}
		})
	}
}

func TestBoardGetSet(t *testing.T) {
	tests := []struct {
		name  string
		pos   Position
		piece Piece
	}{
		{"white pawn on e4", Pos(4, 5), W(Pawn)},
		{"black knight on f6", Pos(6, 6), B(Knight)},
		{"white queen on d1", Pos(1, 4), W(Queen)},
		{"black king on h8", Pos(8, 8), B(King)},
		{"empty square", Pos(1, 1), NoPiece},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			b.Set(tt.pos, tt.piece)
			if got := b.Get(tt.pos); got != tt.piece {
				t.Errorf("after Set(%v, %v), Get() = %v; want %v", tt.pos, tt.piece, got, tt.piece)
			}
		})
	}

	t.Run("setting NoPiece removes a piece", func(t *testing.T) {
		b := NewInitialBoard()
		b.Set(Pos(1, 5), NoPiece)
		if !b.IsEmpty(Pos(1, 5)) {
			t.Errorf("e1 = %v after removal; want Empty", b.Get(Pos(1, 5)))
		}
	})

	t.Run("overwrite is silent", func(t *testing.T) {
		b := NewInitialBoard()
		b.Set(Pos(2, 5), B(Queen))
		if got := b.Get(Pos(2, 5)); got != B(Queen) {
			t.Errorf("e2 = %v; want black queen", got)
		}
	})

	t.Run("off-board access", func(t *testing.T) {
		b := NewInitialBoard()
		if got := b.Get(Pos(0, 1)); got != NoPiece {
			t.Errorf("Get(0,1) = %v; want Empty", got)
		}
		if got := b.Get(Pos(9, 9)); got != NoPiece {
			t.Errorf("Get(9,9) = %v; want Empty", got)
		}
		before := b.SaveState()
		b.Set(Pos(9, 1), W(Queen))
		if b.SaveState() != before {
			t.Error("Set with off-board position changed the board")
		}
	})
}

func TestBoardCopyIsIndependent(t *testing.T) {
	b := NewInitialBoard()
	c := b.Copy()
	c.Set(Pos(2, 5), NoPiece)

	if b.IsEmpty(Pos(2, 5)) {
		t.Error("modifying the copy changed the original")
	}
	if b.Equal(c) {
		t.Error("Equal() = true for boards that differ on e2")
	}
	if !b.Equal(NewInitialBoard()) {
		t.Error("Equal() = false for two initial boards")
	}
}

func TestSaveRestoreState(t *testing.T) {
	b := NewInitialBoard()
	saved := b.SaveState()

	b.Set(Pos(4, 5), b.Get(Pos(2, 5)))
	b.Set(Pos(2, 5), NoPiece)
	b.RestoreState(saved)

	if !b.Equal(NewInitialBoard()) {
		t.Errorf("board after RestoreState:\n%s", b)
	}
}

func TestFindAndOccupied(t *testing.T) {
	b := NewInitialBoard()

	pos, ok := b.Find(B(King))
	if !ok || pos != Pos(8, 5) {
		t.Errorf("Find(black king) = %v, %v; want e8, true", pos, ok)
	}
	if _, ok := NewBoard().Find(W(King)); ok {
		t.Error("Find(white king) on empty board = true; want false")
	}
	if got := len(b.Occupied(White)); got != 16 {
		t.Errorf("len(Occupied(White)) = %d; want 16", got)
	}
}

func TestBoardString(t *testing.T) {
	s := NewInitialBoard().String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("String() has %d lines; want 9:\n%s", len(lines), s)
	}
	if lines[0] != "8  r n b q k b n r" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[7] != "1  R N B Q K B N R" {
		t.Errorf("eighth line = %q", lines[7])
	}
}
