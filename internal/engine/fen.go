// Package engine implements the chess rules: legal move generation with a
// king-safety filter, castling, en passant, promotion, move execution and
// the check, checkmate and stalemate predicates.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewGameFromFEN creates a game from a FEN string. Missing trailing fields
// default to White to move, no castling, no en passant.
func NewGameFromFEN(fen string, opts ...Option) (*Game, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	board := chess.NewBoard()
	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}

	g := NewGame(opts...)
	g.SetBoard(board)

	if err := parseSideToMove(g, parts); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(g, parts); err != nil {
		return nil, err
	}
	if err := parseEnPassant(g, parts); err != nil {
		return nil, err
	}
	parseClocks(g, parts)

	return g, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("want %d ranks, got %d: %w", chess.BoardSize, len(ranks), errors.ErrInvalidFEN)
	}

	for i, rankText := range ranks {
		row := chess.LastRow - i
		col := chess.FirstCol
		for _, c := range rankText {
			switch {
			case c >= '1' && c <= '8':
				col += int(c - '0')
			default:
				piece := chess.PieceFromLetter(byte(c))
				if piece.IsEmpty() {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
				}
				if col > chess.LastCol {
					return fmt.Errorf("rank %d overflows: %w", row, errors.ErrInvalidFEN)
				}
				board.Set(chess.Pos(row, col), piece)
				col++
			}
		}
		if col != chess.LastCol+1 {
			return fmt.Errorf("rank %d has %d squares: %w", row, col-1, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(g *Game, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		g.turn = chess.White
	case "b":
		g.turn = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights maps the castling field onto the registry. A king
// stays registered while either of its sides is available.
func parseCastlingRights(g *Game, parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		g.SetCastlingRights(nil)
		return nil
	}

	var keep []chess.Position
	for _, c := range parts[2] {
		var colour chess.Colour
		var rookCol int
		switch c {
		case 'K':
			colour, rookCol = chess.White, chess.LastCol
		case 'Q':
			colour, rookCol = chess.White, chess.FirstCol
		case 'k':
			colour, rookCol = chess.Black, chess.LastCol
		case 'q':
			colour, rookCol = chess.Black, chess.FirstCol
		default:
			return fmt.Errorf("invalid castling field: %s: %w", parts[2], errors.ErrInvalidFEN)
		}
		row := chess.HomeRow(colour)
		keep = append(keep, chess.Pos(row, 5), chess.Pos(row, rookCol))
	}
	g.SetCastlingRights(keep)
	return nil
}

// parseEnPassant parses the en passant field. FEN names the square the
// pawn skipped; the game tracks the pawn itself, and only keeps it when an
// enemy pawn could capture.
func parseEnPassant(g *Game, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	skipped, err := chess.ParsePosition(parts[3])
	if err != nil {
		return fmt.Errorf("invalid en passant square: %s: %w", parts[3], errors.ErrInvalidFEN)
	}
	g.SetEnPassantTarget(skipped.Offset(chess.ColourOffset(g.turn.Opposite()), 0))
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(g *Game, parts []string) {
	if len(parts) >= 5 {
		if n, err := strconv.Atoi(parts[4]); err == nil && n >= 0 {
			g.halfmoveClock = n
		}
	}
	if len(parts) >= 6 {
		if n, err := strconv.Atoi(parts[5]); err == nil && n > 0 {
			g.moveNumber = n
		}
	}
}

// FEN returns the game as a FEN string.
func (g *Game) FEN() string {
	var sb strings.Builder

	writePiecePositions(&sb, g.board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, g.turn)
	sb.WriteByte(' ')
	g.writeCastlingRights(&sb)
	sb.WriteByte(' ')
	g.writeEnPassant(&sb)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", g.halfmoveClock, g.moveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for row := chess.LastRow; row >= chess.FirstRow; row-- {
		emptyCount := 0
		for col := chess.FirstCol; col <= chess.LastCol; col++ {
			piece := board.Get(chess.Pos(row, col))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row > chess.FirstRow {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, turn chess.Colour) {
	if turn == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func (g *Game) writeCastlingRights(sb *strings.Builder) {
	hasCastling := false
	for _, side := range [...]struct {
		letter  byte
		colour  chess.Colour
		rookCol int
	}{
		{'K', chess.White, chess.LastCol},
		{'Q', chess.White, chess.FirstCol},
		{'k', chess.Black, chess.LastCol},
		{'q', chess.Black, chess.FirstCol},
	} {
		row := chess.HomeRow(side.colour)
		if g.CastlingEligible(chess.Pos(row, 5)) && g.CastlingEligible(chess.Pos(row, side.rookCol)) {
			sb.WriteByte(side.letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the square behind the en-passant pawn.
func (g *Game) writeEnPassant(sb *strings.Builder) {
	if !g.hasEnPassant {
		sb.WriteByte('-')
		return
	}
	pawn := g.board.Get(g.enPassant)
	sb.WriteString(g.enPassant.Offset(-chess.ColourOffset(pawn.Colour), 0).String())
}
