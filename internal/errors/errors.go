// Package errors provides sentinel errors and error types for the chess
// rules engine and its collaborators.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoPieceAtSquare indicates a move or query against an empty square.
	ErrNoPieceAtSquare = errors.New("no piece at square")

	// ErrInvalidPosition indicates a square outside the 8x8 board.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidBoard indicates a malformed serialized board.
	ErrInvalidBoard = errors.New("invalid board encoding")

	// ErrGameNotFound indicates an unknown game id.
	ErrGameNotFound = errors.New("game not found")

	// ErrGameEnded indicates a move or resignation on a finished game.
	ErrGameEnded = errors.New("game has ended")

	// ErrLockTimeout indicates the per-game lock could not be acquired in time.
	ErrLockTimeout = errors.New("timed out waiting for game lock")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError wraps a rejected move with the reason it was rejected.
// Err is normally ErrIllegalMove or ErrNoPieceAtSquare.
type MoveError struct {
	Err    error  // The underlying error
	Move   string // The move in coordinate notation
	Reason string // Why the move was rejected (may be empty)
}

// Error returns a formatted error message including the move and reason.
func (e *MoveError) Error() string {
	var parts []string
	if e.Move != "" {
		parts = append(parts, fmt.Sprintf("move %s", e.Move))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	context := strings.Join(parts, ": ")

	switch {
	case e.Err != nil && context != "":
		return fmt.Sprintf("%s: %v", context, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case context != "":
		return context
	}
	return "move error"
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// GameError wraps errors raised while operating on a stored game.
type GameError struct {
	Err    error  // The underlying error
	GameID uint64 // Game identifier (0 if not known)
	Op     string // Operation being performed, e.g. "move", "load"
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string
	if e.GameID > 0 {
		parts = append(parts, fmt.Sprintf("game %d", e.GameID))
	}
	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	context := strings.Join(parts, " ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error.
func (e *GameError) Unwrap() error {
	return e.Err
}

// Illegal builds a MoveError wrapping ErrIllegalMove.
func Illegal(move, reason string) error {
	return &MoveError{Err: ErrIllegalMove, Move: move, Reason: reason}
}

// Empty builds a MoveError for a move whose start square holds no piece.
// It matches both ErrIllegalMove and ErrNoPieceAtSquare.
func Empty(move string) error {
	return &MoveError{
		Err:    fmt.Errorf("%w: %w", ErrIllegalMove, ErrNoPieceAtSquare),
		Move:   move,
		Reason: "start square is empty",
	}
}

// Is reports whether any error in err's chain matches target.
// It is re-exported so callers need only this package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
