// Package testutil provides assertions and fixtures shared by the
// chess-rules-go tests.
package testutil

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// AssertEqual compares got and want using cmp.Diff and reports differences.
// The msgAndArgs are optional and provide additional context if the assertion fails.
func AssertEqual(t *testing.T, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		failf(t, msgAndArgs, "mismatch (-want +got):\n%s", diff)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		failf(t, msgAndArgs, "unexpected error: %v", err)
	}
}

// AssertError fails if err is nil when an error was expected.
func AssertError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err == nil {
		failf(t, msgAndArgs, "expected error but got nil")
	}
}

// AssertErrorIs fails unless target is in err's chain.
func AssertErrorIs(t *testing.T, err, target error, msgAndArgs ...interface{}) {
	t.Helper()
	if !errors.Is(err, target) {
		failf(t, msgAndArgs, "error = %v, want %v", err, target)
	}
}

// AssertContains fails if substr is not found in got.
func AssertContains(t *testing.T, got, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if !strings.Contains(got, substr) {
		failf(t, msgAndArgs, "%q does not contain %q", got, substr)
	}
}

// AssertNotContains fails if substr is found in got.
func AssertNotContains(t *testing.T, got, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if strings.Contains(got, substr) {
		failf(t, msgAndArgs, "%q should not contain %q", got, substr)
	}
}

// AssertTrue fails if condition is false.
func AssertTrue(t *testing.T, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !condition {
		failf(t, msgAndArgs, "expected true but got false")
	}
}

// AssertFalse fails if condition is true.
func AssertFalse(t *testing.T, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if condition {
		failf(t, msgAndArgs, "expected false but got true")
	}
}

// AssertNil fails if got is not nil. Typed nil pointers, slices and maps
// count as nil.
func AssertNil(t *testing.T, got interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if got == nil {
		return
	}
	switch rv := reflect.ValueOf(got); rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map:
		if rv.IsNil() {
			return
		}
	}
	failf(t, msgAndArgs, "expected nil but got %v", got)
}

// AssertMoves compares a generated move set with moves in coordinate
// notation. Generation order is ignored.
func AssertMoves(t *testing.T, got []chess.Move, want ...string) {
	t.Helper()
	if diff := movesDiff(got, want); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
}

// AssertBoard fails if the two boards hold different pieces anywhere.
func AssertBoard(t *testing.T, got, want *chess.Board, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := boardDiff(got, want); diff != "" {
		failf(t, msgAndArgs, "board mismatch (-want +got):\n%s\nwant:\n%sgot:\n%s", diff, want, got)
	}
}

func movesDiff(got []chess.Move, want []string) string {
	sorted := append([]string{}, want...)
	sort.Strings(sorted)
	return cmp.Diff(sorted, MoveStrings(got))
}

func boardDiff(got, want *chess.Board) string {
	return cmp.Diff(want, got, cmp.Transformer("piece", func(p chess.Piece) string {
		if p.IsEmpty() {
			return "."
		}
		return string(p.Letter())
	}))
}

// failf reports a failure, prefixed by the optional caller message.
func failf(t *testing.T, msgAndArgs []interface{}, format string, args ...interface{}) {
	t.Helper()
	text := fmt.Sprintf(format, args...)
	if msg := formatMessage(msgAndArgs...); msg != "" {
		text = msg + ": " + text
	}
	t.Error(text)
}

// formatMessage formats optional message arguments into a string.
func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if s, ok := msgAndArgs[0].(string); ok {
		if len(msgAndArgs) == 1 {
			return s
		}
		return fmt.Sprintf(s, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs[0])
}
