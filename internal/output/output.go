// Package output writes position reports and replay results as text or JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/replay"
)

// Report describes one game position for display.
type Report struct {
	ID     uint64 // stored game id, 0 if the game is not stored
	Name   string
	Game   *engine.Game
	From   *chess.Position // square whose legal moves were asked for
	Moves  []chess.Move
	Result string
	Reason string
}

// Status evaluates the terminal predicates for the side to move.
func (r *Report) Status() engine.Status {
	return r.Game.StatusOf(r.Game.Turn())
}

// StatusText names the most severe terminal condition.
func StatusText(s engine.Status) string {
	switch {
	case s.Checkmate:
		return "checkmate"
	case s.Stalemate:
		return "stalemate"
	case s.Check:
		return "check"
	}
	return "normal"
}

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// writeReportText writes a report as a board diagram followed by
// key: value lines.
func writeReportText(w io.Writer, r *Report, maxLineLength int) {
	if r.ID > 0 {
		fmt.Fprintf(w, "[Game %d \"%s\"]\n", r.ID, escapeName(r.Name))
	} else if r.Name != "" {
		fmt.Fprintf(w, "[%s]\n", escapeName(r.Name))
	}
	fmt.Fprint(w, r.Game.Board().String())
	fmt.Fprintf(w, "FEN: %s\n", r.Game.FEN())
	fmt.Fprintf(w, "Turn: %s\n", r.Game.Turn())
	fmt.Fprintf(w, "Status: %s\n", StatusText(r.Status()))
	if r.Result != "" {
		if r.Reason != "" {
			fmt.Fprintf(w, "Result: %s (%s)\n", r.Result, r.Reason)
		} else {
			fmt.Fprintf(w, "Result: %s\n", r.Result)
		}
	}
	if r.From != nil {
		ow := NewOutputWriter(w, maxLineLength)
		ow.Write(fmt.Sprintf("Legal moves from %s:", r.From))
		if len(r.Moves) == 0 {
			ow.Write("none")
		}
		for _, m := range r.Moves {
			ow.Write(m.String())
		}
		ow.NewLine()
	}
	fmt.Fprintln(w)
}

// writeReplayText writes one replay result on a single line.
func writeReplayText(w io.Writer, res replay.Result) {
	name := res.Name
	if name == "" {
		name = "?"
	}
	if res.Err != nil && res.FEN == "" {
		fmt.Fprintf(w, "%s: error: %v\n", name, res.Err)
		return
	}
	status := StatusText(engine.Status{Check: res.Check, Checkmate: res.Checkmate, Stalemate: res.Stalemate})
	fmt.Fprintf(w, "%s: %d moves, %s, %s\n", name, res.Applied, status, res.FEN)
	if res.Err != nil {
		fmt.Fprintf(w, "%s: stopped: %v\n", name, res.Err)
	}
}

// escapeName escapes quotes and backslashes in a game name.
func escapeName(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
