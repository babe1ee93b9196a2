package output

import (
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/replay"
	"github.com/lgbarn/chess-rules-go/internal/serial"
)

// JSONReport represents a report in JSON format.
type JSONReport struct {
	ID     uint64      `json:"id,omitempty"`
	Name   string      `json:"name,omitempty"`
	FEN    string      `json:"fen"`
	Status string      `json:"status"`
	Result string      `json:"result,omitempty"`
	Reason string      `json:"reason,omitempty"`
	From   string      `json:"from,omitempty"`
	Moves  []string    `json:"moves,omitempty"`
	Game   interface{} `json:"game"`
}

// JSONReplay represents a replay result in JSON format.
type JSONReplay struct {
	Name    string `json:"name"`
	Applied int    `json:"applied"`
	FEN     string `json:"fen,omitempty"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSONOutput holds everything written by a batching JSONWriter.
type JSONOutput struct {
	Reports []*JSONReport `json:"reports,omitempty"`
	Replays []*JSONReplay `json:"replays,omitempty"`
}

// ReportToJSON converts a report, embedding the game in the given wire format.
func ReportToJSON(r *Report, f serial.Format) *JSONReport {
	jr := &JSONReport{
		ID:     r.ID,
		Name:   r.Name,
		FEN:    r.Game.FEN(),
		Status: StatusText(r.Status()),
		Result: r.Result,
		Reason: r.Reason,
		Game:   serial.GameToJSON(r.Game, f),
	}
	if r.From != nil {
		jr.From = r.From.String()
		jr.Moves = make([]string, 0, len(r.Moves))
		for _, m := range r.Moves {
			jr.Moves = append(jr.Moves, m.String())
		}
	}
	return jr
}

// ReplayToJSON converts a replay result.
func ReplayToJSON(res replay.Result) *JSONReplay {
	jr := &JSONReplay{
		Name:    res.Name,
		Applied: res.Applied,
		FEN:     res.FEN,
	}
	if res.FEN != "" {
		jr.Status = StatusText(engine.Status{Check: res.Check, Checkmate: res.Checkmate, Stalemate: res.Stalemate})
	}
	if res.Err != nil {
		jr.Error = res.Err.Error()
	}
	return jr
}
