// Package replay plays scripted move lists against independent games,
// fanning the scripts out over a worker pool.
package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

// Script is a starting position and the moves to play from it.
// An empty FEN means the standard starting position.
type Script struct {
	Name  string   `json:"name"`
	FEN   string   `json:"fen,omitempty"`
	Moves []string `json:"moves"`
}

// Result is the outcome of one script.
type Result struct {
	Name      string
	Applied   int
	FEN       string
	Check     bool
	Checkmate bool
	Stalemate bool
	Err       error
}

// Load reads a JSON array of scripts from path.
func Load(path string) ([]Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading replay file")
	}
	var scripts []Script
	if err := json.Unmarshal(data, &scripts); err != nil {
		return nil, errors.Wrapf(err, "decoding replay file %s", path)
	}
	return scripts, nil
}

// prepare builds the work item for a script.
func prepare(s Script, rules engine.TerminalRules) (worker.WorkItem, error) {
	fen := s.FEN
	if fen == "" {
		fen = engine.InitialFEN
	}
	g, err := engine.NewGameFromFEN(fen, engine.WithTerminalRules(rules))
	if err != nil {
		return worker.WorkItem{}, err
	}
	moves := make([]chess.Move, 0, len(s.Moves))
	for i, text := range s.Moves {
		m, err := chess.ParseMove(text)
		if err != nil {
			return worker.WorkItem{}, fmt.Errorf("move %d: %w", i+1, err)
		}
		moves = append(moves, m)
	}
	return worker.WorkItem{Name: s.Name, Game: g, Moves: moves}, nil
}

// RunAll plays every script and returns the results in script order.
// Scripts whose FEN or moves do not parse are reported without being run.
// workers < 1 uses one worker per CPU.
func RunAll(scripts []Script, workers int, rules engine.TerminalRules) []Result {
	results := make([]Result, len(scripts))
	items := make([]worker.WorkItem, 0, len(scripts))
	slots := make([]int, 0, len(scripts))

	for i, s := range scripts {
		item, err := prepare(s, rules)
		if err != nil {
			results[i] = Result{Name: s.Name, Err: err}
			continue
		}
		items = append(items, item)
		slots = append(slots, i)
	}
	if len(items) == 0 {
		return results
	}

	pool := worker.NewPool(worker.Replay, worker.WithWorkers(workers), worker.WithBufferSize(min(len(items), 100)))
	for i, res := range pool.Run(items) {
		results[slots[i]] = Result{
			Name:      res.Name,
			Applied:   res.Applied,
			FEN:       res.Game.FEN(),
			Check:     res.Status.Check,
			Checkmate: res.Status.Checkmate,
			Stalemate: res.Status.Stalemate,
			Err:       res.Error,
		}
	}
	return results
}
