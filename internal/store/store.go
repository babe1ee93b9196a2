// Package store persists game records. Each record carries the game in
// the serial wire format together with its name and outcome.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/serial"
)

// Result texts, as in a PGN Result tag.
const (
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"
)

// Store is a keyed collection of game records.
// Get and List return independent copies; changes reach the store only
// through Put.
type Store interface {
	Create(ctx context.Context, name string, game *engine.Game) (*Record, error)
	Get(ctx context.Context, id uint64) (*Record, error)
	Put(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]*Record, error)
	Close() error
}

// Open opens the store cfg describes: a MemoryStore when cfg.InMemory is
// set, otherwise a BadgerStore at cfg.Path.
func Open(cfg *config.StoreConfig, opts ...Option) (Store, error) {
	switch {
	case cfg.InMemory:
		return NewMemoryStore(opts...), nil
	case cfg.Path != "":
		return OpenBadger(cfg, opts...)
	}
	return nil, fmt.Errorf("no store path given: %w", errors.ErrInvalidConfig)
}

// Record is a stored game.
type Record struct {
	ID     uint64
	Name   string
	Ended  bool
	Winner *chess.Colour // nil for a draw or an unfinished game
	Result string
	Reason string // "checkmate", "stalemate", "resignation"
	Game   *engine.Game
}

// End marks the record finished. A nil winner records a draw.
func (r *Record) End(winner *chess.Colour, reason string) {
	r.Ended = true
	r.Winner = winner
	r.Reason = reason
	switch {
	case winner == nil:
		r.Result = ResultDraw
	case *winner == chess.White:
		r.Result = ResultWhiteWins
	default:
		r.Result = ResultBlackWins
	}
}

// Option configures a store.
type Option func(*options)

type options struct {
	format serial.Format
	logger *log.Logger
}

// WithFormat sets the wire format used for the embedded game.
func WithFormat(f serial.Format) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithLogger routes the database's internal log through l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{format: serial.ExtendedFormat}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// storedRecord is the JSON value written for a record.
type storedRecord struct {
	ID       uint64          `json:"id"`
	Name     string          `json:"name"`
	Ended    bool            `json:"ended"`
	Winner   string          `json:"winner,omitempty"`
	Result   string          `json:"result,omitempty"`
	Reason   string          `json:"reason,omitempty"`
	Rules    string          `json:"rules"`
	Halfmove int             `json:"halfmove"`
	Move     int             `json:"move"`
	Game     json.RawMessage `json:"game"`
}

func encodeRecord(rec *Record, format serial.Format) ([]byte, error) {
	if rec.Game == nil {
		return nil, &errors.GameError{Err: errors.ErrInvalidBoard, GameID: rec.ID, Op: "encode"}
	}
	game, err := serial.Marshal(rec.Game, format)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding game %d", rec.ID)
	}
	sr := storedRecord{
		ID:     rec.ID,
		Name:   rec.Name,
		Ended:  rec.Ended,
		Result: rec.Result,
		Reason: rec.Reason,
		Rules:  rec.Game.Rules().String(),
		Game:   game,
	}
	sr.Halfmove, sr.Move = rec.Game.Clocks()
	if rec.Winner != nil {
		sr.Winner = rec.Winner.String()
	}
	return json.Marshal(sr)
}

func decodeRecord(data []byte) (*Record, error) {
	var sr storedRecord
	if err := json.Unmarshal(data, &sr); err != nil {
		return nil, fmt.Errorf("decoding record: %v: %w", err, errors.ErrInvalidBoard)
	}
	rules, err := engine.ParseTerminalRules(sr.Rules)
	if err != nil {
		return nil, &errors.GameError{Err: fmt.Errorf("%v: %w", err, errors.ErrInvalidBoard), GameID: sr.ID, Op: "decode"}
	}
	game, err := serial.Unmarshal(sr.Game, engine.WithTerminalRules(rules))
	if err != nil {
		return nil, &errors.GameError{Err: err, GameID: sr.ID, Op: "decode"}
	}
	game.SetClocks(sr.Halfmove, sr.Move)

	rec := &Record{
		ID:     sr.ID,
		Name:   sr.Name,
		Ended:  sr.Ended,
		Result: sr.Result,
		Reason: sr.Reason,
		Game:   game,
	}
	if sr.Winner != "" {
		winner, err := chess.ParseColour(sr.Winner)
		if err != nil {
			return nil, &errors.GameError{Err: fmt.Errorf("%v: %w", err, errors.ErrInvalidBoard), GameID: sr.ID, Op: "decode"}
		}
		rec.Winner = &winner
	}
	return rec, nil
}

func notFound(id uint64, op string) error {
	return &errors.GameError{Err: errors.ErrGameNotFound, GameID: id, Op: op}
}
