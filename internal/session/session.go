// Package session runs moves against stored games. Every call holds the
// game's lock while it loads the record, runs the engine and writes the
// record back; the record is only written when the call succeeds.
package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/store"
)

// Manager serialises access to the games in a store.
type Manager struct {
	store       store.Store
	rules       engine.TerminalRules
	lockTimeout time.Duration
	logger      *log.Logger

	mu    sync.Mutex
	locks map[uint64]*gameLock
}

// gameLock is a one-slot semaphore for one game. refs counts holders and
// waiters; the entry is dropped when it reaches zero.
type gameLock struct {
	ch   chan struct{}
	refs int
}

// Option configures a Manager.
type Option func(*Manager)

// WithRules sets the terminal rules for games the manager creates.
func WithRules(rules engine.TerminalRules) Option {
	return func(m *Manager) {
		m.rules = rules
	}
}

// WithLockTimeout bounds lock acquisition; 0 waits on the context alone.
func WithLockTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.lockTimeout = d
	}
}

// WithLogger sets the logger for game events.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates a manager over st.
func NewManager(st store.Store, opts ...Option) *Manager {
	m := &Manager{
		store:       st,
		rules:       engine.LegacyTerminals,
		lockTimeout: config.DefaultLockTimeout,
		logger:      log.New(io.Discard, "", 0),
		locks:       make(map[uint64]*gameLock),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewManagerFromConfig creates a manager using the rules and session
// settings in cfg.
func NewManagerFromConfig(st store.Store, cfg *config.Config, logger *log.Logger) *Manager {
	return NewManager(st,
		WithRules(cfg.Rules.Terminal),
		WithLockTimeout(cfg.Session.LockTimeout),
		WithLogger(logger),
	)
}

// lock acquires the lock for id. The returned func releases it.
func (m *Manager) lock(ctx context.Context, id uint64) (func(), error) {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &gameLock{ch: make(chan struct{}, 1)}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	if m.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.lockTimeout)
		defer cancel()
	}

	select {
	case l.ch <- struct{}{}:
		return func() {
			<-l.ch
			m.release(id, l)
		}, nil
	case <-ctx.Done():
		m.release(id, l)
		return nil, &errors.GameError{
			Err:    fmt.Errorf("%w: %v", errors.ErrLockTimeout, ctx.Err()),
			GameID: id,
			Op:     "lock",
		}
	}
}

// release drops one reference to l.
func (m *Manager) release(id uint64, l *gameLock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(m.locks, id)
	}
}

// withGame runs fn on the locked record for id.
func (m *Manager) withGame(ctx context.Context, id uint64, fn func(rec *store.Record) error) error {
	unlock, err := m.lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}
	return fn(rec)
}

// NewGame creates and stores a game in the starting position.
func (m *Manager) NewGame(ctx context.Context, name string) (*store.Record, error) {
	rec, err := m.store.Create(ctx, name, engine.NewGame(engine.WithTerminalRules(m.rules)))
	if err != nil {
		return nil, err
	}
	m.logger.Printf("game %d (%s) created", rec.ID, name)
	return rec, nil
}

// LegalMoves returns the legal moves of the piece on pos, or nil when
// the square is empty.
func (m *Manager) LegalMoves(ctx context.Context, id uint64, pos chess.Position) ([]chess.Move, error) {
	var moves []chess.Move
	err := m.withGame(ctx, id, func(rec *store.Record) error {
		moves = rec.Game.LegalMoves(pos)
		return nil
	})
	return moves, err
}

// MoveResult describes the game after a move. Check, Checkmate and
// Stalemate follow the game's terminal rules; Ended and Result say whether
// the move actually finished the game.
type MoveResult struct {
	Move      chess.Move
	Turn      chess.Colour // side to move next
	Check     bool
	Checkmate bool
	Stalemate bool
	Ended     bool
	Result    string
}

// MakeMove plays a move and reports check, checkmate and stalemate for
// the side now to move. The game ends only when the side to move has no
// legal move; the legacy predicates are reported but never end a game.
func (m *Manager) MakeMove(ctx context.Context, id uint64, move chess.Move) (MoveResult, error) {
	var res MoveResult
	err := m.withGame(ctx, id, func(rec *store.Record) error {
		if rec.Ended {
			return &errors.GameError{Err: errors.ErrGameEnded, GameID: id, Op: "move"}
		}
		if err := rec.Game.MakeMove(move); err != nil {
			return &errors.GameError{Err: err, GameID: id, Op: "move"}
		}

		mover := rec.Game.Turn().Opposite()
		status := rec.Game.StatusOf(rec.Game.Turn())
		final := rec.Game.StandardStatusOf(rec.Game.Turn())
		switch {
		case final.Checkmate:
			rec.End(&mover, "checkmate")
		case final.Stalemate:
			rec.End(nil, "stalemate")
		}
		if err := m.store.Put(ctx, rec); err != nil {
			return err
		}

		res = MoveResult{
			Move:      move,
			Turn:      rec.Game.Turn(),
			Check:     status.Check,
			Checkmate: status.Checkmate,
			Stalemate: status.Stalemate,
			Ended:     rec.Ended,
			Result:    rec.Result,
		}
		return nil
	})
	if err != nil {
		return MoveResult{}, err
	}

	m.logger.Printf("game %d: %s", id, move)
	switch {
	case res.Ended:
		m.logger.Printf("game %d: over, %s", id, res.Result)
	case res.Check:
		m.logger.Printf("game %d: %s is in check", id, res.Turn)
	}
	return res, nil
}

// Resign ends the game with colour's opponent as the winner.
func (m *Manager) Resign(ctx context.Context, id uint64, colour chess.Colour) (*store.Record, error) {
	var out *store.Record
	err := m.withGame(ctx, id, func(rec *store.Record) error {
		if rec.Ended {
			return &errors.GameError{Err: errors.ErrGameEnded, GameID: id, Op: "resign"}
		}
		winner := colour.Opposite()
		rec.End(&winner, "resignation")
		if err := m.store.Put(ctx, rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.logger.Printf("game %d: %s resigns (%s)", id, colour, out.Result)
	return out, nil
}

// Status describes a stored game.
type Status struct {
	ID        uint64
	Name      string
	FEN       string
	Turn      chess.Colour
	Check     bool
	Checkmate bool
	Stalemate bool
	Ended     bool
	Result    string
	Reason    string
}

// Status reports the current state of a game.
func (m *Manager) Status(ctx context.Context, id uint64) (Status, error) {
	var st Status
	err := m.withGame(ctx, id, func(rec *store.Record) error {
		turn := rec.Game.Turn()
		s := rec.Game.StatusOf(turn)
		st = Status{
			ID:        rec.ID,
			Name:      rec.Name,
			FEN:       rec.Game.FEN(),
			Turn:      turn,
			Check:     s.Check,
			Checkmate: s.Checkmate,
			Stalemate: s.Stalemate,
			Ended:     rec.Ended,
			Result:    rec.Result,
			Reason:    rec.Reason,
		}
		return nil
	})
	return st, err
}

// Game returns a copy of the stored game.
func (m *Manager) Game(ctx context.Context, id uint64) (*store.Record, error) {
	var out *store.Record
	err := m.withGame(ctx, id, func(rec *store.Record) error {
		out = rec
		return nil
	})
	return out, err
}
