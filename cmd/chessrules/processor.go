package main

import (
	"context"
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/replay"
	"github.com/lgbarn/chess-rules-go/internal/session"
	"github.com/lgbarn/chess-rules-go/internal/store"
)

// run dispatches to the mode selected by the flags and writes reports to
// cfg.OutputFile.
func run(ctx context.Context, cfg *config.Config) (err error) {
	writer := output.NewWriter(cfg.OutputFile, cfg)
	defer func() {
		if cerr := writer.Close(); err == nil {
			err = cerr
		}
	}()

	switch {
	case *replayFile != "":
		return runReplay(cfg, writer)
	case cfg.Store.Enabled():
		return runStored(ctx, cfg, writer)
	default:
		return runPosition(cfg, writer)
	}
}

// legalSquare parses the -legal flag; nil when it is unset.
func legalSquare() (*chess.Position, error) {
	if *legalFrom == "" {
		return nil, nil
	}
	pos, err := chess.ParsePosition(*legalFrom)
	if err != nil {
		return nil, fmt.Errorf("-legal: %w", err)
	}
	return &pos, nil
}

// parseMoves parses the -moves flag.
func parseMoves() ([]chess.Move, error) {
	var moves []chess.Move
	for _, text := range splitMoves(*moveList) {
		m, err := chess.ParseMove(text)
		if err != nil {
			return nil, fmt.Errorf("-moves: %w", err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// runPosition plays -moves on the -fen position and reports the result.
func runPosition(cfg *config.Config, writer output.ReportWriter) error {
	fen := *fenString
	if fen == "" {
		fen = engine.InitialFEN
	}
	g, err := engine.NewGameFromFEN(fen, engine.WithTerminalRules(cfg.Rules.Terminal))
	if err != nil {
		return err
	}
	moves, err := parseMoves()
	if err != nil {
		return err
	}
	from, err := legalSquare()
	if err != nil {
		return err
	}

	for _, m := range moves {
		if err := g.MakeMove(m); err != nil {
			return err
		}
	}

	report := &output.Report{Game: g, From: from}
	if from != nil {
		report.Moves = g.LegalMoves(*from)
	}
	if cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "%d move(s) played.\n", len(moves))
	}
	return writer.WriteReport(report)
}

// runReplay replays the scripts in -replay over the worker pool.
func runReplay(cfg *config.Config, writer output.ReportWriter) error {
	scripts, err := replay.Load(*replayFile)
	if err != nil {
		return err
	}
	results := replay.RunAll(scripts, cfg.Workers, cfg.Rules.Terminal)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
		if err := writer.WriteReplay(res); err != nil {
			return err
		}
	}
	if cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "%d script(s) replayed, %d failed.\n", len(results), failed)
	}
	return nil
}

// openStore opens the store described by cfg.Store.
func openStore(cfg *config.Config) (store.Store, error) {
	opts := []store.Option{store.WithFormat(cfg.Rules.WireFormat)}
	if cfg.Verbosity >= 2 {
		opts = append(opts, store.WithLogger(newLogger(cfg)))
	}
	return store.Open(cfg.Store, opts...)
}

// runStored acts on stored games: create, move, resign, then report.
// With no game selected every stored game is reported.
func runStored(ctx context.Context, cfg *config.Config, writer output.ReportWriter) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	mgr := session.NewManagerFromConfig(st, cfg, newLogger(cfg))

	id := *gameID
	if *newGame != "" {
		rec, err := mgr.NewGame(ctx, *newGame)
		if err != nil {
			return err
		}
		id = rec.ID
		if cfg.Verbosity > 0 {
			fmt.Fprintf(cfg.LogFile, "Created game %d.\n", id)
		}
	}
	if id == 0 {
		return reportAll(ctx, st, writer)
	}

	moves, err := parseMoves()
	if err != nil {
		return err
	}
	for _, m := range moves {
		res, err := mgr.MakeMove(ctx, id, m)
		if err != nil {
			return err
		}
		if cfg.Verbosity > 0 && res.Check && !res.Ended {
			fmt.Fprintf(cfg.LogFile, "%s: %s is in check.\n", m, res.Turn)
		}
	}

	if *resign != "" {
		colour, err := chess.ParseColour(*resign)
		if err != nil {
			return fmt.Errorf("-resign: %w", err)
		}
		if _, err := mgr.Resign(ctx, id, colour); err != nil {
			return err
		}
	}

	from, err := legalSquare()
	if err != nil {
		return err
	}
	rec, err := mgr.Game(ctx, id)
	if err != nil {
		return err
	}
	report := recordReport(rec)
	if from != nil {
		report.From = from
		report.Moves, err = mgr.LegalMoves(ctx, id, *from)
		if err != nil {
			return err
		}
	}
	return writer.WriteReport(report)
}

// reportAll writes a report for every stored game.
func reportAll(ctx context.Context, st store.Store, writer output.ReportWriter) error {
	records, err := st.List(ctx)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.WriteReport(recordReport(rec)); err != nil {
			return err
		}
	}
	return nil
}

func recordReport(rec *store.Record) *output.Report {
	return &output.Report{
		ID:     rec.ID,
		Name:   rec.Name,
		Game:   rec.Game,
		Result: rec.Result,
		Reason: rec.Reason,
	}
}
