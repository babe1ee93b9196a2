// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/serial"
)

var (
	// Position options
	fenString  = flag.String("fen", "", "Start from this FEN position (default: initial position)")
	moveList   = flag.String("moves", "", "Moves to play, comma or space separated (e.g. 'e2e4,e7e5')")
	legalFrom  = flag.String("legal", "", "List legal moves of the piece on this square")
	replayFile = flag.String("replay", "", "JSON file of scripts to replay in parallel")

	// Store options
	dbPath     = flag.String("db", "", "Badger directory holding stored games")
	inMemory   = flag.Bool("mem", false, "Use an in-memory store (lost on exit)")
	syncWrites = flag.Bool("sync", false, "Fsync every store write")
	gameID     = flag.Uint64("game", 0, "Stored game to operate on")
	newGame    = flag.String("new", "", "Create a stored game with this name")
	resign     = flag.String("resign", "", "Resign the stored game for this colour (white|black)")
	lockWait   = flag.Duration("lockwait", config.DefaultLockTimeout, "Longest wait for a game lock")

	// Rules and output
	terminalRules = flag.String("rules", "legacy", "Checkmate/stalemate rules: legacy|standard")
	wireFormat    = flag.String("wire", "extended", "JSON game encoding: extended|minimal")
	jsonOutput    = flag.Bool("json", false, "Output in JSON format")
	outputFile    = flag.String("o", "", "Output file (default: stdout)")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	verbosity = flag.Int("v", 1, "Verbosity: 0=silent, 1=summary, 2=running commentary")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no summary)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")

	// Performance options
	workers = flag.Int("workers", 0, "Number of replay workers (0 = auto-detect based on CPU cores)")
)

// configFromFlags builds the configuration from the command-line flags.
func configFromFlags() (*config.Config, error) {
	rules, err := engine.ParseTerminalRules(*terminalRules)
	if err != nil {
		return nil, fmt.Errorf("-rules: %w", err)
	}
	format, err := serial.ParseFormat(*wireFormat)
	if err != nil {
		return nil, fmt.Errorf("-wire: %w", err)
	}
	level := *verbosity
	if *quiet {
		level = 0
	}

	cfg := config.NewConfigBuilder().
		WithTerminalRules(rules).
		WithWireFormat(format).
		WithStorePath(*dbPath).
		WithInMemoryStore(*inMemory).
		WithSyncWrites(*syncWrites).
		WithLockTimeout(*lockWait).
		WithWorkers(*workers).
		WithJSONOutput(*jsonOutput).
		WithVerbosity(level).
		Build()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitMoves splits a -moves value on commas and whitespace.
func splitMoves(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
