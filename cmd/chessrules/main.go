// chessrules validates and plays chess moves, from a FEN position or
// against games kept in a badger store.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessrules version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := configFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	closeLog := setupLogFile(cfg)
	closeOutput := setupOutputFile(cfg)

	err = run(context.Background(), cfg)
	if cerr := closeOutput(); err == nil {
		err = cerr
	}
	closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func noClose() error { return nil }

// setupLogFile configures the log file based on command-line flags.
// The returned func closes it.
func setupLogFile(cfg *config.Config) func() error {
	if *logFile == "" {
		return noClose
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.SetLog(file)
	return file.Close
}

// setupOutputFile configures the output file based on command-line flags.
// The returned func closes it.
func setupOutputFile(cfg *config.Config) func() error {
	if *outputFile == "" {
		return noClose
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
	return file.Close
}

// newLogger returns the running-commentary logger, silent below verbosity 2.
func newLogger(cfg *config.Config) *log.Logger {
	if cfg.Verbosity < 2 {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cfg.LogFile, "chessrules: ", log.LstdFlags)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessrules [options]\n\n")
	fmt.Fprintf(os.Stderr, "Validate and play chess moves.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nModes:\n")
	fmt.Fprintf(os.Stderr, "  -fen/-moves/-legal        play on a position and report it\n")
	fmt.Fprintf(os.Stderr, "  -db DIR or -mem           store games; -new, -game, -moves, -resign act on them\n")
	fmt.Fprintf(os.Stderr, "  -replay FILE              replay a JSON array of {name, fen, moves} scripts\n")
	fmt.Fprintf(os.Stderr, "\nTerminal rules (-rules):\n")
	fmt.Fprintf(os.Stderr, "  legacy    checkmate when no piece can take the checker; stalemate from king mobility\n")
	fmt.Fprintf(os.Stderr, "  standard  checkmate/stalemate when the side to move has no legal move\n")
}
