package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/serial"
)

// RulesConfig holds settings that change how games are judged and encoded.
type RulesConfig struct {
	// Terminal selects the checkmate and stalemate definitions
	Terminal engine.TerminalRules

	// WireFormat selects the JSON encoding for stored and printed games
	WireFormat serial.Format
}

// NewRulesConfig creates a RulesConfig with default values.
func NewRulesConfig() *RulesConfig {
	return &RulesConfig{
		Terminal:   engine.LegacyTerminals,
		WireFormat: serial.ExtendedFormat,
	}
}

// Validate rejects out-of-range enum values.
func (r *RulesConfig) Validate() error {
	switch r.Terminal {
	case engine.LegacyTerminals, engine.StandardTerminals:
	default:
		return fmt.Errorf("terminal rules %d: %w", r.Terminal, errors.ErrInvalidConfig)
	}
	switch r.WireFormat {
	case serial.ExtendedFormat, serial.MinimalFormat:
	default:
		return fmt.Errorf("wire format %d: %w", r.WireFormat, errors.ErrInvalidConfig)
	}
	return nil
}
