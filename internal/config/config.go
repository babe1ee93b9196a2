// Package config provides configuration for chess-rules-go.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	// Workers is the replay pool size; 0 means one per CPU.
	Workers int

	// JSONFormat enables JSON reports instead of text
	JSONFormat bool

	Rules   *RulesConfig
	Store   *StoreConfig
	Session *SessionConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Rules:      NewRulesConfig(),
		Store:      NewStoreConfig(),
		Session:    NewSessionConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the report writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the log writer.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Validate checks the configuration and every sub-config.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d is negative: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d is negative: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	return c.Session.Validate()
}
