package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// StoreConfig holds settings for the game record store.
type StoreConfig struct {
	// Path is the badger directory; empty means no persistent store
	Path string

	// InMemory keeps records in process memory only
	InMemory bool

	// SyncWrites fsyncs every write
	SyncWrites bool
}

// NewStoreConfig creates a StoreConfig with default values.
func NewStoreConfig() *StoreConfig {
	return &StoreConfig{}
}

// Enabled reports whether a store was requested.
func (s *StoreConfig) Enabled() bool {
	return s.InMemory || s.Path != ""
}

// Validate checks that the store configuration is consistent.
func (s *StoreConfig) Validate() error {
	if s.InMemory && s.Path != "" {
		return fmt.Errorf("store path %q given with in-memory store: %w", s.Path, errors.ErrInvalidConfig)
	}
	return nil
}
