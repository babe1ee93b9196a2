package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// DefaultLockTimeout bounds how long a session call waits for a game.
const DefaultLockTimeout = 5 * time.Second

// SessionConfig holds settings for the game session manager.
type SessionConfig struct {
	// LockTimeout is the longest wait for a per-game lock; 0 waits
	// until the caller's context is done
	LockTimeout time.Duration
}

// NewSessionConfig creates a SessionConfig with default values.
func NewSessionConfig() *SessionConfig {
	return &SessionConfig{LockTimeout: DefaultLockTimeout}
}

// Validate checks that the session configuration is valid.
func (s *SessionConfig) Validate() error {
	if s.LockTimeout < 0 {
		return fmt.Errorf("lock timeout %v is negative: %w", s.LockTimeout, errors.ErrInvalidConfig)
	}
	return nil
}
