package config

import (
	"io"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/serial"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithTerminalRules sets the checkmate and stalemate definitions.
func (b *ConfigBuilder) WithTerminalRules(rules engine.TerminalRules) *ConfigBuilder {
	b.cfg.Rules.Terminal = rules
	return b
}

// WithWireFormat sets the JSON encoding.
func (b *ConfigBuilder) WithWireFormat(format serial.Format) *ConfigBuilder {
	b.cfg.Rules.WireFormat = format
	return b
}

// WithStorePath sets the badger directory.
func (b *ConfigBuilder) WithStorePath(path string) *ConfigBuilder {
	b.cfg.Store.Path = path
	return b
}

// WithInMemoryStore selects the in-memory store.
func (b *ConfigBuilder) WithInMemoryStore(enabled bool) *ConfigBuilder {
	b.cfg.Store.InMemory = enabled
	return b
}

// WithSyncWrites enables fsync on every store write.
func (b *ConfigBuilder) WithSyncWrites(enabled bool) *ConfigBuilder {
	b.cfg.Store.SyncWrites = enabled
	return b
}

// WithLockTimeout sets the per-game lock timeout.
func (b *ConfigBuilder) WithLockTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Session.LockTimeout = d
	return b
}

// WithWorkers sets the replay pool size.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.JSONFormat = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
