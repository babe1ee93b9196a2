package store

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/serial"
)

// MemoryStore keeps encoded records in a map guarded by an RWMutex.
// Records are held encoded so callers never share a Game with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uint64][]byte
	lastID  uint64
	format  serial.Format
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := buildOptions(opts)
	return &MemoryStore{
		records: make(map[uint64][]byte),
		format:  o.format,
	}
}

// Create stores a new record and assigns its id.
func (s *MemoryStore) Create(ctx context.Context, name string, game *engine.Game) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &Record{ID: s.lastID + 1, Name: name, Game: game}
	data, err := encodeRecord(rec, s.format)
	if err != nil {
		return nil, err
	}
	s.lastID++
	s.records[rec.ID] = data
	return rec, nil
}

// Get loads a record.
func (s *MemoryStore) Get(ctx context.Context, id uint64) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id, "get")
	}
	return decodeRecord(data)
}

// Put overwrites an existing record.
func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeRecord(rec, s.format)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; !ok {
		return notFound(rec.ID, "put")
	}
	s.records[rec.ID] = data
	return nil
}

// Delete removes a record.
func (s *MemoryStore) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return notFound(id, "delete")
	}
	delete(s.records, id)
	return nil
}

// List returns every record in id order.
func (s *MemoryStore) List(ctx context.Context) ([]*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	encoded := maps.Clone(s.records)
	s.mu.RUnlock()

	ids := maps.Keys(encoded)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		rec, err := decodeRecord(encoded[id])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*BadgerStore)(nil)
)
