package store

import (
	"context"
	"fmt"
	"log"

	"github.com/dgraph-io/badger/v4"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/serial"
)

// Storage keys
const (
	gamePrefix  = "game/"
	keySequence = "seq/game"
)

// sequenceBandwidth is how many ids are leased from badger at a time.
const sequenceBandwidth = 64

// BadgerStore keeps records in a badger database, one JSON value per game.
type BadgerStore struct {
	db     *badger.DB
	seq    *badger.Sequence
	format serial.Format
}

// OpenBadger opens (or creates) the database described by cfg.
func OpenBadger(cfg *config.StoreConfig, opts ...Option) (*BadgerStore, error) {
	o := buildOptions(opts)

	var bopts badger.Options
	if cfg.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		bopts = badger.DefaultOptions(cfg.Path)
	}
	bopts.SyncWrites = cfg.SyncWrites
	bopts.Logger = nil // Disable logging
	if o.logger != nil {
		bopts.Logger = badgerLogger{o.logger}
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, errors.Wrap(err, "opening game store")
	}
	seq, err := db.GetSequence([]byte(keySequence), sequenceBandwidth)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "opening game id sequence")
	}
	return &BadgerStore{db: db, seq: seq, format: o.format}, nil
}

func gameKey(id uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", gamePrefix, id))
}

// Create stores a new record and assigns its id.
func (s *BadgerStore) Create(ctx context.Context, name string, game *engine.Game) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := s.seq.Next()
	if err != nil {
		return nil, errors.Wrap(err, "allocating game id")
	}
	rec := &Record{ID: n + 1, Name: name, Game: game}
	data, err := encodeRecord(rec, s.format)
	if err != nil {
		return nil, err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
	if err != nil {
		return nil, &errors.GameError{Err: err, GameID: rec.ID, Op: "create"}
	}
	return rec, nil
}

// Get loads a record.
func (s *BadgerStore) Get(ctx context.Context, id uint64) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rec *Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return notFound(id, "get")
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			rec, err = decodeRecord(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Put overwrites an existing record.
func (s *BadgerStore) Put(ctx context.Context, rec *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeRecord(rec, s.format)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		key := gameKey(rec.ID)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return notFound(rec.ID, "put")
		} else if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete removes a record.
func (s *BadgerStore) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		key := gameKey(id)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return notFound(id, "delete")
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// List returns every record in id order.
func (s *BadgerStore) List(ctx context.Context) ([]*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var records []*Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				rec, err := decodeRecord(val)
				if err != nil {
					return err
				}
				records = append(records, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return records, err
}

// Close releases unused ids and closes the database.
func (s *BadgerStore) Close() error {
	if s.db == nil {
		return nil
	}
	var err error
	if s.seq != nil {
		err = s.seq.Release()
	}
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}

// badgerLogger adapts a standard logger to badger's Logger interface.
type badgerLogger struct {
	*log.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.Printf("badger ERROR: "+format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.Printf("badger WARNING: "+format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.Printf("badger INFO: "+format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.Printf("badger DEBUG: "+format, args...)
}
