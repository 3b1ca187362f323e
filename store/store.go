// Package store is the engine's embedded persistence layer: a pebble-backed
// ordered key-value store for every typed table spec.md names, plus a
// billy-backed append-only blob log mirroring the TxTraces table, since
// traces are large, immutable, and only ever appended once a block
// finalizes. Each write is its own synced pebble Set (there is no per-block
// batch); reads are concurrent and lock-free against pebble's own MVCC
// snapshots.
package store

import (
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/holiman/billy"
)

var (
	defaultWriteOptions = pebble.Sync
	errNotFound         = pebble.ErrNotFound
)

// Store owns the engine's on-disk state: one pebble database for every
// typed table, and one billy blob log for raw trace bytes.
type Store struct {
	db     *pebble.DB
	traces billy.Database
}

// Open opens (creating if absent) a Store rooted at dir.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir+"/kv", &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("store: open pebble: %w", err)
	}
	traces, err := billy.Open(billy.Options{Path: dir + "/traces"}, newTraceSlotter(), nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: open trace blob log: %w", err)
	}
	return &Store{db: db, traces: traces}, nil
}

// Close releases both underlying stores. Safe to call once; a second call
// returns the underlying close error.
func (s *Store) Close() error {
	traceErr := s.traces.Close()
	dbErr := s.db.Close()
	if dbErr != nil {
		return dbErr
	}
	return traceErr
}

func (s *Store) set(key []byte, v any) error {
	data, err := encodeRecord(v)
	if err != nil {
		return err
	}
	return s.db.Set(key, data, defaultWriteOptions)
}

func (s *Store) get(key []byte, v any) (bool, error) {
	data, closer, err := s.db.Get(key)
	if err == errNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer closer.Close()
	if err := decodeRecord(data, v); err != nil {
		return false, err
	}
	return true, nil
}
