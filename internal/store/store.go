// Package store implements the backing-store collaborator (spec §6): persistence for
// page-sized blocks, addressed by an opaque block number chosen by the engine.
//
// It is backed by bbolt, a pure-Go embedded key/value store -- the same family of engine gdbx
// benchmarks against mdbx and rocksdb, picked here because the store is single-threaded and the
// blocks it holds are plain 4 KiB blobs: no cgo boundary is worth paying for that.
package store

import (
	"errors"
	"fmt"

	"go.etcd.io/bbolt"
)

// BlockSize is the size, in bytes, of one block. It must equal the engine's page size; the two
// packages don't share the constant because the store is meant to be usable without importing
// the translation core it serves.
const BlockSize = 4096

var blocksBucket = []byte("blocks")

// ErrReservedBlock is returned for any access to block 0, which spec §6 reserves and the engine
// never requests.
var ErrReservedBlock = errors.New("store: block 0 is reserved")

// ErrBlockSize is returned when a caller passes a buffer that isn't exactly BlockSize bytes.
var ErrBlockSize = errors.New("store: buffer is not one block")

// Store is a durable, page-sized block store.
type Store struct {
	db *bbolt.DB
}

// Open opens (creating if necessary) a bbolt-backed store at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(blocksBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Write persists src as block. len(src) must equal BlockSize.
func (s *Store) Write(block uint32, src []byte) error {
	if block == 0 {
		return ErrReservedBlock
	}

	if len(src) != BlockSize {
		return fmt.Errorf("%w: got %d bytes", ErrBlockSize, len(src))
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(blocksBucket)
		return b.Put(blockKey(block), src)
	})
}

// Read loads block into dst. len(dst) must equal BlockSize. Reading a block that was never
// written returns an error: the engine only ever reads blocks it has itself written.
func (s *Store) Read(block uint32, dst []byte) error {
	if block == 0 {
		return ErrReservedBlock
	}

	if len(dst) != BlockSize {
		return fmt.Errorf("%w: got %d bytes", ErrBlockSize, len(dst))
	}

	return s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(blocksBucket)

		v := b.Get(blockKey(block))
		if v == nil {
			return fmt.Errorf("store: block %d never written", block)
		}

		copy(dst, v)

		return nil
	})
}

func blockKey(block uint32) []byte {
	return []byte{
		byte(block >> 24),
		byte(block >> 16),
		byte(block >> 8),
		byte(block),
	}
}
