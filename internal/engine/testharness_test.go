package engine

// testharness_test.go provides a small in-memory backing store and engine constructor shared by
// the package's tests, in the spirit of the teacher's own test harness.

import (
	"errors"
	"fmt"
	"testing"
)

// memStore is a BackingStore kept entirely in memory: fast and deterministic for unit tests,
// which never need the durability a real backing store provides.
type memStore struct {
	blocks map[uint32][]byte
}

func newMemStore() *memStore {
	return &memStore{blocks: make(map[uint32][]byte)}
}

func (m *memStore) Write(block uint32, src []byte) error {
	if block == 0 {
		return fmt.Errorf("memStore: block 0 is reserved")
	}

	buf := make([]byte, len(src))
	copy(buf, src)
	m.blocks[block] = buf

	return nil
}

func (m *memStore) Read(block uint32, dst []byte) error {
	buf, ok := m.blocks[block]
	if !ok {
		return fmt.Errorf("memStore: block %d never written", block)
	}

	copy(dst, buf)

	return nil
}

// newTestEngine builds an engine whose frame region holds exactly frames pages, backed by a
// fresh memStore, as spec §8's scenarios require.
func newTestEngine(t *testing.T, frames uint32) (*Engine, *memStore) {
	t.Helper()

	store := newMemStore()
	size := uint32(PTAreaSize) + frames*PageSize

	e, err := newEngine(size, store)
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}

	t.Cleanup(func() { _ = e.Close() })

	return e, store
}

// fill returns n bytes all set to b.
func fill(b byte, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = b
	}

	return buf
}

// requireFatal runs fn and asserts it panics with a *FatalError wrapping want, per spec §7's
// fatal-abort error handling.
func requireFatal(t *testing.T, want error, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a panic wrapping %v, got none", want)
		}

		fe, ok := r.(*FatalError)
		if !ok {
			panic(r)
		}

		if !errors.Is(fe, want) {
			t.Fatalf("panic = %v, want it to wrap %v", fe, want)
		}
	}()

	fn()
}
