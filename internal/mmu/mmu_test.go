package mmu_test

import (
	"bytes"
	"testing"

	"github.com/smoynes/vmsim/internal/engine"
	"github.com/smoynes/vmsim/internal/mmu"
)

type fakeStore struct {
	blocks map[uint32][]byte
}

func newFakeStore() *fakeStore { return &fakeStore{blocks: make(map[uint32][]byte)} }

func (s *fakeStore) Write(block uint32, src []byte) error {
	buf := make([]byte, len(src))
	copy(buf, src)
	s.blocks[block] = buf

	return nil
}

func (s *fakeStore) Read(block uint32, dst []byte) error {
	copy(dst, s.blocks[block])
	return nil
}

func TestTranslateThroughFacade(t *testing.T) {
	t.Setenv("VMSIM_REAL_MEM_SIZE", "")

	eng, err := engine.New(newFakeStore())
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}

	defer eng.Close()

	m := mmu.New(eng)

	buf := bytes.Repeat([]byte{'A'}, engine.PageSize)
	if err := eng.Write(buf, 0x1000, engine.PageSize); err != nil {
		t.Fatalf("write: %v", err)
	}

	real := m.Translate(0x1000, false)

	if real == 0 {
		t.Fatalf("translate returned the null real address")
	}
}
