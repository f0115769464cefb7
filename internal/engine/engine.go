package engine

// engine.go assembles the engine from its smaller parts: the arena, the two sub-allocators, the
// frame-to-PTE index, the CLOCK cursor and the block counter are bundled into one owning value,
// created once per process and passed explicitly to every operation, per spec §9.

import (
	"encoding/binary"
	"fmt"

	"github.com/smoynes/vmsim/internal/heap"
	"github.com/smoynes/vmsim/internal/log"
)

// BackingStore persists and restores page-sized blocks by block number. It is an external
// collaborator (spec §6): the engine only ever asks it to read or write exactly one page at a
// fixed block number of the engine's choosing. Block 0 is reserved and never requested.
type BackingStore interface {
	Read(block uint32, dst []byte) error
	Write(block uint32, src []byte) error
}

// Engine is the address-translation and page-management core. One Engine owns one real-memory
// arena, one pair of bump allocators, one frame-to-PTE index, and one CLOCK cursor; it assumes a
// single, synchronous caller, per spec §5.
type Engine struct {
	arena    arena
	mem      []byte
	realSize uint32

	upperPT RealAddr // fixed real address of the 1024-entry upper table
	ptFree  RealAddr // bump pointer into the page-table region

	frameBase RealAddr // first byte of the frame region
	frameFree RealAddr // bump pointer into the frame region, until it is exhausted
	entries   []RealAddr

	clock     clock
	nextBlock uint32

	store BackingStore
	heap  *heap.Heap

	log *log.Logger
}

// New creates an engine backed by a host arena of the configured size (see VMSIM_REAL_MEM_SIZE)
// and the given backing store. The upper table is allocated and zeroed before New returns.
func New(store BackingStore, opts ...Option) (*Engine, error) {
	size, err := realMemSize()
	if err != nil {
		return nil, err
	}

	return newEngine(size, store, opts...)
}

// newEngine is the size-parameterized constructor used directly by tests, which need small
// arenas (spec §8's scenarios fix the frame region at 4 frames).
func newEngine(size uint32, store BackingStore, opts ...Option) (*Engine, error) {
	if size < MinRealMemSize {
		return nil, fmt.Errorf("%w: real memory size %d below minimum %d", ErrConfig, size, MinRealMemSize)
	}

	a, err := newArena(size)
	if err != nil {
		return nil, err
	}

	frameCount := (size - PTAreaSize) / PageSize

	e := &Engine{
		arena:     a,
		mem:       a.bytes(),
		realSize:  size,
		upperPT:   RealAddr(PageSize), // page 0 is reserved; the upper table is the next page
		ptFree:    RealAddr(PageSize),
		frameBase: RealAddr(PTAreaSize),
		frameFree: RealAddr(PTAreaSize),
		entries:   make([]RealAddr, frameCount),
		store:     store,
		nextBlock: 1, // block 0 is reserved
		log:       log.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(e)
	}

	// The upper table occupies the first page of the page-table region. MinRealMemSize guarantees
	// this first allocation always has room, so there is nothing to recover from here.
	e.allocatePageTable()

	e.heap = heap.New(PageSize)

	return e, nil
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger overrides the engine's logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Close releases the real-memory arena.
func (e *Engine) Close() error {
	return e.arena.close()
}

// RealSize returns the size, in bytes, of the real-memory arena.
func (e *Engine) RealSize() uint32 {
	return e.realSize
}

// frameIndex returns the index into e.entries for the frame at real address addr. addr must be a
// page-aligned address within the frame region.
func (e *Engine) frameIndex(addr RealAddr) int {
	return int((addr - e.frameBase) / PageSize)
}

// checkBounds is a fatal check: a real address (plus an optional length) must lie within the
// arena.
func (e *Engine) checkBounds(addr RealAddr, length uint32) {
	if uint32(addr)+length > e.realSize {
		fatalf(ErrArenaBounds, "real address %s+%d exceeds arena of %d bytes", addr, length, e.realSize)
	}
}

// readPTE loads the 32-bit entry at a real address within the page-table region.
func (e *Engine) readPTE(addr RealAddr) PTE {
	e.checkBounds(addr, PTESize)
	return PTE(binary.LittleEndian.Uint32(e.mem[addr : addr+PTESize]))
}

// writePTE stores a 32-bit entry at a real address within the page-table region.
func (e *Engine) writePTE(addr RealAddr, pte PTE) {
	e.checkBounds(addr, PTESize)
	binary.LittleEndian.PutUint32(e.mem[addr:addr+PTESize], uint32(pte))
}

// zeroPage clears PageSize bytes starting at addr, which must be page-aligned.
func (e *Engine) zeroPage(addr RealAddr) {
	e.checkBounds(addr, PageSize)

	page := e.mem[addr : addr+PageSize]
	for i := range page {
		page[i] = 0
	}
}

// upperSlot returns the real address of the upper-table entry for a simulated address.
func (e *Engine) upperSlot(a SimAddr) RealAddr {
	return e.upperPT + RealAddr(a.UpperIndex()*PTESize)
}

// lowerSlot returns the real address of the lower-table entry for a simulated address, given the
// real address of the lower table itself.
func (e *Engine) lowerSlot(lowerPT RealAddr, a SimAddr) RealAddr {
	return lowerPT + RealAddr(a.LowerIndex()*PTESize)
}
