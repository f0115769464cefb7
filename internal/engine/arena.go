package engine

// arena.go owns the real-memory buffer the engine pages into. The host-specific allocation lives
// in arena_unix.go (anonymous mmap, per spec §4.1) and arena_other.go (a plain heap buffer, for
// hosts without an mmap syscall).

// arena is real memory: a contiguous, host-backed byte buffer the engine treats as an offset
// space. Implementations must zero their storage at allocation time.
type arena interface {
	bytes() []byte
	close() error
}

// newArena allocates size bytes of real memory from the host.
func newArena(size uint32) (arena, error) {
	return newHostArena(size)
}
