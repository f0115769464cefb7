// Package heap implements the simulated heap allocator: a bump pointer over the simulated
// address space with no reclamation, orthogonal to address translation (spec §1, §6).
package heap

// Heap hands out non-overlapping regions of a 32-bit simulated address space. It never reclaims:
// Free is a no-op, per spec. Addresses are plain uint32 offsets; the engine package wraps them in
// its own SimAddr type at the call boundary, keeping this package free of any dependency on the
// translation core it serves.
type Heap struct {
	free uint32
}

// New creates a heap whose first allocation begins at start.
func New(start uint32) *Heap {
	return &Heap{free: start}
}

// Alloc returns the base address of a region of size bytes and advances the bump pointer past it.
func (h *Heap) Alloc(size uint32) uint32 {
	base := h.free
	h.free += size

	return base
}

// Free is a no-op: the simulated heap never reclaims (spec Non-goals).
func (h *Heap) Free(uint32) {}
