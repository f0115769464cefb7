package engine

// alloc.go implements the two bump sub-allocators over the real-memory arena: one for page
// tables, which never frees, and one for frames, which overflows into the eviction path once the
// frame region is exhausted (spec §4.1).

// allocatePageTable returns the real address of a freshly zeroed, page-aligned block in the
// page-table region. The page-table region has a fixed budget and no overflow path (spec §7): a
// request that would exceed it is a fatal invariant breach, not a returned error.
func (e *Engine) allocatePageTable() RealAddr {
	next := e.ptFree + PageSize
	if uint32(next) > PTAreaSize {
		fatalf(ErrPTOverflow, "page-table region exhausted at %s", e.ptFree)
	}

	addr := e.ptFree
	e.ptFree = next

	e.zeroPage(addr)

	return addr
}

// allocateFrame returns the real address of a usable, zeroed frame with no current owner in the
// frame-to-PTE index. While the frame region has room, it bumps frameFree; once exhausted, it
// selects a CLOCK victim and evicts it to free a frame.
func (e *Engine) allocateFrame() RealAddr {
	if uint32(e.frameFree) < e.realSize {
		addr := e.frameFree
		e.frameFree += PageSize

		e.zeroPage(addr)

		return addr
	}

	victim := e.clock.selectVictim(e)

	return e.evict(victim)
}
