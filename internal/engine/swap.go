package engine

// swap.go implements the two swap primitives against the backing store (spec §4.4): evict, which
// frees a resident frame by writing it to a fresh block, and fetch, which restores a block into a
// free frame. Swap composes the two to service a fault against a non-resident page.
//
// Per spec §7, a backing-store read or write failure is fatal: the engine has no retry or
// recovery layer, so both primitives abort rather than return an error.

// evict writes the frame named by victimPTE's real address to a fresh backing-store block,
// rewrites the PTE to encode that block, clears residency, and zeroes the freed frame. The
// frame-to-PTE index entry for the freed frame is left stale; callers must overwrite it with the
// new owner before the frame is used again.
func (e *Engine) evict(victimPTE RealAddr) RealAddr {
	pte := e.readPTE(victimPTE)
	if !pte.Resident() {
		fatalf(ErrIndexCorruption, "evict: %s is not resident", victimPTE)
	}

	frame := pte.Page()

	block := e.nextBlock
	e.nextBlock++

	if err := e.store.Write(block, e.mem[frame:frame+PageSize]); err != nil {
		fatalf(ErrBackingStore, "writing block %d: %s", block, err)
	}

	e.writePTE(victimPTE, pte.WithBlock(block))
	e.zeroPage(frame)

	e.log.Debug("evicted page", "pte", victimPTE, "frame", frame, "block", block, "dirty", pte.Dirty())

	return frame
}

// fetch reads the block encoded in the PTE at slot into freeFrame, rewrites the PTE to reference
// the frame and sets residency, and records the new owner in the frame-to-PTE index.
func (e *Engine) fetch(slot RealAddr, freeFrame RealAddr) {
	pte := e.readPTE(slot)
	if pte.Resident() || pte.Unmapped() {
		fatalf(ErrIndexCorruption, "fetch: %s does not encode a block", slot)
	}

	block := pte.Block()

	if err := e.store.Read(block, e.mem[freeFrame:freeFrame+PageSize]); err != nil {
		fatalf(ErrBackingStore, "reading block %d: %s", block, err)
	}

	e.writePTE(slot, pte.WithPage(freeFrame))
	e.entries[e.frameIndex(freeFrame)] = slot

	e.log.Debug("fetched page", "pte", slot, "frame", freeFrame, "block", block)
}

// swap services a fault against the non-resident PTE at slot: it obtains a frame -- bumping the
// frame region if it has room, or selecting a CLOCK victim and evicting it otherwise, exactly as
// allocateFrame always does -- and fetches slot's page into it. This realizes spec §4.4's
// Evict-then-Fetch composition: when the frame region is full, allocateFrame's overflow path is
// itself an evict, so the two primitives compose without slot's caller ever naming a victim.
func (e *Engine) swap(slot RealAddr) {
	frame := e.allocateFrame()
	e.fetch(slot, frame)
}
