package engine

// fault.go implements the two-level page-table walk and its fault path (spec §4.2).

//go:generate go run golang.org/x/tools/cmd/stringer -type faultKind -output faultkind_string.go

// faultKind classifies which branch of the walk handled a miss, for logging only -- it has no
// effect on translation.
type faultKind int

const (
	kindNone faultKind = iota
	kindUpperFault
	kindFrameFault
	kindSwapFault
)

// Translate walks the upper and lower page tables for a and returns the real address the byte
// offset within a's page maps to, faulting in whatever is missing along the way. It sets the
// referenced bit on a's lower PTE, and the dirty bit too if write is true.
//
// Translate never returns an error: per spec §7, every failure along the fault path is a fatal
// invariant breach or backing-store failure, and both abort rather than propagate.
func (e *Engine) Translate(a SimAddr, write bool) RealAddr {
	lowerSlot := e.walk(a)

	pte := e.readPTE(lowerSlot)
	if !pte.Resident() {
		fatalf(ErrIndexCorruption, "translate: %s still not resident after fault", a)
	}

	pte = pte.Referencing()
	if write {
		pte = pte.Dirtying()
	}

	e.writePTE(lowerSlot, pte)

	return pte.Page().Offset(a.PageOffset())
}

// walk performs the two-level lookup for a, invoking the appropriate fault path to satisfy any
// missing or non-resident entry along the way, and returns the real address of a's lower PTE slot
// once both levels are resident.
func (e *Engine) walk(a SimAddr) (lowerSlot RealAddr) {
	kind := kindNone

	upperSlot := e.upperSlot(a)
	upperPTE := e.readPTE(upperSlot)

	if upperPTE.Unmapped() {
		e.faultUpper(upperSlot)

		upperPTE = e.readPTE(upperSlot)
		kind = kindUpperFault
	}

	lowerPT := upperPTE.Page()
	lowerSlot = e.lowerSlot(lowerPT, a)
	lowerPTE := e.readPTE(lowerSlot)

	switch {
	case lowerPTE.Unmapped():
		e.faultFrame(lowerSlot)

		kind = kindFrameFault
	case !lowerPTE.Resident():
		e.swap(lowerSlot)

		kind = kindSwapFault
	}

	if kind != kindNone {
		e.log.Debug("fault handled", "sim", a, "kind", kind)
	}

	return lowerSlot
}

// faultUpper handles a missing upper-table entry: it allocates a new lower table and installs it.
func (e *Engine) faultUpper(upperSlot RealAddr) {
	lowerPT := e.allocatePageTable()

	e.writePTE(upperSlot, PTE(0).WithPage(lowerPT))
	e.log.Debug("faulted upper table", "slot", upperSlot, "lower", lowerPT)
}

// faultFrame handles a lower-table entry that has never been mapped: it allocates a frame,
// installs it resident, and records the new owner in the frame-to-PTE index.
func (e *Engine) faultFrame(lowerSlot RealAddr) {
	frame := e.allocateFrame()

	e.writePTE(lowerSlot, PTE(0).WithPage(frame))
	e.entries[e.frameIndex(frame)] = lowerSlot

	e.log.Debug("faulted frame", "slot", lowerSlot, "frame", frame)
}
