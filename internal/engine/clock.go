package engine

// clock.go implements the CLOCK replacement policy (spec §4.3): a cursor scans the
// frame-to-PTE index in circular order, clearing reference bits, until it finds an entry whose
// reference bit is already clear.

// clock is a process-wide cursor into the frame-to-PTE index. Its value is meaningful only once
// the frame region has filled; before then it is never consulted.
type clock struct {
	cursor int
}

// selectVictim scans e.entries starting at the cursor, clearing reference bits on every resident
// entry it passes over, and returns the real address of the lower PTE owning the first frame it
// finds with a clear reference bit. The cursor is left one past the victim, so the victim's next
// tenant gets a full revolution before it can be chosen again.
func (c *clock) selectVictim(e *Engine) RealAddr {
	if len(e.entries) == 0 {
		fatalf(ErrIndexCorruption, "clock: frame region is empty")
	}

	for range e.entries {
		pteAddr := e.entries[c.cursor]
		if pteAddr == 0 {
			fatalf(ErrIndexCorruption, "clock: frame %d has no owner", c.cursor)
		}

		pte := e.readPTE(pteAddr)
		if !pte.Resident() {
			fatalf(ErrIndexCorruption, "clock: frame %d owner %s is not resident", c.cursor, pteAddr)
		}

		if pte.Referenced() {
			e.writePTE(pteAddr, pte.Unreferencing())
			c.cursor = (c.cursor + 1) % len(e.entries)

			continue
		}

		victim := pteAddr
		c.cursor = (c.cursor + 1) % len(e.entries)

		return victim
	}

	// Every entry was referenced exactly once on the way around; the entry the cursor now sits on
	// has had its reference bit cleared during this very sweep, so a second pass always
	// terminates immediately.
	pteAddr := e.entries[c.cursor]
	pte := e.readPTE(pteAddr)

	if pte.Referenced() {
		fatalf(ErrIndexCorruption, "clock: entry %s still referenced after full sweep", pteAddr)
	}

	c.cursor = (c.cursor + 1) % len(e.entries)

	return pteAddr
}
