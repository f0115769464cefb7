package engine

import "testing"

// TestClockClearsBeforeSelecting covers B3: with every reference bit set, CLOCK clears all of
// them in one sweep before selecting the first-inspected entry on its second visit, and the
// cursor ends up one past the victim.
func TestClockClearsBeforeSelecting(tt *testing.T) {
	e, _ := newTestEngine(tt, 4)

	addrs := []SimAddr{0x1000, 0x2000, 0x3000, 0x4000}
	for _, a := range addrs {
		if err := e.Write(fill('x', PageSize), a, PageSize); err != nil {
			tt.Fatalf("write: %v", err)
		}
	}

	// Writing set the dirty+referenced bits on each; Write already leaves referenced=1.
	for _, slot := range e.entries {
		pte := e.readPTE(slot)
		if !pte.Referenced() {
			tt.Fatalf("expected every entry referenced before the sweep")
		}
	}

	victim := e.clock.selectVictim(e)

	if victim != e.entries[0] {
		tt.Fatalf("victim = %s, want the first-inspected entry %s", victim, e.entries[0])
	}

	if e.clock.cursor != 1 {
		tt.Fatalf("cursor = %d, want 1 (one past the victim)", e.clock.cursor)
	}

	for i, slot := range e.entries {
		pte := e.readPTE(slot)
		if pte.Referenced() {
			tt.Fatalf("entry %d still referenced after a full sweep", i)
		}
	}
}

// TestClockSkipsReferencedEntries exercises the non-worst-case path: a single unreferenced entry
// part-way around is chosen without a full revolution.
func TestClockSkipsReferencedEntries(tt *testing.T) {
	e, _ := newTestEngine(tt, 4)

	addrs := []SimAddr{0x1000, 0x2000, 0x3000, 0x4000}
	for _, a := range addrs {
		if err := e.Write(fill('x', PageSize), a, PageSize); err != nil {
			tt.Fatalf("write: %v", err)
		}
	}

	// Clear frame 2's reference bit directly, leaving the others set.
	slot := e.entries[2]
	pte := e.readPTE(slot).Unreferencing()
	e.writePTE(slot, pte)

	victim := e.clock.selectVictim(e)

	if victim != slot {
		tt.Fatalf("victim = %s, want entry 2 (%s)", victim, slot)
	}

	if e.clock.cursor != 3 {
		tt.Fatalf("cursor = %d, want 3", e.clock.cursor)
	}
}
