// Package mmu is the MMU facade clients translate addresses through (spec §6). It is a thin
// collaborator: all translation state -- the page tables, the frame-to-PTE index, the CLOCK
// cursor -- lives in the engine. The facade exists only so the engine package itself never has to
// assume a particular retry loop belongs to translation; the teacher repo keeps the same
// separation between its CPU core and the console that drives it.
package mmu

import "github.com/smoynes/vmsim/internal/engine"

// core is the subset of *engine.Engine the facade depends on.
type core interface {
	Translate(addr engine.SimAddr, write bool) engine.RealAddr
}

// MMU translates simulated addresses for a single engine.
type MMU struct {
	core core
}

// New creates an MMU facade over an initialized engine. It takes no upper-table address: the
// engine already owns the upper table and every other piece of translation state.
func New(eng *engine.Engine) *MMU {
	return &MMU{core: eng}
}

// Translate resolves a simulated address to a real one, faulting the page in along the way. It
// never returns an error: per spec §7, a translation that cannot be satisfied is a fatal
// invariant breach or backing-store failure, and the engine aborts rather than reports it here.
func (m *MMU) Translate(addr engine.SimAddr, write bool) engine.RealAddr {
	return m.core.Translate(addr, write)
}
