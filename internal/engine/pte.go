package engine

// pte.go implements the tagged page-table-entry representation described in spec: a single 32-bit
// word with two mutually exclusive encodings, selected by the resident flag. Call sites never mask
// bits directly; they go through these accessors, which assert the encoding they expect.

import "fmt"

// PTE is a page-table entry: a 32-bit word describing the state of one simulated page.
//
// Resident encoding: bits 31..12 hold a page-aligned [RealAddr] into the frame region.
// Non-resident encoding: bits 23..10 hold a backing-store block number.
// Both encodings carry status flags in bits 2..0. The zero value is Unmapped.
type PTE uint32

const (
	flagResident   PTE = 1 << 0
	flagReferenced PTE = 1 << 1
	flagDirty      PTE = 1 << 2

	pageFieldMask  = ^uint32(PageMask)     // bits 31..12
	blockFieldMask = uint32(0x3fff) << 10  // bits 23..10
	blockBits      = 10
)

// Unmapped reports whether the entry has never been assigned a frame or a block.
func (p PTE) Unmapped() bool {
	return p == 0
}

// Resident reports whether the entry currently names a frame in real memory.
func (p PTE) Resident() bool {
	return p&flagResident != 0
}

// Referenced reports whether the page has been accessed since the bit was last cleared.
func (p PTE) Referenced() bool {
	return p&flagReferenced != 0
}

// Dirty reports whether the page has been written since it was last fetched.
func (p PTE) Dirty() bool {
	return p&flagDirty != 0
}

// Page returns the real address of the frame backing this entry. It panics if the entry is not
// resident; callers must check Resident first, same as the hardware invariant it models.
func (p PTE) Page() RealAddr {
	if !p.Resident() {
		panic(fmt.Sprintf("engine: Page() on non-resident pte %#08x", uint32(p)))
	}

	return RealAddr(uint32(p) & pageFieldMask)
}

// Block returns the backing-store block number encoded in this entry. It panics if the entry is
// resident or unmapped.
func (p PTE) Block() uint32 {
	if p.Resident() || p.Unmapped() {
		panic(fmt.Sprintf("engine: Block() on resident/unmapped pte %#08x", uint32(p)))
	}

	return (uint32(p) & blockFieldMask) >> blockBits
}

// WithPage returns a new entry encoding page as the resident frame, preserving the reference and
// dirty bits. The resident bit is set.
func (p PTE) WithPage(page RealAddr) PTE {
	flags := p & (flagReferenced | flagDirty)
	return PTE(uint32(page)&pageFieldMask) | flagResident | flags
}

// WithBlock returns a new entry encoding block as the backing-store block, with the resident bit
// clear and the reference and dirty bits cleared: a freshly evicted page carries no access history.
func (p PTE) WithBlock(block uint32) PTE {
	return PTE((block << blockBits) & blockFieldMask)
}

// Referencing returns a copy of p with the referenced bit set.
func (p PTE) Referencing() PTE {
	return p | flagReferenced
}

// Unreferencing returns a copy of p with the referenced bit cleared.
func (p PTE) Unreferencing() PTE {
	return p &^ flagReferenced
}

// Dirtying returns a copy of p with the dirty bit set.
func (p PTE) Dirtying() PTE {
	return p | flagDirty
}

func (p PTE) String() string {
	if p.Unmapped() {
		return "pte:unmapped"
	}

	if p.Resident() {
		return fmt.Sprintf("pte:resident page=%s ref=%t dirty=%t", p.Page(), p.Referenced(), p.Dirty())
	}

	return fmt.Sprintf("pte:swapped block=%d", p.Block())
}
