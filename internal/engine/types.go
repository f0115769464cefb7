package engine

// types.go defines the address types and the geometry constants they are decoded against.

import "fmt"

const (
	// PageBits is the width, in bits, of the byte offset within a page.
	PageBits = 12

	// PageSize is the size, in bytes, of a page and of a frame.
	PageSize = 1 << PageBits

	// PageMask isolates the byte offset within a page.
	PageMask = PageSize - 1

	// TableBits is the width, in bits, of an upper- or lower-table index.
	TableBits = 10

	// TableEntries is the number of entries in an upper or lower table.
	TableEntries = 1 << TableBits

	// PTESize is the size, in bytes, of one page-table entry.
	PTESize = 4

	// TableSize is the size, in bytes, of one page table (upper or lower).
	TableSize = TableEntries * PTESize

	// upperShift is the bit position of the upper-table index within a SimAddr.
	upperShift = PageBits + TableBits

	// lowerShift is the bit position of the lower-table index within a SimAddr.
	lowerShift = PageBits

	// indexMask isolates a 10-bit table index once shifted into place.
	indexMask = TableEntries - 1
)

// SimAddr is a simulated address in the 32-bit address space exposed to clients.
type SimAddr uint32

// UpperIndex returns the index into the upper table for addr: bits 31..22.
func (a SimAddr) UpperIndex() uint32 {
	return (uint32(a) >> upperShift) & indexMask
}

// LowerIndex returns the index into a lower table for addr: bits 21..12.
func (a SimAddr) LowerIndex() uint32 {
	return (uint32(a) >> lowerShift) & indexMask
}

// PageOffset returns the byte offset within the page for addr: bits 11..0.
func (a SimAddr) PageOffset() uint32 {
	return uint32(a) & PageMask
}

// Page returns addr rounded down to its containing page boundary.
func (a SimAddr) Page() SimAddr {
	return a &^ PageMask
}

func (a SimAddr) String() string {
	return fmt.Sprintf("sim:%#08x", uint32(a))
}

// RealAddr is an offset into the engine's real-memory arena.
type RealAddr uint32

// Page returns addr rounded down to its containing page boundary.
func (a RealAddr) Page() RealAddr {
	return a &^ PageMask
}

// Offset adds a byte offset (which must be < PageSize for page-bound addresses) to addr.
func (a RealAddr) Offset(off uint32) RealAddr {
	return a + RealAddr(off)
}

func (a RealAddr) String() string {
	return fmt.Sprintf("real:%#08x", uint32(a))
}
