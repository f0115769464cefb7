package engine

// io.go is the client I/O façade (spec §4.5, §6): Alloc/Free over the simulated heap, and the
// Read/Write/Map operations that route client memory traffic through translation.

import "fmt"

// Map translates simAddr for the given access and returns the real address it resolves to,
// faulting in whatever is missing along the way. It is exposed for advanced callers that want a
// translation without performing an I/O.
func (e *Engine) Map(simAddr SimAddr, write bool) RealAddr {
	return e.Translate(simAddr, write)
}

// Alloc returns the base address of a fresh region of size bytes in the simulated address space.
// Allocation is a bump pointer over simulated addresses; it does not itself touch real memory or
// the page tables -- the region is mapped lazily, page by page, on first access.
func (e *Engine) Alloc(size uint32) SimAddr {
	return SimAddr(e.heap.Alloc(size))
}

// Free is a no-op: the simulated heap never reclaims (spec Non-goals).
func (e *Engine) Free(simAddr SimAddr) {
	e.heap.Free(uint32(simAddr))
}

// Read translates simAddr for a read and copies n bytes from the resolved real address into buf.
// n bytes must not span a page boundary; spanning accesses must be split by the caller.
func (e *Engine) Read(buf []byte, simAddr SimAddr, n uint32) error {
	real, err := e.prepareAccess(simAddr, n, false)
	if err != nil {
		return err
	}

	copy(buf[:n], e.mem[real:real+RealAddr(n)])

	return nil
}

// Write translates simAddr for a write and copies n bytes from buf to the resolved real address.
// n bytes must not span a page boundary; spanning accesses must be split by the caller.
func (e *Engine) Write(buf []byte, simAddr SimAddr, n uint32) error {
	real, err := e.prepareAccess(simAddr, n, true)
	if err != nil {
		return err
	}

	copy(e.mem[real:real+RealAddr(n)], buf[:n])

	return nil
}

// prepareAccess validates that [simAddr, simAddr+n) fits within a single page, translates
// simAddr, and checks the resolved range against the arena.
func (e *Engine) prepareAccess(simAddr SimAddr, n uint32, write bool) (RealAddr, error) {
	if n == 0 {
		return 0, fmt.Errorf("%w: zero-length access at %s", ErrSpan, simAddr)
	}

	if simAddr.PageOffset()+n > PageSize {
		return 0, fmt.Errorf("%w: %s for %d bytes", ErrSpan, simAddr, n)
	}

	real := e.Translate(simAddr, write)
	e.checkBounds(real, n)

	return real, nil
}
