package engine

// errors.go collects the sentinel errors the engine aborts on. There is no recovery layer: the
// engine models a hardware MMU and kernel paging path, and a fault that cannot be satisfied is
// terminal, per spec.

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig indicates an invalid or too-small real-memory size.
	ErrConfig = errors.New("engine: configuration error")

	// ErrArenaBounds indicates a real address, or a real address plus a length, falls outside the
	// arena.
	ErrArenaBounds = errors.New("engine: arena bounds")

	// ErrPTOverflow indicates the page-table region could not satisfy an allocation: more than
	// 1023 lower tables were demanded (the region's first page holds the upper table).
	ErrPTOverflow = errors.New("engine: page-table region exhausted")

	// ErrIndexCorruption indicates a resident PTE names a frame whose frame-to-PTE index entry
	// does not point back to it: an invariant breach, never expected in correct operation.
	ErrIndexCorruption = errors.New("engine: frame index corruption")

	// ErrBackingStore wraps any read/write failure surfaced by the backing store collaborator.
	ErrBackingStore = errors.New("engine: backing store failure")

	// ErrSpan indicates a read or write would span a page boundary, which the client I/O façade
	// does not support (callers must split the access themselves), or has a length of zero.
	ErrSpan = errors.New("engine: access spans a page boundary")
)

// fatalf wraps an error with a sentinel and panics with it. The engine has no recovery path for
// invariant breaches or backing-store failures; cmd/vmsim recovers at the top of main to print a
// clean diagnostic and exit non-zero.
func fatalf(sentinel error, format string, args ...any) {
	panic(&FatalError{Err: sentinel, msg: fmt.Sprintf(format, args...)})
}

// FatalError is the panic value raised on an unrecoverable invariant breach.
type FatalError struct {
	Err error
	msg string
}

func (e *FatalError) Error() string {
	return e.msg
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
