package engine

import (
	"errors"
	"testing"
)

func TestWriteSpanningPageBoundaryRejected(tt *testing.T) {
	e, _ := newTestEngine(tt, 4)

	// Offset 0xffe with length 8 spans from the last two bytes of one page into the next.
	err := e.Write(fill('X', 8), SimAddr(0xffe), 8)
	if !errors.Is(err, ErrSpan) {
		tt.Fatalf("err = %v, want ErrSpan", err)
	}
}

func TestWriteZeroLengthRejected(tt *testing.T) {
	e, _ := newTestEngine(tt, 4)

	err := e.Write(nil, 0x1000, 0)
	if !errors.Is(err, ErrSpan) {
		tt.Fatalf("err = %v, want ErrSpan", err)
	}
}

func TestMapPreservesPageOffset(tt *testing.T) {
	e, _ := newTestEngine(tt, 4)

	real := e.Map(0x1234, false)

	if uint32(real)%PageSize != uint32(0x234) {
		tt.Fatalf("real addr %s does not preserve the page offset", real)
	}
}

func TestAllocBumpsOverSimulatedSpace(tt *testing.T) {
	e, _ := newTestEngine(tt, 4)

	a := e.Alloc(64)
	b := e.Alloc(128)

	if b != a+64 {
		tt.Fatalf("second allocation = %s, want %s", b, a+64)
	}

	if a < PageSize {
		tt.Fatalf("first allocation %s overlaps the reserved null page", a)
	}
}
