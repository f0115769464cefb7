//go:build unix

package engine

// arena_unix.go obtains real memory as anonymous, read/write mmap'd pages, matching spec §4.1's
// description of the arena as memory "obtained from the host as read/write anonymous memory".

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type mmapArena struct {
	buf []byte
}

func newHostArena(size uint32) (arena, error) {
	buf, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %w", ErrConfig, size, err)
	}

	return &mmapArena{buf: buf}, nil
}

func (a *mmapArena) bytes() []byte {
	return a.buf
}

func (a *mmapArena) close() error {
	if a.buf == nil {
		return nil
	}

	err := unix.Munmap(a.buf)
	a.buf = nil

	return err
}
