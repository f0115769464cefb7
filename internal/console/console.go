// Package console is an interactive inspector for driving an engine by hand: translate an
// address, read or write a single byte, allocate and free simulated memory. It has no command
// that prints page tables or forces an eviction directly. It is not required by any spec
// invariant -- a developer convenience, the same role the teacher's serial console plays for its
// LC-3 core, adapted here from an asynchronous device terminal to a synchronous command REPL,
// since the engine itself never suspends.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/smoynes/vmsim/internal/engine"
	"github.com/smoynes/vmsim/internal/mmu"
)

// ErrNoTTY is returned if standard input is not a terminal.
var ErrNoTTY = errors.New("console: not a TTY")

// Console is a raw-mode terminal front-end over an engine.
type Console struct {
	fd    int
	state *term.State
	term  *term.Terminal

	eng *engine.Engine
	mmu *mmu.MMU
}

// New creates a Console over the given engine, using stdin/stdout. Callers must call Restore to
// return the terminal to its initial state.
func New(eng *engine.Engine) (*Console, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, ErrNoTTY
	}

	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoTTY, err)
	}

	c := &Console{
		fd:    fd,
		state: saved,
		term:  term.NewTerminal(os.Stdin, "vmsim> "),
		eng:   eng,
		mmu:   mmu.New(eng),
	}

	return c, nil
}

// Restore returns the terminal to its initial state.
func (c *Console) Restore() {
	_ = term.Restore(c.fd, c.state)
}

// Run reads commands until EOF or a "quit" command.
func (c *Console) Run() error {
	for {
		line, err := c.term.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		if strings.TrimSpace(line) == "quit" {
			return nil
		}

		if err := c.dispatch(line); err != nil {
			fmt.Fprintf(c.term, "error: %s\r\n", err)
		}
	}
}

func (c *Console) dispatch(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "map":
		return c.cmdMap(fields[1:])
	case "read":
		return c.cmdRead(fields[1:])
	case "write":
		return c.cmdWrite(fields[1:])
	case "alloc":
		return c.cmdAlloc(fields[1:])
	case "free":
		return c.cmdFree(fields[1:])
	case "help":
		fmt.Fprint(c.term, "commands: map <addr>, read <addr>, write <addr> <byte>, alloc <size>, free <addr>, quit\r\n")
		return nil
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func (c *Console) cmdMap(args []string) error {
	addr, err := parseAddr(args, 0)
	if err != nil {
		return err
	}

	real := c.mmu.Translate(addr, false)

	fmt.Fprintf(c.term, "%s -> %s\r\n", addr, real)

	return nil
}

func (c *Console) cmdRead(args []string) error {
	addr, err := parseAddr(args, 0)
	if err != nil {
		return err
	}

	buf := make([]byte, 1)
	if err := c.eng.Read(buf, addr, 1); err != nil {
		return err
	}

	fmt.Fprintf(c.term, "%s: %#02x\r\n", addr, buf[0])

	return nil
}

func (c *Console) cmdWrite(args []string) error {
	addr, err := parseAddr(args, 0)
	if err != nil {
		return err
	}

	if len(args) < 2 {
		return fmt.Errorf("usage: write <addr> <byte>")
	}

	val, err := strconv.ParseUint(args[1], 0, 8)
	if err != nil {
		return fmt.Errorf("bad byte value: %w", err)
	}

	buf := []byte{byte(val)}

	return c.eng.Write(buf, addr, 1)
}

func (c *Console) cmdAlloc(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: alloc <size>")
	}

	size, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		return fmt.Errorf("bad size: %w", err)
	}

	addr := c.eng.Alloc(uint32(size))
	fmt.Fprintf(c.term, "%s\r\n", addr)

	return nil
}

func (c *Console) cmdFree(args []string) error {
	addr, err := parseAddr(args, 0)
	if err != nil {
		return err
	}

	c.eng.Free(addr)

	return nil
}

func parseAddr(args []string, i int) (engine.SimAddr, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing address argument")
	}

	v, err := strconv.ParseUint(args[i], 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad address: %w", err)
	}

	return engine.SimAddr(v), nil
}
