package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/smoynes/vmsim/internal/cli"
	"github.com/smoynes/vmsim/internal/console"
	"github.com/smoynes/vmsim/internal/engine"
	"github.com/smoynes/vmsim/internal/log"
	"github.com/smoynes/vmsim/internal/store"
)

// Inspect is an interactive command: it opens a backing store and an engine, then hands both to
// a console for the user to drive by hand.
func Inspect() cli.Command {
	return new(inspect)
}

type inspect struct {
	storePath string
}

func (inspect) Description() string {
	return "open an interactive session against an engine"
}

func (i inspect) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `
inspect -store <path>

Open a raw-terminal session for driving an engine by hand: map, read, write, alloc and
free simulated addresses. Requires stdin to be a terminal.`)

	return err
}

func (i *inspect) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	fs.StringVar(&i.storePath, "store", "vmsim.db", "path to the backing store file")

	return fs
}

func (i inspect) Run(_ context.Context, args []string, out io.Writer, logger *log.Logger) int {
	bs, err := store.Open(i.storePath)
	if err != nil {
		logger.Error("opening backing store", "err", err)
		return 2
	}

	defer bs.Close()

	eng, err := engine.New(bs, engine.WithLogger(logger))
	if err != nil {
		logger.Error("creating engine", "err", err)
		return 2
	}

	defer eng.Close()

	c, err := console.New(eng)
	if err != nil {
		logger.Error("opening console", "err", err)
		return 2
	}

	defer c.Restore()

	if err := c.Run(); err != nil {
		logger.Error("console", "err", err)
		return 2
	}

	return 0
}
