package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/smoynes/vmsim/internal/cli"
	"github.com/smoynes/vmsim/internal/engine"
	"github.com/smoynes/vmsim/internal/log"
	"github.com/smoynes/vmsim/internal/mmu"
	"github.com/smoynes/vmsim/internal/store"
)

// Demo is a demonstration command.
func Demo() cli.Command {
	return new(demo)
}

type demo struct {
	debug  bool
	quiet  bool
	frames uint
}

func (demo) Description() string {
	return "run a fault/evict/swap demonstration"
}

func (d demo) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `
demo [ -debug | -quiet ] [ -frames N ]

Drive an engine through enough page faults to force eviction and swap-back, logging
each page as it is faulted in and the first page's value once it is swapped back.`)

	return err
}

func (d *demo) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)

	fs.BoolVar(&d.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&d.quiet, "quiet", false, "enable quiet output, errors only")
	fs.UintVar(&d.frames, "frames", 4, "number of real-memory frames in the demo arena")

	return fs
}

func (d demo) Run(ctx context.Context, args []string, out io.Writer, _ *log.Logger) int {
	if d.quiet {
		log.LogLevel.Set(log.Error)
	}

	if d.debug {
		log.LogLevel.Set(log.Debug)
	}

	logger := log.NewFormattedLogger(out)
	log.SetDefault(logger)

	path := filepath.Join(os.TempDir(), "vmsim-demo.db")

	bs, err := store.Open(path)
	if err != nil {
		logger.Error("opening backing store", "err", err)
		return 2
	}

	defer os.Remove(path)
	defer bs.Close()

	arenaSize := engine.PTAreaSize + d.frames*engine.PageSize

	eng, err := newDemoEngine(arenaSize, bs, logger)
	if err != nil {
		logger.Error("creating engine", "err", err)
		return 2
	}

	defer eng.Close()

	m := mmu.New(eng)

	logger.Info("demo arena ready", "frames", d.frames, "bytes", arenaSize)

	// Touch frames+1 distinct pages: the first frames pages fit without contention, the last
	// one forces CLOCK to pick a victim and evict it to the backing store.
	for i := uint(0); i <= d.frames; i++ {
		addr := engine.SimAddr(i * engine.PageSize)

		buf := make([]byte, 1)
		buf[0] = byte('A' + i)

		if err := eng.Write(buf, addr, 1); err != nil {
			logger.Error("write fault", "addr", addr, "err", err)
			return 2
		}

		real := m.Translate(addr, false)

		logger.Info("faulted in page", "sim", addr, "real", real)
	}

	// Re-touch the first page: it should have been evicted by now, so this read forces a
	// swap-back from the backing store.
	first := engine.SimAddr(0)

	readBuf := make([]byte, 1)
	if err := eng.Read(readBuf, first, 1); err != nil {
		logger.Error("read after eviction", "err", err)
		return 2
	}

	logger.Info("swapped page back in", "sim", first, "value", string(readBuf))

	select {
	case <-ctx.Done():
		return 1
	default:
		return 0
	}
}

// newDemoEngine sizes the arena via VMSIM_REAL_MEM_SIZE, the only knob engine.New accepts for
// arena size, then restores whatever the environment held before.
func newDemoEngine(size uint, bs *store.Store, logger *log.Logger) (*engine.Engine, error) {
	prior, had := os.LookupEnv(engine.RealMemSizeEnv)

	os.Setenv(engine.RealMemSizeEnv, strconv.FormatUint(uint64(size), 10))

	defer func() {
		if had {
			os.Setenv(engine.RealMemSizeEnv, prior)
		} else {
			os.Unsetenv(engine.RealMemSizeEnv)
		}
	}()

	return engine.New(bs, engine.WithLogger(logger))
}
