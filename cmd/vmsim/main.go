// cmd/vmsim is the command-line interface to vmsim, a two-level demand-paged virtual memory
// simulator.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/smoynes/vmsim/internal/cli"
	"github.com/smoynes/vmsim/internal/cli/cmd"
	"github.com/smoynes/vmsim/internal/engine"
)

var commands = []cli.Command{
	cmd.Demo(),
	cmd.Inspect(),
}

// Entry point. Per spec §7, a fatal invariant breach or backing-store failure aborts by
// panicking with a *engine.FatalError; this is the one place that's recovered, so the process
// exits with a clean diagnostic instead of a stack trace.
func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*engine.FatalError); ok {
				fmt.Fprintln(os.Stderr, "vmsim: fatal:", fe.Error())
				code = 1

				return
			}

			panic(r)
		}
	}()

	return cli.New(context.Background()).
		WithLogger(os.Stderr).
		WithCommands(commands).
		WithHelp(cmd.Help(commands)).
		Execute(os.Args[1:])
}
