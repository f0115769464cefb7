// Package cli is vmsim's command dispatcher: find a subcommand by name, parse its flags, run it
// with a fatal-aware logger it can trace faults through.
package cli

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/smoynes/vmsim/internal/log"
)

// Command represents a sub-command in the CLI. Each sub-command can have their own flags, config
// and action to perform.
type Command interface {
	// FlagSet returns a set of command options the command accepts.
	FlagSet() *flag.FlagSet

	// Description returns a brief description of the command's function.
	Description() string

	// Usage prints detailed command documentation.
	Usage(out io.Writer) error

	// Run executes the command with arguments. Command output should be written to |out|. It
	// returns an exit code. TODO: Should be an enum, instead of an exit code.
	Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int
}

// Commander dispatches a single command line to one of a fixed set of named subcommands. It owns
// no engine state itself -- commands construct whatever store and engine they need -- so Execute
// is the whole of vmsim's process-level control flow: name lookup, flag parse, run.
type Commander struct {
	ctx context.Context
	log *log.Logger

	help     Command
	byName   map[string]Command
	commands []Command
}

// New creates a Commander that dispatches against ctx.
func New(ctx context.Context) *Commander {
	return &Commander{
		ctx:    ctx,
		byName: make(map[string]Command),
	}
}

// Execute looks up args[0] in the registered commands, parses the remaining arguments against
// that command's flag set, and runs it. With no arguments, or an unrecognized command name, it
// falls back to the configured help command with no arguments, which prints full usage.
func (c *Commander) Execute(args []string) int {
	if len(args) == 0 {
		return c.runHelp()
	}

	cmd, ok := c.byName[args[0]]
	if !ok {
		return c.runHelp()
	}

	fs := cmd.FlagSet()

	if err := fs.Parse(args[1:]); err != nil {
		c.log.Error("parse error", "command", args[0], "err", err)
		return 1
	}

	return cmd.Run(c.ctx, fs.Args(), os.Stdout, c.log)
}

// runHelp runs the configured help command with no arguments. It panics if no help command was
// configured: that's a wiring bug in cmd/vmsim, not a user-facing failure to report with an exit
// code.
func (c *Commander) runHelp() int {
	if c.help == nil {
		panic("cli: Execute called without a help command; call WithHelp first")
	}

	return c.help.Run(c.ctx, nil, os.Stdout, c.log)
}

// WithCommands registers the dispatch table for c. Later calls replace the table entirely rather
// than appending to it.
func (c *Commander) WithCommands(cmds []Command) *Commander {
	c.commands = append([]Command(nil), cmds...)
	c.byName = make(map[string]Command, len(cmds))

	for _, cmd := range cmds {
		c.byName[cmd.FlagSet().Name()] = cmd
	}

	return c
}

// WithHelp configures the fallback command run for no arguments or an unrecognized name.
func (c *Commander) WithHelp(cmd Command) *Commander {
	c.help = cmd
	return c
}

// WithLogger configures the logger every command receives. Logs are written to out (conventionally
// os.Stderr, leaving os.Stdout for a command's own output) and installed as the package default so
// code that calls log.DefaultLogger sees the same destination.
func (c *Commander) WithLogger(out *os.File) *Commander {
	logger := log.NewFormattedLogger(out)
	c.log = logger

	log.SetDefault(logger)

	return c
}

// Type aliases from std lib.
type FlagSet = flag.FlagSet
