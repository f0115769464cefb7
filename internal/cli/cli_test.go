package cli

import (
	"bytes"
	"context"
	"flag"
	"io"
	"testing"

	"github.com/smoynes/vmsim/internal/log"
)

type stubCommand struct {
	name   string
	called bool
	ran    []string
}

func (s *stubCommand) FlagSet() *flag.FlagSet { return flag.NewFlagSet(s.name, flag.ContinueOnError) }
func (s *stubCommand) Description() string    { return "stub: " + s.name }
func (s *stubCommand) Usage(io.Writer) error  { return nil }

func (s *stubCommand) Run(_ context.Context, args []string, _ io.Writer, _ *log.Logger) int {
	s.called = true
	s.ran = args

	return 0
}

func newTestCommander(tt *testing.T) (*Commander, *stubCommand, *stubCommand) {
	tt.Helper()

	one := &stubCommand{name: "one"}
	help := &stubCommand{name: "help"}

	c := New(context.Background()).
		WithCommands([]Command{one}).
		WithHelp(help)

	var buf bytes.Buffer
	c.log = log.NewFormattedLogger(&buf)

	return c, one, help
}

func TestExecuteDispatchesByName(tt *testing.T) {
	c, one, _ := newTestCommander(tt)

	if code := c.Execute([]string{"one", "a", "b"}); code != 0 {
		tt.Fatalf("Execute: want 0, got %d", code)
	}

	if len(one.ran) != 2 || one.ran[0] != "a" || one.ran[1] != "b" {
		tt.Fatalf("expected one to run with [a b], got %v", one.ran)
	}
}

func TestExecuteFallsBackToHelpOnNoArgs(tt *testing.T) {
	c, _, help := newTestCommander(tt)

	if code := c.Execute(nil); code != 0 {
		tt.Fatalf("Execute: want 0, got %d", code)
	}

	if !help.called {
		tt.Fatalf("expected help to run")
	}
}

func TestExecuteFallsBackToHelpOnUnknownCommand(tt *testing.T) {
	c, _, help := newTestCommander(tt)

	if code := c.Execute([]string{"bogus"}); code != 0 {
		tt.Fatalf("Execute: want 0, got %d", code)
	}

	if !help.called || len(help.ran) != 0 {
		tt.Fatalf("expected help to run with no arguments, got %v", help.ran)
	}
}

func TestExecutePanicsWithoutHelpConfigured(tt *testing.T) {
	defer func() {
		if recover() == nil {
			tt.Fatalf("expected Execute to panic when no help command is configured")
		}
	}()

	c := New(context.Background())
	c.log = log.NewFormattedLogger(&bytes.Buffer{})
	c.Execute(nil)
}

func TestWithCommandsReplacesDispatchTable(tt *testing.T) {
	first := &stubCommand{name: "first"}
	second := &stubCommand{name: "second"}

	c := New(context.Background()).WithCommands([]Command{first})
	c = c.WithCommands([]Command{second})

	if _, ok := c.byName["first"]; ok {
		tt.Fatalf("expected WithCommands to replace, not append to, the dispatch table")
	}

	if _, ok := c.byName["second"]; !ok {
		tt.Fatalf("expected second to be registered")
	}
}
