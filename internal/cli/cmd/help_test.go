package cmd

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"github.com/smoynes/vmsim/internal/cli"
)

func TestHelpUsageListsCommands(tt *testing.T) {
	commands := []cli.Command{Demo(), Inspect()}
	h := Help(commands)

	var buf bytes.Buffer
	if err := h.Usage(&buf); err != nil {
		tt.Fatalf("Usage: %v", err)
	}

	out := buf.String()

	for _, want := range []string{"vmsim <command>", "demo", "inspect", "help"} {
		if !strings.Contains(out, want) {
			tt.Errorf("expected usage output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestHelpRunWithCommandName(tt *testing.T) {
	commands := []cli.Command{Demo(), Inspect()}
	h := Help(commands)

	var buf bytes.Buffer

	prior := flag.CommandLine.Output()
	flag.CommandLine.SetOutput(&buf)

	defer flag.CommandLine.SetOutput(prior)

	if code := h.Run(nil, []string{"demo"}, &buf, nil); code != 0 {
		tt.Fatalf("Run: want exit code 0, got %d", code)
	}

	out := buf.String()
	if !strings.Contains(out, "vmsim") || !strings.Contains(out, "demo [") {
		tt.Errorf("expected per-command usage for demo, got:\n%s", out)
	}
}

func TestHelpDescription(tt *testing.T) {
	h := Help(nil)
	if h.Description() == "" {
		tt.Fatalf("expected a non-empty description")
	}
}
