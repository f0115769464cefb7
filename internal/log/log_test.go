package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestHandleSingleLine(tt *testing.T) {
	prior := LogLevel.Level()
	LogLevel.Set(Debug)
	tt.Cleanup(func() { LogLevel.Set(prior) })

	var buf bytes.Buffer

	logger := NewFormattedLogger(&buf)
	logger.Debug("fault handled", "sim", "0x00001000", "kind", "kindUpperFault")

	out := buf.String()

	if strings.Count(out, "\n") != 1 {
		tt.Fatalf("expected exactly one line, got:\n%s", out)
	}

	for _, want := range []string{"DEBUG", "fault handled", "sim=0x00001000", "kind=kindUpperFault"} {
		if !strings.Contains(out, want) {
			tt.Errorf("expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestHandleQuotesValuesWithSpaces(tt *testing.T) {
	var buf bytes.Buffer

	logger := NewFormattedLogger(&buf)
	logger.Info("opening backing store", "err", "no such file or directory")

	out := buf.String()
	if !strings.Contains(out, `err="no such file or directory"`) {
		tt.Errorf("expected a quoted value, got: %s", out)
	}
}

func TestWithGroupFlattensDottedKeys(tt *testing.T) {
	var buf bytes.Buffer

	logger := NewFormattedLogger(&buf)
	logger.WithGroup("pte").Info("translated", "page", "0x2000")

	out := buf.String()
	if !strings.Contains(out, "pte.page=0x2000") {
		tt.Errorf("expected a dotted group key, got: %s", out)
	}
}

func TestWithAttrsPersistAcrossCalls(tt *testing.T) {
	var buf bytes.Buffer

	logger := NewFormattedLogger(&buf).With("engine", "e0")
	logger.Info("started")

	if out := buf.String(); !strings.Contains(out, "engine=e0") {
		tt.Errorf("expected bound attribute in output, got: %s", out)
	}
}
