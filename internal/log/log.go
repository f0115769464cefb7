// Package log wraps log/slog with a formatted, human-readable handler, used throughout vmsim so
// that a fault, an eviction, or a swap can be traced without a structured-log viewer.
//
// The engine's fault handler logs once per walk, and a single client Read/Write can walk,
// fault, evict, and fetch in turn -- several records per call, all at Debug. The teacher's
// block-per-field layout (one line per attribute, blank line between records) reads fine for an
// LC-3 trace of one instruction at a time, but turns a handful of faults into a page of output.
// Handler instead emits one logfmt-style line per record, so a demo run's fault/evict/swap trace
// stays scannable top to bottom.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

var (
	// DefaultLogger returns the default, global logger. During application startup components can
	// call DefaultLogger and cache the result. The default will not change at runtime.
	DefaultLogger = slog.Default

	// SetDefault overrides the default logger.
	SetDefault = slog.SetDefault

	// LogLevel is a variable holding the log level. It can be changed at runtime.
	LogLevel = &slog.LevelVar{}
)

// NewFormattedLogger returns a logger that uses a Handler to format and write logs to a Writer.
func NewFormattedLogger(out io.Writer) *Logger {
	handler := NewHandler(out)
	return slog.New(handler)
}

// Handler implements slog.Handler to produce single-line, logfmt-style log output: a timestamp,
// level, source location, message, and then one key=value pair per attribute, groups flattened
// into dotted keys.
type Handler struct {
	mut *sync.Mutex // Synchronizes writer.
	out io.Writer

	opts *slog.HandlerOptions

	// groupPrefix is the dotted prefix WithGroup has accumulated. Unlike the teacher's Handler,
	// which stashed the current group name in a field and mutated it mid-Handle, this is set once
	// when the handler is derived, so two goroutines sharing a parent Handler and calling
	// WithGroup concurrently never race over which group an attribute belongs to.
	groupPrefix string
	attrs       []Attr
}

// Options for log handlers.
var Options = &slog.HandlerOptions{
	AddSource:   true,
	Level:       LogLevel,
	ReplaceAttr: func(_ []string, attr Attr) Attr { return attr },
}

// NewHandler creates and initializes a Handler with a writer.
func NewHandler(out io.Writer) *Handler {
	h := Handler{
		out:  out,
		mut:  new(sync.Mutex),
		opts: Options,
	}

	return &h
}

// Enabled returns true if the level is greater than or equal to the current logging level.
func (h *Handler) Enabled(ctx context.Context, level Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle formats and writes one log record as a single line. There are some subtle rules about
// how it ought to behave. See the [slog handler guide].
//
// [slog handler guide]: https://github.com/golang/example/tree/d9923f6970e9ba7e0d23aa9448ead71ea57235ae/slog-handler-guide
func (h *Handler) Handle(ctx context.Context, rec slog.Record) error {
	buf := make([]byte, 0, 256)
	out := bytes.NewBuffer(buf)

	if !rec.Time.IsZero() {
		fmt.Fprintf(out, "%s ", rec.Time.Format("15:04:05.000"))
	}

	fmt.Fprintf(out, "%-5s", rec.Level.String())

	if h.opts.AddSource && rec.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{rec.PC})
		f, _ := frames.Next()
		_, file := path.Split(f.File)
		fmt.Fprintf(out, " %s:%d", file, f.Line)
	}

	fmt.Fprintf(out, " %s", rec.Message)

	for _, a := range h.attrs {
		if err := h.appendAttr(out, a); err != nil {
			panic(err)
		}
	}

	rec.Attrs(func(attr Attr) bool {
		if err := h.appendAttr(out, attr); err != nil {
			panic(err)
		}

		return true
	})

	fmt.Fprintln(out)

	h.mut.Lock()
	defer h.mut.Unlock()

	_, err := h.out.Write(out.Bytes())

	return err
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	prefix := name
	if h.groupPrefix != "" {
		prefix = h.groupPrefix + "." + name
	}

	attrs := make([]Attr, len(h.attrs))
	copy(attrs, h.attrs)

	return &Handler{
		mut:         h.mut,
		out:         h.out,
		opts:        h.opts,
		attrs:       attrs,
		groupPrefix: prefix,
	}
}

// WithAttrs returns a new handler that combines the handler's attributes and those in the argument.
func (h *Handler) WithAttrs(attrs []Attr) slog.Handler {
	as := make([]Attr, 0, len(h.attrs)+len(attrs))
	as = append(as, h.attrs...)
	as = append(as, attrs...)

	return &Handler{
		out:         h.out,
		mut:         h.mut,
		opts:        h.opts,
		attrs:       as,
		groupPrefix: h.groupPrefix,
	}
}

func (h *Handler) appendAttr(out io.Writer, attr slog.Attr) error {
	attr.Value = attr.Value.Resolve()
	attr = h.opts.ReplaceAttr(nil, attr)

	if attr.Equal(Attr{}) {
		return nil
	}

	return h.writeAttr(out, h.groupPrefix, attr)
}

// writeAttr writes attr under prefix, recursing into nested groups and flattening them into a
// single dotted key rather than the teacher's indented sub-block.
func (h *Handler) writeAttr(out io.Writer, prefix string, attr slog.Attr) error {
	key := attr.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if attr.Value.Kind() == slog.KindGroup {
		for _, a := range attr.Value.Group() {
			if err := h.writeAttr(out, key, a); err != nil {
				return err
			}
		}

		return nil
	}

	_, err := fmt.Fprintf(out, " %s=%s", key, formatValue(attr.Value))

	return err
}

// formatValue renders a value the way logfmt readers expect: quoted if it contains whitespace or
// a quote, bare otherwise. Fault-path attributes are addresses and enum names, which never need
// quoting, but strings that reach the logger from elsewhere (a backing-store path, an error) may.
func formatValue(v slog.Value) string {
	if v.Kind() == slog.KindString {
		s := v.String()
		if strings.ContainsAny(s, " \t\"") {
			return strconv.Quote(s)
		}

		return s
	}

	return fmt.Sprint(v.Any())
}

type (
	Attr   = slog.Attr
	Level  = slog.Level
	Logger = slog.Logger
	Value  = slog.Value
)

var (
	String      = slog.String
	StringValue = slog.StringValue
	Group       = slog.Group
	GroupValue  = slog.GroupValue
	Any         = slog.Any
	AnyValue    = slog.AnyValue
)

const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Warn  = slog.LevelWarn
	Error = slog.LevelError
)
