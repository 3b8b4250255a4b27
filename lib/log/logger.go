package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
)

// LogHandler prints records as coloured single lines for a terminal. The
// "module" attribute becomes a [module] prefix and "stage" a suffix.
type LogHandler struct {
	out         io.Writer
	outMutex    *sync.Mutex
	subHandler  slog.Handler
	buffer      *bytes.Buffer
	bufferMutex *sync.Mutex
}

const (
	reset = "\033[0m"

	magenta     = 35
	cyan        = 36
	lightGray   = 37
	darkGray    = 90
	lightRed    = 91
	lightYellow = 93
)

func colorize(colorCode int, v string) string {
	return fmt.Sprintf("\033[%sm%s%s", strconv.Itoa(colorCode), v, reset)
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.subHandler.Enabled(ctx, level)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{out: h.out, outMutex: h.outMutex, subHandler: h.subHandler.WithAttrs(attrs), buffer: h.buffer, bufferMutex: h.bufferMutex}
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{out: h.out, outMutex: h.outMutex, subHandler: h.subHandler.WithGroup(name), buffer: h.buffer, bufferMutex: h.bufferMutex}
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + " "

	switch r.Level {
	case slog.LevelDebug:
		level = colorize(darkGray, level)
	case slog.LevelInfo:
		level = colorize(cyan, level)
	case slog.LevelWarn:
		level = colorize(lightYellow, level)
	case slog.LevelError:
		level = colorize(lightRed, level)
	}

	attrs, err := h.parseAttributes(ctx, r)
	if err != nil {
		return err
	}

	var b bytes.Buffer
	b.WriteString(colorize(lightGray, r.Time.Format("15:04:05.000 ")))
	b.WriteString(level)
	if attrs["module"] != nil {
		b.WriteString(colorize(lightGray, fmt.Sprintf("[%s] ", attrs["module"])))
	}
	b.WriteString(r.Message)
	if attrs["stage"] != nil {
		b.WriteString(colorize(magenta, fmt.Sprintf(" (stage=%s)", attrs["stage"])))
	}
	b.WriteByte('\n')

	h.outMutex.Lock()
	defer h.outMutex.Unlock()
	_, err = h.out.Write(b.Bytes())
	return err
}

func (h *LogHandler) parseAttributes(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.bufferMutex.Lock()
	defer func() {
		h.buffer.Reset()
		h.bufferMutex.Unlock()
	}()
	if err := h.subHandler.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("error when calling inner handler's Handle: %w", err)
	}

	var attrs map[string]any
	err := json.Unmarshal(h.buffer.Bytes(), &attrs)
	if err != nil {
		return nil, fmt.Errorf("error when unmarshaling inner handler's Handle result: %w", err)
	}
	return attrs, nil
}

func NewHandler(out io.Writer, opts *slog.HandlerOptions) *LogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	b := &bytes.Buffer{}
	return &LogHandler{
		out:      out,
		outMutex: &sync.Mutex{},
		buffer:   b,
		subHandler: slog.NewJSONHandler(b, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: opts.ReplaceAttr,
		}),
		bufferMutex: &sync.Mutex{},
	}
}
