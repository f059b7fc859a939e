package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// BaseHandler provides common level filtering for all handlers
type BaseHandler struct {
	level slog.Level
	mu    sync.Mutex
}

// Enabled reports whether the handler handles records at the given level
func (h *BaseHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// CallbackHandler is a slog.Handler that forwards log records to a callback function
type CallbackHandler struct {
	BaseHandler
	callback CallbackFunc
	attrs    []slog.Attr
}

// NewCallbackHandler creates a new slog handler that forwards logs to a callback
func NewCallbackHandler(callback CallbackFunc, level slog.Level) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{level: level},
		callback:    callback,
	}
}

// Handle forwards the record to the callback
func (h *CallbackHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.callback == nil {
		return nil
	}

	if len(h.attrs) > 0 {
		record.AddAttrs(h.attrs...)
	}

	h.callback(record)
	return nil
}

// WithAttrs returns a new Handler whose attributes consist of both the receiver's attributes and the arguments
func (h *CallbackHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CallbackHandler{
		BaseHandler: BaseHandler{level: h.level},
		callback:    h.callback,
		attrs:       merged,
	}
}

// WithGroup is not supported; groups are flattened
func (h *CallbackHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Handler is a slog.Handler writing one compact line per record
type Handler struct {
	BaseHandler
	output io.Writer
	attrs  []slog.Attr
}

// NewHandler creates a new handler for formatted output
func NewHandler(output io.Writer, level slog.Level) *Handler {
	return &Handler{
		BaseHandler: BaseHandler{level: level},
		output:      output,
	}
}

// Handle formats the record as "[LEVEL] message key=value ..."
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := fmt.Fprintln(h.output, FormatRecord(r, h.attrs...))
	return err
}

// WithAttrs returns a new Handler with the given attributes
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &Handler{
		BaseHandler: BaseHandler{level: h.level},
		output:      h.output,
		attrs:       merged,
	}
}

// WithGroup is not supported; groups are flattened
func (h *Handler) WithGroup(_ string) slog.Handler {
	return h
}

// FormatRecord renders a record the way Handler prints it, without the newline
func FormatRecord(r slog.Record, extra ...slog.Attr) string {
	var b strings.Builder
	b.WriteString(levelPrefix(r.Level))
	b.WriteString(r.Message)

	write := func(a slog.Attr) bool {
		if a.Key == slog.TimeKey {
			return true
		}
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
		return true
	}
	for _, a := range extra {
		write(a)
	}
	r.Attrs(write)

	return b.String()
}

func levelPrefix(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "[ERROR] "
	case level >= slog.LevelWarn:
		return "[WARN] "
	case level >= slog.LevelInfo:
		return ""
	case level >= slog.LevelDebug:
		return "[DEBUG] "
	default:
		return "[TRACE] "
	}
}
