package logger

import (
	"context"
	"log/slog"
	"runtime"
)

// sourceLevelHandler attaches the caller location only to records whose
// level is listed. The wrapped handler must be built with AddSource: false.
type sourceLevelHandler struct {
	next   slog.Handler
	levels map[slog.Level]struct{}
}

// NewSourceLevelHandler wraps next so that only records at the given
// levels carry a source attribute.
func NewSourceLevelHandler(next slog.Handler, levels ...slog.Level) slog.Handler {
	set := make(map[slog.Level]struct{}, len(levels))
	for _, l := range levels {
		set[l] = struct{}{}
	}
	return &sourceLevelHandler{next: next, levels: set}
}

func (h *sourceLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *sourceLevelHandler) Handle(ctx context.Context, r slog.Record) error {
	if _, ok := h.levels[r.Level]; ok {
		pc := r.PC
		if pc == 0 {
			var pcs [1]uintptr
			runtime.Callers(4, pcs[:])
			pc = pcs[0]
		}
		frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
		r.AddAttrs(slog.Any(slog.SourceKey, &slog.Source{
			Function: frame.Function,
			File:     frame.File,
			Line:     frame.Line,
		}))
	}
	return h.next.Handle(ctx, r)
}

func (h *sourceLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sourceLevelHandler{next: h.next.WithAttrs(attrs), levels: h.levels}
}

func (h *sourceLevelHandler) WithGroup(name string) slog.Handler {
	return &sourceLevelHandler{next: h.next.WithGroup(name), levels: h.levels}
}
