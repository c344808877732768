// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package logexpect

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/holomush/logexpect/internal/logging"
)

// Call is one logging call recorded during an interception.
type Call struct {
	Level   slog.Level
	Message string
	Time    time.Time
	// Attrs holds logger attributes followed by record attributes.
	// Keys inside groups are qualified with their group path, joined by ".".
	Attrs []slog.Attr
	// TraceID and SpanID come from the span context of the logging call.
	TraceID string
	SpanID  string
}

// Attr returns the value of the first attribute with the given key.
func (c Call) Attr(key string) (slog.Value, bool) {
	for _, a := range c.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return slog.Value{}, false
}

// callLog is the ordered record store shared by a handler and its derivatives.
type callLog struct {
	mu    sync.Mutex
	calls []Call
}

func (l *callLog) add(c Call) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, c)
}

func (l *callLog) snapshot() []Call {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.calls)
}

func (l *callLog) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

// recordingHandler records the records of one channel and hands every
// other record to the handler it replaced.
type recordingHandler struct {
	channel     Channel
	next        slog.Handler
	calls       *callLog
	passthrough bool
	attrs       []slog.Attr
	groups      []string
}

func (h *recordingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.channel.Contains(level) {
		return true
	}
	return h.next.Enabled(ctx, level)
}

func (h *recordingHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.channel.Contains(r.Level) {
		//nolint:wrapcheck // Handler interface requires unwrapped error passthrough
		return h.next.Handle(ctx, r)
	}

	h.calls.add(h.capture(ctx, r))

	if h.passthrough && h.next.Enabled(ctx, r.Level) {
		//nolint:wrapcheck // Handler interface requires unwrapped error passthrough
		return h.next.Handle(ctx, r)
	}
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.next = h.next.WithAttrs(attrs)
	clone.attrs = slices.Clone(h.attrs)
	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		clone.attrs = flatten(prefix, a, clone.attrs)
	}
	return &clone
}

func (h *recordingHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.next = h.next.WithGroup(name)
	clone.groups = append(slices.Clone(h.groups), name)
	return &clone
}

func (h *recordingHandler) capture(ctx context.Context, r slog.Record) Call {
	attrs := slices.Clone(h.attrs)
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		attrs = flatten(prefix, a, attrs)
		return true
	})

	traceID, spanID := logging.SpanIDs(ctx)
	return Call{
		Level:   r.Level,
		Message: r.Message,
		Time:    r.Time,
		Attrs:   attrs,
		TraceID: traceID,
		SpanID:  spanID,
	}
}

// flatten appends a to out, expanding groups into qualified keys.
// Empty attributes are dropped and empty group keys are inlined, as slog
// handlers do.
func flatten(prefix string, a slog.Attr, out []slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return out
	}

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, member := range a.Value.Group() {
			out = flatten(key, member, out)
		}
		return out
	}
	return append(out, slog.Attr{Key: key, Value: a.Value})
}
