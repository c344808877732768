// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package logexpect

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"
	"sync"

	"github.com/samber/oops"
)

// Option configures an interception.
type Option func(*interceptConfig)

type interceptConfig struct {
	passthrough bool
}

// WithPassthrough also hands recorded records to the original logger,
// so they still reach its output.
func WithPassthrough() Option {
	return func(c *interceptConfig) {
		c.passthrough = true
	}
}

var (
	// stackMu guards the default logger swap and the stack of live interceptions.
	stackMu sync.Mutex
	// live holds the interceptions not yet restored, innermost last.
	live []*Interception
)

// Interception is a scoped replacement of the default slog logger that
// records the calls made on one channel.
type Interception struct {
	channel  Channel
	calls    *callLog
	standIn  *slog.Logger
	original *slog.Logger

	logWriter io.Writer
	logFlags  int

	// restored is guarded by stackMu.
	restored bool
}

// Intercept installs a recording stand-in for the default slog logger.
// Records on ch are recorded and dropped; all other records reach the
// original logger unchanged. Call Restore when done, typically with defer.
func Intercept(ch Channel, opts ...Option) (*Interception, error) {
	if !ch.valid() {
		return nil, oops.Code(CodeUnknownChannel).
			With("channel", string(ch)).
			Errorf("unknown log channel %q", string(ch))
	}

	cfg := interceptConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	stackMu.Lock()
	defer stackMu.Unlock()

	for _, other := range live {
		if other.channel == ch {
			return nil, oops.Code(CodeInterceptionActive).
				With("channel", ch.String()).
				Errorf("%s channel is already intercepted", ch)
		}
	}

	in := &Interception{
		channel:   ch,
		calls:     &callLog{},
		original:  slog.Default(),
		logWriter: log.Writer(),
		logFlags:  log.Flags(),
	}
	in.standIn = slog.New(&recordingHandler{
		channel:     ch,
		next:        in.original.Handler(),
		calls:       in.calls,
		passthrough: cfg.passthrough,
	})

	slog.SetDefault(in.standIn)
	// SetDefault points the log package at the stand-in. Put it back so the
	// original handler, which may write through the log package, cannot
	// feed its own output into the stand-in.
	log.SetOutput(in.logWriter)
	log.SetFlags(in.logFlags)

	live = append(live, in)
	return in, nil
}

// Channel returns the intercepted channel.
func (in *Interception) Channel() Channel {
	return in.channel
}

// Logger returns the stand-in logger installed as the default.
func (in *Interception) Logger() *slog.Logger {
	return in.standIn
}

// Calls returns the recorded calls in the order they were made.
func (in *Interception) Calls() []Call {
	return in.calls.snapshot()
}

// Count returns the number of recorded calls.
func (in *Interception) Count() int {
	return in.calls.count()
}

// Messages returns the messages of the recorded calls.
func (in *Interception) Messages() []string {
	return messages(in.calls.snapshot())
}

// Restore reinstates the default logger and log package settings that
// were current when the interception started. It is safe to call more
// than once.
//
// Interceptions started after this one and still live are restored too,
// and reported with a RESTORE_OUT_OF_ORDER error; the process state is
// fully restored either way.
func (in *Interception) Restore() error {
	stackMu.Lock()
	defer stackMu.Unlock()

	if in.restored {
		return nil
	}

	idx := -1
	for i, other := range live {
		if other == in {
			idx = i
			break
		}
	}

	var leaked []string
	if idx >= 0 {
		for _, nested := range live[idx+1:] {
			nested.restored = true
			leaked = append(leaked, nested.channel.String())
		}
		live = live[:idx]
	}

	slog.SetDefault(in.original)
	log.SetOutput(in.logWriter)
	log.SetFlags(in.logFlags)
	in.restored = true

	if len(leaked) > 0 {
		return oops.Code(CodeRestoreOutOfOrder).
			With("channel", in.channel.String(), "leaked", leaked).
			Errorf("restored %s interception while nested interceptions were live: %s",
				in.channel, strings.Join(leaked, ", "))
	}
	return nil
}

// Called returns nil when at least one call was recorded and every
// non-empty fragment is a substring of at least one recorded message.
// Matching is case-sensitive.
func (in *Interception) Called(fragments ...string) error {
	calls := in.calls.snapshot()
	if len(calls) == 0 {
		return oops.Code(CodeUnmetCallExpectation).
			With("channel", in.channel.String(), "calls", 0).
			Errorf("expected at least one %s call, got none", in.channel)
	}

	for _, fragment := range fragments {
		if fragment == "" || anyContains(calls, fragment) {
			continue
		}
		msgs := messages(calls)
		return oops.Code(CodeUnmetCallExpectation).
			With("channel", in.channel.String(), "calls", len(calls)).
			With("fragment", fragment, "messages", msgs).
			Errorf("expected %s message containing %q, got %s", in.channel, fragment, quoteAll(msgs))
	}
	return nil
}

// NotCalled returns nil when no call was recorded.
func (in *Interception) NotCalled() error {
	calls := in.calls.snapshot()
	if len(calls) == 0 {
		return nil
	}
	msgs := messages(calls)
	return oops.Code(CodeUnexpectedCallDetected).
		With("channel", in.channel.String(), "calls", len(calls), "messages", msgs).
		Errorf("expected no %s calls, got %d: %s", in.channel, len(calls), quoteAll(msgs))
}

func anyContains(calls []Call, fragment string) bool {
	for _, c := range calls {
		if strings.Contains(c.Message, fragment) {
			return true
		}
	}
	return false
}

func messages(calls []Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Message
	}
	return out
}

func quoteAll(msgs []string) string {
	quoted := make([]string, len(msgs))
	for i, m := range msgs {
		quoted[i] = fmt.Sprintf("%q", m)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
