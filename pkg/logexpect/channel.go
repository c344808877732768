// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package logexpect

import (
	"log/slog"
	"strings"

	"github.com/samber/oops"
)

// Channel identifies the logging severity an interception observes.
type Channel string

// Supported channels.
const (
	Warn  Channel = "warn"
	Error Channel = "error"
)

// Level returns the slog level at which the channel starts.
func (c Channel) Level() slog.Level {
	if c == Error {
		return slog.LevelError
	}
	return slog.LevelWarn
}

// Contains reports whether a record at level belongs to the channel.
// Warn covers [LevelWarn, LevelError); Error covers LevelError and above.
func (c Channel) Contains(level slog.Level) bool {
	switch c {
	case Warn:
		return level >= slog.LevelWarn && level < slog.LevelError
	case Error:
		return level >= slog.LevelError
	default:
		return false
	}
}

func (c Channel) valid() bool {
	return c == Warn || c == Error
}

func (c Channel) String() string {
	return string(c)
}

// ParseChannel converts a channel name to a Channel.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	default:
		return "", oops.Code(CodeUnknownChannel).
			With("channel", s).
			Errorf("unknown log channel %q", s)
	}
}
