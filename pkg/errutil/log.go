// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package errutil holds helpers for logging and asserting on oops errors.
package errutil

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs err at error level on logger, or on the default logger
// when logger is nil. Oops errors contribute their code and context as
// attributes; other errors are logged as their string.
func LogError(logger *slog.Logger, msg string, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []slog.Attr{slog.String("error", errString(err))}
	if oopsErr, ok := oops.AsOops(err); ok {
		if code := any(oopsErr.Code()); code != nil && code != "" {
			attrs = append(attrs, slog.Any("code", code))
		}
		if ctx := oopsErr.Context(); len(ctx) > 0 {
			attrs = append(attrs, slog.Any("context", ctx))
		}
	}
	logger.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
}

func errString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
